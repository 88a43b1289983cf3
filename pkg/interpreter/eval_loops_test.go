package interpreter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/runtime"
)

func increment(name string) ast.Expression {
	return ast.Bin(ast.OpAddEq, ast.ID(name), ast.Int(1))
}

func TestWhileLoop(t *testing.T) {
	val := evaluate(t, ast.Block(
		ast.Assign(ast.ID("i"), ast.Int(0)),
		ast.While(ast.Bin(ast.OpLt, ast.ID("i"), ast.Int(5)), increment("i")),
	))
	assert.Equal(t, intV(5), val)

	assert.Equal(t, nullV, evaluate(t, ast.While(ast.Bool(false), ast.Int(1))))
	assert.Equal(t, arrV(), evaluate(t, ast.WhileCollect(ast.Null(), ast.Int(1))))
}

func TestWhileCollectBreak(t *testing.T) {
	val := evaluate(t, ast.Block(
		ast.Assign(ast.ID("i"), ast.Int(0)),
		ast.WhileCollect(ast.Bool(true), ast.Block(
			increment("i"),
			ast.If(ast.Bin(ast.OpEqu, ast.ID("i"), ast.Int(3)),
				ast.Brk(ast.Bin(ast.OpMul, ast.ID("i"), ast.Int(10)))),
			ast.ID("i"),
		)),
	))
	assert.Equal(t, arrV(intV(1), intV(2), intV(30)), val)
}

func TestBreakPayloadIsLoopValue(t *testing.T) {
	val := evaluate(t, ast.Block(
		ast.Assign(ast.ID("r"), ast.While(ast.Bool(true), ast.Brk(ast.Str("done")))),
		ast.Assign(ast.ID("after"), ast.Int(1)),
		ast.Arr(ast.ID("r"), ast.ID("after")),
	))
	assert.Equal(t, arrV(strV("done"), intV(1)), val)

	assert.Equal(t, nullV, evaluate(t, ast.While(ast.Bool(true), ast.Brk(nil))))
}

func TestNestedBreakEndsInnerLoopOnly(t *testing.T) {
	val := evaluate(t, ast.ForCollect(
		ast.While(ast.Bool(true), ast.Brk(ast.ID("i"))),
		ast.ID("i"), ast.Range(ast.Int(0), ast.Int(3)),
	))
	assert.Equal(t, arrV(intV(0), intV(1), intV(2)), val)
}

func TestForCollectEnumerate(t *testing.T) {
	interp := New()
	val, err := interp.Evaluate(ast.ForCollect(
		ast.Bin(ast.OpMul, ast.ID("e"), ast.ID("i")),
		ast.ID("e"), ast.ID("i"), ast.RangeStep(ast.Int(0), ast.Int(6), ast.Int(2)),
	))
	require.NoError(t, err)
	assert.Equal(t, arrV(intV(0), intV(2), intV(8)), val)
	assert.False(t, interp.RootEnvironment().Has("e"))
	assert.False(t, interp.RootEnvironment().Has("i"))
}

func TestForPlainKeepsLastValue(t *testing.T) {
	val := evaluate(t, ast.For(ast.Bin(ast.OpMul, ast.ID("x"), ast.Int(2)), ast.ID("x"), ast.Range(ast.Int(1), ast.Int(4))))
	assert.Equal(t, intV(6), val)

	val = evaluate(t, ast.For(ast.Int(1), ast.ID("x"), ast.Range(ast.Int(1), ast.Int(1))))
	assert.Equal(t, nullV, val)
}

func TestForSingleArgument(t *testing.T) {
	val := evaluate(t, ast.Block(
		ast.Assign(ast.ID("n"), ast.Int(0)),
		ast.For(increment("n"), ast.Range(ast.Int(0), ast.Int(4))),
		ast.ID("n"),
	))
	assert.Equal(t, intV(4), val)
}

func TestRangeStepSignIsCorrected(t *testing.T) {
	count := func(rng ast.Expression) runtime.Value {
		return evaluate(t, ast.Block(
			ast.Assign(ast.ID("n"), ast.Int(0)),
			ast.For(increment("n"), rng),
			ast.ID("n"),
		))
	}
	assert.Equal(t, intV(10), count(ast.Range(ast.Int(10), ast.Int(0))))
	assert.Equal(t, intV(10), count(ast.RangeStep(ast.Int(10), ast.Int(0), ast.Int(1))))
	assert.Equal(t, intV(5), count(ast.RangeStep(ast.Int(0), ast.Int(10), ast.Int(-2))))
}

func TestStandaloneRange(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expression
		want runtime.ArrayValue
	}{
		{"ascending", ast.Range(ast.Int(0), ast.Int(4)), arrV(intV(0), intV(1), intV(2), intV(3))},
		{"descending", ast.Range(ast.Int(3), ast.Int(0)), arrV(intV(3), intV(2), intV(1))},
		{"stepped", ast.RangeStep(ast.Int(0), ast.Int(5), ast.Int(2)), arrV(intV(0), intV(2))},
		{"empty", ast.Range(ast.Int(2), ast.Int(2)), arrV()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evaluate(t, tc.expr))
		})
	}
}

func TestRangeNearIntegerLimits(t *testing.T) {
	const e18 = int64(1_000_000_000_000_000_000)

	val := evaluate(t, ast.ForCollect(ast.ID("i"), ast.ID("i"),
		ast.RangeStep(ast.Int(-5*e18), ast.Int(5*e18), ast.Int(4*e18))))
	assert.Equal(t, arrV(intV(-5*e18), intV(-1*e18)), val)

	cases := []struct {
		name string
		expr ast.Expression
		want runtime.ArrayValue
	}{
		{"min step downwards", ast.RangeStep(ast.Int(0), ast.Int(math.MinInt64), ast.Int(math.MinInt64)), arrV(intV(0))},
		{"min step upwards", ast.RangeStep(ast.Int(math.MinInt64), ast.Int(math.MaxInt64), ast.Int(math.MinInt64)), arrV(intV(math.MinInt64))},
		{"max step", ast.RangeStep(ast.Int(math.MaxInt64), ast.Int(math.MinInt64), ast.Int(math.MaxInt64)), arrV(intV(math.MaxInt64), intV(0))},
		{"last values", ast.Range(ast.Int(math.MaxInt64-2), ast.Int(math.MaxInt64)), arrV(intV(math.MaxInt64-2), intV(math.MaxInt64-1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evaluate(t, tc.expr))
		})
	}

	n := evaluate(t, ast.Block(
		ast.Assign(ast.ID("n"), ast.Int(0)),
		ast.For(increment("n"), ast.RangeStep(ast.Int(0), ast.Int(math.MinInt64), ast.Int(math.MinInt64))),
		ast.ID("n"),
	))
	assert.Equal(t, intV(1), n)
}

func TestRangeErrors(t *testing.T) {
	evaluateErr(t, ast.Range(ast.Flt(1), ast.Int(3)), ErrRangeType)
	evaluateErr(t, ast.Range(ast.Int(1), ast.Str("3")), ErrRangeType)
	evaluateErr(t, ast.RangeStep(ast.Int(0), ast.Int(3), ast.Null()), ErrRangeType)
	evaluateErr(t, ast.RangeStep(ast.Int(0), ast.Int(5), ast.Int(0)), ErrRangeStep)
	evaluateErr(t, ast.For(ast.Int(1), ast.ID("x"), ast.Range(ast.Flt(0), ast.Int(2))), ErrRangeType)
	evaluateErr(t, ast.For(ast.Int(1), ast.ID("x"), ast.Int(5)), ErrRangeType)
}

func TestLoopArity(t *testing.T) {
	evaluateErr(t, ast.For(ast.Int(1)), ErrLoopArity)
	evaluateErr(t, ast.For(ast.Int(1), ast.ID("a"), ast.ID("b"), ast.ID("c"), ast.Range(ast.Int(0), ast.Int(1))), ErrLoopArity)
	evaluateErr(t, ast.For(ast.Int(1), ast.ID("a"), ast.ID("a"), ast.Range(ast.Int(0), ast.Int(1))), ErrRedefinition)
}

func TestUnderscoreIsNeverBound(t *testing.T) {
	interp := New()
	val, err := interp.Evaluate(ast.ForCollect(ast.ID("_"), ast.ID("_"), ast.Range(ast.Int(0), ast.Int(2))))
	require.NoError(t, err)
	assert.Equal(t, arrV(nullV, nullV), val)
	assert.False(t, interp.RootEnvironment().Has("_"))

	val = evaluate(t, ast.ForCollect(ast.ID("i"), ast.ID("i"), ast.ID("_"), ast.Range(ast.Int(5), ast.Int(7))))
	assert.Equal(t, arrV(intV(0), intV(1)), val)
}

func TestForEachArray(t *testing.T) {
	val := evaluate(t, ast.ForCollect(
		ast.Bin(ast.OpMul, ast.ID("x"), ast.Int(2)),
		ast.ID("x"), ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3)),
	))
	assert.Equal(t, arrV(intV(2), intV(4), intV(6)), val)

	val = evaluate(t, ast.ForCollect(
		ast.Arr(ast.ID("i"), ast.ID("v")),
		ast.ID("i"), ast.ID("v"), ast.Arr(ast.Str("a"), ast.Str("b")),
	))
	assert.Equal(t, arrV(arrV(intV(0), strV("a")), arrV(intV(1), strV("b"))), val)
}

func TestForBreak(t *testing.T) {
	val := evaluate(t, ast.ForCollect(
		ast.IfElse(ast.Bin(ast.OpEqu, ast.ID("i"), ast.Int(2)), ast.Brk(ast.Str("stop")), ast.ID("i")),
		ast.ID("i"), ast.Range(ast.Int(0), ast.Int(10)),
	))
	assert.Equal(t, arrV(intV(0), intV(1), strV("stop")), val)
}

func TestForHugeRangeWithBreak(t *testing.T) {
	val := evaluate(t, ast.For(
		ast.If(ast.Bin(ast.OpEqu, ast.ID("i"), ast.Int(3)), ast.Brk(ast.ID("i"))),
		ast.ID("i"), ast.Range(ast.Int(0), ast.Int(1<<40)),
	))
	assert.Equal(t, intV(3), val)
}

func TestLoopBodyAssignsOuterBinding(t *testing.T) {
	val := evaluate(t, ast.Block(
		ast.Assign(ast.ID("sum"), ast.Int(0)),
		ast.For(ast.Bin(ast.OpAddEq, ast.ID("sum"), ast.ID("x")), ast.ID("x"), ast.Arr(ast.Int(1), ast.Int(2), ast.Int(3))),
		ast.ID("sum"),
	))
	assert.Equal(t, intV(6), val)
}
