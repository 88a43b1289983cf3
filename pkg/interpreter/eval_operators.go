package interpreter

import (
	"math"

	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/runtime"
)

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OpNeg:
		switch v := operand.(type) {
		case runtime.IntegerValue:
			return runtime.IntegerValue{Val: -v.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
		return runtime.NullValue{}, nil
	case ast.OpNot:
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	case ast.OpLen:
		if arr, ok := operand.(runtime.ArrayValue); ok {
			return runtime.IntegerValue{Val: int64(arr.Len())}, nil
		}
		return runtime.IntegerValue{Val: 0}, nil
	default:
		return nil, runtimeErrorf(ErrUnsupportedNode, "unary operator %q", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	if expr.Operator == ast.OpAssign {
		return i.evaluateAssignment(expr.Left, expr.Right, env)
	}
	if base, ok := expr.Operator.Compound(); ok {
		return i.evaluateCompoundAssignment(base, expr.Left, expr.Right, env)
	}
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Operator, left, right)
}

// evaluateAssignment binds an identifier through the scope chain, or
// replaces one element of the array held by an identifier.
func (i *Interpreter) evaluateAssignment(target, valueExpr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		val, err := i.evaluateExpression(valueExpr, env)
		if err != nil {
			return nil, err
		}
		env.Set(t.Name, val)
		return val, nil
	case *ast.IndexExpression:
		index, err := i.evaluateIndex(t.Index, env)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluateExpression(valueExpr, env)
		if err != nil {
			return nil, err
		}
		if err := i.storeElement(t.Target, index, val, env); err != nil {
			return nil, err
		}
		return val, nil
	default:
		return nil, runtimeErrorf(ErrInvalidAssignee, "cannot assign to %s", target.NodeType())
	}
}

// evaluateCompoundAssignment reads the current value, applies op against the
// right-hand side and assigns the result back to the same target.
func (i *Interpreter) evaluateCompoundAssignment(op ast.BinaryOperator, target, valueExpr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		current := env.Get(t.Name)
		val, err := i.evaluateExpression(ast.Bin(op, ast.Val(current), valueExpr), env)
		if err != nil {
			return nil, err
		}
		env.Set(t.Name, val)
		return val, nil
	case *ast.IndexExpression:
		index, err := i.evaluateIndex(t.Index, env)
		if err != nil {
			return nil, err
		}
		if _, ok := t.Target.(*ast.Identifier); !ok {
			return nil, runtimeErrorf(ErrInvalidAssignee, "compound assignment through %s", t.Target.NodeType())
		}
		arr, err := i.evaluateArrayTarget(t.Target, env)
		if err != nil {
			return nil, err
		}
		current, ok := arr.At(index)
		if !ok {
			return nil, runtimeErrorf(ErrIndexOutOfRange, "index %d, length %d", index, arr.Len())
		}
		val, err := i.evaluateExpression(ast.Bin(op, ast.Val(current), valueExpr), env)
		if err != nil {
			return nil, err
		}
		if err := i.storeElement(t.Target, index, val, env); err != nil {
			return nil, err
		}
		return val, nil
	default:
		return nil, runtimeErrorf(ErrInvalidAssignee, "cannot assign to %s", target.NodeType())
	}
}

func (i *Interpreter) evaluateArrayTarget(target ast.Expression, env *runtime.Environment) (runtime.ArrayValue, error) {
	val, err := i.evaluateExpression(target, env)
	if err != nil {
		return runtime.ArrayValue{}, err
	}
	arr, ok := val.(runtime.ArrayValue)
	if !ok {
		return runtime.ArrayValue{}, runtimeErrorf(ErrNotIndexable, "cannot index %s", val.Kind())
	}
	return arr, nil
}

// storeElement re-reads the array held by target, replaces one element and
// writes the new array back when target names a binding.
func (i *Interpreter) storeElement(target ast.Expression, index int64, val runtime.Value, env *runtime.Environment) error {
	arr, err := i.evaluateArrayTarget(target, env)
	if err != nil {
		return err
	}
	updated, ok := arr.With(index, val)
	if !ok {
		return runtimeErrorf(ErrIndexOutOfRange, "index %d, length %d", index, arr.Len())
	}
	if id, ok := target.(*ast.Identifier); ok {
		env.Set(id.Name, updated)
	}
	return nil
}

// applyBinaryOperator combines two evaluated operands. Operand pairs an
// operator does not define evaluate to null.
func applyBinaryOperator(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAnd:
		return runtime.BoolValue{Val: isTruthy(left) && isTruthy(right)}, nil
	case ast.OpOr:
		return runtime.BoolValue{Val: isTruthy(left) || isTruthy(right)}, nil
	case ast.OpAdd:
		if arr, ok := left.(runtime.ArrayValue); ok {
			if other, ok := right.(runtime.ArrayValue); ok {
				return arr.Concat(other), nil
			}
			return arr.Append(right), nil
		}
		return arithmetic(op, left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return arithmetic(op, left, right)
	case ast.OpEqu, ast.OpNeq, ast.OpLt, ast.OpLEt, ast.OpGt, ast.OpGEt:
		return compare(op, left, right), nil
	default:
		return nil, runtimeErrorf(ErrUnsupportedNode, "binary operator %q", op)
	}
}

func arithmetic(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return integerArithmetic(op, l.Val, r.Val)
		}
	}
	l, lok := toFloat(left)
	r, rok := toFloat(right)
	if !lok || !rok {
		return runtime.NullValue{}, nil
	}
	return runtime.FloatValue{Val: floatArithmetic(op, l, r)}, nil
}

func integerArithmetic(op ast.BinaryOperator, l, r int64) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		return runtime.IntegerValue{Val: l + r}, nil
	case ast.OpSub:
		return runtime.IntegerValue{Val: l - r}, nil
	case ast.OpMul:
		return runtime.IntegerValue{Val: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, runtimeErrorf(ErrDivisionByZero, "%d / 0", l)
		}
		if l%r == 0 {
			return runtime.IntegerValue{Val: l / r}, nil
		}
		return runtime.FloatValue{Val: float64(l) / float64(r)}, nil
	case ast.OpMod:
		if r == 0 {
			return nil, runtimeErrorf(ErrDivisionByZero, "%d %% 0", l)
		}
		return runtime.IntegerValue{Val: l % r}, nil
	case ast.OpPow:
		if r < 0 {
			return runtime.FloatValue{Val: math.Pow(float64(l), float64(r))}, nil
		}
		return runtime.IntegerValue{Val: intPow(l, r)}, nil
	}
	return runtime.NullValue{}, nil
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func floatArithmetic(op ast.BinaryOperator, l, r float64) float64 {
	switch op {
	case ast.OpAdd:
		return l + r
	case ast.OpSub:
		return l - r
	case ast.OpMul:
		return l * r
	case ast.OpDiv:
		return l / r
	case ast.OpMod:
		return math.Mod(l, r)
	default:
		return math.Pow(l, r)
	}
}

// compare orders numbers only; any other operand pair is null.
func compare(op ast.BinaryOperator, left, right runtime.Value) runtime.Value {
	var cmp int
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			cmp = compareOrdered(l.Val, r.Val)
			return runtime.BoolValue{Val: comparison(op, cmp)}
		}
	}
	l, lok := toFloat(left)
	r, rok := toFloat(right)
	if !lok || !rok {
		return runtime.NullValue{}
	}
	if math.IsNaN(l) || math.IsNaN(r) {
		return runtime.BoolValue{Val: op == ast.OpNeq}
	}
	cmp = compareOrdered(l, r)
	return runtime.BoolValue{Val: comparison(op, cmp)}
}

func compareOrdered[T int64 | float64](l, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func comparison(op ast.BinaryOperator, cmp int) bool {
	switch op {
	case ast.OpEqu:
		return cmp == 0
	case ast.OpNeq:
		return cmp != 0
	case ast.OpLt:
		return cmp < 0
	case ast.OpLEt:
		return cmp <= 0
	case ast.OpGt:
		return cmp > 0
	default:
		return cmp >= 0
	}
}

func toFloat(val runtime.Value) (float64, bool) {
	switch v := val.(type) {
	case runtime.IntegerValue:
		return float64(v.Val), true
	case runtime.FloatValue:
		return v.Val, true
	default:
		return 0, false
	}
}
