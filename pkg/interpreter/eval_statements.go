package interpreter

import (
	"errors"

	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/runtime"
)

// evaluateBlock runs the statements for effect in env, then yields the
// trailing result expression.
func (i *Interpreter) evaluateBlock(block *ast.BlockExpression, env *runtime.Environment) (runtime.Value, error) {
	for _, stmt := range block.Statements {
		if _, err := i.evaluateExpression(stmt, env); err != nil {
			return nil, err
		}
	}
	return i.evaluateOptional(block.Result, env)
}

func (i *Interpreter) evaluateScope(scope *ast.ScopeExpression, env *runtime.Environment) (runtime.Value, error) {
	child := env.Extend()
	if i.trace {
		i.tracef("enter scope at depth %d", child.Depth())
	}
	return i.evaluateExpression(scope.Body, child)
}

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(expr.Condition, env)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return i.evaluateExpression(expr.Then, env)
	}
	return i.evaluateOptional(expr.Else, env)
}

// loopResult accumulates the value of a plain or collecting loop.
type loopResult struct {
	collect    bool
	last       runtime.Value
	collected  []runtime.Value
	iterations int
}

func newLoopResult(collect bool) *loopResult {
	return &loopResult{collect: collect, last: runtime.NullValue{}}
}

func (r *loopResult) add(val runtime.Value) {
	r.iterations++
	if r.collect {
		r.collected = append(r.collected, val)
		return
	}
	r.last = val
}

func (r *loopResult) value() runtime.Value {
	if r.collect {
		return runtime.NewArray(r.collected...)
	}
	return r.last
}

// step records one body evaluation. It reports whether the loop must stop:
// on a break the payload becomes the final value, any other error aborts.
func (r *loopResult) step(val runtime.Value, err error) (bool, error) {
	if err == nil {
		r.add(val)
		return false, nil
	}
	var br breakSignal
	if errors.As(err, &br) {
		r.add(br.value)
		return true, nil
	}
	return true, err
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (runtime.Value, error) {
	result := newLoopResult(loop.Collect)
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			break
		}
		stop, err := result.step(i.evaluateExpression(loop.Body, env))
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}
	i.tracef("while loop finished after %d iterations", result.iterations)
	return result.value(), nil
}

// loopBinding is the normalized form of a for loop's 1-3 arguments. Empty
// names are never bound.
type loopBinding struct {
	enumerate string
	item      string
	source    ast.Expression
}

func normalizeLoopBinding(args *ast.Arguments) (loopBinding, error) {
	var items []ast.Expression
	if args != nil {
		items = args.Items
	}
	switch len(items) {
	case 1:
		return loopBinding{source: items[0]}, nil
	case 2:
		return loopBinding{item: bindingName(items[0]), source: items[1]}, nil
	case 3:
		return loopBinding{enumerate: bindingName(items[0]), item: bindingName(items[1]), source: items[2]}, nil
	default:
		return loopBinding{}, runtimeErrorf(ErrLoopArity, "got %d", len(items))
	}
}

func bindingName(expr ast.Expression) string {
	id, ok := expr.(*ast.Identifier)
	if !ok || id.Name == "_" {
		return ""
	}
	return id.Name
}

func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (runtime.Value, error) {
	binding, err := normalizeLoopBinding(loop.Args)
	if err != nil {
		return nil, err
	}
	scope := env.Extend()
	next, first, err := i.iterate(binding.source, scope)
	if err != nil {
		return nil, err
	}
	if err := defineLoopName(scope, binding.enumerate, runtime.IntegerValue{Val: 0}); err != nil {
		return nil, err
	}
	if err := defineLoopName(scope, binding.item, first); err != nil {
		return nil, err
	}

	result := newLoopResult(loop.Collect)
	for n := int64(0); ; n++ {
		item, ok := next()
		if !ok {
			break
		}
		if binding.enumerate != "" {
			scope.Set(binding.enumerate, runtime.IntegerValue{Val: n})
		}
		if binding.item != "" {
			scope.Set(binding.item, item)
		}
		stop, err := result.step(i.evaluateExpression(loop.Body, scope))
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}
	i.tracef("for loop finished after %d iterations", result.iterations)
	return result.value(), nil
}

func defineLoopName(scope *runtime.Environment, name string, val runtime.Value) error {
	if name == "" {
		return nil
	}
	if err := scope.Define(name, val); err != nil {
		return runtimeErrorf(ErrRedefinition, "loop binding %q", name)
	}
	return nil
}

// loopIterator yields the values a for loop visits, one per call.
type loopIterator func() (runtime.Value, bool)

// iterate walks the integers of a range, or the elements of an array for
// any other source expression. It also returns the value the item name
// starts at.
func (i *Interpreter) iterate(source ast.Expression, env *runtime.Environment) (loopIterator, runtime.Value, error) {
	if rng, ok := source.(*ast.RangeExpression); ok {
		span, err := i.rangeSpec(rng, env)
		if err != nil {
			return nil, nil, err
		}
		return span.iterator(), runtime.IntegerValue{Val: span.from}, nil
	}
	val, err := i.evaluateExpression(source, env)
	if err != nil {
		return nil, nil, err
	}
	arr, ok := val.(runtime.ArrayValue)
	if !ok {
		return nil, nil, runtimeErrorf(ErrRangeType, "cannot iterate %s", val.Kind())
	}
	var first runtime.Value = runtime.NullValue{}
	if arr.Len() > 0 {
		first = arr.Elements[0]
	}
	idx := 0
	next := func() (runtime.Value, bool) {
		if idx >= len(arr.Elements) {
			return nil, false
		}
		val := arr.Elements[idx]
		idx++
		return val, true
	}
	return next, first, nil
}

func (i *Interpreter) evaluateRangeExpression(rng *ast.RangeExpression, env *runtime.Environment) (runtime.Value, error) {
	span, err := i.rangeSpec(rng, env)
	if err != nil {
		return nil, err
	}
	values := []runtime.Value{}
	next := span.iterator()
	for val, ok := next(); ok; val, ok = next() {
		values = append(values, val)
	}
	return runtime.ArrayValue{Elements: values}, nil
}

// rangeSpan is an evaluated range. The step is kept as a magnitude and a
// direction pointing from `from` towards `to`, so that distances and steps
// up to 2^64-1 fit without overflow.
type rangeSpan struct {
	from, to int64
	size     uint64
	down     bool
}

// distance is how far cur is from `to` in the direction of travel. cur
// never passes `to`, so the unsigned difference is exact.
func (r rangeSpan) distance(cur int64) uint64 {
	if r.down {
		return uint64(cur) - uint64(r.to)
	}
	return uint64(r.to) - uint64(cur)
}

// iterator continues while the remaining distance to `to` is at least
// the step size. Each step lands between the current value and `to`.
func (r rangeSpan) iterator() loopIterator {
	cur := r.from
	return func() (runtime.Value, bool) {
		if r.distance(cur) < r.size {
			return nil, false
		}
		val := runtime.IntegerValue{Val: cur}
		if r.down {
			cur = int64(uint64(cur) - r.size)
		} else {
			cur = int64(uint64(cur) + r.size)
		}
		return val, true
	}
}

// rangeSpec evaluates from, to and step (default 1). The sign of step is
// ignored: the range always moves from `from` towards `to`.
func (i *Interpreter) rangeSpec(rng *ast.RangeExpression, env *runtime.Environment) (rangeSpan, error) {
	from, err := i.rangeBound(rng.From, env, "from")
	if err != nil {
		return rangeSpan{}, err
	}
	to, err := i.rangeBound(rng.To, env, "to")
	if err != nil {
		return rangeSpan{}, err
	}
	step := int64(1)
	if rng.Step != nil {
		step, err = i.rangeBound(rng.Step, env, "step")
		if err != nil {
			return rangeSpan{}, err
		}
	}
	if step == 0 {
		return rangeSpan{}, runtimeErrorf(ErrRangeStep, "%d..%d", from, to)
	}
	size := uint64(step)
	if step < 0 {
		// also exact for math.MinInt64
		size = uint64(-step)
	}
	return rangeSpan{from: from, to: to, size: size, down: from > to}, nil
}

func (i *Interpreter) rangeBound(expr ast.Expression, env *runtime.Environment, name string) (int64, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return 0, err
	}
	n, ok := val.(runtime.IntegerValue)
	if !ok {
		return 0, runtimeErrorf(ErrRangeType, "%s is %s", name, val.Kind())
	}
	return n.Val, nil
}
