package interpreter

import (
	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.NullValue{}, nil
	case *ast.ValueLiteral:
		if val, ok := n.Value.(runtime.Value); ok && val != nil {
			return val, nil
		}
		return runtime.NullValue{}, nil
	case *ast.Identifier:
		return env.Get(n.Name), nil
	case *ast.ArrayLiteral:
		values := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			val, err := i.evaluateExpression(el, env)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
		}
		return runtime.ArrayValue{Elements: values}, nil
	case *ast.ObjectLiteral:
		obj := runtime.NewObject()
		for _, field := range n.Fields {
			val, err := i.evaluateExpression(field.Value, env)
			if err != nil {
				return nil, err
			}
			obj.Fields[field.Key] = val
		}
		return obj, nil
	case *ast.FunctionLiteral:
		return &runtime.FunctionValue{Params: n.Params, Body: n.Body, Closure: env}, nil
	case *ast.BreakLiteral:
		val, err := i.evaluateOptional(n.Value, env)
		if err != nil {
			return nil, err
		}
		return nil, breakSignal{value: val}
	case *ast.ReturnLiteral:
		val, err := i.evaluateOptional(n.Value, env)
		if err != nil {
			return nil, err
		}
		return nil, returnSignal{value: val}
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.BlockExpression:
		return i.evaluateBlock(n, env)
	case *ast.ScopeExpression:
		return i.evaluateScope(n, env)
	case *ast.Arguments:
		values, err := i.evaluateArguments(n, env)
		if err != nil {
			return nil, err
		}
		return runtime.ArrayValue{Elements: values}, nil
	case *ast.SpreadExpression:
		return i.evaluateExpression(n.Value, env)
	case *ast.RangeExpression:
		return i.evaluateRangeExpression(n, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.ImportExpression:
		return i.evaluateImportExpression(n)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.NativeCall:
		return i.evaluateNativeCall(n, env)
	case nil:
		return nil, runtimeErrorf(ErrUnsupportedNode, "missing expression")
	default:
		return nil, runtimeErrorf(ErrUnsupportedNode, "%s", n.NodeType())
	}
}

// evaluateOptional evaluates expr, treating an absent expression as null.
func (i *Interpreter) evaluateOptional(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if expr == nil {
		return runtime.NullValue{}, nil
	}
	return i.evaluateExpression(expr, env)
}

func (i *Interpreter) evaluateIndexExpression(expr *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	index, err := i.evaluateIndex(expr.Index, env)
	if err != nil {
		return nil, err
	}
	target, err := i.evaluateExpression(expr.Target, env)
	if err != nil {
		return nil, err
	}
	arr, ok := target.(runtime.ArrayValue)
	if !ok {
		return nil, runtimeErrorf(ErrNotIndexable, "cannot index %s", target.Kind())
	}
	if val, ok := arr.At(index); ok {
		return val, nil
	}
	return runtime.NullValue{}, nil
}

func (i *Interpreter) evaluateIndex(expr ast.Expression, env *runtime.Environment) (int64, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return 0, err
	}
	index, ok := val.(runtime.IntegerValue)
	if !ok {
		return 0, runtimeErrorf(ErrIndexType, "got %s", val.Kind())
	}
	return index.Val, nil
}

func (i *Interpreter) evaluateImportExpression(expr *ast.ImportExpression) (runtime.Value, error) {
	if i.trace {
		path := string(expr.Path.NodeType())
		if lit, ok := expr.Path.(*ast.StringLiteral); ok {
			path = lit.Value
		}
		i.tracef("import %q ignored", path)
	}
	return runtime.NullValue{}, nil
}

// evaluateArguments evaluates items left to right. A spread of an array
// contributes each element as its own value.
func (i *Interpreter) evaluateArguments(args *ast.Arguments, env *runtime.Environment) ([]runtime.Value, error) {
	if args == nil {
		return nil, nil
	}
	values := make([]runtime.Value, 0, len(args.Items))
	for _, item := range args.Items {
		if spread, ok := item.(*ast.SpreadExpression); ok {
			val, err := i.evaluateExpression(spread.Value, env)
			if err != nil {
				return nil, err
			}
			if arr, ok := val.(runtime.ArrayValue); ok {
				values = append(values, arr.Elements...)
				continue
			}
			values = append(values, val)
			continue
		}
		val, err := i.evaluateExpression(item, env)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// isTruthy: false, 0, 0.0, the empty string and null are false.
func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val
	case runtime.IntegerValue:
		return v.Val != 0
	case runtime.FloatValue:
		return v.Val != 0
	case runtime.StringValue:
		return v.Val != ""
	case runtime.NullValue, nil:
		return false
	default:
		return true
	}
}

// IsTruthy reports how val behaves as a condition.
func IsTruthy(val runtime.Value) bool {
	return isTruthy(val)
}
