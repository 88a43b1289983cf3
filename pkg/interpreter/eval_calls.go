package interpreter

import (
	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/runtime"
)

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(call.Args, env)
	if err != nil {
		return nil, err
	}
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case runtime.NativeFunctionValue:
		return i.invokeNative(fn, args, env)
	default:
		return nil, runtimeErrorf(ErrNotCallable, "cannot call %s", callee.Kind())
	}
}

// invokeFunction binds args positionally in a child of the closure scope.
// Missing arguments are null and extra ones are dropped. A return, or a
// break that escapes every loop in the body, ends the call with its payload.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return nil, runtimeErrorf(ErrCallDepth, "limit %d", i.maxDepth)
	}
	i.depth++
	defer func() { i.depth-- }()

	if i.trace {
		i.tracef("call %s with %d args", runtime.Format(fn), len(args))
	}

	closure := fn.Closure
	if closure == nil {
		closure = i.root
	}
	local := closure.Extend()
	for idx, name := range fn.ParamNames() {
		if name == "" || name == "_" {
			continue
		}
		var val runtime.Value = runtime.NullValue{}
		if idx < len(args) {
			val = args[idx]
		}
		if err := local.Define(name, val); err != nil {
			return nil, runtimeErrorf(ErrRedefinition, "parameter %q", name)
		}
	}

	result, err := i.evaluateExpression(fn.Body, local)
	if err != nil {
		if payload, ok := signalValue(err); ok {
			return payload, nil
		}
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) evaluateNativeCall(call *ast.NativeCall, env *runtime.Environment) (runtime.Value, error) {
	native, ok := i.natives[call.Name]
	if !ok {
		return nil, runtimeErrorf(ErrUnknownNative, "%q", call.Name)
	}
	args, err := i.evaluateArguments(call.Args, env)
	if err != nil {
		return nil, err
	}
	return i.invokeNative(native, args, env)
}

func (i *Interpreter) invokeNative(native runtime.NativeFunctionValue, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	if native.Impl == nil {
		return nil, runtimeErrorf(ErrUnknownNative, "%q has no implementation", native.Name)
	}
	if i.trace {
		i.tracef("native %s with %d args", native.Name, len(args))
	}
	ctx := &runtime.NativeCallContext{Env: env, Output: i.out}
	val, err := native.Impl(ctx, args)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return runtime.NullValue{}, nil
	}
	return val, nil
}
