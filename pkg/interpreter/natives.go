package interpreter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Roybie/tigr/pkg/runtime"
)

// builtinNatives returns the functions reachable through NativeCall unless
// restricted with WithNatives.
func builtinNatives() map[string]runtime.NativeFunc {
	return map[string]runtime.NativeFunc{
		"print": nativePrint,
		"type":  nativeType,
		"keys":  nativeKeys,
		"get":   nativeGet,
		"str":   nativeStr,
	}
}

// BuiltinNatives lists the names of the built-in natives.
func BuiltinNatives() []string {
	builtins := builtinNatives()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func nativePrint(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = runtime.Display(arg)
	}
	if ctx.Output != nil {
		if _, err := fmt.Fprintln(ctx.Output, strings.Join(parts, " ")); err != nil {
			return nil, err
		}
	}
	return runtime.NullValue{}, nil
}

func nativeType(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if err := expectArgs("type", args, 1); err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: args[0].Kind().String()}, nil
}

func nativeKeys(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if err := expectArgs("keys", args, 1); err != nil {
		return nil, err
	}
	obj, ok := args[0].(runtime.ObjectValue)
	if !ok {
		return nil, runtimeErrorf(ErrNativeArguments, "keys expects an object, got %s", args[0].Kind())
	}
	keys := obj.Keys()
	values := make([]runtime.Value, len(keys))
	for idx, key := range keys {
		values[idx] = runtime.StringValue{Val: key}
	}
	return runtime.ArrayValue{Elements: values}, nil
}

func nativeGet(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if err := expectArgs("get", args, 2); err != nil {
		return nil, err
	}
	obj, ok := args[0].(runtime.ObjectValue)
	if !ok {
		return nil, runtimeErrorf(ErrNativeArguments, "get expects an object, got %s", args[0].Kind())
	}
	key, ok := args[1].(runtime.StringValue)
	if !ok {
		return nil, runtimeErrorf(ErrNativeArguments, "get expects a string key, got %s", args[1].Kind())
	}
	return obj.Get(key.Val), nil
}

func nativeStr(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if err := expectArgs("str", args, 1); err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: runtime.Display(args[0])}, nil
}

func expectArgs(name string, args []runtime.Value, n int) error {
	if len(args) != n {
		return runtimeErrorf(ErrNativeArguments, "%s takes %d arguments, got %d", name, n, len(args))
	}
	return nil
}
