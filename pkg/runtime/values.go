package runtime

import (
	"fmt"
	"io"
	"sort"

	"github.com/Roybie/tigr/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindBool
	KindNull
	KindFunction
	KindArray
	KindObject
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindFunction:
		return "function"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindNativeFunction:
		return "native_function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

// ArrayValue has value semantics: the helpers below never modify Elements
// in place, they return a new array backed by a fresh slice.
type ArrayValue struct {
	Elements []Value
}

func (v ArrayValue) Kind() Kind { return KindArray }

func NewArray(elements ...Value) ArrayValue {
	out := make([]Value, len(elements))
	copy(out, elements)
	return ArrayValue{Elements: out}
}

func (v ArrayValue) Len() int { return len(v.Elements) }

// At returns the element at index, or false when index is out of range.
func (v ArrayValue) At(index int64) (Value, bool) {
	if index < 0 || index >= int64(len(v.Elements)) {
		return nil, false
	}
	return v.Elements[index], true
}

// With returns a copy of the array with element index replaced.
func (v ArrayValue) With(index int64, value Value) (ArrayValue, bool) {
	if index < 0 || index >= int64(len(v.Elements)) {
		return v, false
	}
	out := NewArray(v.Elements...)
	out.Elements[index] = value
	return out, true
}

// Append returns a copy of the array with values added at the end.
func (v ArrayValue) Append(values ...Value) ArrayValue {
	out := make([]Value, 0, len(v.Elements)+len(values))
	out = append(out, v.Elements...)
	out = append(out, values...)
	return ArrayValue{Elements: out}
}

// Concat returns a new array holding v's elements followed by other's.
func (v ArrayValue) Concat(other ArrayValue) ArrayValue {
	return v.Append(other.Elements...)
}

// ObjectValue maps unique string keys to values. Like arrays, objects are
// never modified in place.
type ObjectValue struct {
	Fields map[string]Value
}

func (v ObjectValue) Kind() Kind { return KindObject }

func NewObject() ObjectValue {
	return ObjectValue{Fields: make(map[string]Value)}
}

// With returns a copy of the object with key bound to value.
func (v ObjectValue) With(key string, value Value) ObjectValue {
	out := ObjectValue{Fields: make(map[string]Value, len(v.Fields)+1)}
	for k, field := range v.Fields {
		out.Fields[k] = field
	}
	out.Fields[key] = value
	return out
}

// Get returns the field value, or null when the key is absent.
func (v ObjectValue) Get(key string) Value {
	if field, ok := v.Fields[key]; ok {
		return field
	}
	return NullValue{}
}

// Keys returns the field names in sorted order.
func (v ObjectValue) Keys() []string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a user function together with the environment it was
// created in.
type FunctionValue struct {
	Params  *ast.Arguments
	Body    ast.Expression
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// ParamNames lists the identifier parameters in order. Non-identifier
// entries are reported as empty strings and never bound.
func (v *FunctionValue) ParamNames() []string {
	if v.Params == nil {
		return nil
	}
	names := make([]string, len(v.Params.Items))
	for i, item := range v.Params.Items {
		if id, ok := item.(*ast.Identifier); ok {
			names[i] = id.Name
		}
	}
	return names
}

// NativeCallContext gives native functions access to the calling scope and
// the interpreter's output.
type NativeCallContext struct {
	Env    *Environment
	Output io.Writer
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	Name string
	Impl NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }
