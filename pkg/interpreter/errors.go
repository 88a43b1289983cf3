package interpreter

import (
	"errors"
	"fmt"
)

// Runtime error kinds. A *RuntimeError unwraps to one of these, so callers
// can test for a category with errors.Is.
var (
	ErrRangeType       = errors.New("range bounds must be integers")
	ErrRangeStep       = errors.New("range step must not be zero")
	ErrIndexType       = errors.New("index must be an integer")
	ErrNotIndexable    = errors.New("value is not indexable")
	ErrNotCallable     = errors.New("value is not callable")
	ErrInvalidAssignee = errors.New("invalid assignment target")
	ErrLoopArity       = errors.New("for loop takes 1 to 3 arguments")
	ErrRedefinition    = errors.New("name already defined in scope")
	ErrDivisionByZero  = errors.New("integer division by zero")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownNative   = errors.New("unknown native function")
	ErrNativeArguments = errors.New("invalid native function arguments")
	ErrCallDepth       = errors.New("maximum call depth exceeded")
	ErrUnsupportedNode = errors.New("unsupported node")
)

// RuntimeError aborts evaluation. Kind is one of the Err* values above and
// Message adds the detail of this occurrence.
type RuntimeError struct {
	Kind    error
	Message string
}

func (e *RuntimeError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Kind
}

func runtimeErrorf(kind error, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
