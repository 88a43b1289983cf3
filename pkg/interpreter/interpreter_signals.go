package interpreter

import (
	"errors"

	"github.com/Roybie/tigr/pkg/runtime"
)

// breakSignal unwinds evaluation up to the innermost loop. The payload is
// evaluated where the break occurs.
type breakSignal struct {
	value runtime.Value
}

func (b breakSignal) Error() string {
	return "break outside loop"
}

// returnSignal unwinds evaluation up to the innermost function call.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return outside function"
}

// signalValue reports the payload of a control signal, if err is one.
func signalValue(err error) (runtime.Value, bool) {
	var br breakSignal
	if errors.As(err, &br) {
		return br.value, true
	}
	var ret returnSignal
	if errors.As(err, &ret) {
		return ret.value, true
	}
	return nil, false
}
