package interpreter

import (
	"fmt"
	"io"

	"github.com/Roybie/tigr/pkg/runtime"
)

// DumpEnvironment writes the root environment's bindings in name order.
// The layout is meant for people, not for parsing.
func (i *Interpreter) DumpEnvironment(w io.Writer) error {
	return dumpEnvironment(w, i.root)
}

func dumpEnvironment(w io.Writer, env *runtime.Environment) error {
	if _, err := fmt.Fprintln(w, "Env:"); err != nil {
		return err
	}
	snapshot := env.Snapshot()
	for _, name := range env.Keys() {
		val, ok := snapshot[name]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s = %s\n", name, runtime.Format(val)); err != nil {
			return err
		}
	}
	return nil
}
