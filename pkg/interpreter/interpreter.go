package interpreter

import (
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/runtime"
)

var (
	// package logger instance
	log = logrus.New()

	TAG = "interp"
)

// SetLogLevel changes global module log level.
func SetLogLevel(level string) error {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	log.Level = ll
	return nil // OK
}

// GetLogLevel gets global module log level.
func GetLogLevel() string {
	return log.Level.String()
}

// Interpreter evaluates tigr syntax trees against a root environment.
// It is not safe for concurrent use.
type Interpreter struct {
	root    *runtime.Environment
	natives map[string]runtime.NativeFunctionValue
	log     *logrus.Logger
	trace   bool
	out     io.Writer

	maxDepth int
	depth    int
}

// Option configures an Interpreter.
type Option func(*config)

type config struct {
	logger   *logrus.Logger
	trace    bool
	out      io.Writer
	maxDepth int
	enabled  map[string]bool
	custom   map[string]runtime.NativeFunc
	globals  map[string]runtime.Value
}

// WithLogger replaces the package logger for this interpreter.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithTrace logs scope entry, calls, loops and ignored imports at debug level.
func WithTrace(trace bool) Option {
	return func(c *config) { c.trace = trace }
}

// WithOutput sets where native output such as print goes. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithMaxCallDepth bounds nested function calls. Zero means unlimited.
func WithMaxCallDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// WithNative registers a native function callable through NativeCall.
func WithNative(name string, fn runtime.NativeFunc) Option {
	return func(c *config) {
		if c.custom == nil {
			c.custom = make(map[string]runtime.NativeFunc)
		}
		c.custom[name] = fn
	}
}

// WithNatives restricts the built-in natives to the named ones. Natives
// added with WithNative are always available.
func WithNatives(names ...string) Option {
	return func(c *config) {
		c.enabled = make(map[string]bool, len(names))
		for _, name := range names {
			c.enabled[name] = true
		}
	}
}

// WithGlobal predefines name in the root environment.
func WithGlobal(name string, value runtime.Value) Option {
	return func(c *config) {
		if c.globals == nil {
			c.globals = make(map[string]runtime.Value)
		}
		c.globals[name] = value
	}
}

// New returns an interpreter whose root environment holds only the
// configured globals.
func New(opts ...Option) *Interpreter {
	cfg := config{logger: log, out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	i := &Interpreter{
		root:     runtime.NewEnvironment(nil),
		natives:  make(map[string]runtime.NativeFunctionValue),
		log:      cfg.logger,
		trace:    cfg.trace,
		out:      cfg.out,
		maxDepth: cfg.maxDepth,
	}
	for name, fn := range builtinNatives() {
		if cfg.enabled != nil && !cfg.enabled[name] {
			continue
		}
		i.natives[name] = runtime.NativeFunctionValue{Name: name, Impl: fn}
	}
	for name, fn := range cfg.custom {
		i.natives[name] = runtime.NativeFunctionValue{Name: name, Impl: fn}
	}
	names := make([]string, 0, len(cfg.globals))
	for name := range cfg.globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		// names are unique and the root is empty, Define cannot fail
		_ = i.root.Define(name, cfg.globals[name])
	}
	return i
}

// RootEnvironment returns the interpreter's root environment.
func (i *Interpreter) RootEnvironment() *runtime.Environment {
	return i.root
}

// Natives lists the enabled native function names.
func (i *Interpreter) Natives() []string {
	names := make([]string, 0, len(i.natives))
	for name := range i.natives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate evaluates expr in the root environment.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	return i.EvaluateIn(expr, i.root)
}

// EvaluateIn evaluates expr in env. A break or return that escapes every
// loop and call ends evaluation with its payload as the result.
func (i *Interpreter) EvaluateIn(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if env == nil {
		env = i.root
	}
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		if payload, ok := signalValue(err); ok {
			return payload, nil
		}
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) tracef(format string, args ...any) {
	if !i.trace {
		return
	}
	i.log.Debugf("[%s]: "+format, append([]any{TAG}, args...)...)
}

// package initialization
func init() {
	// be silent by default
	log.Level = logrus.WarnLevel
}
