package runtime

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrAlreadyDefined is returned by Define when the name is bound in the same
// scope already.
var ErrAlreadyDefined = errors.New("already defined in this scope")

// Environment provides lexical scoping for tigr runtime values. Closures keep
// their defining environment alive; parent links only point outward.
type Environment struct {
	values map[string]Value
	parent *Environment
	mu     sync.RWMutex
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil for the root).
func (e *Environment) Parent() *Environment {
	e.mu.RLock()
	parent := e.parent
	e.mu.RUnlock()
	return parent
}

// Snapshot returns a copy of the bindings owned by this scope.
func (e *Environment) Snapshot() map[string]Value {
	e.mu.RLock()
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	e.mu.RUnlock()
	return out
}

// Define binds name in the current scope only.
func (e *Environment) Define(name string, value Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.values[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrAlreadyDefined)
	}
	e.values[name] = value
	return nil
}

// Set rebinds name in the nearest scope that owns it, or binds it here when
// no scope in the chain does.
func (e *Environment) Set(name string, value Value) {
	target := e.owner(name)
	if target == nil {
		target = e
	}
	target.mu.Lock()
	target.values[name] = value
	target.mu.Unlock()
}

// Get retrieves a binding, searching outward through the scope chain.
// Unbound names read as null.
func (e *Environment) Get(name string) Value {
	if v, ok := e.Lookup(name); ok {
		return v
	}
	return NullValue{}
}

// Lookup is Get that also reports whether the name was bound.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.Parent() {
		env.mu.RLock()
		v, ok := env.values[name]
		env.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether name is bound anywhere in the chain.
func (e *Environment) Has(name string) bool {
	return e.owner(name) != nil
}

// HasInCurrentScope reports whether name is bound in this scope.
func (e *Environment) HasInCurrentScope(name string) bool {
	e.mu.RLock()
	_, ok := e.values[name]
	e.mu.RUnlock()
	return ok
}

func (e *Environment) owner(name string) *Environment {
	for env := e; env != nil; env = env.Parent() {
		if env.HasInCurrentScope(name) {
			return env
		}
	}
	return nil
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	e.mu.RLock()
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	e.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Extend creates a new child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Depth counts the scopes above this one.
func (e *Environment) Depth() int {
	depth := 0
	for env := e.Parent(); env != nil; env = env.Parent() {
		depth++
	}
	return depth
}
