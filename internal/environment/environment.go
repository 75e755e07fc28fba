// Package environment implements the Mosaic Environment: a stack of
// named-value scopes with a lexical parent pointer. Names are case-sensitive,
// so each frame is a plain Go map with no case-folding layer.
package environment

import "github.com/mosaic-lang/mosaic/internal/values"

// Environment is one frame in the scope stack, linked to its lexical parent.
type Environment struct {
	vars   map[string]values.Value
	parent *Environment
	root   *Environment
}

// New creates a fresh root environment with no parent.
func New() *Environment {
	e := &Environment{vars: make(map[string]values.Value)}
	e.root = e
	return e
}

// PushScope returns a new child frame enclosed by e.
func (e *Environment) PushScope() *Environment {
	return &Environment{vars: make(map[string]values.Value), parent: e, root: e.root}
}

// Define writes name into the top (this) frame.
func (e *Environment) Define(name string, v values.Value) {
	e.vars[name] = values.CopyForStore(v)
}

// DefineGlobal writes name into the root frame.
func (e *Environment) DefineGlobal(name string, v values.Value) {
	e.root.vars[name] = values.CopyForStore(v)
}

// Assign searches frames from this one outward to the root and, if name is
// found, overwrites it there. If not found anywhere, it is inserted into the
// root frame — an explicit design decision to treat assignment to an
// unknown name as an implicit global define, rather than turning it into
// an error.
func (e *Environment) Assign(name string, v values.Value) {
	for frame := e; frame != nil; frame = frame.parent {
		if _, ok := frame.vars[name]; ok {
			frame.vars[name] = values.CopyForStore(v)
			return
		}
	}
	e.root.vars[name] = values.CopyForStore(v)
}

// Get searches frames from this one outward to the root. The bool result is
// false when name is defined nowhere in the chain — callers report a Name
// diagnostic and substitute None in that case.
func (e *Environment) Get(name string) (values.Value, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Exists reports whether name is defined in any reachable frame.
func (e *Environment) Exists(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Root returns the outermost (global) frame of this chain.
func (e *Environment) Root() *Environment {
	return e.root
}

// Parent returns the lexically enclosing frame, or nil if e is the root.
// The evaluator does not call it: it pops a scope by restoring the frame it
// held before PushScope.
func (e *Environment) Parent() *Environment {
	return e.parent
}
