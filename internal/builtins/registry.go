// Package builtins implements the built-in registry contract: a map of name
// to invocable built-in, one per Registry instance, populated once at startup
// and read-only thereafter, plus a reference catalogue split by category (math, array,
// dictionary, matrix, random, JSON, string-case, print).
package builtins

import (
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// Func is the invocation signature every built-in implements: the evaluated
// argument list, the diagnostics sink, the calling file, and the call's
// source line.
type Func func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value

// Builtin is one registry entry: a stable name plus an invocable body.
type Builtin interface {
	Name() string
	Invoke(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value
}

type funcBuiltin struct {
	name string
	fn   Func
}

func (f *funcBuiltin) Name() string { return f.name }
func (f *funcBuiltin) Invoke(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
	return f.fn(args, diag, file, line)
}

// Registry is a name→Builtin map; each Interpreter owns its own.
type Registry struct {
	entries map[string]Builtin
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Builtin)}
}

// Register adds b under b.Name(), overwriting any prior registration of the
// same name.
func (r *Registry) Register(b Builtin) {
	r.entries[b.Name()] = b
}

// RegisterFunc is a convenience wrapper for registering a bare function as a
// Builtin.
func (r *Registry) RegisterFunc(name string, fn Func) {
	r.Register(&funcBuiltin{name: name, fn: fn})
}

// Lookup returns the Builtin registered under name, if any.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	b, ok := r.entries[name]
	return b, ok
}

// domainError reports a Domain diagnostic and returns None, the standard
// failure shape for a built-in whose input is out of its mathematical domain.
func domainError(diag *diagnostics.Sink, file string, line int, format string, args ...any) values.Value {
	diag.Error(file, line, format, args...)
	return values.None{}
}
