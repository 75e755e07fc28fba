package builtins

import (
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// registerDict exercises Dictionary's reference semantics: dict_remove
// mutates the shared instance in place, visible to every alias.
func registerDict(r *Registry) {
	r.RegisterFunc("dict_keys", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "dict_keys() expects exactly 1 argument, got %d", len(args))
		}
		d, ok := args[0].(*values.Dictionary)
		if !ok {
			return domainError(diag, file, line, "dict_keys() expects a Dictionary, got %s", args[0].Type())
		}
		keys := d.Keys()
		elems := make([]values.Value, len(keys))
		for i, k := range keys {
			elems[i] = values.String(k)
		}
		return values.NewArray(elems...)
	})

	r.RegisterFunc("dict_has", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 2 {
			return domainError(diag, file, line, "dict_has() expects exactly 2 arguments, got %d", len(args))
		}
		d, ok := args[0].(*values.Dictionary)
		if !ok {
			return domainError(diag, file, line, "dict_has() expects a Dictionary as its first argument, got %s", args[0].Type())
		}
		key := values.ToDisplayString(args[1])
		return values.Boolean(d.Has(key))
	})

	r.RegisterFunc("dict_remove", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 2 {
			return domainError(diag, file, line, "dict_remove() expects exactly 2 arguments, got %d", len(args))
		}
		d, ok := args[0].(*values.Dictionary)
		if !ok {
			return domainError(diag, file, line, "dict_remove() expects a Dictionary as its first argument, got %s", args[0].Type())
		}
		key := values.ToDisplayString(args[1])
		d.Delete(key)
		return d
	})
}
