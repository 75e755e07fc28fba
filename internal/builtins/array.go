package builtins

import (
	"sort"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

func registerArray(r *Registry) {
	r.RegisterFunc("array_push", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 2 {
			return domainError(diag, file, line, "array_push() expects exactly 2 arguments, got %d", len(args))
		}
		arr, ok := args[0].(*values.Array)
		if !ok {
			return domainError(diag, file, line, "array_push() expects an Array as its first argument, got %s", args[0].Type())
		}
		arr.Elements = append(arr.Elements, args[1])
		return arr
	})

	r.RegisterFunc("array_pop", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "array_pop() expects exactly 1 argument, got %d", len(args))
		}
		arr, ok := args[0].(*values.Array)
		if !ok {
			return domainError(diag, file, line, "array_pop() expects an Array, got %s", args[0].Type())
		}
		if len(arr.Elements) == 0 {
			return domainError(diag, file, line, "array_pop(): array is empty")
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last
	})

	r.RegisterFunc("array_length", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "array_length() expects exactly 1 argument, got %d", len(args))
		}
		arr, ok := args[0].(*values.Array)
		if !ok {
			return domainError(diag, file, line, "array_length() expects an Array, got %s", args[0].Type())
		}
		return values.Integer(len(arr.Elements))
	})

	r.RegisterFunc("array_sort", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "array_sort() expects exactly 1 argument, got %d", len(args))
		}
		arr, ok := args[0].(*values.Array)
		if !ok {
			return domainError(diag, file, line, "array_sort() expects an Array, got %s", args[0].Type())
		}
		for _, e := range arr.Elements {
			if !values.IsNumeric(e) {
				if _, isStr := e.(values.String); !isStr {
					return domainError(diag, file, line, "array_sort() requires every element to be numeric or String, found %s", e.Type())
				}
			}
		}
		sort.SliceStable(arr.Elements, func(i, j int) bool {
			return lessForSort(arr.Elements[i], arr.Elements[j])
		})
		return arr
	})
}

func lessForSort(a, b values.Value) bool {
	as, aIsStr := a.(values.String)
	bs, bIsStr := b.(values.String)
	if aIsStr && bIsStr {
		return as < bs
	}
	return values.AsFloat64(a) < values.AsFloat64(b)
}
