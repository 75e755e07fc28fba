package builtins

import (
	"fmt"
	"io"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// registerPrint wires console_print (aliased as print) and to_string, the
// two built-ins every end-to-end scenario exercises, against out — the
// stream the host wants script output to land on (typically os.Stdout).
func registerPrint(r *Registry, out io.Writer) {
	print := func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "console_print() expects exactly 1 argument, got %d", len(args))
		}
		fmt.Fprintln(out, values.ToDisplayString(args[0]))
		return values.None{}
	}
	r.RegisterFunc("console_print", print)
	r.RegisterFunc("print", print)

	r.RegisterFunc("to_string", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "to_string() expects exactly 1 argument, got %d", len(args))
		}
		return values.String(values.ToDisplayString(args[0]))
	})
}
