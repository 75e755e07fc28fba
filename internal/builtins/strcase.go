package builtins

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// registerStringCase wires str_upper/str_lower/str_title against
// golang.org/x/text/cases rather than strings.ToUpper/ToLower, since Mosaic
// strings are Unicode text, not bytes, and cases.Caser applies full Unicode
// case mappings strings.ToUpper does not (German ß upper-cases to "SS").
// The casers use language.Und, so no language-specific rules (such as
// Turkish dotted/dotless i) are applied.
func registerStringCase(r *Registry) {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	wrap := func(name string, caser cases.Caser) {
		r.RegisterFunc(name, func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
			if len(args) != 1 {
				return domainError(diag, file, line, "%s() expects exactly 1 argument, got %d", name, len(args))
			}
			s, ok := args[0].(values.String)
			if !ok {
				return domainError(diag, file, line, "%s() expects a String, got %s", name, args[0].Type())
			}
			return values.String(caser.String(string(s)))
		})
	}

	wrap("str_upper", upper)
	wrap("str_lower", lower)
	wrap("str_title", title)
}
