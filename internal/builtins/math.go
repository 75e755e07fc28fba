package builtins

import (
	"math"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// registerMath wires the single-argument math wrappers, reporting a Domain
// diagnostic in place of the NaN math.Sqrt/Log would silently produce.
func registerMath(r *Registry) {
	unary := func(name string, fn func(float64) float64, domainCheck func(float64) bool, domainMsg string) {
		r.RegisterFunc(name, func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
			x, ok := unaryNumericArg(name, args, diag, file, line)
			if !ok {
				return values.None{}
			}
			if domainCheck != nil && !domainCheck(x) {
				return domainError(diag, file, line, "%s(): %s (got %v)", name, domainMsg, x)
			}
			return values.Double(fn(x))
		})
	}

	unary("sqrt", math.Sqrt, func(x float64) bool { return x >= 0 }, "argument must be non-negative")
	unary("log", math.Log, func(x float64) bool { return x > 0 }, "argument must be positive")
	unary("sin", math.Sin, nil, "")
	unary("cos", math.Cos, nil, "")
	unary("tan", math.Tan, nil, "")
	unary("floor", math.Floor, nil, "")
	unary("ceil", math.Ceil, nil, "")

	r.RegisterFunc("abs", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "abs() expects exactly 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case values.Integer:
			if v < 0 {
				return -v
			}
			return v
		case values.Double:
			return values.Double(math.Abs(float64(v)))
		default:
			return domainError(diag, file, line, "abs() expects a numeric argument, got %s", v.Type())
		}
	})

	r.RegisterFunc("pow", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 2 {
			return domainError(diag, file, line, "pow() expects exactly 2 arguments, got %d", len(args))
		}
		if !values.IsNumeric(args[0]) || !values.IsNumeric(args[1]) {
			return domainError(diag, file, line, "pow() expects two numeric arguments")
		}
		base := values.AsFloat64(args[0])
		exp := values.AsFloat64(args[1])
		result := math.Pow(base, exp)
		if math.IsNaN(result) {
			return domainError(diag, file, line, "pow(%v, %v): result is not a real number", base, exp)
		}
		return values.Double(result)
	})
}

func unaryNumericArg(name string, args []values.Value, diag *diagnostics.Sink, file string, line int) (float64, bool) {
	if len(args) != 1 {
		domainError(diag, file, line, "%s() expects exactly 1 argument, got %d", name, len(args))
		return 0, false
	}
	if !values.IsNumeric(args[0]) {
		domainError(diag, file, line, "%s() expects a numeric argument, got %s", name, args[0].Type())
		return 0, false
	}
	return values.AsFloat64(args[0]), true
}
