package builtins

import (
	"math/rand/v2"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// registerRandom wires rand/rand_seed against a per-registry PRNG rather
// than the global math/rand/v2 default source, so rand_seed is
// deterministic and does not affect unrelated callers.
func registerRandom(r *Registry) {
	src := rand.NewPCG(1, 1)
	rng := rand.New(src)

	r.RegisterFunc("rand_seed", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 || !values.IsNumeric(args[0]) {
			return domainError(diag, file, line, "rand_seed() expects exactly 1 numeric argument")
		}
		seed := uint64(values.AsFloat64(args[0]))
		src.Seed(seed, seed^0x9e3779b97f4a7c15)
		return values.None{}
	})

	r.RegisterFunc("rand", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		switch len(args) {
		case 0:
			return values.Double(rng.Float64())
		case 1:
			if !values.IsNumeric(args[0]) {
				return domainError(diag, file, line, "rand() bound must be numeric")
			}
			bound := int64(values.AsFloat64(args[0]))
			if bound <= 0 {
				return domainError(diag, file, line, "rand(): bound must be positive, got %d", bound)
			}
			return values.Integer(rng.Int64N(bound))
		default:
			return domainError(diag, file, line, "rand() expects 0 or 1 arguments, got %d", len(args))
		}
	})
}
