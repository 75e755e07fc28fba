package builtins

import "io"

// RegisterStandardLibrary populates r with the full reference catalogue,
// writing console_print/print output to out. Called once at host startup;
// the registry is read-only during evaluation afterward.
func RegisterStandardLibrary(r *Registry, out io.Writer) {
	registerPrint(r, out)
	registerMath(r)
	registerArray(r)
	registerDict(r)
	registerRandom(r)
	registerJSON(r)
	registerStringCase(r)
	registerMatrix(r)
}
