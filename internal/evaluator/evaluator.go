// Package evaluator implements the Mosaic tree-walking evaluator: a visitor
// over the AST that owns one Environment, the project's FunctionIndex, the
// built-in registry, the diagnostics sink, and a current-file stack. It is
// split one file per AST family (literals/operators in expressions.go,
// control flow in statements.go), dispatching through a type switch rather
// than a generated visitor interface, and threads control flow through the
// outcome/signalKind result type (see signal.go) instead of mutable shared
// state.
package evaluator

import (
	"github.com/mosaic-lang/mosaic/internal/ast"
	"github.com/mosaic-lang/mosaic/internal/builtins"
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/environment"
	"github.com/mosaic-lang/mosaic/internal/funcindex"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// maxCallDepth bounds user-function recursion, reporting an Error diagnostic
// instead of letting the host process stack-overflow.
const maxCallDepth = 1024

// Evaluator walks a Program's statements against one mutable Environment.
type Evaluator struct {
	env       *environment.Environment
	funcs     *funcindex.Index
	builtins  *builtins.Registry
	diag      *diagnostics.Sink
	fileStack []string
	callDepth int
}

// New creates an Evaluator sharing env, funcs, reg, and diag with the rest
// of the host. entryFile seeds the current-file stack.
func New(env *environment.Environment, funcs *funcindex.Index, reg *builtins.Registry, diag *diagnostics.Sink, entryFile string) *Evaluator {
	return &Evaluator{
		env:       env,
		funcs:     funcs,
		builtins:  reg,
		diag:      diag,
		fileStack: []string{entryFile},
	}
}

// currentFile returns the top of the file stack, used for diagnostic
// filenames and private-function resolution.
func (e *Evaluator) currentFile() string {
	return e.fileStack[len(e.fileStack)-1]
}

func (e *Evaluator) pushFile(file string) {
	e.fileStack = append(e.fileStack, file)
}

func (e *Evaluator) popFile() {
	e.fileStack = e.fileStack[:len(e.fileStack)-1]
}

// Run evaluates program's top-level statements in source order, within
// file's private-function scope. A top-level `return;` is caught here
// rather than propagated further.
func (e *Evaluator) Run(file string, program *ast.Program) values.Value {
	e.fileStack = []string{file}
	out := e.evalStatements(program.Statements)
	return out.value
}

// evalStatements runs stmts in order, stopping early and propagating the
// outcome the moment one of them raises a signal (Return, Break, or
// Continue) — a later statement never runs once control has left the
// block via one of those paths.
func (e *Evaluator) evalStatements(stmts []ast.Stmt) outcome {
	last := plain(values.None{})
	for _, stmt := range stmts {
		last = e.evalStmt(stmt)
		if last.isSignal() {
			return last
		}
	}
	return last
}
