// Package interp implements the Mosaic interpreter façade: one constructor
// wires an Environment, a function index, a built-in registry, and a
// diagnostics sink together, and RunProject builds an Evaluator over them.
package interp

import (
	"fmt"
	"io"

	"github.com/mosaic-lang/mosaic/internal/ast"
	"github.com/mosaic-lang/mosaic/internal/builtins"
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/environment"
	"github.com/mosaic-lang/mosaic/internal/evaluator"
	"github.com/mosaic-lang/mosaic/internal/funcindex"
	"github.com/mosaic-lang/mosaic/internal/lexer"
	"github.com/mosaic-lang/mosaic/internal/parser"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// file records one registered source file: its text and parsed program.
type file struct {
	source  string
	program *ast.Program
}

// Interpreter owns every project-wide file registered with RegisterFile and
// the shared runtime state (environment, function index, builtins,
// diagnostics) that RunProject evaluates them against.
type Interpreter struct {
	diag     *diagnostics.Sink
	env      *environment.Environment
	funcs    *funcindex.Index
	builtins *builtins.Registry
	files    map[string]*file
	order    []string
}

// New creates an Interpreter with a fresh Environment and function index,
// and a built-in registry populated with the reference standard library
// (print, math, array, dictionary, random, JSON, string-case, matrix),
// writing anything the catalogue prints to out.
func New(out io.Writer) *Interpreter {
	reg := builtins.NewRegistry()
	builtins.RegisterStandardLibrary(reg, out)
	return &Interpreter{
		diag:     diagnostics.NewSink(),
		env:      environment.New(),
		funcs:    funcindex.New(),
		builtins: reg,
		files:    make(map[string]*file),
	}
}

// Diagnostics returns the sink shared by every file this Interpreter has
// lexed, parsed, or evaluated.
func (in *Interpreter) Diagnostics() *diagnostics.Sink {
	return in.diag
}

// ListFiles returns the names of every file registered so far, in
// registration order. Mosaic has no import/uses-clause syntax — every file
// in a project is loaded unconditionally — so this is the only place a
// caller can introspect "what got loaded", mirroring the original
// implementation's explicit module list without reintroducing import
// syntax.
func (in *Interpreter) ListFiles() []string {
	out := make([]string, len(in.order))
	copy(out, in.order)
	return out
}

// RegisterFile lexes and parses source under name, indexes its top-level
// functions, and records it for later evaluation by RunProject. Lex and
// parse diagnostics are appended to the shared sink; a file with errors is
// still registered (accumulate-don't-abort, matching the lexer and parser's
// own recovery philosophy) so that RunProject can still report everything
// wrong with a project in one pass.
func (in *Interpreter) RegisterFile(name, source string) {
	lx := lexer.New(source)
	tokens := lx.Tokenize()
	for _, lerr := range lx.Errors() {
		in.diag.Error(name, lerr.Pos.Line, "%s", lerr.Message)
	}

	p := parser.New(tokens, name, in.diag)
	program := p.ParseProgram()

	in.funcs.IndexFile(name, program)

	if _, exists := in.files[name]; !exists {
		in.order = append(in.order, name)
	}
	in.files[name] = &file{source: source, program: program}
}

// RunProject evaluates entry's top-level statements against the shared
// Environment and function index built from every previously registered
// file, returning entry's final expression value. entry must have already
// been registered with RegisterFile.
func (in *Interpreter) RunProject(entry string) (values.Value, error) {
	f, ok := in.files[entry]
	if !ok {
		return values.None{}, fmt.Errorf("interp: entry file %q was never registered", entry)
	}
	ev := evaluator.New(in.env, in.funcs, in.builtins, in.diag, entry)
	return ev.Run(entry, f.program), nil
}

// Sources returns every registered file's source text keyed by name, for
// diagnostics.FlushWithSource's source-line excerpts.
func (in *Interpreter) Sources() map[string]string {
	out := make(map[string]string, len(in.files))
	for name, f := range in.files {
		out[name] = f.source
	}
	return out
}
