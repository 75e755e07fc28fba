// Package funcindex implements the Mosaic function index:
// a per-file private name→definition map plus a project-wide public
// name→{definition, defining file} map, populated once per file right after
// parsing and consulted by the evaluator on every call.
package funcindex

import "github.com/mosaic-lang/mosaic/internal/ast"

// PublicEntry pairs a public function's definition with the file that
// declared it, needed so the evaluator can switch its current-file context
// when a call crosses files.
type PublicEntry struct {
	Def  *ast.Function
	File string
}

// Index is the project-wide function index.
type Index struct {
	privateByFile map[string]map[string]*ast.Function
	public        map[string]PublicEntry
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		privateByFile: make(map[string]map[string]*ast.Function),
		public:        make(map[string]PublicEntry),
	}
}

// IndexFile walks only file's top-level statements and records every
// Function statement into the private-by-file or public map, per its
// Visibility. Other top-level statements are left untouched; they remain in
// the AST and run when the file is evaluated. Nested function definitions
// inside blocks are not visited here — the parser rejects them instead (see
// DESIGN.md's Open Question decision).
//
// A later call to IndexFile for the same public name overwrites the earlier
// registration (last-registration-wins, no diagnostic).
func (idx *Index) IndexFile(file string, program *ast.Program) {
	priv := idx.privateByFile[file]
	if priv == nil {
		priv = make(map[string]*ast.Function)
		idx.privateByFile[file] = priv
	}

	for _, stmt := range program.Statements {
		fn, ok := stmt.(*ast.Function)
		if !ok {
			continue
		}
		switch fn.Visibility {
		case ast.Public:
			idx.public[fn.Name] = PublicEntry{Def: fn, File: file}
		case ast.Private:
			priv[fn.Name] = fn
		}
	}
}

// Find resolves a call to name made from currentFile: private definitions in
// currentFile are tried first, then the project-wide public map. ok is false
// if the name resolves to neither.
func (idx *Index) Find(name, currentFile string) (def *ast.Function, definingFile string, ok bool) {
	if priv, exists := idx.privateByFile[currentFile]; exists {
		if fn, found := priv[name]; found {
			return fn, currentFile, true
		}
	}
	if pub, found := idx.public[name]; found {
		return pub.Def, pub.File, true
	}
	return nil, "", false
}
