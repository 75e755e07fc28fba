package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mosaic-lang/mosaic/internal/ast"
	"github.com/mosaic-lang/mosaic/internal/builtins"
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/environment"
	"github.com/mosaic-lang/mosaic/internal/funcindex"
	"github.com/mosaic-lang/mosaic/internal/lexer"
	"github.com/mosaic-lang/mosaic/internal/parser"
)

// runFiles lexes, parses, and indexes every file in sources, then runs
// entry's top-level statements through a fresh Evaluator. It returns the
// captured console_print output and the shared diagnostics sink.
func runFiles(t *testing.T, sources map[string]string, entry string) (string, *diagnostics.Sink) {
	t.Helper()

	diag := diagnostics.NewSink()
	programs := make(map[string]*ast.Program, len(sources))
	funcs := funcindex.New()

	for file, src := range sources {
		tokens := lexer.New(src).Tokenize()
		p := parser.New(tokens, file, diag)
		prog := p.ParseProgram()
		programs[file] = prog
		funcs.IndexFile(file, prog)
	}

	reg := builtins.NewRegistry()
	var out bytes.Buffer
	builtins.RegisterStandardLibrary(reg, &out)

	env := environment.New()
	ev := New(env, funcs, reg, diag, entry)
	ev.Run(entry, programs[entry])

	return out.String(), diag
}

func run(t *testing.T, src string) (string, *diagnostics.Sink) {
	t.Helper()
	return runFiles(t, map[string]string{"main.mos": src}, "main.mos")
}

func TestArithmeticAndPrint(t *testing.T) {
	out, diag := run(t, `let x = 2 + 3 * 4; console_print(x);`)
	if !strings.Contains(out, "14") {
		t.Fatalf("expected 14 in output, got %q", out)
	}
	if diag.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diag.Entries())
	}
}

func TestPublicCrossFileCall(t *testing.T) {
	sources := map[string]string{
		"lib.mos":  `public function add(a, b) { return a + b; }`,
		"main.mos": `console_print(add(10, 5));`,
	}
	out, diag := runFiles(t, sources, "main.mos")
	if !strings.Contains(out, "15") {
		t.Fatalf("expected 15 in output, got %q", out)
	}
	if diag.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diag.Entries())
	}
}

func TestPrivateFunctionInvisibleAcrossFiles(t *testing.T) {
	sources := map[string]string{
		"lib.mos":  `private function secret() { return 7; }`,
		"main.mos": `console_print(secret());`,
	}
	out, diag := runFiles(t, sources, "main.mos")
	if !strings.Contains(out, "none") {
		t.Fatalf("expected none in output, got %q", out)
	}
	if !diag.HasError() {
		t.Fatal("expected a Name error diagnostic")
	}
}

func TestLoopForeachArrayMutation(t *testing.T) {
	out, diag := run(t, `let a = [1, 2, 3]; let s = 0; foreach (v in a) { s = s + v; } console_print(s);`)
	if !strings.Contains(out, "6") {
		t.Fatalf("expected 6 in output, got %q", out)
	}
	if diag.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diag.Entries())
	}
}

func TestEnumResolution(t *testing.T) {
	out, diag := run(t, `enum Dir { Up, Down = 10, Left, Right } console_print(Dir.Right);`)
	if !strings.Contains(out, "12") {
		t.Fatalf("expected 12 in output, got %q", out)
	}
	if diag.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diag.Entries())
	}
}

func TestStructFieldAccess(t *testing.T) {
	out, diag := run(t, `let P = {x, y}; let p = P(3, 4); p.x = 9; console_print(p.x); console_print(p.y);`)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || lines[0] != "9" || lines[1] != "4" {
		t.Fatalf("expected lines [9, 4], got %v", lines)
	}
	if diag.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diag.Entries())
	}
}

func TestDivisionByZero_NoErrorProducesZero(t *testing.T) {
	out, diag := run(t, `let x = 1 / 0; console_print(x);`)
	if !strings.Contains(out, "0") {
		t.Fatalf("expected 0 in output, got %q", out)
	}
	if diag.HasError() {
		t.Fatalf("expected no diagnostics for division by zero, got %v", diag.Entries())
	}
}

func TestIndexedWritePastEndAutoWidens(t *testing.T) {
	out, diag := run(t, `let a = []; a[3] = 7; console_print(a);`)
	if !strings.Contains(out, "[none, none, none, 7]") {
		t.Fatalf("expected auto-widened array, got %q", out)
	}
	if diag.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diag.Entries())
	}
}

func TestIndexedReadPastEndIsError(t *testing.T) {
	out, diag := run(t, `let a = [1]; console_print(a[5]);`)
	if !strings.Contains(out, "none") {
		t.Fatalf("expected none in output, got %q", out)
	}
	if !diag.HasError() {
		t.Fatal("expected a Bounds error diagnostic")
	}
}

func TestArrayValueSemanticsOnAssignment(t *testing.T) {
	out, _ := run(t, `let a = [1, 2]; let b = a; b[0] = 9; console_print(a[0]);`)
	if !strings.Contains(out, "1") {
		t.Fatalf("expected a[0] to remain 1, got %q", out)
	}
}

func TestStructAliasing(t *testing.T) {
	out, _ := run(t, `let T = {x}; let a = T(1); let b = a; b.x = 5; console_print(a.x);`)
	if !strings.Contains(out, "5") {
		t.Fatalf("expected struct aliasing to mutate both bindings, got %q", out)
	}
}

func TestTopLevelReturnDoesNotCrash(t *testing.T) {
	out, diag := run(t, `console_print(1); return; console_print(2);`)
	if strings.Contains(out, "2") {
		t.Fatalf("expected statements after top-level return not to run, got %q", out)
	}
	if diag.HasError() {
		t.Fatalf("unexpected diagnostics: %v", diag.Entries())
	}
}

func TestSwitchFallthroughRequiresBreak(t *testing.T) {
	out, _ := run(t, `
		let x = 1;
		switch (x) {
			case 1:
				console_print("one");
			case 2:
				console_print("two");
				break;
			default:
				console_print("other");
		}
	`)
	if out != "one\ntwo\n" {
		t.Fatalf("expected fallthrough from case 1 into case 2, got %q", out)
	}
}

func TestSwitchDefault(t *testing.T) {
	out, _ := run(t, `
		let x = 99;
		switch (x) {
			case 1:
				console_print("one");
				break;
			default:
				console_print("other");
		}
	`)
	if out != "other\n" {
		t.Fatalf("expected default branch, got %q", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, _ := run(t, `console_print("count: " + 3);`)
	if out != "count: 3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBooleanShortCircuitIsNotApplied(t *testing.T) {
	out, _ := run(t, `
		let calls = 0;
		function bump() { calls = calls + 1; return true; }
		let r = false and bump();
		console_print(calls);
	`)
	if !strings.Contains(out, "1") {
		t.Fatalf("expected bump() to run despite false and ..., got %q", out)
	}
}

func TestUndefinedVariableReportsNameErrorAndNone(t *testing.T) {
	out, diag := run(t, `console_print(doesNotExist);`)
	if !strings.Contains(out, "none") {
		t.Fatalf("expected none, got %q", out)
	}
	if !diag.HasError() {
		t.Fatal("expected a Name error diagnostic")
	}
}
