package interp

import (
	"bytes"
	"testing"

	"github.com/mosaic-lang/mosaic/internal/values"
)

func TestRegisterFileAndRunProject_SingleFile(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.RegisterFile("main.mos", "let x = 2 + 3; print(x);")

	_, err := in.RunProject("main.mos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Diagnostics().HasError() {
		t.Fatalf("unexpected diagnostics: %v", in.Diagnostics().Entries())
	}
	if out.String() != "5\n" {
		t.Fatalf("got print output %q", out.String())
	}
}

func TestRegisterFile_CrossFilePublicCall(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.RegisterFile("lib.mos", "public function double(n) { return n * 2; }")
	in.RegisterFile("main.mos", "print(double(5));")

	if _, err := in.RunProject("main.mos"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Diagnostics().HasError() {
		t.Fatalf("unexpected diagnostics: %v", in.Diagnostics().Entries())
	}
	if out.String() != "10\n" {
		t.Fatalf("got print output %q", out.String())
	}
}

func TestRunProject_UnregisteredEntryReturnsError(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	if _, err := in.RunProject("missing.mos"); err == nil {
		t.Fatal("expected an error for an unregistered entry file")
	}
}

func TestListFiles_ReturnsRegistrationOrder(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.RegisterFile("b.mos", "let x = 1;")
	in.RegisterFile("a.mos", "let y = 2;")

	got := in.ListFiles()
	want := []string{"b.mos", "a.mos"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRegisterFile_ParseErrorsAccumulateWithoutAborting(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.RegisterFile("bad.mos", "let x = ;")
	if !in.Diagnostics().HasError() {
		t.Fatal("expected a parse diagnostic for malformed source")
	}
}

func TestRunProject_ReturnsFinalValue(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.RegisterFile("main.mos", "let x = 41 + 1;")
	v, err := in.RunProject("main.mos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := v.(values.Double); !ok || got != values.Double(42) {
		t.Fatalf("got %#v", v)
	}
}

func TestSources_ReturnsRegisteredText(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.RegisterFile("main.mos", "let x = 1;")
	srcs := in.Sources()
	if srcs["main.mos"] != "let x = 1;" {
		t.Fatalf("got %q", srcs["main.mos"])
	}
}
