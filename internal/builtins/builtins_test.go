package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

func newTestRegistry() (*Registry, *diagnostics.Sink, *bytes.Buffer) {
	r := NewRegistry()
	diag := diagnostics.NewSink()
	var out bytes.Buffer
	RegisterStandardLibrary(r, &out)
	return r, diag, &out
}

func call(t *testing.T, r *Registry, name string, args ...values.Value) values.Value {
	t.Helper()
	b, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}
	diag := diagnostics.NewSink()
	return b.Invoke(args, diag, "test.mos", 1)
}

func TestPrint_WritesDisplayStringWithNewline(t *testing.T) {
	r, diag, out := newTestRegistry()
	b, _ := r.Lookup("console_print")
	b.Invoke([]values.Value{values.Integer(14)}, diag, "test.mos", 1)
	if out.String() != "14\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestToString_MatchesDisplayFormat(t *testing.T) {
	r, diag, _ := newTestRegistry()
	b, _ := r.Lookup("to_string")
	got := b.Invoke([]values.Value{values.Double(4.5)}, diag, "test.mos", 1)
	if got != values.String("4.5") {
		t.Fatalf("got %v", got)
	}
}

func TestSqrt_NegativeIsDomainError(t *testing.T) {
	r, _, _ := newTestRegistry()
	b, _ := r.Lookup("sqrt")
	diag := diagnostics.NewSink()
	got := b.Invoke([]values.Value{values.Integer(-4)}, diag, "test.mos", 7)
	if _, ok := got.(values.None); !ok {
		t.Fatalf("expected None, got %v", got)
	}
	if !diag.HasError() {
		t.Fatal("expected a domain error diagnostic")
	}
}

func TestSqrt_Positive(t *testing.T) {
	r, diag, _ := newTestRegistry()
	got := call(t, r, "sqrt", values.Integer(9))
	_ = diag
	if got != values.Double(3) {
		t.Fatalf("got %v", got)
	}
}

func TestArrayPushPopLength(t *testing.T) {
	r, _, _ := newTestRegistry()
	arr := values.NewArray(values.Integer(1), values.Integer(2))
	call(t, r, "array_push", arr, values.Integer(3))
	if len(arr.Elements) != 3 {
		t.Fatalf("expected push to grow array, got %v", arr.Elements)
	}
	got := call(t, r, "array_length", arr)
	if got != values.Integer(3) {
		t.Fatalf("got %v", got)
	}
	popped := call(t, r, "array_pop", arr)
	if popped != values.Integer(3) {
		t.Fatalf("expected pop to return 3, got %v", popped)
	}
}

func TestArraySort(t *testing.T) {
	r, _, _ := newTestRegistry()
	arr := values.NewArray(values.Integer(3), values.Integer(1), values.Integer(2))
	call(t, r, "array_sort", arr)
	want := []values.Value{values.Integer(1), values.Integer(2), values.Integer(3)}
	for i, w := range want {
		if arr.Elements[i] != w {
			t.Fatalf("got %v, want %v", arr.Elements, want)
		}
	}
}

func TestDict_HasAndRemoveMutateSharedInstance(t *testing.T) {
	r, _, _ := newTestRegistry()
	d := values.NewDictionary()
	d.Set("x", values.Integer(1))
	if call(t, r, "dict_has", d, values.String("x")) != values.Boolean(true) {
		t.Fatal("expected dict_has to find x")
	}
	call(t, r, "dict_remove", d, values.String("x"))
	if d.Has("x") {
		t.Fatal("expected dict_remove to mutate the shared dictionary")
	}
}

func TestRand_SeedIsDeterministic(t *testing.T) {
	r1, _, _ := newTestRegistry()
	r2, _, _ := newTestRegistry()
	call(t, r1, "rand_seed", values.Integer(42))
	call(t, r2, "rand_seed", values.Integer(42))
	a := call(t, r1, "rand", values.Integer(1000))
	b := call(t, r2, "rand", values.Integer(1000))
	if a != b {
		t.Fatalf("same seed should produce same sequence, got %v vs %v", a, b)
	}
}

func TestToJSON_FromJSON_RoundTrip(t *testing.T) {
	r, _, _ := newTestRegistry()
	d := values.NewDictionary()
	d.Set("name", values.String("mosaic"))
	d.Set("count", values.Integer(3))
	arr := values.NewArray(values.Integer(1), values.Integer(2))
	d.Set("items", arr)

	jsonVal := call(t, r, "to_json", d)
	jsonStr, ok := jsonVal.(values.String)
	if !ok {
		t.Fatalf("expected String, got %v", jsonVal)
	}
	if !strings.Contains(string(jsonStr), `"name":"mosaic"`) {
		t.Fatalf("unexpected JSON: %s", jsonStr)
	}

	back := call(t, r, "from_json", jsonStr)
	backDict, ok := back.(*values.Dictionary)
	if !ok {
		t.Fatalf("expected Dictionary, got %v", back)
	}
	got, _ := backDict.Get("name")
	if got != values.String("mosaic") {
		t.Fatalf("got %v", got)
	}
	countVal, _ := backDict.Get("count")
	if countVal != values.Integer(3) {
		t.Fatalf("expected round-tripped Integer, got %v", countVal)
	}
}

func TestStrUpperLowerTitle(t *testing.T) {
	r, _, _ := newTestRegistry()
	if call(t, r, "str_upper", values.String("hello")) != values.String("HELLO") {
		t.Fatal("str_upper failed")
	}
	if call(t, r, "str_lower", values.String("HELLO")) != values.String("hello") {
		t.Fatal("str_lower failed")
	}
	if call(t, r, "str_title", values.String("hello world")) != values.String("Hello World") {
		t.Fatal("str_title failed")
	}
}

func matrixElems(t *testing.T, v values.Value) []values.Value {
	t.Helper()
	arr, ok := v.(*values.Array)
	if !ok {
		t.Fatalf("expected an Array, got %#v", v)
	}
	return arr.Elements
}

func TestMatrix_IdentityIsNeutralForMultiply(t *testing.T) {
	r, _, _ := newTestRegistry()
	call(t, r, "matrix_identity")
	got := matrixElems(t, call(t, r, "matrix_multiply",
		values.Double(1), values.Double(0), values.Double(0), values.Double(1), values.Double(5), values.Double(7)))
	want := []float64{1, 0, 0, 1, 5, 7}
	for i, w := range want {
		if got[i].(values.Double) != values.Double(w) {
			t.Fatalf("element %d: got %v, want %v", i, got[i], w)
		}
	}
}

func TestMatrix_BuildThenTransformVertex(t *testing.T) {
	r, _, _ := newTestRegistry()
	call(t, r, "matrix_build", values.Double(1), values.Double(1), values.Double(0), values.Double(3), values.Double(4))
	got := matrixElems(t, call(t, r, "matrix_transform_vertex", values.Double(1), values.Double(2)))
	if got[0].(values.Double) != values.Double(4) || got[1].(values.Double) != values.Double(6) {
		t.Fatalf("got %v, %v", got[0], got[1])
	}
}

func TestMatrix_SetThenGetRoundTrips(t *testing.T) {
	r, _, _ := newTestRegistry()
	call(t, r, "matrix_set", values.Double(2), values.Double(0), values.Double(0), values.Double(2), values.Double(1), values.Double(1))
	got := matrixElems(t, call(t, r, "matrix_get"))
	want := []float64{2, 0, 0, 2, 1, 1}
	for i, w := range want {
		if got[i].(values.Double) != values.Double(w) {
			t.Fatalf("element %d: got %v, want %v", i, got[i], w)
		}
	}
}

func TestMatrix_InverseOfSingularIsDomainError(t *testing.T) {
	r, _, _ := newTestRegistry()
	call(t, r, "matrix_set", values.Double(0), values.Double(0), values.Double(0), values.Double(0), values.Double(0), values.Double(0))
	b, _ := r.Lookup("matrix_inverse")
	diag := diagnostics.NewSink()
	b.Invoke(nil, diag, "test.mos", 1)
	if !diag.HasError() {
		t.Fatal("expected a domain error for a non-invertible matrix")
	}
}
