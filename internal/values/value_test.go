package values

import "testing"

func TestDouble_ToDisplayString_TrimsTrailingZeros(t *testing.T) {
	tests := []struct {
		in   Double
		want string
	}{
		{Double(4.0), "4"},
		{Double(4.5), "4.5"},
		{Double(4.50), "4.5"},
		{Double(0.1), "0.1"},
		{Double(-2.0), "-2"},
	}
	for _, tt := range tests {
		if got := ToDisplayString(tt.in); got != tt.want {
			t.Errorf("ToDisplayString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInteger_ToDisplayString(t *testing.T) {
	if got := ToDisplayString(Integer(42)); got != "42" {
		t.Errorf("got %q", got)
	}
	if got := ToDisplayString(Integer(-7)); got != "-7" {
		t.Errorf("got %q", got)
	}
}

func TestBoolean_ToDisplayString(t *testing.T) {
	if got := ToDisplayString(Boolean(true)); got != "true" {
		t.Errorf("got %q", got)
	}
	if got := ToDisplayString(Boolean(false)); got != "false" {
		t.Errorf("got %q", got)
	}
}

func TestNone_ToDisplayString(t *testing.T) {
	if got := ToDisplayString(None{}); got != "none" {
		t.Errorf("got %q", got)
	}
}

func TestArray_ToDisplayString(t *testing.T) {
	a := NewArray(Integer(1), Integer(2), String("x"))
	if got := ToDisplayString(a); got != `[1, 2, x]` {
		t.Errorf("got %q", got)
	}
}

func TestArray_Clone_IsIndependent(t *testing.T) {
	a := NewArray(Integer(1), Integer(2))
	b := a.Clone()
	b.Elements[0] = Integer(9)
	if a.Elements[0] != Integer(1) {
		t.Fatalf("mutating clone affected original: %v", a.Elements[0])
	}
}

func TestArray_Clone_NestedArraysAreIndependent(t *testing.T) {
	inner := NewArray(Integer(1))
	outer := NewArray(inner)
	clone := outer.Clone()
	clone.Elements[0].(*Array).Elements[0] = Integer(99)
	if inner.Elements[0] != Integer(1) {
		t.Fatalf("nested clone is not independent: %v", inner.Elements[0])
	}
}

func TestCopyForStore_DictionaryKeepsReferenceSemantics(t *testing.T) {
	d := NewDictionary()
	d.Set("x", Integer(1))
	stored := CopyForStore(d)
	stored.(*Dictionary).Set("x", Integer(5))
	got, _ := d.Get("x")
	if got != Integer(5) {
		t.Fatalf("dictionary should be reference-shared, got %v", got)
	}
}

func TestCopyForStore_ArrayIsCloned(t *testing.T) {
	a := NewArray(Integer(1))
	stored := CopyForStore(a)
	stored.(*Array).Elements[0] = Integer(2)
	if a.Elements[0] != Integer(1) {
		t.Fatal("CopyForStore should have cloned the array")
	}
}

func TestDictionary_PreservesInsertionOrder(t *testing.T) {
	d := NewDictionary()
	d.Set("b", Integer(1))
	d.Set("a", Integer(2))
	d.Set("c", Integer(3))
	keys := d.Keys()
	want := []string{"b", "a", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}

func TestStruct_ReferenceSemantics(t *testing.T) {
	def := &StructDef{Fields: []string{"x", "y"}}
	a := NewStructInstance(def)
	a.Values["x"] = Integer(1)
	b := a // alias, like `let b = a`
	b.Values["x"] = Integer(5)
	if a.Values["x"] != Integer(5) {
		t.Fatalf("expected shared mutation, got %v", a.Values["x"])
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{None{}, false},
		{Integer(0), false},
		{Integer(1), true},
		{Double(0), false},
		{Double(1), true},
		{Boolean(false), false},
		{String(""), false},
		{String("x"), true},
		{NewArray(), false},
		{NewArray(Integer(1)), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.v, got, c.want)
		}
	}
}
