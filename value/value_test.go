package value

import (
	"testing"

	qt "github.com/go-quicktest/qt"
	"github.com/kr/pretty"
)

func TestTupleEqualityRespectsOrder(t *testing.T) {
	a := NewTuple([]TupleField{{"a", Int(1)}, {"b", Int(2)}})
	b := NewTuple([]TupleField{{"b", Int(2)}, {"a", Int(1)}})
	c := NewTuple([]TupleField{{"a", Int(1)}, {"b", Int(2)}})

	if Equal(a, b) {
		t.Errorf("tuples with same fields in different order compared equal:\n%s", pretty.Sprint(pretty.Diff(a, b)))
	}
	if !Equal(a, c) {
		t.Errorf("tuples with identical field order compared unequal:\n%s", pretty.Sprint(pretty.Diff(a, c)))
	}
}

func TestListEqualityByOrder(t *testing.T) {
	qt.Assert(t, qt.IsTrue(Equal(NewList([]Value{Int(1), Int(2)}), NewList([]Value{Int(1), Int(2)}))))
	qt.Assert(t, qt.IsFalse(Equal(NewList([]Value{Int(1), Int(2)}), NewList([]Value{Int(2), Int(1)}))))
}

func TestFuncModuleCompareByIdentity(t *testing.T) {
	f1 := &Func{Params: []string{"x"}}
	f2 := &Func{Params: []string{"x"}}
	qt.Assert(t, qt.IsTrue(Equal(f1, f1)))
	qt.Assert(t, qt.IsFalse(Equal(f1, f2)))

	m1 := &Module{Path: "m.ucg"}
	m2 := &Module{Path: "m.ucg"}
	qt.Assert(t, qt.IsTrue(Equal(m1, m1)))
	qt.Assert(t, qt.IsFalse(Equal(m1, m2)))
}

func TestTupleWithOverridesPreservesOrder(t *testing.T) {
	base := NewTuple([]TupleField{{"a", Int(1)}, {"b", Int(2)}})
	got := base.With([]TupleField{{"b", Int(3)}, {"c", Int(4)}})
	want := NewTuple([]TupleField{{"a", Int(1)}, {"b", Int(3)}, {"c", Int(4)}})
	if !Equal(got, want) {
		t.Fatalf("With produced unexpected tuple:\n%s", pretty.Sprint(pretty.Diff(want, got)))
	}
}

func TestEnvLookupChainsToParent(t *testing.T) {
	root := NewRootEnv()
	root.Define("x", Int(1))
	child := root.Child()
	child.Define("y", Int(2))

	v, ok := child.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, Value(Int(1))))

	_, ok = root.Lookup("y")
	qt.Assert(t, qt.IsFalse(ok))
}

func TestRenderScalars(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null{}, ""},
		{Bool(true), "true"},
		{Int(7), "7"},
		{Float(1.5), "1.5"},
		{Str("hi"), "hi"},
	}
	for _, c := range cases {
		if got := Render(c.v); got != c.want {
			t.Errorf("Render(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestRenderComposite(t *testing.T) {
	l := NewList([]Value{Int(1), Int(2)})
	qt.Assert(t, qt.Equals(Render(l), "[1, 2]"))

	tup := NewTuple([]TupleField{{"a", Int(1)}})
	qt.Assert(t, qt.Equals(Render(tup), "{a=1}"))
}
