package typesystem

import (
	"strings"
	"testing"
)

// fakeStructs is a minimal StructLookup for unification tests.
type fakeStructs map[string]map[string]Type

func (f fakeStructs) HasStruct(name string) bool {
	_, ok := f[name]
	return ok
}

func (f fakeStructs) AttrOrStaticType(structName, attr string) (Type, bool) {
	attrs, ok := f[structName]
	if !ok {
		return nil, false
	}
	t, ok := attrs[attr]
	return t, ok
}

func testUnifier(structs fakeStructs) Unifier {
	counter := 100
	return Unifier{
		Structs: structs,
		Fresh: func() TVar {
			counter++
			return TVar{ID: counter}
		},
	}
}

func TestUnifyVarBinding(t *testing.T) {
	s, err := Unify(TVar{ID: 1}, U32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := (TVar{ID: 1}).Apply(s); got.String() != "u32" {
		t.Errorf("expected t1 -> u32, got %s", got)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	_, err := Unify(TVar{ID: 1}, Ptr(TVar{ID: 1}))
	if err == nil {
		t.Fatal("expected occurs-check failure")
	}
	if err.Error() != "recursive type" {
		t.Errorf("expected %q, got %q", "recursive type", err.Error())
	}
}

func TestUnifyRowTailOccursCheck(t *testing.T) {
	// A row's tail must never appear in its own bindings.
	tail := TVar{ID: 2}
	row := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "next", Ty: tail}},
		Tail:    tail,
	}}
	_, err := Unify(tail, row)
	if err == nil || err.Error() != "recursive type" {
		t.Fatalf("expected recursive type error, got %v", err)
	}
}

func TestUnifyConstMismatch(t *testing.T) {
	_, err := Unify(U32, Bool)
	if err == nil {
		t.Fatal("expected mismatch")
	}
	want := "type mismatch: expected u32, got bool"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestUnifyFunctionTypes(t *testing.T) {
	t1, t2 := TVar{ID: 1}, TVar{ID: 2}
	s, err := Unify(Fn([]Type{t1}, t2), Fn([]Type{U32}, Bool))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := t1.Apply(s).String(); got != "u32" {
		t.Errorf("param: expected u32, got %s", got)
	}
	if got := t2.Apply(s).String(); got != "bool" {
		t.Errorf("return: expected bool, got %s", got)
	}
}

func TestUnifyArrayLengths(t *testing.T) {
	if _, err := Unify(Array(U32, 4), Array(U32, 4)); err != nil {
		t.Fatalf("same lengths should unify: %v", err)
	}
	if _, err := Unify(Array(U32, 4), Array(U32, 3)); err == nil {
		t.Fatal("different lengths must not unify")
	}
}

func TestUnifyArityMismatch(t *testing.T) {
	_, err := Unify(Fn([]Type{U32}, Bool), Fn([]Type{U32, U32}, Bool))
	if err == nil {
		t.Fatal("expected arity mismatch")
	}
	if !strings.HasPrefix(err.Error(), "type mismatch:") {
		t.Errorf("expected a type mismatch, got %q", err.Error())
	}
}

func TestUnifyNamedStructs(t *testing.T) {
	if _, err := Unify(TNamedStruct{Name: "Point"}, TNamedStruct{Name: "Point"}); err != nil {
		t.Fatalf("equal names should unify: %v", err)
	}
	_, err := Unify(TNamedStruct{Name: "Point"}, TNamedStruct{Name: "Rect"})
	if err == nil {
		t.Fatal("different names must not unify")
	}
	want := "type mismatch: expected Point, got Rect"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestSealPartialAgainstNamed(t *testing.T) {
	u := testUnifier(fakeStructs{
		"Point": {"x": U32, "y": U32},
	})
	attr := TVar{ID: 1}
	partial := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "x", Ty: attr}},
		Tail:    TVar{ID: 2},
	}}

	s, err := u.Unify(TNamedStruct{Name: "Point"}, partial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := attr.Apply(s).String(); got != "u32" {
		t.Errorf("attribute: expected u32, got %s", got)
	}
	// Sealing closes the whole row to the nominal type.
	if got := partial.Apply(s).String(); got != "Point" {
		t.Errorf("sealed row: expected Point, got %s", got)
	}
}

func TestSealUnknownAttribute(t *testing.T) {
	u := testUnifier(fakeStructs{
		"Point": {"x": U32},
	})
	partial := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "z", Ty: TVar{ID: 1}}},
		Tail:    TVar{ID: 2},
	}}
	_, err := u.Unify(TNamedStruct{Name: "Point"}, partial)
	if err == nil {
		t.Fatal("expected unknown attribute error")
	}
	want := `attribute "z" does not exist on struct "Point"`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestSealUndeclaredStruct(t *testing.T) {
	u := testUnifier(fakeStructs{})
	partial := TPartialStruct{Row: Row{Tail: TVar{ID: 1}}}
	_, err := u.Unify(TNamedStruct{Name: "Ghost"}, partial)
	if err == nil {
		t.Fatal("expected undeclared struct error")
	}
	want := `undeclared struct "Ghost"`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func sameRowShape(t *testing.T, a, b Type) {
	t.Helper()
	pa, ok := a.(TPartialStruct)
	if !ok {
		t.Fatalf("expected partial struct, got %s", a)
	}
	pb, ok := b.(TPartialStruct)
	if !ok {
		t.Fatalf("expected partial struct, got %s", b)
	}
	if pa.Row.Tail.ID != pb.Row.Tail.ID {
		t.Errorf("tails differ: %s vs %s", pa.Row.Tail, pb.Row.Tail)
	}
	if len(pa.Row.Entries) != len(pb.Row.Entries) {
		t.Fatalf("entry counts differ: %s vs %s", a, b)
	}
	for _, e := range pa.Row.Entries {
		other, ok := pb.Row.Get(e.Name)
		if !ok {
			t.Errorf("missing entry %q in %s", e.Name, b)
			continue
		}
		if e.Ty.String() != other.String() {
			t.Errorf("entry %q: %s vs %s", e.Name, e.Ty, other)
		}
	}
}

func TestMergePartialRowsDisjoint(t *testing.T) {
	u := testUnifier(fakeStructs{})
	p1 := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "a", Ty: U32}},
		Tail:    TVar{ID: 1},
	}}
	p2 := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "b", Ty: Bool}},
		Tail:    TVar{ID: 2},
	}}

	s, err := u.Unify(p1, p2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m1, m2 := p1.Apply(s), p2.Apply(s)
	sameRowShape(t, m1, m2)

	merged := m1.(TPartialStruct)
	for _, want := range []string{"a", "b"} {
		if _, ok := merged.Row.Get(want); !ok {
			t.Errorf("merged row lost %q: %s", want, merged)
		}
	}
}

func TestMergePartialRowsSharedKey(t *testing.T) {
	u := testUnifier(fakeStructs{})
	v := TVar{ID: 1}
	p1 := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "a", Ty: v}},
		Tail:    TVar{ID: 2},
	}}
	p2 := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "a", Ty: U32}},
		Tail:    TVar{ID: 3},
	}}

	s, err := u.Unify(p1, p2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.Apply(s).String(); got != "u32" {
		t.Errorf("shared key: expected u32, got %s", got)
	}
	sameRowShape(t, p1.Apply(s), p2.Apply(s))
}

func TestMergeSharedKeyConflict(t *testing.T) {
	u := testUnifier(fakeStructs{})
	p1 := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "a", Ty: U32}},
		Tail:    TVar{ID: 1},
	}}
	p2 := TPartialStruct{Row: Row{
		Entries: []RowEntry{{Name: "a", Ty: Bool}},
		Tail:    TVar{ID: 2},
	}}
	if _, err := u.Unify(p1, p2); err == nil {
		t.Fatal("conflicting shared key must not unify")
	}
}
