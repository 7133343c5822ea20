package typesystem

import "reflect"

// StructLookup lets unification consult the global struct table when a
// partial row is sealed against a named declaration. Implemented by
// symbols.StructTable.
type StructLookup interface {
	// HasStruct reports whether name is a registered declaration.
	HasStruct(name string) bool
	// AttrOrStaticType returns the declared type of an attribute (field,
	// method slot, or static function) of the named struct.
	AttrOrStaticType(structName, attr string) (Type, bool)
}

// Unifier carries the context unification needs beyond the two types:
// struct declarations for sealing and a fresh-variable source for row
// merges that extend both sides.
type Unifier struct {
	Structs StructLookup
	Fresh   func() TVar
}

// Unify attempts to find the most general substitution that makes t1
// and t2 equal. t1 is the expected type, t2 the actual one; the
// distinction only affects error messages.
func Unify(t1, t2 Type) (Subst, error) {
	u := Unifier{}
	return u.Unify(t1, t2)
}

func (u Unifier) Unify(t1, t2 Type) (Subst, error) {
	if reflect.DeepEqual(t1, t2) {
		return Subst{}, nil
	}

	switch t1 := t1.(type) {
	case TVar:
		return Bind(t1, t2)

	case TCon:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TCon:
			if t1.Name != t2.Name || len(t1.Params) != len(t2.Params) {
				return nil, errMismatch(t1, t2)
			}
			s := Subst{}
			for i := range t1.Params {
				p1 := t1.Params[i].Apply(s)
				p2 := t2.Params[i].Apply(s)
				s2, err := u.Unify(p1, p2)
				if err != nil {
					return nil, err
				}
				s = s.Compose(s2)
			}
			return s, nil
		default:
			return nil, errMismatch(t1, t2)
		}

	case TNamedStruct:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TNamedStruct:
			if t1.Name == t2.Name {
				return Subst{}, nil
			}
			return nil, errMismatch(t1, t2)
		case TPartialStruct:
			return u.seal(t1, t2)
		default:
			return nil, errMismatch(t1, t2)
		}

	case TPartialStruct:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TNamedStruct:
			return u.seal(t2, t1)
		case TPartialStruct:
			return u.merge(t1, t2)
		default:
			return nil, errMismatch(t1, t2)
		}

	default:
		return nil, errMismatch(t1, t2)
	}
}

// seal unifies a partial row against a named declaration: every row
// binding must correspond to a declared attribute and unify with its
// declared type, and the tail is bound to the nominal type so the row
// closes irreversibly.
func (u Unifier) seal(named TNamedStruct, partial TPartialStruct) (Subst, error) {
	if u.Structs == nil || !u.Structs.HasStruct(named.Name) {
		return nil, &UndeclaredStructError{Name: named.Name}
	}
	s := Subst{}
	for _, e := range partial.Row.Entries {
		declared, ok := u.Structs.AttrOrStaticType(named.Name, e.Name)
		if !ok {
			return nil, &UnknownAttributeError{Attr: e.Name, Struct: named.Name}
		}
		s2, err := u.Unify(declared.Apply(s), e.Ty.Apply(s))
		if err != nil {
			return nil, err
		}
		s = s.Compose(s2)
	}

	tail := partial.Row.Tail.Apply(s)
	switch tail := tail.(type) {
	case TVar:
		s2, err := Bind(tail, named)
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil
	default:
		s2, err := u.Unify(named, tail)
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil
	}
}

// merge unifies two partial rows: shared keys unify pairwise, each row
// is extended with the other's exclusive keys, and the two tails are
// tied together (via a fresh tail when both sides contribute keys).
func (u Unifier) merge(p1, p2 TPartialStruct) (Subst, error) {
	s := Subst{}
	var only1, only2 []RowEntry
	for _, e := range p1.Row.Entries {
		v2, ok := p2.Row.Get(e.Name)
		if !ok {
			only1 = append(only1, e)
			continue
		}
		s2, err := u.Unify(e.Ty.Apply(s), v2.Apply(s))
		if err != nil {
			return nil, err
		}
		s = s.Compose(s2)
	}
	for _, e := range p2.Row.Entries {
		if _, ok := p1.Row.Get(e.Name); !ok {
			only2 = append(only2, e)
		}
	}

	t1, t2 := p1.Row.Tail, p2.Row.Tail
	if t1.ID == t2.ID {
		if len(only1) == 0 && len(only2) == 0 {
			return s, nil
		}
		// Same open tail but diverging bindings cannot be reconciled.
		return nil, errMismatch(p1.Apply(s), p2.Apply(s))
	}

	applied := func(entries []RowEntry) []RowEntry {
		out := make([]RowEntry, len(entries))
		for i, e := range entries {
			out[i] = RowEntry{Name: e.Name, Ty: e.Ty.Apply(s)}
		}
		return out
	}

	switch {
	case len(only1) == 0 && len(only2) == 0:
		s2, err := Bind(t1, t2)
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil
	case len(only2) == 0:
		// p2's tail absorbs p1's exclusive keys.
		s2, err := Bind(t2, TPartialStruct{Row: Row{Entries: applied(only1), Tail: t1}})
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil
	case len(only1) == 0:
		s2, err := Bind(t1, TPartialStruct{Row: Row{Entries: applied(only2), Tail: t2}})
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil
	default:
		if u.Fresh == nil {
			return nil, errMismatch(p1.Apply(s), p2.Apply(s))
		}
		shared := u.Fresh()
		s2, err := Bind(t1, TPartialStruct{Row: Row{Entries: applied(only2), Tail: shared}})
		if err != nil {
			return nil, err
		}
		s = s.Compose(s2)
		s3, err := Bind(t2, TPartialStruct{Row: Row{Entries: applied(only1), Tail: shared}})
		if err != nil {
			return nil, err
		}
		return s.Compose(s3), nil
	}
}

// Bind binds a type variable to a type, performing the occurs check.
// The occurs check extends into partial rows: a row's tail must never
// appear in its own bindings.
func Bind(tv TVar, t Type) (Subst, error) {
	if tVal, ok := t.(TVar); ok && tVal.ID == tv.ID {
		return Subst{}, nil
	}
	if OccursCheck(tv, t) {
		return nil, &RecursiveTypeError{Var: tv, In: t}
	}
	return Subst{tv.ID: t}, nil
}

// OccursCheck returns true if tv appears free in t.
func OccursCheck(tv TVar, t Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v.ID == tv.ID {
			return true
		}
	}
	return false
}
