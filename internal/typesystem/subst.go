package typesystem

// Subst is a finite mapping from type-variable indices to monotypes.
type Subst map[int]Type

// applyWithCycleCheck applies a substitution with cycle detection.
// This is the single entry point for substitution application; the
// visited set breaks TVar chains that would otherwise loop.
func applyWithCycleCheck(t Type, s Subst, visited map[int]bool) Type {
	if t == nil || len(s) == 0 {
		return t
	}

	switch typ := t.(type) {
	case TVar:
		if visited[typ.ID] {
			return typ
		}
		replacement, ok := s[typ.ID]
		if !ok {
			return typ
		}
		if tv, ok := replacement.(TVar); ok && tv.ID == typ.ID {
			return typ
		}
		newVisited := copyVisited(visited)
		newVisited[typ.ID] = true
		return applyWithCycleCheck(replacement, s, newVisited)

	case TCon:
		if len(typ.Params) == 0 {
			return typ
		}
		newParams := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			newParams[i] = applyWithCycleCheck(p, s, visited)
		}
		return TCon{Name: typ.Name, Params: newParams}

	case TNamedStruct:
		return typ

	case TPartialStruct:
		entries := make([]RowEntry, len(typ.Row.Entries))
		for i, e := range typ.Row.Entries {
			entries[i] = RowEntry{Name: e.Name, Ty: applyWithCycleCheck(e.Ty, s, visited)}
		}
		tail := applyWithCycleCheck(typ.Row.Tail, s, visited)
		switch tl := tail.(type) {
		case TVar:
			return TPartialStruct{Row: Row{Entries: entries, Tail: tl}}
		case TNamedStruct:
			// The tail was sealed against a declaration; the whole row
			// collapses to the nominal type.
			return tl
		case TPartialStruct:
			// The tail resolved to another row: flatten. Shared keys keep
			// the receiver's binding; by the time a substitution maps the
			// tail, unification has already reconciled shared keys.
			return TPartialStruct{Row: mergeRows(Row{Entries: entries, Tail: tl.Row.Tail}, tl.Row)}
		default:
			// A tail bound to anything else is a unification bug; keep the
			// row shape with the original tail rather than corrupt it.
			return TPartialStruct{Row: Row{Entries: entries, Tail: typ.Row.Tail}}
		}

	default:
		return t.Apply(s)
	}
}

// mergeRows flattens b into a. Entries of a win on key collision and
// the resulting row keeps a's tail.
func mergeRows(a, b Row) Row {
	out := Row{Entries: make([]RowEntry, len(a.Entries)), Tail: a.Tail}
	copy(out.Entries, a.Entries)
	for _, e := range b.Entries {
		if _, ok := out.Get(e.Name); !ok {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

func copyVisited(m map[int]bool) map[int]bool {
	newMap := make(map[int]bool, len(m))
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

// Compose combines two substitutions. The receiver is applied first:
// the result maps i to s2(s(i)) for i in dom(s), augmented with the
// entries of s2 outside dom(s). At its fixed point composition is
// idempotent: s.Compose(s) = s.
func (s Subst) Compose(s2 Subst) Subst {
	if len(s) == 0 {
		return s2
	}
	if len(s2) == 0 {
		return s
	}
	subst := make(Subst, len(s)+len(s2))
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s {
		subst[k] = v.Apply(s2)
	}
	return subst
}
