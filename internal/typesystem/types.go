package typesystem

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the interface for all monomorphic types in our system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents a unification variable, identified by a globally
// unique nonnegative index allocated by the inference context.
type TVar struct {
	ID int
}

func (t TVar) String() string {
	return "t" + strconv.Itoa(t.ID)
}

func (t TVar) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// TCon represents a type constructor, nullary (u8, u32, bool, char,
// string, unit) or applied (Ptr<T>, Tuple<T...>, Array<T, N>,
// Fn(args...) -> ret). Array lengths are encoded as nullary
// constructors named by the decimal length, so plain constructor
// unification enforces length equality.
type TCon struct {
	Name   string
	Params []Type
}

func (t TCon) String() string {
	switch t.Name {
	case FnTypeName:
		n := len(t.Params)
		params := make([]string, 0, n)
		for _, p := range t.Params[:n-1] {
			params = append(params, p.String())
		}
		return fmt.Sprintf("Fn(%s) -> %s", strings.Join(params, ", "), t.Params[n-1])
	case TupleTypeName:
		elems := make([]string, len(t.Params))
		for i, p := range t.Params {
			elems[i] = p.String()
		}
		return "(" + strings.Join(elems, ", ") + ")"
	}
	if len(t.Params) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Params))
	for i, p := range t.Params {
		args[i] = p.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

func (t TCon) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TCon) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TNamedStruct is the nominal flavor of a struct type: a reference to
// a declaration registered in the global struct table.
type TNamedStruct struct {
	Name string
}

func (t TNamedStruct) String() string { return t.Name }

func (t TNamedStruct) Apply(s Subst) Type { return t }

func (t TNamedStruct) FreeTypeVariables() []TVar { return nil }

// RowEntry is a single attribute binding of a partial struct row.
type RowEntry struct {
	Name string
	Ty   Type
}

// Row is an ordered attribute list plus an open tail variable. The row
// is closed once the tail has been unified with a concrete type
// (sealing binds it to a TNamedStruct).
type Row struct {
	Entries []RowEntry
	Tail    TVar
}

// Get returns the binding for name, if present.
func (r Row) Get(name string) (Type, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e.Ty, true
		}
	}
	return nil, false
}

// WithEntry returns a copy of the row extended with (name, ty). An
// existing binding is replaced; callers are responsible for unifying
// the old and new types when replacement matters.
func (r Row) WithEntry(name string, ty Type) Row {
	entries := make([]RowEntry, len(r.Entries))
	copy(entries, r.Entries)
	for i, e := range entries {
		if e.Name == name {
			entries[i].Ty = ty
			return Row{Entries: entries, Tail: r.Tail}
		}
	}
	return Row{Entries: append(entries, RowEntry{Name: name, Ty: ty}), Tail: r.Tail}
}

// TPartialStruct is the structural flavor: a not-yet-resolved struct
// shape with known attributes and an open tail.
type TPartialStruct struct {
	Row Row
}

func (t TPartialStruct) String() string {
	entries := make([]string, len(t.Row.Entries))
	for i, e := range t.Row.Entries {
		entries[i] = fmt.Sprintf("%s: %s", e.Name, e.Ty)
	}
	if len(entries) == 0 {
		return fmt.Sprintf("{ | %s}", t.Row.Tail)
	}
	return fmt.Sprintf("{%s | %s}", strings.Join(entries, ", "), t.Row.Tail)
}

func (t TPartialStruct) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[int]bool))
}

func (t TPartialStruct) FreeTypeVariables() []TVar {
	vars := []TVar{t.Row.Tail}
	for _, e := range t.Row.Entries {
		vars = append(vars, e.Ty.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// Builtin constructor names with dedicated printing or structure.
const (
	FnTypeName    = "Fn"
	TupleTypeName = "Tuple"
	ArrayTypeName = "Array"
	PtrTypeName   = "Ptr"
)

// Primitive types.
var (
	Unit = TCon{Name: "unit"}
	Bool = TCon{Name: "bool"}
	U8   = TCon{Name: "u8"}
	U32  = TCon{Name: "u32"}
	Char = TCon{Name: "char"}
	Str  = TCon{Name: "string"}
)

// Ptr builds a pointer type Ptr<t>.
func Ptr(t Type) TCon {
	return TCon{Name: PtrTypeName, Params: []Type{t}}
}

// Tuple builds a tuple type from its element types.
func Tuple(elems ...Type) TCon {
	return TCon{Name: TupleTypeName, Params: elems}
}

// Fn builds a function type from parameter types and a return type.
// The return type is the last constructor parameter.
func Fn(params []Type, ret Type) TCon {
	ps := make([]Type, 0, len(params)+1)
	ps = append(ps, params...)
	ps = append(ps, ret)
	return TCon{Name: FnTypeName, Params: ps}
}

// FnParts splits a function type into parameter types and return type.
func FnParts(t TCon) (params []Type, ret Type) {
	n := len(t.Params)
	return t.Params[:n-1], t.Params[n-1]
}

// IsFn reports whether t is a function type.
func IsFn(t Type) (TCon, bool) {
	tc, ok := t.(TCon)
	if !ok || tc.Name != FnTypeName || len(tc.Params) == 0 {
		return TCon{}, false
	}
	return tc, true
}

// Array builds an array type with a statically known length.
func Array(elem Type, n int) TCon {
	return TCon{Name: ArrayTypeName, Params: []Type{elem, TCon{Name: strconv.Itoa(n)}}}
}

func uniqueTVars(vars []TVar) []TVar {
	unique := []TVar{}
	seen := map[int]bool{}
	for _, v := range vars {
		if !seen[v.ID] {
			seen[v.ID] = true
			unique = append(unique, v)
		}
	}
	return unique
}
