package symbols

import (
	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// Method is an attribute slot installed by an impl block.
type Method struct {
	Ref         *ast.NameRef
	SelfMutable bool
}

// Attribute is one attribute of a struct declaration. Impl is non-nil
// for method slots; the attribute's type then lives in the method's
// name-reference cell.
type Attribute struct {
	Name string
	Ty   typesystem.Type
	Impl *Method
}

// Type returns the attribute's current type: the declared field type,
// or the method reference's placeholder.
func (a *Attribute) Type() typesystem.Type {
	if a.Impl != nil {
		return a.Impl.Ref.Ty
	}
	return a.Ty
}

// StaticFunc is a function registered on the struct name itself,
// reachable through StructName.func projection.
type StaticFunc struct {
	Name string
	Ref  *ast.NameRef
}

// StructInfo is the registered form of a struct declaration. Fields
// are installed at registration and stay immutable; impl blocks append
// method attributes and static functions.
type StructInfo struct {
	Name    string
	Attrs   []Attribute
	Statics []StaticFunc
}

// Attr returns the named attribute (field or method slot).
func (s *StructInfo) Attr(name string) (*Attribute, bool) {
	for i := range s.Attrs {
		if s.Attrs[i].Name == name {
			return &s.Attrs[i], true
		}
	}
	return nil, false
}

// Static returns the named static function.
func (s *StructInfo) Static(name string) (*StaticFunc, bool) {
	for i := range s.Statics {
		if s.Statics[i].Name == name {
			return &s.Statics[i], true
		}
	}
	return nil, false
}

// AddMethod installs a method slot.
func (s *StructInfo) AddMethod(name string, ref *ast.NameRef, selfMutable bool) {
	s.Attrs = append(s.Attrs, Attribute{
		Name: name,
		Impl: &Method{Ref: ref, SelfMutable: selfMutable},
	})
}

// AddStatic installs a static function.
func (s *StructInfo) AddStatic(name string, ref *ast.NameRef) {
	s.Statics = append(s.Statics, StaticFunc{Name: name, Ref: ref})
}

// StructTable is the global struct registry, append-only for
// declarations. Not safe for concurrent modification.
type StructTable struct {
	structs map[string]*StructInfo
	order   []string
}

// NewStructTable returns an empty table.
func NewStructTable() *StructTable {
	return &StructTable{structs: make(map[string]*StructInfo)}
}

// Register installs a declaration. A redeclaration replaces the
// previous entry; the desugarer guarantees unique names.
func (t *StructTable) Register(info *StructInfo) {
	if _, ok := t.structs[info.Name]; !ok {
		t.order = append(t.order, info.Name)
	}
	t.structs[info.Name] = info
}

// Lookup returns the declaration registered under name.
func (t *StructTable) Lookup(name string) (*StructInfo, bool) {
	info, ok := t.structs[name]
	return info, ok
}

// Names returns the registered struct names in declaration order.
func (t *StructTable) Names() []string {
	return t.order
}

// HasStruct implements typesystem.StructLookup.
func (t *StructTable) HasStruct(name string) bool {
	_, ok := t.structs[name]
	return ok
}

// AttrOrStaticType implements typesystem.StructLookup: the declared
// type of a field, a method slot, or a static function of the named
// struct. Statics participate so that rows obtained by projecting a
// struct name seal like any other row.
func (t *StructTable) AttrOrStaticType(structName, attr string) (typesystem.Type, bool) {
	info, ok := t.structs[structName]
	if !ok {
		return nil, false
	}
	if a, ok := info.Attr(attr); ok {
		return a.Type(), true
	}
	if st, ok := info.Static(attr); ok {
		return st.Ref.Ty, true
	}
	return nil, false
}
