// Package ast defines the core AST the inference engine consumes.
//
// The surface syntax has already been lexed, parsed, and desugared
// upstream: every `let x = fn args -> body` arrives as a recursive
// binding, identifiers are uniquified, and struct declarations are
// registered before inference starts. Nodes carry a type slot (Tau)
// that the desugarer, or analyzer.ContextFromProgram, fills with a
// fresh type variable; the final substitution materializes it.
package ast

import (
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// Node is the base interface for all AST nodes.
type Node interface {
	nodeMarker()
}

// Expression is a Node with a type slot.
type Expression interface {
	Node
	// TypeSlot returns the node's type slot.
	TypeSlot() typesystem.Type
	// SetTypeSlot overwrites the node's type slot.
	SetTypeSlot(typesystem.Type)
	expressionNode()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Program is the root node: a sequence of declarations in source order.
type Program struct {
	Decls []Decl
}

func (p *Program) nodeMarker() {}

// NameRef is the mutable binding cell shared between a binder, its
// occurrences in declarations, and codegen. Name is the (uniquified)
// source name, NewName the codegen name when it differs, and Ty the
// type placeholder refined by substitution application after inference
// succeeds.
type NameRef struct {
	Name    string
	NewName string
	Ty      typesystem.Type
}

// Param is a function parameter binder.
type Param struct {
	Ref     *NameRef
	Mutable bool
}

// FuncDecl is a top-level function declaration. The body has already
// been rewritten into recursive-binding form, so the function may
// refer to itself through Ref.
type FuncDecl struct {
	Ref  *NameRef
	Args []*Param
	Body Expression
}

func (d *FuncDecl) nodeMarker() {}
func (d *FuncDecl) declNode()   {}

// ExternFuncDecl declares a host-provided function with a sealed
// signature.
type ExternFuncDecl struct {
	Ref    *NameRef
	Params []typesystem.Type
	Return typesystem.Type
}

func (d *ExternFuncDecl) nodeMarker() {}
func (d *ExternFuncDecl) declNode()   {}

// GlobalDecl is a top-level value binding.
type GlobalDecl struct {
	Ref  *NameRef
	Init Expression
}

func (d *GlobalDecl) nodeMarker() {}
func (d *GlobalDecl) declNode()   {}

// StructField is one declared attribute of a struct.
type StructField struct {
	Name string
	Ty   typesystem.Type
}

// StructDecl declares a named struct. Registration into the struct
// table happens during context construction; inference treats the
// declaration itself as a no-op.
type StructDecl struct {
	Name   string
	Fields []StructField
}

func (d *StructDecl) nodeMarker() {}
func (d *StructDecl) declNode()   {}

// ImplDecl attaches methods and static functions to a declared struct.
type ImplDecl struct {
	TypeName string
	Funcs    []*FuncDecl
}

func (d *ImplDecl) nodeMarker() {}
func (d *ImplDecl) declNode()   {}
