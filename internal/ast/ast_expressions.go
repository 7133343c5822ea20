package ast

import (
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// ConstKind discriminates literal constants.
type ConstKind int

const (
	UnitConst ConstKind = iota
	BoolConst
	U8Const
	U32Const
	CharConst
	StrConst
)

// ConstExpr is a literal constant.
type ConstExpr struct {
	Kind ConstKind
	Bool bool
	Uint uint32
	Char rune
	Str  string
	Tau  typesystem.Type
}

// VarExpr is an identifier occurrence. Each occurrence has its own
// type slot so uses of a polymorphic binding instantiate
// independently; Ref is the binder's shared cell.
type VarExpr struct {
	Ref *NameRef
	Tau typesystem.Type
}

// AssignExpr writes RHS into the place denoted by LHS. The expression
// itself has type unit.
type AssignExpr struct {
	LHS Expression
	RHS Expression
	Tau typesystem.Type
}

// UnaryOpKind enumerates unary operators.
type UnaryOpKind int

const (
	NegOp UnaryOpKind = iota
	NotOp
	DerefOp
	AddrOfOp
)

// UnaryExpr applies a unary operator.
type UnaryExpr struct {
	Op      UnaryOpKind
	Operand Expression
	Tau     typesystem.Type
}

// BinOpKind enumerates binary operators.
type BinOpKind int

const (
	AddOp BinOpKind = iota
	SubOp
	MulOp
	DivOp
	RemOp
	ShlOp
	ShrOp
	BitAndOp
	BitOrOp
	BitXorOp
	EqOp
	NeOp
	LtOp
	LeOp
	GtOp
	GeOp
	LogicalAndOp
	LogicalOrOp
)

// BinaryExpr applies a binary operator, operands inferred left to
// right.
type BinaryExpr struct {
	Op    BinOpKind
	Left  Expression
	Right Expression
	Tau   typesystem.Type
}

// BlockExpr is a statement sequence with an optional trailing value
// expression. The block's type is the trailing expression's type, or
// unit when absent.
type BlockExpr struct {
	Stmts []Expression
	Last  Expression
	Tau   typesystem.Type
}

// LetInExpr binds a generalized value in Body's scope.
type LetInExpr struct {
	Ref   *NameRef
	Value Expression
	Body  Expression
	Tau   typesystem.Type
}

// LetRecExpr binds a recursive function in In's scope. The function
// name and arguments are monomorphic inside FnBody; the function's
// type generalizes before In is inferred.
type LetRecExpr struct {
	Ref    *NameRef
	Args   []*Param
	FnBody Expression
	In     Expression
	Tau    typesystem.Type
}

// FuncExpr is an anonymous function literal.
type FuncExpr struct {
	Args []*Param
	Body Expression
	Tau  typesystem.Type
}

// CallExpr applies a callee to arguments.
type CallExpr struct {
	Callee Expression
	Args   []Expression
	Tau    typesystem.Type
}

// IfExpr is a conditional. Else may be nil, in which case the whole
// expression has type unit.
type IfExpr struct {
	Cond Expression
	Then Expression
	Else Expression
	Tau  typesystem.Type
}

// WhileExpr is a loop; its type is unit.
type WhileExpr struct {
	Cond Expression
	Body Expression
	Tau  typesystem.Type
}

// ReturnExpr returns from the innermost enclosing function. Value may
// be nil for a bare return, which checks against unit.
type ReturnExpr struct {
	Value Expression
	Tau   typesystem.Type
}

// TypeAssertionExpr checks its subject against Original and takes
// Asserted as its own type. Validity of the assertion pair is checked
// upstream.
type TypeAssertionExpr struct {
	Subject  Expression
	Original typesystem.Type
	Asserted typesystem.Type
	Tau      typesystem.Type
}

// TupleExpr builds a tuple.
type TupleExpr struct {
	Elems []Expression
	Tau   typesystem.Type
}

// StructFieldInit is one provided attribute of a struct literal.
type StructFieldInit struct {
	Name  string
	Value Expression
}

// StructExpr constructs a named struct value.
type StructExpr struct {
	Name  string
	Attrs []StructFieldInit
	Tau   typesystem.Type
}

// ArrayExpr is an array literal: either an element list, or a repeat
// expression with a syntactic count ([v; N]).
type ArrayExpr struct {
	Elems  []Expression
	Repeat Expression
	Count  int
	Tau    typesystem.Type
}

// Len returns the array's statically known length.
func (e *ArrayExpr) Len() int {
	if e.Repeat != nil {
		return e.Count
	}
	return len(e.Elems)
}

// AttrAccessExpr reads an attribute, method, or static function from
// its left-hand side.
type AttrAccessExpr struct {
	Left Expression
	Attr string
	Tau  typesystem.Type
}

func (e *ConstExpr) nodeMarker()         {}
func (e *VarExpr) nodeMarker()           {}
func (e *AssignExpr) nodeMarker()        {}
func (e *UnaryExpr) nodeMarker()         {}
func (e *BinaryExpr) nodeMarker()        {}
func (e *BlockExpr) nodeMarker()         {}
func (e *LetInExpr) nodeMarker()         {}
func (e *LetRecExpr) nodeMarker()        {}
func (e *FuncExpr) nodeMarker()          {}
func (e *CallExpr) nodeMarker()          {}
func (e *IfExpr) nodeMarker()            {}
func (e *WhileExpr) nodeMarker()         {}
func (e *ReturnExpr) nodeMarker()        {}
func (e *TypeAssertionExpr) nodeMarker() {}
func (e *TupleExpr) nodeMarker()         {}
func (e *StructExpr) nodeMarker()        {}
func (e *ArrayExpr) nodeMarker()         {}
func (e *AttrAccessExpr) nodeMarker()    {}

func (e *ConstExpr) expressionNode()         {}
func (e *VarExpr) expressionNode()           {}
func (e *AssignExpr) expressionNode()        {}
func (e *UnaryExpr) expressionNode()         {}
func (e *BinaryExpr) expressionNode()        {}
func (e *BlockExpr) expressionNode()         {}
func (e *LetInExpr) expressionNode()         {}
func (e *LetRecExpr) expressionNode()        {}
func (e *FuncExpr) expressionNode()          {}
func (e *CallExpr) expressionNode()          {}
func (e *IfExpr) expressionNode()            {}
func (e *WhileExpr) expressionNode()         {}
func (e *ReturnExpr) expressionNode()        {}
func (e *TypeAssertionExpr) expressionNode() {}
func (e *TupleExpr) expressionNode()         {}
func (e *StructExpr) expressionNode()        {}
func (e *ArrayExpr) expressionNode()         {}
func (e *AttrAccessExpr) expressionNode()    {}

func (e *ConstExpr) TypeSlot() typesystem.Type         { return e.Tau }
func (e *VarExpr) TypeSlot() typesystem.Type           { return e.Tau }
func (e *AssignExpr) TypeSlot() typesystem.Type        { return e.Tau }
func (e *UnaryExpr) TypeSlot() typesystem.Type         { return e.Tau }
func (e *BinaryExpr) TypeSlot() typesystem.Type        { return e.Tau }
func (e *BlockExpr) TypeSlot() typesystem.Type         { return e.Tau }
func (e *LetInExpr) TypeSlot() typesystem.Type         { return e.Tau }
func (e *LetRecExpr) TypeSlot() typesystem.Type        { return e.Tau }
func (e *FuncExpr) TypeSlot() typesystem.Type          { return e.Tau }
func (e *CallExpr) TypeSlot() typesystem.Type          { return e.Tau }
func (e *IfExpr) TypeSlot() typesystem.Type            { return e.Tau }
func (e *WhileExpr) TypeSlot() typesystem.Type         { return e.Tau }
func (e *ReturnExpr) TypeSlot() typesystem.Type        { return e.Tau }
func (e *TypeAssertionExpr) TypeSlot() typesystem.Type { return e.Tau }
func (e *TupleExpr) TypeSlot() typesystem.Type         { return e.Tau }
func (e *StructExpr) TypeSlot() typesystem.Type        { return e.Tau }
func (e *ArrayExpr) TypeSlot() typesystem.Type         { return e.Tau }
func (e *AttrAccessExpr) TypeSlot() typesystem.Type    { return e.Tau }

func (e *ConstExpr) SetTypeSlot(t typesystem.Type)         { e.Tau = t }
func (e *VarExpr) SetTypeSlot(t typesystem.Type)           { e.Tau = t }
func (e *AssignExpr) SetTypeSlot(t typesystem.Type)        { e.Tau = t }
func (e *UnaryExpr) SetTypeSlot(t typesystem.Type)         { e.Tau = t }
func (e *BinaryExpr) SetTypeSlot(t typesystem.Type)        { e.Tau = t }
func (e *BlockExpr) SetTypeSlot(t typesystem.Type)         { e.Tau = t }
func (e *LetInExpr) SetTypeSlot(t typesystem.Type)         { e.Tau = t }
func (e *LetRecExpr) SetTypeSlot(t typesystem.Type)        { e.Tau = t }
func (e *FuncExpr) SetTypeSlot(t typesystem.Type)          { e.Tau = t }
func (e *CallExpr) SetTypeSlot(t typesystem.Type)          { e.Tau = t }
func (e *IfExpr) SetTypeSlot(t typesystem.Type)            { e.Tau = t }
func (e *WhileExpr) SetTypeSlot(t typesystem.Type)         { e.Tau = t }
func (e *ReturnExpr) SetTypeSlot(t typesystem.Type)        { e.Tau = t }
func (e *TypeAssertionExpr) SetTypeSlot(t typesystem.Type) { e.Tau = t }
func (e *TupleExpr) SetTypeSlot(t typesystem.Type)         { e.Tau = t }
func (e *StructExpr) SetTypeSlot(t typesystem.Type)        { e.Tau = t }
func (e *ArrayExpr) SetTypeSlot(t typesystem.Type)         { e.Tau = t }
func (e *AttrAccessExpr) SetTypeSlot(t typesystem.Type)    { e.Tau = t }
