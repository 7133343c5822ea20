package analyzer

import (
	"fmt"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// Operator type schemes. Equality and inequality are polymorphic over
// their operand type; arithmetic, bitwise, and shift operators are
// monomorphic over u32; logical operators over bool. Quantified
// schemes are built with context-allocated variables so instantiation
// never collides with inference variables.

func binOpScheme(ctx *InferenceContext, op ast.BinOpKind) (typesystem.Scheme, error) {
	u32 := typesystem.U32
	boolean := typesystem.Bool
	switch op {
	case ast.AddOp, ast.SubOp, ast.MulOp, ast.DivOp, ast.RemOp,
		ast.ShlOp, ast.ShrOp, ast.BitAndOp, ast.BitOrOp, ast.BitXorOp:
		return typesystem.Mono(typesystem.Fn([]typesystem.Type{u32, u32}, u32)), nil
	case ast.LtOp, ast.LeOp, ast.GtOp, ast.GeOp:
		return typesystem.Mono(typesystem.Fn([]typesystem.Type{u32, u32}, boolean)), nil
	case ast.EqOp, ast.NeOp:
		a := ctx.FreshVar()
		return typesystem.Scheme{
			Vars: []int{a.ID},
			Body: typesystem.Fn([]typesystem.Type{a, a}, boolean),
		}, nil
	case ast.LogicalAndOp, ast.LogicalOrOp:
		return typesystem.Mono(typesystem.Fn([]typesystem.Type{boolean, boolean}, boolean)), nil
	default:
		return typesystem.Scheme{}, fmt.Errorf("unknown binary operator %d", op)
	}
}

func unaryOpScheme(ctx *InferenceContext, op ast.UnaryOpKind) (typesystem.Scheme, error) {
	switch op {
	case ast.NegOp:
		return typesystem.Mono(typesystem.Fn([]typesystem.Type{typesystem.U32}, typesystem.U32)), nil
	case ast.NotOp:
		return typesystem.Mono(typesystem.Fn([]typesystem.Type{typesystem.Bool}, typesystem.Bool)), nil
	case ast.DerefOp:
		a := ctx.FreshVar()
		return typesystem.Scheme{
			Vars: []int{a.ID},
			Body: typesystem.Fn([]typesystem.Type{typesystem.Ptr(a)}, a),
		}, nil
	case ast.AddrOfOp:
		a := ctx.FreshVar()
		return typesystem.Scheme{
			Vars: []int{a.ID},
			Body: typesystem.Fn([]typesystem.Type{a}, typesystem.Ptr(a)),
		}, nil
	default:
		return typesystem.Scheme{}, fmt.Errorf("unknown unary operator %d", op)
	}
}

// constScheme returns the type scheme of a literal constant. All
// literals are monomorphic today; the scheme indirection keeps the
// door open for numeric literal polymorphism.
func constScheme(n *ast.ConstExpr) typesystem.Scheme {
	switch n.Kind {
	case ast.UnitConst:
		return typesystem.Mono(typesystem.Unit)
	case ast.BoolConst:
		return typesystem.Mono(typesystem.Bool)
	case ast.U8Const:
		return typesystem.Mono(typesystem.U8)
	case ast.U32Const:
		return typesystem.Mono(typesystem.U32)
	case ast.CharConst:
		return typesystem.Mono(typesystem.Char)
	default:
		return typesystem.Mono(typesystem.Str)
	}
}
