package analyzer

import (
	"fmt"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

func inferConst(ctx *InferenceContext, n *ast.ConstExpr) (typesystem.Subst, error) {
	return ctx.unify(n.Tau, ctx.Instantiate(constScheme(n)))
}

func inferVar(ctx *InferenceContext, env symbols.TypeEnv, n *ast.VarExpr) (typesystem.Subst, error) {
	if scheme, ok := env.Lookup(n.Ref.Name); ok {
		return ctx.unify(n.Tau, ctx.Instantiate(scheme))
	}
	// A bare struct name projects its static functions as a partial
	// row, giving StructName.func access the same resolution path as
	// any other attribute read.
	if info, ok := ctx.Structs.Lookup(n.Ref.Name); ok {
		row := typesystem.Row{Tail: ctx.FreshVar()}
		for _, st := range info.Statics {
			row.Entries = append(row.Entries, typesystem.RowEntry{Name: st.Name, Ty: st.Ref.Ty})
		}
		return ctx.unify(n.Tau, typesystem.TPartialStruct{Row: row})
	}
	return nil, fmt.Errorf("unbound variable: %q", n.Ref.Name)
}

func inferAssign(ctx *InferenceContext, env symbols.TypeEnv, n *ast.AssignExpr) (typesystem.Subst, error) {
	s, err := infer(ctx, env, n.RHS)
	if err != nil {
		return nil, err
	}
	// The place expression is inferred with an expected type equal to
	// its own post-substitution slot, then tied to the value's type.
	s2, err := inferWith(ctx, env.Apply(s), n.LHS, n.LHS.TypeSlot().Apply(s))
	if err != nil {
		return nil, err
	}
	total := s.Compose(s2)

	s3, err := ctx.unify(n.LHS.TypeSlot().Apply(total), n.RHS.TypeSlot().Apply(total))
	if err != nil {
		return nil, err
	}
	total = total.Compose(s3)

	s4, err := ctx.unify(n.Tau.Apply(total), typesystem.Unit)
	if err != nil {
		return nil, err
	}
	return total.Compose(s4), nil
}

func inferUnary(ctx *InferenceContext, env symbols.TypeEnv, n *ast.UnaryExpr) (typesystem.Subst, error) {
	total, err := infer(ctx, env, n.Operand)
	if err != nil {
		return nil, err
	}
	scheme, err := unaryOpScheme(ctx, n.Op)
	if err != nil {
		return nil, err
	}
	observed := typesystem.Fn(
		[]typesystem.Type{n.Operand.TypeSlot().Apply(total)},
		n.Tau.Apply(total),
	)
	s2, err := ctx.unify(ctx.Instantiate(scheme), observed)
	if err != nil {
		return nil, err
	}
	return total.Compose(s2), nil
}

func inferBinary(ctx *InferenceContext, env symbols.TypeEnv, n *ast.BinaryExpr) (typesystem.Subst, error) {
	total, err := infer(ctx, env, n.Left)
	if err != nil {
		return nil, err
	}
	s2, err := infer(ctx, env.Apply(total), n.Right)
	if err != nil {
		return nil, err
	}
	total = total.Compose(s2)

	scheme, err := binOpScheme(ctx, n.Op)
	if err != nil {
		return nil, err
	}
	observed := typesystem.Fn(
		[]typesystem.Type{n.Left.TypeSlot().Apply(total), n.Right.TypeSlot().Apply(total)},
		n.Tau.Apply(total),
	)
	s3, err := ctx.unify(ctx.Instantiate(scheme), observed)
	if err != nil {
		return nil, err
	}
	return total.Compose(s3), nil
}

func inferTuple(ctx *InferenceContext, env symbols.TypeEnv, n *ast.TupleExpr) (typesystem.Subst, error) {
	total := typesystem.Subst{}
	for _, el := range n.Elems {
		s, err := infer(ctx, env.Apply(total), el)
		if err != nil {
			return nil, err
		}
		total = total.Compose(s)
	}
	elems := make([]typesystem.Type, len(n.Elems))
	for i, el := range n.Elems {
		elems[i] = el.TypeSlot().Apply(total)
	}
	s2, err := ctx.unify(n.Tau.Apply(total), typesystem.Tuple(elems...))
	if err != nil {
		return nil, err
	}
	return total.Compose(s2), nil
}

func inferStructLiteral(ctx *InferenceContext, env symbols.TypeEnv, n *ast.StructExpr) (typesystem.Subst, error) {
	info, ok := ctx.Structs.Lookup(n.Name)
	if !ok {
		return nil, fmt.Errorf("undeclared struct %q", n.Name)
	}

	total := typesystem.Subst{}
	for _, provided := range n.Attrs {
		attr, ok := info.Attr(provided.Name)
		if !ok || attr.Impl != nil {
			return nil, fmt.Errorf("extraneous attribute %q for struct %q", provided.Name, n.Name)
		}
		s, err := inferWith(ctx, env.Apply(total), provided.Value, attr.Ty.Apply(total))
		if err != nil {
			return nil, err
		}
		total = total.Compose(s)
	}

	for _, attr := range info.Attrs {
		if attr.Impl != nil {
			continue
		}
		found := false
		for _, provided := range n.Attrs {
			if provided.Name == attr.Name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("missing attribute %q for struct %q", attr.Name, n.Name)
		}
	}

	s2, err := ctx.unify(n.Tau.Apply(total), typesystem.TNamedStruct{Name: n.Name})
	if err != nil {
		return nil, err
	}
	return total.Compose(s2), nil
}

func inferArray(ctx *InferenceContext, env symbols.TypeEnv, n *ast.ArrayExpr) (typesystem.Subst, error) {
	elem := ctx.FreshVar()
	total := typesystem.Subst{}

	if n.Repeat != nil {
		s, err := inferWith(ctx, env, n.Repeat, elem)
		if err != nil {
			return nil, err
		}
		total = s
	} else {
		for _, el := range n.Elems {
			s, err := inferWith(ctx, env.Apply(total), el, elem.Apply(total))
			if err != nil {
				return nil, err
			}
			total = total.Compose(s)
		}
	}

	s2, err := ctx.unify(
		n.Tau.Apply(total),
		typesystem.Array(elem.Apply(total), n.Len()),
	)
	if err != nil {
		return nil, err
	}
	return total.Compose(s2), nil
}
