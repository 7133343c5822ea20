package analyzer

import (
	"errors"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

func inferBlock(ctx *InferenceContext, env symbols.TypeEnv, n *ast.BlockExpr) (typesystem.Subst, error) {
	total := typesystem.Subst{}
	for _, stmt := range n.Stmts {
		s, err := infer(ctx, env.Apply(total), stmt)
		if err != nil {
			return nil, err
		}
		total = total.Compose(s)
	}

	if n.Last == nil {
		s, err := ctx.unify(n.Tau.Apply(total), typesystem.Unit)
		if err != nil {
			return nil, err
		}
		return total.Compose(s), nil
	}

	s, err := inferWith(ctx, env.Apply(total), n.Last, n.Tau.Apply(total))
	if err != nil {
		return nil, err
	}
	return total.Compose(s), nil
}

func inferLetIn(ctx *InferenceContext, env symbols.TypeEnv, n *ast.LetInExpr) (typesystem.Subst, error) {
	total, err := infer(ctx, env, n.Value)
	if err != nil {
		return nil, err
	}

	envA := env.Apply(total)
	valueTy := n.Value.TypeSlot().Apply(total)
	scheme := generalize(envA.Remove(n.Ref.Name), valueTy)
	envB := envA.Bind(n.Ref.Name, scheme)

	s2, err := inferWith(ctx, envB, n.Body, n.Tau.Apply(total))
	if err != nil {
		return nil, err
	}
	total = total.Compose(s2)

	// Tie the binder's placeholder to the inferred monotype so the
	// materialized cell carries a concrete type after instantiation.
	s3, err := ctx.unify(n.Ref.Ty.Apply(total), n.Value.TypeSlot().Apply(total))
	if err != nil {
		return nil, err
	}
	return total.Compose(s3), nil
}

func inferLetRec(ctx *InferenceContext, env symbols.TypeEnv, n *ast.LetRecExpr) (typesystem.Subst, error) {
	// The function and its arguments are monomorphic placeholders
	// inside the body, so recursive calls do not instantiate.
	envRec := env.Bind(n.Ref.Name, typesystem.Mono(n.Ref.Ty))
	total, fnTy, err := inferFunction(ctx, envRec, n.Args, n.FnBody)
	if err != nil {
		return nil, err
	}

	s2, err := ctx.unify(n.Ref.Ty.Apply(total), fnTy)
	if err != nil {
		return nil, err
	}
	total = total.Compose(s2)

	envA := env.Apply(total)
	scheme := generalize(envA.Remove(n.Ref.Name), n.Ref.Ty.Apply(total))
	envB := envA.Bind(n.Ref.Name, scheme)

	s3, err := inferWith(ctx, envB, n.In, n.Tau.Apply(total))
	if err != nil {
		return nil, err
	}
	return total.Compose(s3), nil
}

func inferIf(ctx *InferenceContext, env symbols.TypeEnv, n *ast.IfExpr) (typesystem.Subst, error) {
	total, err := inferWith(ctx, env, n.Cond, typesystem.Bool)
	if err != nil {
		return nil, err
	}

	if n.Else == nil {
		s, err := ctx.unify(n.Tau.Apply(total), typesystem.Unit)
		if err != nil {
			return nil, err
		}
		total = total.Compose(s)
		s2, err := inferWith(ctx, env.Apply(total), n.Then, typesystem.Unit)
		if err != nil {
			return nil, err
		}
		return total.Compose(s2), nil
	}

	s2, err := inferWith(ctx, env.Apply(total), n.Then, n.Tau.Apply(total))
	if err != nil {
		return nil, err
	}
	total = total.Compose(s2)

	s3, err := inferWith(ctx, env.Apply(total), n.Else, n.Tau.Apply(total))
	if err != nil {
		return nil, err
	}
	return total.Compose(s3), nil
}

func inferWhile(ctx *InferenceContext, env symbols.TypeEnv, n *ast.WhileExpr) (typesystem.Subst, error) {
	total, err := inferWith(ctx, env, n.Cond, typesystem.Bool)
	if err != nil {
		return nil, err
	}
	s2, err := infer(ctx, env.Apply(total), n.Body)
	if err != nil {
		return nil, err
	}
	total = total.Compose(s2)

	s3, err := ctx.unify(n.Tau.Apply(total), typesystem.Unit)
	if err != nil {
		return nil, err
	}
	return total.Compose(s3), nil
}

func inferReturn(ctx *InferenceContext, env symbols.TypeEnv, n *ast.ReturnExpr) (typesystem.Subst, error) {
	expected, ok := ctx.currentReturn()
	if !ok {
		return nil, errors.New("'return' used outside of a function")
	}
	// The pushed slot may have been refined by earlier statements of
	// the same body; the local substitution does not cover them.
	expected = expected.Apply(ctx.globalSubst)

	var total typesystem.Subst
	if n.Value != nil {
		s, err := inferWith(ctx, env, n.Value, expected)
		if err != nil {
			return nil, err
		}
		total = s
	} else {
		s, err := ctx.unify(expected, typesystem.Unit)
		if err != nil {
			return nil, err
		}
		total = s
	}

	s2, err := ctx.unify(n.Tau.Apply(total), typesystem.Unit)
	if err != nil {
		return nil, err
	}
	return total.Compose(s2), nil
}

func inferTypeAssertion(ctx *InferenceContext, env symbols.TypeEnv, n *ast.TypeAssertionExpr) (typesystem.Subst, error) {
	total, err := inferWith(ctx, env, n.Subject, n.Original)
	if err != nil {
		return nil, err
	}
	s2, err := ctx.unify(n.Tau.Apply(total), n.Asserted.Apply(total))
	if err != nil {
		return nil, err
	}
	return total.Compose(s2), nil
}
