package analyzer

import (
	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// inferFunction checks a function body under env extended with
// monomorphic argument bindings and with the return stack pushed onto
// the body's type slot. It returns the accumulated substitution and
// the function's type. The stack is popped only on normal exit;
// InferProgram resets it at entry, so an error exit leaves it for the
// caller to discard.
func inferFunction(ctx *InferenceContext, env symbols.TypeEnv, args []*ast.Param, body ast.Expression) (typesystem.Subst, typesystem.Type, error) {
	envF := env
	for _, a := range args {
		envF = envF.Bind(a.Ref.Name, typesystem.Mono(a.Ref.Ty))
	}

	ctx.pushReturn(body.TypeSlot())
	total, err := infer(ctx, envF, body)
	if err != nil {
		return nil, nil, err
	}
	ctx.popReturn()

	argTys := make([]typesystem.Type, len(args))
	for i, a := range args {
		argTys[i] = a.Ref.Ty.Apply(total)
	}
	fnTy := typesystem.Fn(argTys, body.TypeSlot().Apply(total))
	return total, fnTy, nil
}

func inferFuncExpr(ctx *InferenceContext, env symbols.TypeEnv, n *ast.FuncExpr) (typesystem.Subst, error) {
	total, fnTy, err := inferFunction(ctx, env, n.Args, n.Body)
	if err != nil {
		return nil, err
	}
	s2, err := ctx.unify(n.Tau.Apply(total), fnTy)
	if err != nil {
		return nil, err
	}
	return total.Compose(s2), nil
}

func inferCall(ctx *InferenceContext, env symbols.TypeEnv, n *ast.CallExpr) (typesystem.Subst, error) {
	// The callee is expected to be a function from the argument slots
	// to this node's slot; inferring the arguments afterwards refines
	// those slots in place.
	argTys := make([]typesystem.Type, len(n.Args))
	for i, a := range n.Args {
		argTys[i] = a.TypeSlot()
	}
	expected := typesystem.Fn(argTys, n.Tau)

	total, err := inferWith(ctx, env, n.Callee, expected)
	if err != nil {
		return nil, err
	}

	for _, a := range n.Args {
		s, err := inferWith(ctx, env.Apply(total), a, a.TypeSlot().Apply(total))
		if err != nil {
			return nil, err
		}
		total = total.Compose(s)
	}
	return total, nil
}
