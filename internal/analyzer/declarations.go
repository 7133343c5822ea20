package analyzer

import (
	"fmt"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// registerDecl type-checks one top-level declaration and threads the
// environment and substitution to the next one.
func registerDecl(ctx *InferenceContext, env symbols.TypeEnv, d ast.Decl) (symbols.TypeEnv, typesystem.Subst, error) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		return registerFuncDecl(ctx, env, n)
	case *ast.ExternFuncDecl:
		return registerExternDecl(ctx, env, n)
	case *ast.GlobalDecl:
		return registerGlobalDecl(ctx, env, n)
	case *ast.StructDecl:
		// Structs were installed during context construction.
		return env, typesystem.Subst{}, nil
	case *ast.ImplDecl:
		return registerImplDecl(ctx, env, n)
	default:
		return nil, nil, fmt.Errorf("unknown declaration for registration: %T", d)
	}
}

func registerFuncDecl(ctx *InferenceContext, env symbols.TypeEnv, n *ast.FuncDecl) (symbols.TypeEnv, typesystem.Subst, error) {
	// The function sees itself monomorphically while its body is
	// checked, so recursion does not instantiate.
	envRec := env.Bind(n.Ref.Name, typesystem.Mono(n.Ref.Ty))
	total, fnTy, err := inferFunction(ctx, envRec, n.Args, n.Body)
	if err != nil {
		return nil, nil, err
	}

	s2, err := ctx.unify(n.Ref.Ty.Apply(total), fnTy)
	if err != nil {
		return nil, nil, err
	}
	total = total.Compose(s2)

	envA := env.Apply(total)
	scheme := generalize(envA.Remove(n.Ref.Name), n.Ref.Ty.Apply(total))
	return envA.Bind(n.Ref.Name, scheme), total, nil
}

func registerExternDecl(ctx *InferenceContext, env symbols.TypeEnv, n *ast.ExternFuncDecl) (symbols.TypeEnv, typesystem.Subst, error) {
	sealed := typesystem.Fn(n.Params, n.Return)
	total, err := ctx.unify(n.Ref.Ty, sealed)
	if err != nil {
		return nil, nil, err
	}
	envA := env.Apply(total)
	scheme := generalize(envA, sealed.Apply(total))
	return envA.Bind(n.Ref.Name, scheme), total, nil
}

func registerGlobalDecl(ctx *InferenceContext, env symbols.TypeEnv, n *ast.GlobalDecl) (symbols.TypeEnv, typesystem.Subst, error) {
	total, err := inferWith(ctx, env, n.Init, n.Ref.Ty)
	if err != nil {
		return nil, nil, err
	}
	// Globals bind monomorphically: they denote mutable storage, not
	// generalizable values.
	envA := env.Apply(total)
	return envA.Bind(n.Ref.Name, typesystem.Mono(n.Ref.Ty.Apply(total))), total, nil
}

func registerImplDecl(ctx *InferenceContext, env symbols.TypeEnv, n *ast.ImplDecl) (symbols.TypeEnv, typesystem.Subst, error) {
	info, ok := ctx.Structs.Lookup(n.TypeName)
	if !ok {
		return nil, nil, fmt.Errorf("cannot implement for unknown type %q", n.TypeName)
	}

	total := typesystem.Subst{}
	for _, f := range n.Funcs {
		bare := f.Ref.Name
		renamed := n.TypeName + "_" + bare
		f.Ref.Name = renamed
		f.Ref.NewName = renamed

		selfTy := typesystem.TNamedStruct{Name: n.TypeName}
		isMethod := len(f.Args) > 0 && f.Args[0].Ref.Name == "self"
		envIn := env
		if isMethod {
			self := f.Args[0]
			s, err := ctx.unify(self.Ref.Ty, selfTy)
			if err != nil {
				return nil, nil, err
			}
			total = total.Compose(s)
			env = env.Apply(s)

			// The struct sees the method before its body is checked, so
			// self.method recursion resolves through the table. The
			// receiver is dropped from the registered function's argument
			// list but stays visible to its body.
			f.Args = f.Args[1:]
			info.AddMethod(bare, f.Ref, self.Mutable)
			envIn = env.Bind("self", typesystem.Mono(selfTy))
		} else {
			info.AddStatic(bare, f.Ref)
		}

		envF, s, err := registerFuncDecl(ctx, envIn, f)
		if err != nil {
			return nil, nil, err
		}
		total = total.Compose(s)
		refreshStructRefs(ctx, total)

		// Methods and statics are reachable only through the struct.
		env = envF.Remove(renamed)
		if isMethod {
			env = env.Remove("self")
		}
	}
	return env, total, nil
}
