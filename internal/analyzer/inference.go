// Package analyzer implements the type inference pass over the core
// AST: a Hindley-Milner engine with let-generalization, named and
// partial struct types, and structural resolution of attribute access.
package analyzer

import (
	"fmt"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// InferenceContext holds the state for a type inference pass: the
// fresh-variable allocator, the global struct table, and the
// function-return stack. Using a context instead of process globals
// keeps variable indices predictable in tests.
type InferenceContext struct {
	counter int
	Structs *symbols.StructTable

	// returnStack tracks the return type of the lexically innermost
	// enclosing function body. Pushed on entry to a function body,
	// popped on normal exit; an inference error leaves it as-is and
	// InferProgram resets it at entry.
	returnStack []typesystem.Type

	// globalSubst accumulates every substitution produced during the
	// pass. Judgments that consult types from outside the expression
	// currently being walked (the return stack) apply it first, since
	// the local substitution does not cover earlier siblings.
	globalSubst typesystem.Subst
}

// NewInferenceContext creates a context with an empty struct table.
func NewInferenceContext() *InferenceContext {
	return &InferenceContext{
		Structs:     symbols.NewStructTable(),
		globalSubst: typesystem.Subst{},
	}
}

// FreshVar allocates a fresh type variable. Indices are monotonically
// allocated and never recycled within a compilation.
func (ctx *InferenceContext) FreshVar() typesystem.TVar {
	ctx.counter++
	return typesystem.TVar{ID: ctx.counter}
}

func (ctx *InferenceContext) unifier() typesystem.Unifier {
	return typesystem.Unifier{Structs: ctx.Structs, Fresh: ctx.FreshVar}
}

// unify runs unification with the context's struct table and
// fresh-variable source.
func (ctx *InferenceContext) unify(expected, actual typesystem.Type) (typesystem.Subst, error) {
	return ctx.unifier().Unify(expected, actual)
}

func (ctx *InferenceContext) pushReturn(t typesystem.Type) {
	ctx.returnStack = append(ctx.returnStack, t)
}

func (ctx *InferenceContext) popReturn() {
	ctx.returnStack = ctx.returnStack[:len(ctx.returnStack)-1]
}

func (ctx *InferenceContext) currentReturn() (typesystem.Type, bool) {
	if len(ctx.returnStack) == 0 {
		return nil, false
	}
	return ctx.returnStack[len(ctx.returnStack)-1], true
}

// Instantiate replaces each quantified variable of a scheme by a fresh
// type variable and returns the rewritten body.
func (ctx *InferenceContext) Instantiate(scheme typesystem.Scheme) typesystem.Type {
	if len(scheme.Vars) == 0 {
		return scheme.Body
	}
	subst := make(typesystem.Subst, len(scheme.Vars))
	for _, v := range scheme.Vars {
		subst[v] = ctx.FreshVar()
	}
	return scheme.Body.Apply(subst)
}

// generalize closes t over the variables free in t but not in env.
func generalize(env symbols.TypeEnv, t typesystem.Type) typesystem.Scheme {
	return typesystem.Generalize(env.FreeTypeVariables(), t)
}

// infer walks one expression and returns a substitution sigma such
// that sigma applied to the node's type slot is the inferred type of
// the expression under sigma applied to env.
func infer(ctx *InferenceContext, env symbols.TypeEnv, e ast.Expression) (typesystem.Subst, error) {
	s, err := inferNode(ctx, env, e)
	if err != nil {
		return nil, err
	}
	ctx.globalSubst = ctx.globalSubst.Compose(s)
	return s, nil
}

func inferNode(ctx *InferenceContext, env symbols.TypeEnv, e ast.Expression) (typesystem.Subst, error) {
	switch n := e.(type) {
	case *ast.ConstExpr:
		return inferConst(ctx, n)
	case *ast.VarExpr:
		return inferVar(ctx, env, n)
	case *ast.AssignExpr:
		return inferAssign(ctx, env, n)
	case *ast.UnaryExpr:
		return inferUnary(ctx, env, n)
	case *ast.BinaryExpr:
		return inferBinary(ctx, env, n)
	case *ast.BlockExpr:
		return inferBlock(ctx, env, n)
	case *ast.LetInExpr:
		return inferLetIn(ctx, env, n)
	case *ast.LetRecExpr:
		return inferLetRec(ctx, env, n)
	case *ast.FuncExpr:
		return inferFuncExpr(ctx, env, n)
	case *ast.CallExpr:
		return inferCall(ctx, env, n)
	case *ast.IfExpr:
		return inferIf(ctx, env, n)
	case *ast.WhileExpr:
		return inferWhile(ctx, env, n)
	case *ast.ReturnExpr:
		return inferReturn(ctx, env, n)
	case *ast.TypeAssertionExpr:
		return inferTypeAssertion(ctx, env, n)
	case *ast.TupleExpr:
		return inferTuple(ctx, env, n)
	case *ast.StructExpr:
		return inferStructLiteral(ctx, env, n)
	case *ast.ArrayExpr:
		return inferArray(ctx, env, n)
	case *ast.AttrAccessExpr:
		return inferAttrAccess(ctx, env, n)
	default:
		return nil, fmt.Errorf("unknown node type for inference: %T", e)
	}
}

// inferWith infers e and additionally unifies its type with expected.
func inferWith(ctx *InferenceContext, env symbols.TypeEnv, e ast.Expression, expected typesystem.Type) (typesystem.Subst, error) {
	s, err := infer(ctx, env, e)
	if err != nil {
		return nil, err
	}
	s2, err := ctx.unify(expected.Apply(s), e.TypeSlot().Apply(s))
	if err != nil {
		return nil, err
	}
	ctx.globalSubst = ctx.globalSubst.Compose(s2)
	return s.Compose(s2), nil
}

// InferProgram type-checks a whole program: it clears the return
// stack, folds declaration registration left to right threading the
// environment and the accumulated substitution, and returns both. The
// caller applies the final substitution to materialize node types
// (see Resolve).
func InferProgram(ctx *InferenceContext, prog *ast.Program) (symbols.TypeEnv, typesystem.Subst, error) {
	ctx.returnStack = ctx.returnStack[:0]
	ctx.globalSubst = typesystem.Subst{}
	env := symbols.NewTypeEnv()
	total := typesystem.Subst{}
	for _, d := range prog.Decls {
		newEnv, s, err := registerDecl(ctx, env, d)
		if err != nil {
			return nil, nil, err
		}
		env = newEnv
		total = total.Compose(s)
		// Later declarations look methods and statics up through the
		// struct table's name-reference cells; refresh them so the types
		// seen there reflect everything inferred so far.
		refreshStructRefs(ctx, total)
	}
	return env, total, nil
}

// Infer builds a context from the program (registering structs and
// priming type slots) and runs InferProgram.
func Infer(prog *ast.Program) (*InferenceContext, symbols.TypeEnv, typesystem.Subst, error) {
	ctx := ContextFromProgram(prog)
	env, subst, err := InferProgram(ctx, prog)
	if err != nil {
		return ctx, nil, nil, err
	}
	return ctx, env, subst, nil
}

func refreshStructRefs(ctx *InferenceContext, s typesystem.Subst) {
	if len(s) == 0 {
		return
	}
	for _, name := range ctx.Structs.Names() {
		info, _ := ctx.Structs.Lookup(name)
		for i := range info.Attrs {
			if m := info.Attrs[i].Impl; m != nil && m.Ref.Ty != nil {
				m.Ref.Ty = m.Ref.Ty.Apply(s)
			}
		}
		for i := range info.Statics {
			if ref := info.Statics[i].Ref; ref.Ty != nil {
				ref.Ty = ref.Ty.Apply(s)
			}
		}
	}
}
