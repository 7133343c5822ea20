package analyzer

import (
	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// ContextFromProgram builds the inference context for a desugared
// program: struct declarations are registered in the global struct
// table, and every expression type slot and name-reference placeholder
// still unset after desugaring receives a fresh type variable.
func ContextFromProgram(prog *ast.Program) *InferenceContext {
	ctx := NewInferenceContext()
	for _, d := range prog.Decls {
		sd, ok := d.(*ast.StructDecl)
		if !ok {
			continue
		}
		info := &symbols.StructInfo{Name: sd.Name}
		for _, f := range sd.Fields {
			info.Attrs = append(info.Attrs, symbols.Attribute{Name: f.Name, Ty: f.Ty})
		}
		ctx.Structs.Register(info)
	}
	PrimeTypeSlots(ctx, prog)
	return ctx
}

// PrimeTypeSlots allocates fresh type variables for every nil type
// slot and name-reference placeholder in the program. Slots already
// filled by the desugarer are left alone.
func PrimeTypeSlots(ctx *InferenceContext, prog *ast.Program) {
	walkProgram(prog,
		func(e ast.Expression) {
			if e.TypeSlot() == nil {
				e.SetTypeSlot(ctx.FreshVar())
			}
		},
		func(r *ast.NameRef) {
			if r.Ty == nil {
				r.Ty = ctx.FreshVar()
			}
		},
	)
}

// Resolve materializes inference results: the final substitution is
// applied to every expression type slot and every name-reference cell
// of the program. Run it once inference has succeeded.
func Resolve(prog *ast.Program, subst typesystem.Subst) {
	seen := make(map[*ast.NameRef]bool)
	walkProgram(prog,
		func(e ast.Expression) {
			if t := e.TypeSlot(); t != nil {
				e.SetTypeSlot(t.Apply(subst))
			}
		},
		func(r *ast.NameRef) {
			if seen[r] {
				return
			}
			seen[r] = true
			if r.Ty != nil {
				r.Ty = r.Ty.Apply(subst)
			}
		},
	)
}
