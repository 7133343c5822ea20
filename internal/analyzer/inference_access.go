package analyzer

import (
	"fmt"
	"reflect"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// inferAttrAccess resolves lhs.attr. When the bearer's type is already
// nominal the attribute is looked up directly; otherwise the bearer's
// row is extended with the attribute and the struct declarations are
// consulted to collapse the row to a single candidate where possible.
func inferAttrAccess(ctx *InferenceContext, env symbols.TypeEnv, n *ast.AttrAccessExpr) (typesystem.Subst, error) {
	total, err := infer(ctx, env, n.Left)
	if err != nil {
		return nil, err
	}
	return resolveAttrAccess(ctx, n, total)
}

func resolveAttrAccess(ctx *InferenceContext, n *ast.AttrAccessExpr, total typesystem.Subst) (typesystem.Subst, error) {
	lt := n.Left.TypeSlot().Apply(total)

	switch t := lt.(type) {
	case typesystem.TNamedStruct:
		if !ctx.Structs.HasStruct(t.Name) {
			return nil, fmt.Errorf("undeclared struct %q", t.Name)
		}
		attrTy, ok := ctx.Structs.AttrOrStaticType(t.Name, n.Attr)
		if !ok {
			return nil, fmt.Errorf("attribute %q does not exist on struct %q", n.Attr, t.Name)
		}
		s, err := ctx.unify(n.Tau.Apply(total), attrTy.Apply(total))
		if err != nil {
			return nil, err
		}
		return total.Compose(s), nil

	case typesystem.TPartialStruct:
		if ty, ok := t.Row.Get(n.Attr); ok {
			s, err := ctx.unify(n.Tau.Apply(total), ty.Apply(total))
			if err != nil {
				return nil, err
			}
			return total.Compose(s), nil
		}
	}

	// The attribute is not yet known on the bearer: extend the row and
	// let the declarations decide.
	attrTy := n.Tau.Apply(total)
	ext := typesystem.Subst{}
	wasVar := false

	switch t := lt.(type) {
	case typesystem.TVar:
		wasVar = true
		row := typesystem.Row{
			Entries: []typesystem.RowEntry{{Name: n.Attr, Ty: attrTy}},
			Tail:    ctx.FreshVar(),
		}
		b, err := typesystem.Bind(t, typesystem.TPartialStruct{Row: row})
		if err != nil {
			return nil, err
		}
		ext = b
	case typesystem.TPartialStruct:
		grown := typesystem.Row{
			Entries: []typesystem.RowEntry{{Name: n.Attr, Ty: attrTy}},
			Tail:    ctx.FreshVar(),
		}
		b, err := typesystem.Bind(t.Row.Tail, typesystem.TPartialStruct{Row: grown})
		if err != nil {
			return nil, err
		}
		ext = b
	}

	extended := lt.Apply(ext)
	rowView, isRow := extended.(typesystem.TPartialStruct)
	if !isRow {
		// Attribute access on a type that is neither struct-shaped nor
		// open: match a synthetic single-binding row against the table.
		rowView = typesystem.TPartialStruct{Row: typesystem.Row{
			Entries: []typesystem.RowEntry{{Name: n.Attr, Ty: attrTy}},
			Tail:    ctx.FreshVar(),
		}}
	}

	kind, match, _ := matchStructs(ctx, rowView.Row)
	switch kind {
	case oneMatch:
		totalX := total.Compose(ext)
		s, err := ctx.unify(typesystem.TNamedStruct{Name: match}, lt.Apply(totalX))
		if err != nil {
			return nil, err
		}
		return recheckAttrAccess(ctx, n, totalX.Compose(s), lt)

	case multipleMatches:
		return recheckAttrAccess(ctx, n, total.Compose(ext), lt)

	default:
		if wasVar {
			// No declaration fits: the bearer becomes an anonymous
			// record carrying just this attribute.
			return total.Compose(ext), nil
		}
		return nil, fmt.Errorf("no struct declaration matches type %s", rowView)
	}
}

// recheckAttrAccess re-runs resolution once the bearer's type has
// structurally changed under the new substitution; the refinement may
// expose a different resolution path. The guard keeps this to at most
// one extra traversal per irreversible step (a row collapsing to a
// named struct, or growing by one attribute), so it terminates.
func recheckAttrAccess(ctx *InferenceContext, n *ast.AttrAccessExpr, total typesystem.Subst, prev typesystem.Type) (typesystem.Subst, error) {
	next := n.Left.TypeSlot().Apply(total)
	if reflect.DeepEqual(next, prev) {
		return total, nil
	}
	return resolveAttrAccess(ctx, n, total)
}
