package analyzer

import (
	"github.com/yolang-dev/yolang/internal/ast"
)

// walkExpr visits e and every expression beneath it, depth first.
// visitRef receives every name-reference cell reachable from the
// subtree, binders included.
func walkExpr(e ast.Expression, visit func(ast.Expression), visitRef func(*ast.NameRef)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *ast.ConstExpr:
	case *ast.VarExpr:
		visitRef(n.Ref)
	case *ast.AssignExpr:
		walkExpr(n.LHS, visit, visitRef)
		walkExpr(n.RHS, visit, visitRef)
	case *ast.UnaryExpr:
		walkExpr(n.Operand, visit, visitRef)
	case *ast.BinaryExpr:
		walkExpr(n.Left, visit, visitRef)
		walkExpr(n.Right, visit, visitRef)
	case *ast.BlockExpr:
		for _, s := range n.Stmts {
			walkExpr(s, visit, visitRef)
		}
		walkExpr(n.Last, visit, visitRef)
	case *ast.LetInExpr:
		visitRef(n.Ref)
		walkExpr(n.Value, visit, visitRef)
		walkExpr(n.Body, visit, visitRef)
	case *ast.LetRecExpr:
		visitRef(n.Ref)
		for _, a := range n.Args {
			visitRef(a.Ref)
		}
		walkExpr(n.FnBody, visit, visitRef)
		walkExpr(n.In, visit, visitRef)
	case *ast.FuncExpr:
		for _, a := range n.Args {
			visitRef(a.Ref)
		}
		walkExpr(n.Body, visit, visitRef)
	case *ast.CallExpr:
		walkExpr(n.Callee, visit, visitRef)
		for _, a := range n.Args {
			walkExpr(a, visit, visitRef)
		}
	case *ast.IfExpr:
		walkExpr(n.Cond, visit, visitRef)
		walkExpr(n.Then, visit, visitRef)
		walkExpr(n.Else, visit, visitRef)
	case *ast.WhileExpr:
		walkExpr(n.Cond, visit, visitRef)
		walkExpr(n.Body, visit, visitRef)
	case *ast.ReturnExpr:
		walkExpr(n.Value, visit, visitRef)
	case *ast.TypeAssertionExpr:
		walkExpr(n.Subject, visit, visitRef)
	case *ast.TupleExpr:
		for _, el := range n.Elems {
			walkExpr(el, visit, visitRef)
		}
	case *ast.StructExpr:
		for _, a := range n.Attrs {
			walkExpr(a.Value, visit, visitRef)
		}
	case *ast.ArrayExpr:
		for _, el := range n.Elems {
			walkExpr(el, visit, visitRef)
		}
		walkExpr(n.Repeat, visit, visitRef)
	case *ast.AttrAccessExpr:
		walkExpr(n.Left, visit, visitRef)
	}
}

// walkDecl visits every expression and name reference of a
// declaration.
func walkDecl(d ast.Decl, visit func(ast.Expression), visitRef func(*ast.NameRef)) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		visitRef(n.Ref)
		for _, a := range n.Args {
			visitRef(a.Ref)
		}
		walkExpr(n.Body, visit, visitRef)
	case *ast.ExternFuncDecl:
		visitRef(n.Ref)
	case *ast.GlobalDecl:
		visitRef(n.Ref)
		walkExpr(n.Init, visit, visitRef)
	case *ast.StructDecl:
	case *ast.ImplDecl:
		for _, f := range n.Funcs {
			walkDecl(f, visit, visitRef)
		}
	}
}

// walkProgram visits every expression and name reference of a program.
func walkProgram(p *ast.Program, visit func(ast.Expression), visitRef func(*ast.NameRef)) {
	for _, d := range p.Decls {
		walkDecl(d, visit, visitRef)
	}
}
