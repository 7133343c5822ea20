package analyzer

import (
	"strings"
	"testing"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// AST builders. Type slots stay nil; ContextFromProgram primes them
// the way the desugarer would.

func u32c(v uint32) *ast.ConstExpr {
	return &ast.ConstExpr{Kind: ast.U32Const, Uint: v}
}

func boolc(b bool) *ast.ConstExpr {
	return &ast.ConstExpr{Kind: ast.BoolConst, Bool: b}
}

func unitc() *ast.ConstExpr {
	return &ast.ConstExpr{Kind: ast.UnitConst}
}

func varE(ref *ast.NameRef) *ast.VarExpr {
	return &ast.VarExpr{Ref: ref}
}

func nameE(name string) *ast.VarExpr {
	return &ast.VarExpr{Ref: &ast.NameRef{Name: name}}
}

func block(last ast.Expression, stmts ...ast.Expression) *ast.BlockExpr {
	return &ast.BlockExpr{Stmts: stmts, Last: last}
}

func bin(op ast.BinOpKind, l, r ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

func call(callee ast.Expression, args ...ast.Expression) *ast.CallExpr {
	return &ast.CallExpr{Callee: callee, Args: args}
}

func access(left ast.Expression, attr string) *ast.AttrAccessExpr {
	return &ast.AttrAccessExpr{Left: left, Attr: attr}
}

func params(refs ...*ast.NameRef) []*ast.Param {
	out := make([]*ast.Param, len(refs))
	for i, r := range refs {
		out[i] = &ast.Param{Ref: r}
	}
	return out
}

func fnDecl(ref *ast.NameRef, args []*ast.Param, body ast.Expression) *ast.FuncDecl {
	return &ast.FuncDecl{Ref: ref, Args: args, Body: body}
}

func globalDecl(ref *ast.NameRef, init ast.Expression) *ast.GlobalDecl {
	return &ast.GlobalDecl{Ref: ref, Init: init}
}

func structDecl(name string, fields ...ast.StructField) *ast.StructDecl {
	return &ast.StructDecl{Name: name, Fields: fields}
}

func program(decls ...ast.Decl) *ast.Program {
	return &ast.Program{Decls: decls}
}

func typeU32() typesystem.Type { return typesystem.U32 }

func typeChar() typesystem.Type { return typesystem.Char }

// inferProgram runs the whole pipeline and fails the test on error.
func inferProgram(t *testing.T, prog *ast.Program) (symbols.TypeEnv, typesystem.Subst) {
	t.Helper()
	_, env, subst, err := Infer(prog)
	if err != nil {
		t.Fatalf("unexpected inference error: %v", err)
	}
	return env, subst
}

// inferError runs inference expecting a failure.
func inferError(t *testing.T, prog *ast.Program) error {
	t.Helper()
	_, _, _, err := Infer(prog)
	if err == nil {
		t.Fatal("expected an inference error, got none")
	}
	return err
}

// envType renders the materialized type of a top-level binding.
func envType(t *testing.T, env symbols.TypeEnv, subst typesystem.Subst, name string) string {
	t.Helper()
	scheme, ok := env.Lookup(name)
	if !ok {
		t.Fatalf("binding %q not found in environment", name)
	}
	return scheme.Apply(subst).Body.String()
}

func expectExact(t *testing.T, err error, want string) {
	t.Helper()
	if err.Error() != want {
		t.Errorf("expected error %q, got %q", want, err.Error())
	}
}

func expectContains(t *testing.T, err error, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("expected error to contain %q, got %q", sub, err.Error())
		}
	}
}
