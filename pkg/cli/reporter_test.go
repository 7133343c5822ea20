package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yolang-dev/yolang/internal/ast"
)

func TestReporterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Error(errors.New(`unbound variable: "x"`))

	got := buf.String()
	want := "error: unbound variable: \"x\"\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("non-terminal output must not contain ANSI escapes")
	}
}

func TestCheckReportsFirstError(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	prog := &ast.Program{Decls: []ast.Decl{
		&ast.GlobalDecl{
			Ref:  &ast.NameRef{Name: "g"},
			Init: &ast.VarExpr{Ref: &ast.NameRef{Name: "nope"}},
		},
	}}

	if Check(prog, r) {
		t.Fatal("expected Check to fail")
	}
	if !strings.Contains(buf.String(), `unbound variable: "nope"`) {
		t.Errorf("expected the contractual message, got %q", buf.String())
	}
}

func TestCheckMaterializesTypes(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	g := &ast.NameRef{Name: "g"}
	init := &ast.ConstExpr{Kind: ast.U32Const, Uint: 7}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.GlobalDecl{Ref: g, Init: init},
	}}

	if !Check(prog, r) {
		t.Fatalf("expected Check to succeed, output: %q", buf.String())
	}
	if got := g.Ty.String(); got != "u32" {
		t.Errorf("expected g to materialize as u32, got %s", got)
	}
	if got := init.Tau.String(); got != "u32" {
		t.Errorf("expected the literal slot to materialize as u32, got %s", got)
	}
}
