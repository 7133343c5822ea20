package analyzer

import (
	"testing"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

func TestStructLiteralMissingAttribute(t *testing.T) {
	g := &ast.NameRef{Name: "g"}
	prog := program(
		pointDecl(),
		globalDecl(g, &ast.StructExpr{Name: "Point", Attrs: []ast.StructFieldInit{
			{Name: "x", Value: u32c(1)},
		}}),
	)
	err := inferError(t, prog)
	expectExact(t, err, `missing attribute "y" for struct "Point"`)
}

func TestStructLiteralExtraneousAttribute(t *testing.T) {
	g := &ast.NameRef{Name: "g"}
	prog := program(
		pointDecl(),
		globalDecl(g, &ast.StructExpr{Name: "Point", Attrs: []ast.StructFieldInit{
			{Name: "x", Value: u32c(1)},
			{Name: "y", Value: u32c(2)},
			{Name: "z", Value: u32c(3)},
		}}),
	)
	err := inferError(t, prog)
	expectExact(t, err, `extraneous attribute "z" for struct "Point"`)
}

func TestStructLiteralUndeclared(t *testing.T) {
	g := &ast.NameRef{Name: "g"}
	prog := program(globalDecl(g, &ast.StructExpr{Name: "Q"}))
	err := inferError(t, prog)
	expectExact(t, err, `undeclared struct "Q"`)
}

func TestStructLiteralAttributeTypeMismatch(t *testing.T) {
	g := &ast.NameRef{Name: "g"}
	prog := program(
		pointDecl(),
		globalDecl(g, &ast.StructExpr{Name: "Point", Attrs: []ast.StructFieldInit{
			{Name: "x", Value: boolc(true)},
			{Name: "y", Value: u32c(2)},
		}}),
	)
	err := inferError(t, prog)
	expectExact(t, err, "type mismatch: expected u32, got bool")
}

func TestImplMethodAccess(t *testing.T) {
	dist := &ast.NameRef{Name: "dist"}
	self := &ast.NameRef{Name: "self"}
	pt := &ast.NameRef{Name: "pt"}
	d := &ast.NameRef{Name: "d"}

	impl := &ast.ImplDecl{TypeName: "Point", Funcs: []*ast.FuncDecl{
		fnDecl(dist, params(self),
			block(bin(ast.AddOp, access(varE(self), "x"), access(varE(self), "y")))),
	}}

	prog := program(
		pointDecl(),
		impl,
		globalDecl(pt, &ast.StructExpr{Name: "Point", Attrs: []ast.StructFieldInit{
			{Name: "x", Value: u32c(3)},
			{Name: "y", Value: u32c(4)},
		}}),
		globalDecl(d, call(access(varE(pt), "dist"))),
	)

	env, subst := inferProgram(t, prog)
	if got := envType(t, env, subst, "d"); got != "u32" {
		t.Errorf("d: expected u32, got %s", got)
	}
	// Methods are reachable only through the struct; the renamed
	// function must not leak into the global environment.
	if _, ok := env.Lookup("Point_dist"); ok {
		t.Error("Point_dist should have been removed from the environment")
	}
	if dist.Name != "Point_dist" {
		t.Errorf("method should be renamed for codegen, got %q", dist.Name)
	}
}

func TestImplStaticAccess(t *testing.T) {
	origin := &ast.NameRef{Name: "origin"}
	o := &ast.NameRef{Name: "o"}

	impl := &ast.ImplDecl{TypeName: "Point", Funcs: []*ast.FuncDecl{
		fnDecl(origin, nil, block(&ast.StructExpr{Name: "Point", Attrs: []ast.StructFieldInit{
			{Name: "x", Value: u32c(0)},
			{Name: "y", Value: u32c(0)},
		}})),
	}}

	prog := program(
		pointDecl(),
		impl,
		globalDecl(o, call(access(nameE("Point"), "origin"))),
	)

	env, subst := inferProgram(t, prog)
	if got := envType(t, env, subst, "o"); got != "Point" {
		t.Errorf("o: expected Point, got %s", got)
	}
}

func TestImplForUnknownType(t *testing.T) {
	f := &ast.NameRef{Name: "f"}
	impl := &ast.ImplDecl{TypeName: "Ghost", Funcs: []*ast.FuncDecl{
		fnDecl(f, nil, block(unitc())),
	}}
	err := inferError(t, program(impl))
	expectExact(t, err, `cannot implement for unknown type "Ghost"`)
}

func TestExternDeclaration(t *testing.T) {
	malloc := &ast.NameRef{Name: "malloc"}
	m := &ast.NameRef{Name: "m"}

	prog := program(
		&ast.ExternFuncDecl{
			Ref:    malloc,
			Params: []typesystem.Type{typesystem.U32},
			Return: typesystem.Ptr(typesystem.U8),
		},
		globalDecl(m, call(nameE("malloc"), u32c(16))),
	)

	env, subst := inferProgram(t, prog)
	if got := envType(t, env, subst, "malloc"); got != "Fn(u32) -> Ptr<u8>" {
		t.Errorf("malloc: expected Fn(u32) -> Ptr<u8>, got %s", got)
	}
	if got := envType(t, env, subst, "m"); got != "Ptr<u8>" {
		t.Errorf("m: expected Ptr<u8>, got %s", got)
	}
}

func TestExternArgumentMismatch(t *testing.T) {
	putc := &ast.NameRef{Name: "put_char"}
	g := &ast.NameRef{Name: "g"}

	prog := program(
		&ast.ExternFuncDecl{
			Ref:    putc,
			Params: []typesystem.Type{typesystem.Char},
			Return: typesystem.Unit,
		},
		globalDecl(g, call(nameE("put_char"), u32c(65))),
	)

	err := inferError(t, prog)
	expectContains(t, err, "type mismatch", "char", "u32")
}

func TestResolveMaterializesSlots(t *testing.T) {
	f := &ast.NameRef{Name: "f"}
	x := &ast.NameRef{Name: "x"}
	body := block(bin(ast.AddOp, varE(x), u32c(1)))
	prog := program(fnDecl(f, params(x), body))

	_, subst := inferProgram(t, prog)
	Resolve(prog, subst)

	if got := x.Ty.String(); got != "u32" {
		t.Errorf("x: expected u32, got %s", got)
	}
	if got := body.Tau.String(); got != "u32" {
		t.Errorf("body slot: expected u32, got %s", got)
	}
	if got := f.Ty.String(); got != "Fn(u32) -> u32" {
		t.Errorf("f: expected Fn(u32) -> u32, got %s", got)
	}
}

func TestStructMatchingCounts(t *testing.T) {
	prog := program(
		structDecl("A", ast.StructField{Name: "x", Ty: typesystem.U32}),
		structDecl("B",
			ast.StructField{Name: "x", Ty: typesystem.U32},
			ast.StructField{Name: "y", Ty: typesystem.Bool}),
	)
	ctx := ContextFromProgram(prog)

	row := func(entries ...typesystem.RowEntry) typesystem.Row {
		return typesystem.Row{Entries: entries, Tail: ctx.FreshVar()}
	}

	kind, name, _ := matchStructs(ctx, row(typesystem.RowEntry{Name: "x", Ty: typesystem.U32}))
	if kind != multipleMatches {
		t.Errorf("x: expected multiple matches, got %v (%s)", kind, name)
	}

	kind, name, _ = matchStructs(ctx, row(typesystem.RowEntry{Name: "y", Ty: ctx.FreshVar()}))
	if kind != oneMatch || name != "B" {
		t.Errorf("y: expected OneMatch(B), got %v (%s)", kind, name)
	}

	kind, _, _ = matchStructs(ctx, row(typesystem.RowEntry{Name: "z", Ty: typesystem.U32}))
	if kind != noMatch {
		t.Errorf("z: expected no match, got %v", kind)
	}

	// Declared attribute types constrain matching.
	kind, _, _ = matchStructs(ctx, row(typesystem.RowEntry{Name: "x", Ty: typesystem.Bool}))
	if kind != noMatch {
		t.Errorf("x: bool: expected no match, got %v", kind)
	}
}
