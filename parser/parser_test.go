package parser

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/token"
)

func mustParseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := ParseFile("test.ucg", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	return f
}

func TestParseLetAssertOut(t *testing.T) {
	f := mustParseFile(t, `let x = 1 + 2 * 3;
assert { ok = true, desc = "always" };
out json x;
`)
	qt.Assert(t, qt.HasLen(f.Stmts, 3))

	let, ok := f.Stmts[0].(*ast.LetStmt)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(let.Name.Name, "x"))
	bin, ok := let.X.(*ast.BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(bin.Op, token.ADD))

	assert, ok := f.Stmts[1].(*ast.AssertStmt)
	qt.Assert(t, qt.IsTrue(ok))
	tuple, ok := assert.X.(*ast.TupleLit)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(tuple.Fields, 2))

	out, ok := f.Stmts[2].(*ast.OutStmt)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(out.Converter.Name, "json"))
}

func TestParseCopyExpr(t *testing.T) {
	f := mustParseFile(t, `let t = {a=1,b=2};
let u = t{b=3, c=4};
`)
	let := f.Stmts[1].(*ast.LetStmt)
	cp, ok := let.X.(*ast.CopyExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(cp.Overrides, 2))
	base, ok := cp.Base.(*ast.Ident)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(base.Name, "t"))
}

func TestParseFormatExprPositional(t *testing.T) {
	f := mustParseFile(t, `let x = "https://@:@/" % ("h", 80);`)
	let := f.Stmts[0].(*ast.LetStmt)
	bin, ok := let.X.(*ast.BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(bin.Op, token.REM))
	list, ok := bin.Y.(*ast.ExprList)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(list.Elts, 2))
}

func TestParseFormatExprTemplate(t *testing.T) {
	f := mustParseFile(t, `let x = "v=@{item.k}" % {k=5};`)
	let := f.Stmts[0].(*ast.LetStmt)
	bin, ok := let.X.(*ast.BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(bin.Op, token.REM))
	_, ok = bin.Y.(*ast.TupleLit)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseModuleLit(t *testing.T) {
	src := `let m = module{n=0}=>(r){
		let r = select mod.n==3, mod.this{n=mod.n+1}, { true = [mod.n] };
	};
	`
	f := mustParseFile(t, src)
	let := f.Stmts[0].(*ast.LetStmt)
	mod, ok := let.X.(*ast.ModuleLit)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(mod.Params.Fields, 1))
	paren, ok := mod.Out.(*ast.ParenExpr)
	qt.Assert(t, qt.IsTrue(ok))
	outIdent, ok := paren.X.(*ast.Ident)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(outIdent.Name, "r"))
	qt.Assert(t, qt.HasLen(mod.Body, 1))

	inner := mod.Body[0].(*ast.LetStmt)
	sel, ok := inner.X.(*ast.SelectExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNotNil(sel.Default))
}

func TestParseMapFilterReduce(t *testing.T) {
	f := mustParseFile(t, `let a = map(func(x)=>x+1, [1,2,3]);
let b = filter(func(c)=>c!="o", "foo");
let c = reduce(func(acc,x)=>acc+x, 0, [1,2,3]);
`)
	mapExpr := f.Stmts[0].(*ast.LetStmt).X.(*ast.BuiltinExpr)
	qt.Assert(t, qt.Equals(mapExpr.Name, token.MAP))
	qt.Assert(t, qt.IsNil(mapExpr.Init))

	reduceExpr := f.Stmts[2].(*ast.LetStmt).X.(*ast.BuiltinExpr)
	qt.Assert(t, qt.Equals(reduceExpr.Name, token.REDUCE))
	qt.Assert(t, qt.IsNotNil(reduceExpr.Init))
}

func TestParseRangeExpr(t *testing.T) {
	f := mustParseFile(t, `let r = 1:2:10;`)
	rng := f.Stmts[0].(*ast.LetStmt).X.(*ast.RangeExpr)
	qt.Assert(t, qt.IsNotNil(rng.Step))
}

func TestParseSelectorChain(t *testing.T) {
	f := mustParseFile(t, `let x = a.b.0."c";`)
	let := f.Stmts[0].(*ast.LetStmt)
	sel3, ok := let.X.(*ast.SelectorExpr)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = sel3.Sel.(*ast.BasicLit)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseImportInclude(t *testing.T) {
	f := mustParseFile(t, `let a = import "std/strings";
let b = include base64 "assets/logo.png";
`)
	imp := f.Stmts[0].(*ast.LetStmt).X.(*ast.ImportExpr)
	qt.Assert(t, qt.Equals(ast.Unquote(imp.Path.Value), "std/strings"))

	inc := f.Stmts[1].(*ast.LetStmt).X.(*ast.IncludeExpr)
	qt.Assert(t, qt.Equals(inc.Type.Name, "base64"))
}

func TestParseErrorRecovers(t *testing.T) {
	_, err := ParseFile("bad.ucg", []byte(`let = 1;`))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseExprStandalone(t *testing.T) {
	x, err := ParseExpr("e.ucg", []byte(`1 + 2 * 3`))
	qt.Assert(t, qt.IsNil(err))
	_, ok := x.(*ast.BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
}
