package eval

import (
	"strings"
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/jfranklin9000/ucg/parser"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

// memFS is a minimal in-memory Loader/PathResolver pair for tests that
// exercise import/include without touching a real filesystem.
type memFS map[string]string

func (fs memFS) resolve(importerDir, literal string) (string, error) {
	if strings.HasPrefix(literal, "/") {
		return literal[1:], nil
	}
	if importerDir == "" || importerDir == "." {
		return literal, nil
	}
	return importerDir + "/" + literal, nil
}

func (fs memFS) load(canon string) ([]byte, error) {
	src, ok := fs[canon]
	if !ok {
		return nil, errNotFound(canon)
	}
	return []byte(src), nil
}

type errNotFound string

func (e errNotFound) Error() string { return "not found: " + string(e) }

func newImporter(fs memFS) *Importer {
	return NewImporter(fs.resolve, fs.load, Settings{})
}

func mustEvalFile(t *testing.T, src string) (*value.Tuple, *Context) {
	t.Helper()
	f, err := parser.ParseFile("test.ucg", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	ctx := &Context{Importer: newImporter(memFS{}), CurrentFile: "test.ucg"}
	root := value.NewRootEnv()
	root.Define("env", value.EnvProxy{})
	v, err := EvalFile(f, root, ctx)
	qt.Assert(t, qt.IsNil(err))
	tup, ok := v.(*value.Tuple)
	qt.Assert(t, qt.IsTrue(ok))
	return tup, ctx
}

func TestS1ArithmeticPrecedence(t *testing.T) {
	tup, _ := mustEvalFile(t, `let x = 1 + 2 * 3;`)
	x, ok := tup.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(x, value.Value(value.Int(7))))
}

func TestS2CopyExprOverridesAndTypeMismatch(t *testing.T) {
	tup, _ := mustEvalFile(t, `let t = {a=1,b=2}; let u = t{b=3, c=4};`)
	u, ok := tup.Get("u")
	qt.Assert(t, qt.IsTrue(ok))
	want := value.NewTuple([]value.TupleField{{Name: "a", Value: value.Int(1)}, {Name: "b", Value: value.Int(3)}, {Name: "c", Value: value.Int(4)}})
	qt.Assert(t, qt.IsTrue(value.Equal(u, want)))

	_, err := evalProgramErr(t, `let t = {a=1,b=2}; let v = t{b="x"};`)
	qt.Assert(t, qt.IsNotNil(err))
}

func evalProgramErr(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	f, err := parser.ParseFile("test.ucg", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	ctx := &Context{Importer: newImporter(memFS{}), CurrentFile: "test.ucg"}
	root := value.NewRootEnv()
	root.Define("env", value.EnvProxy{})
	return EvalFile(f, root, ctx)
}

func TestS3FormatPositional(t *testing.T) {
	tup, _ := mustEvalFile(t, `let x = "https://@:@/" % ("h", 80,);`)
	x, ok := tup.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(x, value.Value(value.Str("https://h:80/"))))
}

func TestS4FormatTemplate(t *testing.T) {
	tup, _ := mustEvalFile(t, `let x = "v=@{item.k}" % {k=5};`)
	x, ok := tup.Get("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(x, value.Value(value.Str("v=5"))))
}

func TestS5ModuleRecursionViaSelect(t *testing.T) {
	tup, _ := mustEvalFile(t, `let m = module{n=0}=>(r){
		let r = select mod.n==3, mod.this{n=mod.n+1}, { true = [mod.n] };
	};
	let result = m{};
	`)
	result, ok := tup.Get("result")
	qt.Assert(t, qt.IsTrue(ok))
	want := value.NewList([]value.Value{value.Int(3)})
	qt.Assert(t, qt.IsTrue(value.Equal(result, want)))
}

func TestS6MapFilter(t *testing.T) {
	tup, _ := mustEvalFile(t, `let a = map(func(x)=>x+1, [1,2,3]);
	let b = filter(func(c)=>c!="o", "foo");
	`)
	a, _ := tup.Get("a")
	qt.Assert(t, qt.IsTrue(value.Equal(a, value.NewList([]value.Value{value.Int(2), value.Int(3), value.Int(4)}))))
	b, _ := tup.Get("b")
	qt.Assert(t, qt.Equals(b, value.Value(value.Str("f"))))
}

type recordingSink struct {
	results []assertResult
}

type assertResult struct {
	desc string
	ok   bool
}

func (r *recordingSink) Record(desc string, ok bool, pos token.Pos) {
	r.results = append(r.results, assertResult{desc, ok})
}

func TestS7Assert(t *testing.T) {
	f, err := parser.ParseFile("test.ucg", []byte(`assert { ok = (1 in [1,2,3]) && ("foo" in {foo=1}), desc = "membership" };`))
	qt.Assert(t, qt.IsNil(err))
	sink := &recordingSink{}
	ctx := &Context{Importer: newImporter(memFS{}), CurrentFile: "test.ucg", Settings: Settings{Assertions: sink}}
	root := value.NewRootEnv()
	root.Define("env", value.EnvProxy{})
	_, err = EvalFile(f, root, ctx)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(sink.results, 1))
	qt.Assert(t, qt.IsTrue(sink.results[0].ok))
}

func TestFunctionClosureNotRecursive(t *testing.T) {
	tup, _ := mustEvalFile(t, `let x = 1; let f = func() => x; let x2 = 2; let y = f();`)
	y, ok := tup.Get("y")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(y, value.Value(value.Int(1))))
}

func TestModuleDoesNotCloseOverEnclosingScope(t *testing.T) {
	_, err := evalProgramErr(t, `let outer = 5; let m = module{}=>(outer){};
	let r = m{};
	`)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestShortCircuitAndOr(t *testing.T) {
	tup, _ := mustEvalFile(t, `let a = false && fail "x";
	let b = true || fail "x";
	`)
	a, _ := tup.Get("a")
	qt.Assert(t, qt.Equals(a, value.Value(value.Bool(false))))
	b, _ := tup.Get("b")
	qt.Assert(t, qt.Equals(b, value.Value(value.Bool(true))))
}

func TestRangeLength(t *testing.T) {
	tup, _ := mustEvalFile(t, `let r = 1:3:10;`)
	r, ok := tup.Get("r")
	qt.Assert(t, qt.IsTrue(ok))
	lst, ok := r.(*value.List)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(lst.Elems, 4)) // 1,4,7,10
}

func TestImportIdempotence(t *testing.T) {
	fs := memFS{"lib.ucg": `let x = 1;`}
	ctx := &Context{Importer: newImporter(fs), CurrentFile: "main.ucg"}
	a, err := ctx.Importer.Load("", "lib.ucg")
	qt.Assert(t, qt.IsNil(err))
	b, err := ctx.Importer.Load("", "lib.ucg")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(a == b))
}
