package eval

import (
	"path"
	"strconv"

	"github.com/google/uuid"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

// evalModuleInstance builds an instance of module m per `m{overrides}`:
// the parameter tuple with overrides applied, augmented with mod.this and
// (if m has an originating file) mod.pkg, then the body statements run in
// a scope seeded only with that mod binding — the module body never sees
// the lexical environment env was evaluated in.
func evalModuleInstance(m *value.Module, x *ast.CopyExpr, env *Env, ctx *Context) (value.Value, error) {
	moduleFile := ctx.CurrentFile
	if m.HasPath {
		moduleFile = m.Path
	}
	moduleCtx := ctx.withFile(moduleFile)

	defaultFields, err := evalFields(m.Params.Fields, value.NewRootEnv(), moduleCtx)
	if err != nil {
		return nil, err
	}
	defaults := value.NewTuple(defaultFields)

	overrides, err := evalOverrides(defaults, x.Overrides, env, ctx, false)
	if err != nil {
		return nil, err
	}
	mod := defaults.With(overrides)

	extras := []value.TupleField{{Name: "this", Value: m}}
	if m.HasPath {
		extras = append(extras, value.TupleField{Name: "pkg", Value: packageFunc(m.Path)})
	}
	mod = mod.With(extras)

	bodyEnv := value.NewRootEnv()
	bodyEnv.Define("mod", mod)
	bodyCtx := ctx.withFile(moduleFile)

	instance, err := evalStmts(m.Body, bodyEnv, bodyCtx)
	if err != nil {
		return nil, err
	}
	if m.Out != nil {
		return Eval(m.Out, bodyEnv, bodyCtx)
	}
	return instance, nil
}

// packageFunc builds the zero-argument function bound to mod.pkg: calling
// it re-imports the module's own originating file, which the import cache
// resolves to the already-memoized (or still-loading, via value.Cyclic)
// result — the mechanism that lets a module recurse by importing itself
// and reaching back into mod.this.
//
// The synthetic ImportExpr's literal is just the file's base name, not its
// full path: apply() evaluates this Func's body with ctx.CurrentFile set
// to modulePath (via File below), so ImportExpr evaluation resolves the
// literal against dirOf(modulePath) — joining that directory back onto the
// base name reproduces modulePath exactly, the same way any ordinary
// same-directory import would. This sidesteps requiring a PathResolver
// that is idempotent on already-canonical paths.
func packageFunc(modulePath string) *value.Func {
	body := &ast.ImportExpr{
		Import: token.NoPos,
		Path:   &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(path.Base(modulePath))},
	}
	return &value.Func{ID: uuid.New(), Params: nil, Body: body, Env: value.NewRootEnv(), File: modulePath}
}
