package eval

import (
	"strconv"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

func evalSelector(x *ast.SelectorExpr, env *Env, ctx *Context) (value.Value, error) {
	baseV, err := Eval(x.X, env, ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := baseV.(value.EnvProxy); ok {
		return evalEnvSelector(x, ctx)
	}
	if c, ok := baseV.(*value.Cyclic); ok {
		return nil, errors.Newf(x.Pos(), errors.CyclicImportUse, "cannot access %q: import of %q has not finished loading (self-import cycle)", selectorName(x.Sel), c.Path)
	}

	switch base := baseV.(type) {
	case *value.Tuple:
		name, ok := ast.LabelName(x.Sel)
		if !ok {
			return nil, errors.Newf(x.Sel.Pos(), errors.BadSelector, "invalid selector on a tuple")
		}
		v, ok := base.Get(name)
		if !ok {
			return nil, errors.Newf(x.Sel.Pos(), errors.BadSelector, "no field %q", name)
		}
		return v, nil
	case *value.List:
		idx, err := selectorIndex(x.Sel)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(base.Elems) {
			return nil, errors.Newf(x.Sel.Pos(), errors.BadSelector, "index %d out of range (length %d)", idx, len(base.Elems))
		}
		return base.Elems[idx], nil
	default:
		return nil, errors.Newf(x.X.Pos(), errors.NotATuple, "cannot select into a %s", baseV.Kind())
	}
}

func selectorName(sel ast.Expr) string {
	if name, ok := ast.LabelName(sel); ok {
		return name
	}
	return "?"
}

// selectorIndex extracts a list index from a SelectorExpr's Sel, which for
// a List base must be an INT literal or a quoted string of digits.
func selectorIndex(sel ast.Expr) (int, error) {
	lit, ok := sel.(*ast.BasicLit)
	if !ok {
		return 0, errors.Newf(sel.Pos(), errors.BadSelector, "list selector must be an integer index")
	}
	switch lit.Kind {
	case token.INT:
		n, err := strconv.Atoi(lit.Value)
		if err != nil {
			return 0, errors.Newf(sel.Pos(), errors.BadSelector, "invalid index %q", lit.Value)
		}
		return n, nil
	case token.STRING:
		s := ast.Unquote(lit.Value)
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.Newf(sel.Pos(), errors.BadSelector, "quoted list selector %q is not a non-negative integer", s)
		}
		return n, nil
	default:
		return 0, errors.Newf(sel.Pos(), errors.BadSelector, "list selector must be an integer index")
	}
}

func evalEnvSelector(x *ast.SelectorExpr, ctx *Context) (value.Value, error) {
	name, ok := ast.LabelName(x.Sel)
	if !ok {
		return nil, errors.Newf(x.Sel.Pos(), errors.BadSelector, "invalid env selector")
	}
	lookup := ctx.LookupEnv
	if lookup == nil {
		lookup = defaultLookupEnv
	}
	v, found := lookup(name)
	if found {
		return value.Str(v), nil
	}
	if ctx.Nostrict {
		ctx.warnf("env.%s is not set; using Null (--nostrict)", name)
		return value.Null{}, nil
	}
	return nil, errors.Newf(x.Sel.Pos(), errors.MissingEnv, "environment variable %q is not set", name)
}
