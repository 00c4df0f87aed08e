package eval

import (
	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/value"
)

func evalCopy(x *ast.CopyExpr, env *Env, ctx *Context) (value.Value, error) {
	baseV, err := Eval(x.Base, env, ctx)
	if err != nil {
		return nil, err
	}
	switch base := baseV.(type) {
	case *value.Tuple:
		return evalTupleCopy(base, x, env, ctx)
	case *value.Module:
		return evalModuleInstance(base, x, env, ctx)
	default:
		return nil, errors.Newf(x.Base.Pos(), errors.NotATuple, "copy base must be a tuple or module, got %s", baseV.Kind())
	}
}

// sameVariantOrNull implements the copy-expression typing rule: a new
// field value must be Null or share the existing field's variant.
func sameVariantOrNull(newV, existing value.Value) bool {
	if _, ok := newV.(value.Null); ok {
		return true
	}
	return newV.Kind() == existing.Kind()
}

// evalOverrides evaluates a copy expression's override fields against env
// augmented with self = base, enforcing the same-variant-or-Null rule
// against base's existing fields. When allowNew is false, overriding a
// name absent from base is itself an error (module instantiation); when
// true, it is a plain new field (tuple copy).
func evalOverrides(base *value.Tuple, overrides []*ast.Field, env *Env, ctx *Context, allowNew bool) ([]value.TupleField, error) {
	selfEnv := env.Child()
	selfEnv.Define("self", base)

	out := make([]value.TupleField, 0, len(overrides))
	for _, f := range overrides {
		name, ok := ast.LabelName(f.Name)
		if !ok {
			return nil, errors.Newf(f.Name.Pos(), errors.ParseError, "invalid override label")
		}
		v, err := Eval(f.Value, selfEnv, ctx)
		if err != nil {
			return nil, err
		}
		existing, exists := base.Get(name)
		if !exists && !allowNew {
			return nil, errors.Newf(f.Name.Pos(), errors.BadSelector, "%q is not a parameter of this module", name)
		}
		if exists && !sameVariantOrNull(v, existing) {
			return nil, errors.Newf(f.Value.Pos(), errors.CopyTypeMismatch, "field %q: expected %s or Null, got %s", name, existing.Kind(), v.Kind())
		}
		out = append(out, value.TupleField{Name: name, Value: v})
	}
	return out, nil
}

func evalTupleCopy(base *value.Tuple, x *ast.CopyExpr, env *Env, ctx *Context) (value.Value, error) {
	overrides, err := evalOverrides(base, x.Overrides, env, ctx, true)
	if err != nil {
		return nil, err
	}
	return base.With(overrides), nil
}
