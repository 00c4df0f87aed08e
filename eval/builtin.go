package eval

import (
	"strings"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

func evalBuiltin(x *ast.BuiltinExpr, env *Env, ctx *Context) (value.Value, error) {
	funV, err := Eval(x.Fun, env, ctx)
	if err != nil {
		return nil, err
	}
	collV, err := Eval(x.Coll, env, ctx)
	if err != nil {
		return nil, err
	}
	var initV value.Value
	if x.Init != nil {
		initV, err = Eval(x.Init, env, ctx)
		if err != nil {
			return nil, err
		}
	}

	switch coll := collV.(type) {
	case *value.List:
		return builtinList(x, funV, coll, initV, ctx)
	case *value.Tuple:
		return builtinTuple(x, funV, coll, initV, ctx)
	case value.Str:
		return builtinStr(x, funV, coll, initV, ctx)
	default:
		return nil, errors.Newf(x.Coll.Pos(), errors.NotAList, "%s expects a List, Tuple, or Str, got %s", x.Name, collV.Kind())
	}
}

func dropped(v value.Value) bool {
	switch t := v.(type) {
	case value.Bool:
		return !bool(t)
	case value.Null:
		return true
	default:
		return false
	}
}

func builtinList(x *ast.BuiltinExpr, fn value.Value, coll *value.List, init value.Value, ctx *Context) (value.Value, error) {
	switch x.Name {
	case token.MAP:
		out := make([]value.Value, len(coll.Elems))
		for i, e := range coll.Elems {
			v, err := apply(fn, []value.Value{e}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.NewList(out), nil
	case token.FILTER:
		out := make([]value.Value, 0, len(coll.Elems))
		for _, e := range coll.Elems {
			v, err := apply(fn, []value.Value{e}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			if !dropped(v) {
				out = append(out, e)
			}
		}
		return value.NewList(out), nil
	case token.REDUCE:
		acc := init
		for _, e := range coll.Elems {
			v, err := apply(fn, []value.Value{acc, e}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	default:
		return nil, errors.Newf(x.Kw, errors.ParseError, "unhandled builtin %v", x.Name)
	}
}

func builtinTuple(x *ast.BuiltinExpr, fn value.Value, coll *value.Tuple, init value.Value, ctx *Context) (value.Value, error) {
	switch x.Name {
	case token.MAP:
		out := make([]value.TupleField, len(coll.Fields))
		for i, f := range coll.Fields {
			v, err := apply(fn, []value.Value{value.Str(f.Name), f.Value}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			pair, ok := v.(*value.List)
			if !ok || len(pair.Elems) != 2 {
				return nil, errors.Newf(x.Fun.Pos(), errors.TypeMismatch, "map over a tuple must return [new_name, new_value]")
			}
			name, ok := pair.Elems[0].(value.Str)
			if !ok {
				return nil, errors.Newf(x.Fun.Pos(), errors.TypeMismatch, "map over a tuple must return a Str new_name, got %s", pair.Elems[0].Kind())
			}
			out[i] = value.TupleField{Name: string(name), Value: pair.Elems[1]}
		}
		return value.NewTuple(out), nil
	case token.FILTER:
		out := make([]value.TupleField, 0, len(coll.Fields))
		for _, f := range coll.Fields {
			v, err := apply(fn, []value.Value{value.Str(f.Name), f.Value}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			if !dropped(v) {
				out = append(out, f)
			}
		}
		return value.NewTuple(out), nil
	case token.REDUCE:
		acc := init
		for _, f := range coll.Fields {
			v, err := apply(fn, []value.Value{acc, value.Str(f.Name), f.Value}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	default:
		return nil, errors.Newf(x.Kw, errors.ParseError, "unhandled builtin %v", x.Name)
	}
}

// builtinStr iterates by Unicode code point rather than extended grapheme
// cluster: no grapheme-segmentation library is available, and code points
// are correct for all but combining-mark text.
func builtinStr(x *ast.BuiltinExpr, fn value.Value, coll value.Str, init value.Value, ctx *Context) (value.Value, error) {
	chars := strings.Split(string(coll), "")
	switch x.Name {
	case token.MAP:
		var b strings.Builder
		for _, c := range chars {
			v, err := apply(fn, []value.Value{value.Str(c)}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			s, ok := v.(value.Str)
			if !ok {
				return nil, errors.Newf(x.Fun.Pos(), errors.TypeMismatch, "map over a Str must return a Str, got %s", v.Kind())
			}
			b.WriteString(string(s))
		}
		return value.Str(b.String()), nil
	case token.FILTER:
		var b strings.Builder
		for _, c := range chars {
			v, err := apply(fn, []value.Value{value.Str(c)}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			if !dropped(v) {
				b.WriteString(c)
			}
		}
		return value.Str(b.String()), nil
	case token.REDUCE:
		acc := init
		for _, c := range chars {
			v, err := apply(fn, []value.Value{acc, value.Str(c)}, x.Kw, ctx)
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	default:
		return nil, errors.Newf(x.Kw, errors.ParseError, "unhandled builtin %v", x.Name)
	}
}
