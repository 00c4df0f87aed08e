package eval

import (
	"regexp"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

func evalUnary(x *ast.UnaryExpr, env *Env, ctx *Context) (value.Value, error) {
	v, err := Eval(x.X, env, ctx)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case token.NOT:
		b, ok := v.(value.Bool)
		if !ok {
			return nil, errors.Newf(x.X.Pos(), errors.TypeMismatch, "not expects Bool, got %s", v.Kind())
		}
		return !b, nil
	case token.SUB:
		switch n := v.(type) {
		case value.Int:
			return -n, nil
		case value.Float:
			return -n, nil
		default:
			return nil, errors.Newf(x.X.Pos(), errors.TypeMismatch, "unary - expects Int or Float, got %s", v.Kind())
		}
	default:
		return nil, errors.Newf(x.Pos(), errors.ParseError, "unhandled unary operator %v", x.Op)
	}
}

func evalBinary(x *ast.BinaryExpr, env *Env, ctx *Context) (value.Value, error) {
	switch x.Op {
	case token.REM:
		return evalFormat(x, env, ctx)
	case token.LAND:
		lv, err := Eval(x.X, env, ctx)
		if err != nil {
			return nil, err
		}
		lb, ok := lv.(value.Bool)
		if !ok {
			return nil, errors.Newf(x.X.Pos(), errors.TypeMismatch, "&& expects Bool, got %s", lv.Kind())
		}
		if !lb {
			return value.Bool(false), nil
		}
		rv, err := Eval(x.Y, env, ctx)
		if err != nil {
			return nil, err
		}
		rb, ok := rv.(value.Bool)
		if !ok {
			return nil, errors.Newf(x.Y.Pos(), errors.TypeMismatch, "&& expects Bool, got %s", rv.Kind())
		}
		return rb, nil
	case token.LOR:
		lv, err := Eval(x.X, env, ctx)
		if err != nil {
			return nil, err
		}
		lb, ok := lv.(value.Bool)
		if !ok {
			return nil, errors.Newf(x.X.Pos(), errors.TypeMismatch, "|| expects Bool, got %s", lv.Kind())
		}
		if lb {
			return value.Bool(true), nil
		}
		rv, err := Eval(x.Y, env, ctx)
		if err != nil {
			return nil, err
		}
		rb, ok := rv.(value.Bool)
		if !ok {
			return nil, errors.Newf(x.Y.Pos(), errors.TypeMismatch, "|| expects Bool, got %s", rv.Kind())
		}
		return rb, nil
	}

	lv, err := Eval(x.X, env, ctx)
	if err != nil {
		return nil, err
	}
	rv, err := Eval(x.Y, env, ctx)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case token.ADD:
		return evalAdd(x, lv, rv)
	case token.SUB, token.MUL, token.QUO:
		return evalArith(x, lv, rv)
	case token.DREM:
		return evalIntMod(x, lv, rv)
	case token.EQL:
		return value.Bool(value.Equal(lv, rv)), nil
	case token.NEQ:
		return value.Bool(!value.Equal(lv, rv)), nil
	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		return evalCompare(x, lv, rv)
	case token.MTCH, token.NMTC:
		return evalMatch(x, lv, rv)
	case token.IN:
		return evalIn(x, lv, rv)
	case token.IS:
		return evalIs(x, lv, rv)
	default:
		return nil, errors.Newf(x.Pos(), errors.ParseError, "unhandled binary operator %v", x.Op)
	}
}

func evalAdd(x *ast.BinaryExpr, lv, rv value.Value) (value.Value, error) {
	switch l := lv.(type) {
	case value.Int:
		r, ok := rv.(value.Int)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		return l + r, nil
	case value.Float:
		r, ok := rv.(value.Float)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		return l + r, nil
	case value.Str:
		r, ok := rv.(value.Str)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		return l + r, nil
	case *value.List:
		r, ok := rv.(*value.List)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		out := make([]value.Value, 0, len(l.Elems)+len(r.Elems))
		out = append(out, l.Elems...)
		out = append(out, r.Elems...)
		return value.NewList(out), nil
	default:
		return nil, typeMismatch(x, lv, rv)
	}
}

func evalArith(x *ast.BinaryExpr, lv, rv value.Value) (value.Value, error) {
	switch l := lv.(type) {
	case value.Int:
		r, ok := rv.(value.Int)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		switch x.Op {
		case token.SUB:
			return l - r, nil
		case token.MUL:
			return l * r, nil
		case token.QUO:
			if r == 0 {
				return nil, errors.Newf(x.OpPos, errors.RangeError, "integer division by zero")
			}
			return l / r, nil
		}
	case value.Float:
		r, ok := rv.(value.Float)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		switch x.Op {
		case token.SUB:
			return l - r, nil
		case token.MUL:
			return l * r, nil
		case token.QUO:
			if r == 0 {
				return nil, errors.Newf(x.OpPos, errors.RangeError, "float division by zero")
			}
			return l / r, nil
		}
	}
	return nil, typeMismatch(x, lv, rv)
}

func evalIntMod(x *ast.BinaryExpr, lv, rv value.Value) (value.Value, error) {
	l, lok := lv.(value.Int)
	r, rok := rv.(value.Int)
	if !lok || !rok {
		return nil, errors.Newf(x.OpPos, errors.TypeMismatch, "%%%% expects Int %%%% Int, got %s %%%% %s", lv.Kind(), rv.Kind())
	}
	if r == 0 {
		return nil, errors.Newf(x.OpPos, errors.RangeError, "integer modulus by zero")
	}
	return l % r, nil
}

func evalCompare(x *ast.BinaryExpr, lv, rv value.Value) (value.Value, error) {
	switch l := lv.(type) {
	case value.Int:
		r, ok := rv.(value.Int)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		return value.Bool(compareOrdered(x.Op, float64(l), float64(r))), nil
	case value.Float:
		r, ok := rv.(value.Float)
		if !ok {
			return nil, typeMismatch(x, lv, rv)
		}
		return value.Bool(compareOrdered(x.Op, float64(l), float64(r))), nil
	default:
		return nil, typeMismatch(x, lv, rv)
	}
}

func compareOrdered(op token.Token, l, r float64) bool {
	switch op {
	case token.LSS:
		return l < r
	case token.LEQ:
		return l <= r
	case token.GTR:
		return l > r
	case token.GEQ:
		return l >= r
	}
	return false
}

func evalMatch(x *ast.BinaryExpr, lv, rv value.Value) (value.Value, error) {
	l, lok := lv.(value.Str)
	r, rok := rv.(value.Str)
	if !lok || !rok {
		return nil, errors.Newf(x.OpPos, errors.TypeMismatch, "%s expects Str %s Str, got %s %s %s", x.Op, x.Op, lv.Kind(), x.Op, rv.Kind())
	}
	re, err := regexp.Compile(string(r))
	if err != nil {
		return nil, errors.Newf(x.Y.Pos(), errors.ParseError, "invalid regular expression %q: %v", string(r), err)
	}
	matched := re.MatchString(string(l))
	if x.Op == token.NMTC {
		matched = !matched
	}
	return value.Bool(matched), nil
}

func evalIn(x *ast.BinaryExpr, lv, rv value.Value) (value.Value, error) {
	switch r := rv.(type) {
	case *value.Tuple:
		l, ok := lv.(value.Str)
		if !ok {
			return nil, errors.Newf(x.X.Pos(), errors.TypeMismatch, "in expects Str against a tuple, got %s", lv.Kind())
		}
		_, found := r.Get(string(l))
		return value.Bool(found), nil
	case *value.List:
		for _, e := range r.Elems {
			if value.Equal(lv, e) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	default:
		return nil, errors.Newf(x.Y.Pos(), errors.TypeMismatch, "in expects a Tuple or List on the right, got %s", rv.Kind())
	}
}

var validKindNames = map[string]value.Kind{
	"null":   value.KindNull,
	"bool":   value.KindBool,
	"int":    value.KindInt,
	"float":  value.KindFloat,
	"str":    value.KindStr,
	"tuple":  value.KindTuple,
	"list":   value.KindList,
	"func":   value.KindFunc,
	"module": value.KindModule,
}

func evalIs(x *ast.BinaryExpr, lv, rv value.Value) (value.Value, error) {
	r, ok := rv.(value.Str)
	if !ok {
		return nil, errors.Newf(x.Y.Pos(), errors.TypeMismatch, "is expects a Str literal naming a kind, got %s", rv.Kind())
	}
	kind, ok := validKindNames[string(r)]
	if !ok {
		return nil, errors.Newf(x.Y.Pos(), errors.TypeMismatch, "unknown kind name %q", string(r))
	}
	return value.Bool(lv.Kind() == kind), nil
}

func typeMismatch(x *ast.BinaryExpr, lv, rv value.Value) error {
	return errors.Newf(x.OpPos, errors.TypeMismatch, "%s %s %s is not defined", lv.Kind(), x.Op, rv.Kind())
}

func evalRange(x *ast.RangeExpr, env *Env, ctx *Context) (value.Value, error) {
	startV, err := Eval(x.Start, env, ctx)
	if err != nil {
		return nil, err
	}
	start, ok := startV.(value.Int)
	if !ok {
		return nil, errors.Newf(x.Start.Pos(), errors.TypeMismatch, "range bounds must be Int, got %s", startV.Kind())
	}
	endV, err := Eval(x.End, env, ctx)
	if err != nil {
		return nil, err
	}
	end, ok := endV.(value.Int)
	if !ok {
		return nil, errors.Newf(x.End.Pos(), errors.TypeMismatch, "range bounds must be Int, got %s", endV.Kind())
	}
	step := value.Int(1)
	if x.Step != nil {
		stepV, err := Eval(x.Step, env, ctx)
		if err != nil {
			return nil, err
		}
		step, ok = stepV.(value.Int)
		if !ok {
			return nil, errors.Newf(x.Step.Pos(), errors.TypeMismatch, "range step must be Int, got %s", stepV.Kind())
		}
	}
	if step <= 0 {
		return nil, errors.Newf(x.Pos(), errors.RangeError, "range step must be positive, got %d", step)
	}
	if end < start {
		return value.NewList(nil), nil
	}
	n := int((end-start)/step) + 1
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		elems[i] = start + value.Int(i)*step
	}
	return value.NewList(elems), nil
}
