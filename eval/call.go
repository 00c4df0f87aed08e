package eval

import (
	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

func evalCall(x *ast.CallExpr, env *Env, ctx *Context) (value.Value, error) {
	funV, err := Eval(x.Fun, env, ctx)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := Eval(a, env, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return apply(funV, args, x.Lparen, ctx)
}

// apply invokes a Func value with args already evaluated, binding them
// positionally into a fresh scope chained to the closure's captured
// environment. Only *value.Func is callable; module instantiation uses
// copy-expression syntax instead.
func apply(funV value.Value, args []value.Value, pos token.Pos, ctx *Context) (value.Value, error) {
	f, ok := funV.(*value.Func)
	if !ok {
		return nil, errors.Newf(pos, errors.NotCallable, "%s is not callable", funV.Kind())
	}
	if len(args) != len(f.Params) {
		return nil, errors.Newf(pos, errors.Arity, "expected %d argument(s), got %d", len(f.Params), len(args))
	}
	callEnv := f.Env.Child()
	for i, p := range f.Params {
		callEnv.Define(p, args[i])
	}
	return Eval(f.Body, callEnv, ctx.withFile(f.File))
}
