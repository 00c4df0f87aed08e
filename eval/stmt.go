package eval

import (
	"io"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/value"
)

// EvalFile evaluates a parsed file's statements in env (normally a fresh
// root scope) and returns the tuple of its top-level let bindings in
// declaration order, per the import-cache contract.
func EvalFile(file *ast.File, env *Env, ctx *Context) (value.Value, error) {
	return evalStmts(file.Stmts, env, ctx)
}

// evalStmts runs stmts against env, threading the same scope through each
// let so later statements (and, for module bodies, the out-expression)
// see earlier bindings. It is shared by top-level file evaluation and
// module-instance body evaluation.
func evalStmts(stmts []ast.Stmt, env *Env, ctx *Context) (*value.Tuple, error) {
	fields := make([]value.TupleField, 0, len(stmts))
	seen := make(map[string]int, len(stmts))
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.LetStmt:
			v, err := Eval(st.X, env, ctx)
			if err != nil {
				return nil, err
			}
			env.Define(st.Name.Name, v)
			if i, dup := seen[st.Name.Name]; dup {
				fields[i].Value = v
			} else {
				seen[st.Name.Name] = len(fields)
				fields = append(fields, value.TupleField{Name: st.Name.Name, Value: v})
			}
		case *ast.AssertStmt:
			if err := evalAssertStmt(st, env, ctx); err != nil {
				return nil, err
			}
		case *ast.OutStmt:
			if err := evalOutStmt(st, env, ctx); err != nil {
				return nil, err
			}
		case *ast.BadStmt:
			return nil, errors.Newf(st.Pos(), errors.ParseError, "invalid statement")
		default:
			return nil, errors.Newf(s.Pos(), errors.ParseError, "unhandled statement type %T", s)
		}
	}
	return value.NewTuple(fields), nil
}

func evalAssertStmt(st *ast.AssertStmt, env *Env, ctx *Context) error {
	v, err := Eval(st.X, env, ctx)
	if err != nil {
		return err
	}
	tuple, ok := v.(*value.Tuple)
	if !ok {
		return errors.Newf(st.X.Pos(), errors.TypeMismatch, "assert expects a tuple with ok/desc fields, got %s", v.Kind())
	}
	okV, hasOk := tuple.Get("ok")
	descV, hasDesc := tuple.Get("desc")
	if !hasOk || !hasDesc {
		return errors.Newf(st.X.Pos(), errors.BadSelector, "assert tuple must have 'ok' and 'desc' fields")
	}
	ok, isBool := okV.(value.Bool)
	if !isBool {
		return errors.Newf(st.X.Pos(), errors.TypeMismatch, "assert 'ok' field must be Bool, got %s", okV.Kind())
	}
	desc, isStr := descV.(value.Str)
	if !isStr {
		return errors.Newf(st.X.Pos(), errors.TypeMismatch, "assert 'desc' field must be Str, got %s", descV.Kind())
	}
	if ctx.Assertions != nil {
		ctx.Assertions.Record(string(desc), bool(ok), st.Assert)
	}
	return nil
}

func evalOutStmt(st *ast.OutStmt, env *Env, ctx *Context) error {
	v, err := Eval(st.X, env, ctx)
	if err != nil {
		return err
	}
	conv, ok := ctx.Converters[st.Converter.Name]
	if !ok {
		return errors.Newf(st.Converter.Pos(), errors.UnknownSymbol, "unknown converter %q", st.Converter.Name)
	}
	out := ctx.Output
	if out == nil {
		out = io.Discard
	}
	return conv(v, out)
}
