package eval

import (
	"encoding/base64"
	"fmt"
	"path"
	"strconv"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"

	"github.com/google/uuid"
)

func parseInt(lit string) (int64, error)     { return strconv.ParseInt(lit, 10, 64) }
func parseFloat(lit string) (float64, error) { return strconv.ParseFloat(lit, 64) }

func fmtTrace(ctx *Context, rendered, filename string, line, col int) {
	fmt.Fprintf(ctx.Trace, "TRACE: %s at file: %s line: %d column: %d\n", rendered, filename, line, col)
}

// Eval walks expr against env, returning the value it denotes or the first
// error encountered. It has one case per ast.Expr concrete type.
func Eval(expr ast.Expr, env *Env, ctx *Context) (value.Value, error) {
	switch x := expr.(type) {
	case *ast.BadExpr:
		return nil, errors.Newf(x.Pos(), errors.ParseError, "invalid expression")
	case *ast.Ident:
		return evalIdent(x, env)
	case *ast.BasicLit:
		return evalBasicLit(x)
	case *ast.TupleLit:
		fields, err := evalFields(x.Fields, env, ctx)
		if err != nil {
			return nil, err
		}
		return value.NewTuple(fields), nil
	case *ast.ListLit:
		elems := make([]value.Value, len(x.Elts))
		for i, e := range x.Elts {
			v, err := Eval(e, env, ctx)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil
	case *ast.ExprList:
		return nil, errors.Newf(x.Pos(), errors.ParseError, "parenthesized argument list is only valid as the right operand of '%%'")
	case *ast.ParenExpr:
		return Eval(x.X, env, ctx)
	case *ast.SelectorExpr:
		return evalSelector(x, env, ctx)
	case *ast.CallExpr:
		return evalCall(x, env, ctx)
	case *ast.CopyExpr:
		return evalCopy(x, env, ctx)
	case *ast.UnaryExpr:
		return evalUnary(x, env, ctx)
	case *ast.BinaryExpr:
		return evalBinary(x, env, ctx)
	case *ast.RangeExpr:
		return evalRange(x, env, ctx)
	case *ast.FuncLit:
		params := make([]string, len(x.Params))
		for i, p := range x.Params {
			params[i] = p.Name
		}
		return &value.Func{ID: uuid.New(), Params: params, Body: x.Body, Env: env, File: ctx.CurrentFile}, nil
	case *ast.ModuleLit:
		return &value.Module{
			ID:      uuid.New(),
			Params:  x.Params,
			Body:    x.Body,
			Out:     x.Out,
			Path:    ctx.CurrentFile,
			HasPath: ctx.CurrentFile != "",
		}, nil
	case *ast.ImportExpr:
		lit := ast.Unquote(x.Path.Value)
		return ctx.Importer.Load(dirOf(ctx.CurrentFile), lit)
	case *ast.IncludeExpr:
		return evalInclude(x, ctx)
	case *ast.SelectExpr:
		return evalSelect(x, env, ctx)
	case *ast.BuiltinExpr:
		return evalBuiltin(x, env, ctx)
	case *ast.FailExpr:
		v, err := Eval(x.X, env, ctx)
		if err != nil {
			return nil, err
		}
		s, ok := v.(value.Str)
		if !ok {
			return nil, errors.Newf(x.X.Pos(), errors.TypeMismatch, "fail expects a Str, got %s", v.Kind())
		}
		return nil, errors.Newf(x.Fail, errors.UserFailure, "%s", string(s))
	case *ast.TraceExpr:
		return evalTrace(x, env, ctx)
	default:
		return nil, errors.Newf(expr.Pos(), errors.ParseError, "unhandled expression type %T", expr)
	}
}

// dirOf returns the directory an import/include literal in file should be
// resolved relative to. An empty file (standalone `eval -e` expression)
// resolves relative to the empty path, left to the PathResolver to
// interpret (typically the process's working directory).
func dirOf(file string) string {
	if file == "" {
		return ""
	}
	return path.Dir(file)
}

func evalIdent(x *ast.Ident, env *Env) (value.Value, error) {
	v, ok := env.Lookup(x.Name)
	if !ok {
		return nil, errors.Newf(x.Pos(), errors.UnknownSymbol, "undefined symbol %q", x.Name)
	}
	return v, nil
}

func evalBasicLit(x *ast.BasicLit) (value.Value, error) {
	switch x.Kind {
	case token.INT:
		n, err := parseInt(x.Value)
		if err != nil {
			return nil, errors.Newf(x.Pos(), errors.ParseError, "invalid integer literal %q", x.Value)
		}
		return value.Int(n), nil
	case token.FLOAT:
		f, err := parseFloat(x.Value)
		if err != nil {
			return nil, errors.Newf(x.Pos(), errors.ParseError, "invalid float literal %q", x.Value)
		}
		return value.Float(f), nil
	case token.STRING:
		return value.Str(ast.Unquote(x.Value)), nil
	case token.TRUE:
		return value.Bool(true), nil
	case token.FALSE:
		return value.Bool(false), nil
	case token.NULL:
		return value.Null{}, nil
	default:
		return nil, errors.Newf(x.Pos(), errors.ParseError, "unhandled literal kind %v", x.Kind)
	}
}

// evalFields evaluates a tuple literal's or module's parameter list's
// fields in source order against a single shared env (fields do not see
// one another, matching the absence of any such rule in the grammar).
// Duplicate labels keep only the last occurrence's value but preserve the
// first occurrence's position in the sequence, mirroring how a repeated
// `let` would simply rebind.
func evalFields(fields []*ast.Field, env *Env, ctx *Context) ([]value.TupleField, error) {
	out := make([]value.TupleField, 0, len(fields))
	seen := make(map[string]int, len(fields))
	for _, f := range fields {
		name, ok := ast.LabelName(f.Name)
		if !ok {
			return nil, errors.Newf(f.Name.Pos(), errors.ParseError, "invalid field label")
		}
		v, err := Eval(f.Value, env, ctx)
		if err != nil {
			return nil, err
		}
		if i, dup := seen[name]; dup {
			out[i].Value = v
			continue
		}
		seen[name] = len(out)
		out = append(out, value.TupleField{Name: name, Value: v})
	}
	return out, nil
}

func evalSelect(x *ast.SelectExpr, env *Env, ctx *Context) (value.Value, error) {
	keyV, err := Eval(x.Key, env, ctx)
	if err != nil {
		return nil, err
	}
	var name string
	switch k := keyV.(type) {
	case value.Str:
		name = string(k)
	case value.Bool:
		if k {
			name = "true"
		} else {
			name = "false"
		}
	default:
		return nil, errors.Newf(x.Key.Pos(), errors.TypeMismatch, "select key must be Str or Bool, got %s", keyV.Kind())
	}

	casesV, err := Eval(x.Cases, env, ctx)
	if err != nil {
		return nil, err
	}
	cases, ok := casesV.(*value.Tuple)
	if !ok {
		return nil, errors.Newf(x.Cases.Pos(), errors.NotATuple, "select cases must be a tuple, got %s", casesV.Kind())
	}
	if v, ok := cases.Get(name); ok {
		return v, nil
	}
	if x.Default != nil {
		return Eval(x.Default, env, ctx)
	}
	return nil, errors.Newf(x.Select, errors.SelectNoMatch, "no case %q and no default", name)
}

func evalInclude(x *ast.IncludeExpr, ctx *Context) (value.Value, error) {
	lit := ast.Unquote(x.Path.Value)
	canon, err := ctx.Importer.Resolve(dirOf(ctx.CurrentFile), lit)
	if err != nil {
		return nil, errors.Newf(x.Pos(), errors.IoError, "resolving %q: %v", lit, err)
	}
	src, err := ctx.Importer.LoadBytes(canon)
	if err != nil {
		return nil, errors.Newf(x.Pos(), errors.IoError, "loading %q: %v", lit, err)
	}
	switch x.Type.Name {
	case "str":
		return value.Str(string(src)), nil
	case "base64":
		return value.Str(base64.StdEncoding.EncodeToString(src)), nil
	default:
		return nil, errors.Newf(x.Type.Pos(), errors.ParseError, "unknown include type %q", x.Type.Name)
	}
}

func evalTrace(x *ast.TraceExpr, env *Env, ctx *Context) (value.Value, error) {
	v, err := Eval(x.X, env, ctx)
	if err != nil {
		return nil, err
	}
	if ctx.Trace != nil {
		pos := x.Trace.Position()
		fmtTrace(ctx, value.Render(v), pos.Filename, pos.Line, pos.Column)
	}
	return v, nil
}
