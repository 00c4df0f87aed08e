package eval

import (
	"strings"

	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/parser"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

// evalFormat implements `STR % ARG`. ARG shaped as a parenthesized,
// comma-separated list (ast.ExprList) selects positional mode; any other
// ARG selects template mode, re-lexing `@{...}` spans out of the string at
// evaluation time per the design note to that effect.
func evalFormat(x *ast.BinaryExpr, env *Env, ctx *Context) (value.Value, error) {
	strV, err := Eval(x.X, env, ctx)
	if err != nil {
		return nil, err
	}
	str, ok := strV.(value.Str)
	if !ok {
		return nil, errors.Newf(x.X.Pos(), errors.TypeMismatch, "%% expects a Str on the left, got %s", strV.Kind())
	}

	if list, ok := x.Y.(*ast.ExprList); ok {
		args := make([]value.Value, len(list.Elts))
		for i, e := range list.Elts {
			v, err := Eval(e, env, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return formatPositional(x.OpPos, string(str), args)
	}

	item, err := Eval(x.Y, env, ctx)
	if err != nil {
		return nil, err
	}
	return formatTemplate(x.OpPos, string(str), item, env, ctx)
}

func formatPositional(pos token.Pos, str string, args []value.Value) (value.Value, error) {
	var b strings.Builder
	ai := 0
	for i := 0; i < len(str); i++ {
		if str[i] != '@' {
			b.WriteByte(str[i])
			continue
		}
		if ai >= len(args) {
			return nil, errors.Newf(pos, errors.FormatArityError, "not enough arguments for format string (wanted more than %d)", len(args))
		}
		b.WriteString(value.Render(args[ai]))
		ai++
	}
	if ai != len(args) {
		return nil, errors.Newf(pos, errors.FormatArityError, "too many arguments for format string: used %d of %d", ai, len(args))
	}
	return value.Str(b.String()), nil
}

// formatTemplate scans str for `@{EXPR}` spans, parsing and evaluating
// each against a scope binding `item`, and for a single bare `@` (the
// first one only) substituting item's own rendering.
func formatTemplate(pos token.Pos, str string, item value.Value, env *Env, ctx *Context) (value.Value, error) {
	itemEnv := env.Child()
	itemEnv.Define("item", item)

	var b strings.Builder
	usedBarePositional := false
	i := 0
	for i < len(str) {
		if str[i] == '@' && i+1 < len(str) && str[i+1] == '{' {
			end, ok := matchBrace(str, i+2)
			if !ok {
				return nil, errors.Newf(pos, errors.ParseError, "unterminated @{...} in format string")
			}
			inner := str[i+2 : end]
			expr, err := parser.ParseExpr("<format>", []byte(inner))
			if err != nil {
				return nil, err
			}
			v, err := Eval(expr, itemEnv, ctx)
			if err != nil {
				return nil, err
			}
			b.WriteString(value.Render(v))
			i = end + 1
			continue
		}
		if str[i] == '@' {
			if usedBarePositional {
				return nil, errors.Newf(pos, errors.FormatArityError, "extra '@' in template format string beyond the single bound item")
			}
			usedBarePositional = true
			b.WriteString(value.Render(item))
			i++
			continue
		}
		b.WriteByte(str[i])
		i++
	}
	return value.Str(b.String()), nil
}

// matchBrace finds the index of the '}' balancing the '{' implicitly
// opened at start-1, scanning from start, allowing nested braces (e.g. a
// tuple literal inside @{...}).
func matchBrace(s string, start int) (int, bool) {
	depth := 1
	for j := start; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}
