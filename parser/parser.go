// Package parser implements a recursive-descent, Pratt-precedence parser
// for UCG source, producing an *ast.File.
package parser

import (
	"github.com/jfranklin9000/ucg/ast"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/scanner"
	"github.com/jfranklin9000/ucg/token"
)

type parser struct {
	file *token.File
	scan scanner.Scanner
	errs errors.List

	pos token.Pos
	tok token.Token
	lit string

	noCopy int // >0 while parsing a module's out-expr, where '{' starts the body, not a copy override

	syncPos token.Pos
	syncCnt int
}

func (p *parser) init(filename string, src []byte) {
	p.file = token.NewFile(filename, len(src))
	p.scan.Init(p.file, src, func(pos token.Pos, msg string) {
		p.errs.AddNewf(pos, errors.LexError, "%s", msg)
	})
	p.next()
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.scan.Scan()
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errs.AddNewf(pos, errors.ParseError, format, args...)
}

func (p *parser) errorExpected(pos token.Pos, want string) {
	if pos == p.pos {
		if p.tok.IsLiteral() {
			p.errorf(pos, "expected %s, found %s %q", want, p.tok, p.lit)
		} else {
			p.errorf(pos, "expected %s, found %q", want, p.tok)
		}
		return
	}
	p.errorf(pos, "expected %s", want)
}

func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorExpected(pos, "'"+tok.String()+"'")
	}
	p.next()
	return pos
}

// atComma reports whether the current token continues a comma-separated
// list, consuming the comma if present. A trailing comma before the closing
// token is accepted silently.
func (p *parser) atComma(close token.Token) bool {
	if p.tok == token.COMMA {
		p.next()
		return p.tok != close
	}
	return false
}

// syncStmt advances past tokens until a likely statement boundary, to
// recover after a parse error without looping forever.
func (p *parser) syncStmt() {
	for {
		switch p.tok {
		case token.SEMICOLON:
			p.next()
			return
		case token.LET, token.ASSERT, token.OUT, token.RBRACE, token.EOF:
			return
		}
		if p.pos == p.syncPos && p.syncCnt < 10 {
			p.syncCnt++
			return
		}
		if p.syncPos.Compare(p.pos) < 0 {
			p.syncPos = p.pos
			p.syncCnt = 0
		}
		p.next()
	}
}

// ParseFile parses a complete UCG source file.
func ParseFile(filename string, src []byte) (*ast.File, error) {
	var p parser
	p.init(filename, src)
	var stmts []ast.Stmt
	for p.tok != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	return &ast.File{Filename: filename, Stmts: stmts}, p.errs.Err()
}

// ParseExpr parses a single standalone expression, consuming the entire
// input. Used by the evaluator to re-lex format-string template expressions
// and for the `eval -e` CLI entry point.
func ParseExpr(filename string, src []byte) (ast.Expr, error) {
	var p parser
	p.init(filename, src)
	x := p.parseExpr()
	if p.tok != token.EOF {
		p.errorExpected(p.pos, "end of expression")
	}
	return x, p.errs.Err()
}

// ---------------------------------------------------------------------------
// Statements

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.LET:
		return p.parseLetStmt()
	case token.ASSERT:
		return p.parseAssertStmt()
	case token.OUT:
		return p.parseOutStmt()
	default:
		pos := p.pos
		p.errorExpected(pos, "statement")
		p.syncStmt()
		return &ast.BadStmt{From: pos, To: p.pos}
	}
}

func (p *parser) parseLetStmt() *ast.LetStmt {
	pos := p.expect(token.LET)
	name := p.parseIdent()
	eq := p.expect(token.ASSIGN)
	x := p.parseExpr()
	semi := p.expect(token.SEMICOLON)
	return &ast.LetStmt{Let: pos, Name: name, Eq: eq, X: x, Semi: semi}
}

func (p *parser) parseAssertStmt() *ast.AssertStmt {
	pos := p.expect(token.ASSERT)
	x := p.parseExpr()
	semi := p.expect(token.SEMICOLON)
	return &ast.AssertStmt{Assert: pos, X: x, Semi: semi}
}

func (p *parser) parseOutStmt() *ast.OutStmt {
	pos := p.expect(token.OUT)
	conv := p.parseIdent()
	x := p.parseExpr()
	semi := p.expect(token.SEMICOLON)
	return &ast.OutStmt{Out: pos, Converter: conv, X: x, Semi: semi}
}

// ---------------------------------------------------------------------------
// Identifiers and literals

func (p *parser) parseIdent() *ast.Ident {
	pos, name := p.pos, "_"
	if p.tok == token.IDENT {
		name = p.lit
		p.next()
	} else {
		p.errorExpected(pos, "identifier")
	}
	return &ast.Ident{NamePos: pos, Name: name}
}

func (p *parser) parseStringLit() *ast.BasicLit {
	pos, lit := p.pos, `""`
	if p.tok == token.STRING {
		lit = p.lit
		p.next()
	} else {
		p.errorExpected(pos, "string literal")
	}
	return &ast.BasicLit{ValuePos: pos, Kind: token.STRING, Value: lit}
}

// parseFieldName parses the label of a tuple/copy field: an identifier, a
// quoted string, or the boolean keywords (used as select-case labels).
func (p *parser) parseFieldName() ast.Expr {
	switch p.tok {
	case token.IDENT:
		return p.parseIdent()
	case token.STRING:
		return p.parseStringLit()
	case token.TRUE, token.FALSE:
		lit := &ast.BasicLit{ValuePos: p.pos, Kind: p.tok, Value: p.lit}
		p.next()
		return lit
	default:
		p.errorExpected(p.pos, "field name")
		pos := p.pos
		p.next()
		return &ast.BadExpr{From: pos, To: p.pos}
	}
}

// ---------------------------------------------------------------------------
// Expressions

func (p *parser) parseExpr() ast.Expr {
	x := p.parseBinaryExpr(token.LowestPrec + 1)
	if p.tok == token.COLON {
		return p.parseRangeRest(x)
	}
	return x
}

func (p *parser) parseRangeRest(start ast.Expr) ast.Expr {
	p.next() // consume ':'
	second := p.parseBinaryExpr(token.LowestPrec + 1)
	if p.tok == token.COLON {
		p.next()
		third := p.parseBinaryExpr(token.LowestPrec + 1)
		return &ast.RangeExpr{Start: start, Step: second, End: third}
	}
	return &ast.RangeExpr{Start: start, End: second}
}

func (p *parser) parseBinaryExpr(prec1 int) ast.Expr {
	x := p.parseUnaryExpr()
	for {
		op := p.tok
		oprec := op.Precedence()
		if oprec < prec1 {
			return x
		}
		pos := p.pos
		p.next()
		y := p.parseBinaryExpr(oprec + 1)
		x = &ast.BinaryExpr{X: x, OpPos: pos, Op: op, Y: y}
	}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.tok {
	case token.NOT, token.SUB:
		pos, op := p.pos, p.tok
		p.next()
		x := p.parseUnaryExpr()
		return &ast.UnaryExpr{OpPos: pos, Op: op, X: x}
	}
	return p.parsePostfixExpr()
}

func (p *parser) parsePostfixExpr() ast.Expr {
	x := p.parsePrimaryExpr()
	for {
		switch p.tok {
		case token.PERIOD:
			p.next()
			x = &ast.SelectorExpr{X: x, Sel: p.parseSelector()}
		case token.LPAREN:
			x = p.parseCallArgs(x)
		case token.LBRACE:
			if p.noCopy > 0 {
				return x
			}
			x = p.parseCopyExpr(x)
		case token.FLOAT:
			// The scanner reads ".0" after an operand as a leading-dot
			// float; in postfix position it is a list index selector.
			if len(p.lit) < 2 || p.lit[0] != '.' {
				return x
			}
			for _, c := range p.lit[1:] {
				if c < '0' || c > '9' {
					return x
				}
			}
			x = &ast.SelectorExpr{X: x, Sel: &ast.BasicLit{ValuePos: p.pos.Add(1), Kind: token.INT, Value: p.lit[1:]}}
			p.next()
		default:
			return x
		}
	}
}

func (p *parser) parseSelector() ast.Expr {
	switch p.tok {
	case token.IDENT:
		return p.parseIdent()
	case token.INT:
		lit := &ast.BasicLit{ValuePos: p.pos, Kind: token.INT, Value: p.lit}
		p.next()
		return lit
	case token.STRING:
		return p.parseStringLit()
	default:
		p.errorExpected(p.pos, "selector")
		pos := p.pos
		p.next()
		return &ast.BadExpr{From: pos, To: p.pos}
	}
}

func (p *parser) parseCallArgs(fun ast.Expr) *ast.CallExpr {
	lparen := p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseExpr())
		if !p.atComma(token.RPAREN) {
			break
		}
	}
	rparen := p.expect(token.RPAREN)
	return &ast.CallExpr{Fun: fun, Lparen: lparen, Args: args, Rparen: rparen}
}

func (p *parser) parseCopyExpr(base ast.Expr) *ast.CopyExpr {
	lbrace := p.expect(token.LBRACE)
	var overrides []*ast.Field
	for p.tok != token.RBRACE && p.tok != token.EOF {
		overrides = append(overrides, p.parseField())
		if !p.atComma(token.RBRACE) {
			break
		}
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.CopyExpr{Base: base, Lbrace: lbrace, Overrides: overrides, Rbrace: rbrace}
}

func (p *parser) parseField() *ast.Field {
	name := p.parseFieldName()
	eq := p.expect(token.ASSIGN)
	val := p.parseExpr()
	return &ast.Field{Name: name, Eq: eq, Value: val}
}

func (p *parser) parseTupleLit() *ast.TupleLit {
	lbrace := p.expect(token.LBRACE)
	var fields []*ast.Field
	for p.tok != token.RBRACE && p.tok != token.EOF {
		fields = append(fields, p.parseField())
		if !p.atComma(token.RBRACE) {
			break
		}
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.TupleLit{Lbrace: lbrace, Fields: fields, Rbrace: rbrace}
}

func (p *parser) parseListLit() *ast.ListLit {
	lbrack := p.expect(token.LBRACK)
	var elts []ast.Expr
	for p.tok != token.RBRACK && p.tok != token.EOF {
		elts = append(elts, p.parseExpr())
		if !p.atComma(token.RBRACK) {
			break
		}
	}
	rbrack := p.expect(token.RBRACK)
	return &ast.ListLit{Lbrack: lbrack, Elts: elts, Rbrack: rbrack}
}

// parseParenOrExprList handles the two parenthesized primary forms: a
// grouping expression `(e)` and the positional-argument list form `(e, ...)`
// used on the right of a format `%` operator.
func (p *parser) parseParenOrExprList() ast.Expr {
	lparen := p.expect(token.LPAREN)
	x := p.parseExpr()
	if p.tok == token.COMMA {
		elts := []ast.Expr{x}
		for p.atComma(token.RPAREN) {
			elts = append(elts, p.parseExpr())
		}
		rparen := p.expect(token.RPAREN)
		return &ast.ExprList{Lparen: lparen, Elts: elts, Rparen: rparen}
	}
	rparen := p.expect(token.RPAREN)
	return &ast.ParenExpr{Lparen: lparen, X: x, Rparen: rparen}
}

func (p *parser) parseFuncLit() *ast.FuncLit {
	pos := p.expect(token.FUNC)
	p.expect(token.LPAREN)
	var params []*ast.Ident
	for p.tok != token.RPAREN && p.tok != token.EOF {
		params = append(params, p.parseIdent())
		if !p.atComma(token.RPAREN) {
			break
		}
	}
	p.expect(token.RPAREN)
	arrow := p.expect(token.ARROW)
	body := p.parseExpr()
	return &ast.FuncLit{Func: pos, Params: params, Arrow: arrow, Body: body}
}

func (p *parser) parseModuleLit() *ast.ModuleLit {
	pos := p.expect(token.MODULE)
	params := p.parseTupleLit()
	arrow := p.expect(token.ARROW)

	var out ast.Expr
	if p.tok != token.LBRACE {
		p.noCopy++
		out = p.parseExpr()
		p.noCopy--
	}

	lbrace := p.expect(token.LBRACE)
	var body []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		body = append(body, p.parseStmt())
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.ModuleLit{Module: pos, Params: params, Arrow: arrow, Out: out, Lbrace: lbrace, Body: body, Rbrace: rbrace}
}

func (p *parser) parseImportExpr() *ast.ImportExpr {
	pos := p.expect(token.IMPORT)
	path := p.parseStringLit()
	return &ast.ImportExpr{Import: pos, Path: path}
}

func (p *parser) parseIncludeExpr() *ast.IncludeExpr {
	pos := p.expect(token.INCLUDE)
	typ := p.parseIdent()
	path := p.parseStringLit()
	return &ast.IncludeExpr{Include: pos, Type: typ, Path: path}
}

func (p *parser) parseSelectExpr() *ast.SelectExpr {
	pos := p.expect(token.SELECT)
	key := p.parseExpr()
	p.expect(token.COMMA)
	first := p.parseExpr()
	var def, cases ast.Expr
	if p.tok == token.COMMA {
		p.next()
		def = first
		cases = p.parseExpr()
	} else {
		cases = first
	}
	return &ast.SelectExpr{Select: pos, Key: key, Default: def, Cases: cases}
}

func (p *parser) parseBuiltinExpr() *ast.BuiltinExpr {
	pos, name := p.pos, p.tok
	p.next()
	p.expect(token.LPAREN)
	fun := p.parseExpr()
	p.expect(token.COMMA)
	var init ast.Expr
	if name == token.REDUCE {
		init = p.parseExpr()
		p.expect(token.COMMA)
	}
	coll := p.parseExpr()
	rparen := p.expect(token.RPAREN)
	return &ast.BuiltinExpr{Kw: pos, Name: name, Fun: fun, Init: init, Coll: coll, Rparen: rparen}
}

func (p *parser) parseFailExpr() *ast.FailExpr {
	pos := p.expect(token.FAIL)
	x := p.parseExpr()
	return &ast.FailExpr{Fail: pos, X: x}
}

func (p *parser) parseTraceExpr() *ast.TraceExpr {
	pos := p.expect(token.TRACE)
	x := p.parseExpr()
	return &ast.TraceExpr{Trace: pos, X: x}
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.IDENT:
		return p.parseIdent()
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.NULL:
		lit := &ast.BasicLit{ValuePos: p.pos, Kind: p.tok, Value: p.lit}
		p.next()
		return lit
	case token.LBRACE:
		return p.parseTupleLit()
	case token.LBRACK:
		return p.parseListLit()
	case token.LPAREN:
		return p.parseParenOrExprList()
	case token.FUNC:
		return p.parseFuncLit()
	case token.MODULE:
		return p.parseModuleLit()
	case token.IMPORT:
		return p.parseImportExpr()
	case token.INCLUDE:
		return p.parseIncludeExpr()
	case token.SELECT:
		return p.parseSelectExpr()
	case token.MAP, token.FILTER, token.REDUCE:
		return p.parseBuiltinExpr()
	case token.FAIL:
		return p.parseFailExpr()
	case token.TRACE:
		return p.parseTraceExpr()
	default:
		pos := p.pos
		p.errorExpected(pos, "expression")
		p.next()
		return &ast.BadExpr{From: pos, To: p.pos}
	}
}
