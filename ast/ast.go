// Package ast declares the syntax tree produced by package parser and
// consumed by package eval.
package ast

import "github.com/jfranklin9000/ucg/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every top-level or module-body statement.
type Stmt interface {
	Node
	stmtNode()
}

func (*BadExpr) exprNode()        {}
func (*Ident) exprNode()          {}
func (*BasicLit) exprNode()       {}
func (*TupleLit) exprNode()       {}
func (*ListLit) exprNode()        {}
func (*ExprList) exprNode()       {}
func (*ParenExpr) exprNode()      {}
func (*SelectorExpr) exprNode()   {}
func (*CallExpr) exprNode()       {}
func (*CopyExpr) exprNode()       {}
func (*UnaryExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*RangeExpr) exprNode()      {}
func (*FuncLit) exprNode()        {}
func (*ModuleLit) exprNode()      {}
func (*ImportExpr) exprNode()     {}
func (*IncludeExpr) exprNode()    {}
func (*SelectExpr) exprNode()     {}
func (*BuiltinExpr) exprNode()    {}
func (*FailExpr) exprNode()       {}
func (*TraceExpr) exprNode()      {}

func (*LetStmt) stmtNode()    {}
func (*AssertStmt) stmtNode() {}
func (*OutStmt) stmtNode()    {}
func (*BadStmt) stmtNode()    {}

// BadExpr is a placeholder for a span the parser could not make sense of.
type BadExpr struct {
	From, To token.Pos
}

func (x *BadExpr) Pos() token.Pos { return x.From }
func (x *BadExpr) End() token.Pos { return x.To }

// BadStmt is a placeholder for a statement the parser could not make sense
// of, recorded so that parsing can continue after reporting the error.
type BadStmt struct {
	From, To token.Pos
}

func (s *BadStmt) Pos() token.Pos { return s.From }
func (s *BadStmt) End() token.Pos { return s.To }

// Ident is a bareword identifier used as a symbol reference or a binding
// name.
type Ident struct {
	NamePos token.Pos
	Name    string
}

func (x *Ident) Pos() token.Pos { return x.NamePos }
func (x *Ident) End() token.Pos { return x.NamePos.Add(len(x.Name)) }

// BasicLit is an integer, float, string, or the true/false/NULL keyword
// literals (kept distinguishable via Kind).
type BasicLit struct {
	ValuePos token.Pos
	Kind     token.Token // INT, FLOAT, STRING, TRUE, FALSE, NULL
	Value    string      // raw source text, including quotes for STRING
}

func (x *BasicLit) Pos() token.Pos { return x.ValuePos }
func (x *BasicLit) End() token.Pos { return x.ValuePos.Add(len(x.Value)) }

// Field is one `name = expr` entry of a tuple literal or a copy override.
type Field struct {
	Name  Expr // *Ident or *BasicLit (STRING, TRUE or FALSE)
	Eq    token.Pos
	Value Expr
}

func (f *Field) Pos() token.Pos { return f.Name.Pos() }
func (f *Field) End() token.Pos { return f.Value.End() }

// TupleLit is a `{ name = expr, ... }` literal.
type TupleLit struct {
	Lbrace token.Pos
	Fields []*Field
	Rbrace token.Pos
}

func (x *TupleLit) Pos() token.Pos { return x.Lbrace }
func (x *TupleLit) End() token.Pos { return x.Rbrace.Add(1) }

// ListLit is a `[ e, ... ]` literal.
type ListLit struct {
	Lbrack token.Pos
	Elts   []Expr
	Rbrack token.Pos
}

func (x *ListLit) Pos() token.Pos { return x.Lbrack }
func (x *ListLit) End() token.Pos { return x.Rbrack.Add(1) }

// ExprList is a parenthesized, comma-separated expression sequence that is
// not itself a value — it only appears as the positional-argument form of a
// format expression, `"..." % (a, b)`.
type ExprList struct {
	Lparen token.Pos
	Elts   []Expr
	Rparen token.Pos
}

func (x *ExprList) Pos() token.Pos { return x.Lparen }
func (x *ExprList) End() token.Pos { return x.Rparen.Add(1) }

// ParenExpr is a single parenthesized expression used purely for grouping.
type ParenExpr struct {
	Lparen token.Pos
	X      Expr
	Rparen token.Pos
}

func (x *ParenExpr) Pos() token.Pos { return x.Lparen }
func (x *ParenExpr) End() token.Pos { return x.Rparen.Add(1) }

// SelectorExpr is a `.field`, `.0`, or `."quoted"` projection.
type SelectorExpr struct {
	X   Expr
	Sel Expr // *Ident or *BasicLit (INT or STRING)
}

func (x *SelectorExpr) Pos() token.Pos { return x.X.Pos() }
func (x *SelectorExpr) End() token.Pos { return x.Sel.End() }

// CallExpr is a function application `fn(args...)`.
type CallExpr struct {
	Fun    Expr
	Lparen token.Pos
	Args   []Expr
	Rparen token.Pos
}

func (x *CallExpr) Pos() token.Pos { return x.Fun.Pos() }
func (x *CallExpr) End() token.Pos { return x.Rparen.Add(1) }

// CopyExpr is a `base{ overrides }` tuple copy or module instantiation.
type CopyExpr struct {
	Base      Expr
	Lbrace    token.Pos
	Overrides []*Field
	Rbrace    token.Pos
}

func (x *CopyExpr) Pos() token.Pos { return x.Base.Pos() }
func (x *CopyExpr) End() token.Pos { return x.Rbrace.Add(1) }

// UnaryExpr is `not x` or `-x`.
type UnaryExpr struct {
	OpPos token.Pos
	Op    token.Token
	X     Expr
}

func (x *UnaryExpr) Pos() token.Pos { return x.OpPos }
func (x *UnaryExpr) End() token.Pos { return x.X.End() }

// BinaryExpr covers every binary operator, including `%` (format, evaluated
// specially rather than arithmetically).
type BinaryExpr struct {
	X     Expr
	OpPos token.Pos
	Op    token.Token
	Y     Expr
}

func (x *BinaryExpr) Pos() token.Pos { return x.X.Pos() }
func (x *BinaryExpr) End() token.Pos { return x.Y.End() }

// RangeExpr is `start:end` or `start:step:end`.
type RangeExpr struct {
	Start Expr
	Step  Expr // nil if not given
	End   Expr
}

func (x *RangeExpr) Pos() token.Pos { return x.Start.Pos() }
func (x *RangeExpr) End() token.Pos { return x.End.End() }

// FuncLit is `func(a, b) => expr`.
type FuncLit struct {
	Func   token.Pos
	Params []*Ident
	Arrow  token.Pos
	Body   Expr
}

func (x *FuncLit) Pos() token.Pos { return x.Func }
func (x *FuncLit) End() token.Pos { return x.Body.End() }

// ModuleLit is `module params => [out] { stmts }`.
type ModuleLit struct {
	Module token.Pos
	Params *TupleLit
	Arrow  token.Pos
	Out    Expr // nil if absent
	Lbrace token.Pos
	Body   []Stmt
	Rbrace token.Pos
}

func (x *ModuleLit) Pos() token.Pos { return x.Module }
func (x *ModuleLit) End() token.Pos { return x.Rbrace.Add(1) }

// ImportExpr is `import "path"`.
type ImportExpr struct {
	Import token.Pos
	Path   *BasicLit
}

func (x *ImportExpr) Pos() token.Pos { return x.Import }
func (x *ImportExpr) End() token.Pos { return x.Path.End() }

// IncludeExpr is `include str|base64 "path"`.
type IncludeExpr struct {
	Include token.Pos
	Type    *Ident
	Path    *BasicLit
}

func (x *IncludeExpr) Pos() token.Pos { return x.Include }
func (x *IncludeExpr) End() token.Pos { return x.Path.End() }

// SelectExpr is `select key[, default], cases`.
type SelectExpr struct {
	Select  token.Pos
	Key     Expr
	Default Expr // nil if absent
	Cases   Expr
}

func (x *SelectExpr) Pos() token.Pos { return x.Select }
func (x *SelectExpr) End() token.Pos { return x.Cases.End() }

// BuiltinExpr is `map|filter|reduce(fn, [init,] coll)`.
type BuiltinExpr struct {
	Kw     token.Pos
	Name   token.Token // MAP, FILTER, or REDUCE
	Fun    Expr
	Init   Expr // nil for map/filter
	Coll   Expr
	Rparen token.Pos
}

func (x *BuiltinExpr) Pos() token.Pos { return x.Kw }
func (x *BuiltinExpr) End() token.Pos { return x.Rparen.Add(1) }

// FailExpr is `fail expr`.
type FailExpr struct {
	Fail token.Pos
	X    Expr
}

func (x *FailExpr) Pos() token.Pos { return x.Fail }
func (x *FailExpr) End() token.Pos { return x.X.End() }

// TraceExpr is `TRACE expr`.
type TraceExpr struct {
	Trace token.Pos
	X     Expr
}

func (x *TraceExpr) Pos() token.Pos { return x.Trace }
func (x *TraceExpr) End() token.Pos { return x.X.End() }

// LetStmt is `let name = expr;`.
type LetStmt struct {
	Let  token.Pos
	Name *Ident
	Eq   token.Pos
	X    Expr
	Semi token.Pos
}

func (s *LetStmt) Pos() token.Pos { return s.Let }
func (s *LetStmt) End() token.Pos { return s.Semi.Add(1) }

// AssertStmt is `assert tupleExpr;`.
type AssertStmt struct {
	Assert token.Pos
	X      Expr
	Semi   token.Pos
}

func (s *AssertStmt) Pos() token.Pos { return s.Assert }
func (s *AssertStmt) End() token.Pos { return s.Semi.Add(1) }

// OutStmt is `out converter expr;`.
type OutStmt struct {
	Out       token.Pos
	Converter *Ident
	X         Expr
	Semi      token.Pos
}

func (s *OutStmt) Pos() token.Pos { return s.Out }
func (s *OutStmt) End() token.Pos { return s.Semi.Add(1) }

// File is the result of parsing one UCG source file: an ordered sequence of
// top-level statements.
type File struct {
	Filename string
	Stmts    []Stmt
}

func (f *File) Pos() token.Pos {
	if len(f.Stmts) > 0 {
		return f.Stmts[0].Pos()
	}
	return token.NoPos
}

func (f *File) End() token.Pos {
	if n := len(f.Stmts); n > 0 {
		return f.Stmts[n-1].End()
	}
	return token.NoPos
}

// LabelName reports the textual field name that a TupleLit/CopyExpr field
// label denotes: an Ident's name, or an unquoted STRING literal.
func LabelName(e Expr) (string, bool) {
	switch n := e.(type) {
	case *Ident:
		return n.Name, true
	case *BasicLit:
		switch n.Kind {
		case token.STRING:
			return Unquote(n.Value), true
		case token.TRUE, token.FALSE:
			return n.Value, true
		}
	}
	return "", false
}
