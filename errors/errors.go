// Package errors defines the diagnostic type shared by the scanner, parser,
// and evaluator.
package errors

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jfranklin9000/ucg/token"
)

// Kind is the closed set of evaluation and compilation error kinds.
type Kind string

const (
	IoError          Kind = "IoError"
	LexError         Kind = "LexError"
	ParseError       Kind = "ParseError"
	TypeMismatch     Kind = "TypeMismatch"
	Arity            Kind = "Arity"
	UnknownSymbol    Kind = "UnknownSymbol"
	MissingEnv       Kind = "MissingEnv"
	SelectNoMatch    Kind = "SelectNoMatch"
	CopyTypeMismatch Kind = "CopyTypeMismatch"
	BadSelector      Kind = "BadSelector"
	FormatArityError Kind = "FormatArityError"
	NotCallable      Kind = "NotCallable"
	NotATuple        Kind = "NotATuple"
	NotAList         Kind = "NotAList"
	CyclicImportUse  Kind = "CyclicImportUse"
	UserFailure      Kind = "UserFailure"
	RangeError       Kind = "RangeError"
)

// Error is the interface implemented by all UCG diagnostics.
type Error interface {
	error
	Kind() Kind
	Position() token.Pos
	InputPositions() []token.Pos
	Path() []string
	Msg() (format string, args []interface{})
}

// Newf creates an Error of the given kind at position p.
func Newf(p token.Pos, kind Kind, format string, args ...interface{}) Error {
	return &posError{pos: pos{p}, kind: kind, format: format, args: args}
}

// Wrapf creates a new primary Error that chains err beneath it as
// additional context, e.g. an "in copy of X at ..." frame.
func Wrapf(err error, p token.Pos, kind Kind, format string, args ...interface{}) Error {
	return &wrapped{main: Newf(p, kind, format, args...), wrap: err}
}

// WithPath returns a copy of err annotated with a field-selector path.
func WithPath(err Error, path []string) Error {
	switch e := err.(type) {
	case *posError:
		cp := *e
		cp.path = path
		return &cp
	case *wrapped:
		return &wrapped{main: WithPath(e.main, path), wrap: e.wrap}
	default:
		return err
	}
}

type pos struct{ p token.Pos }

type posError struct {
	pos
	kind   Kind
	format string
	args   []interface{}
	path   []string
}

func (e *posError) Kind() Kind              { return e.kind }
func (e *posError) Position() token.Pos     { return e.pos.p }
func (e *posError) InputPositions() []token.Pos { return nil }
func (e *posError) Path() []string          { return e.path }
func (e *posError) Msg() (string, []interface{}) { return e.format, e.args }
func (e *posError) Error() string           { return fmt.Sprintf("%s: %s", e.kind, fmt.Sprintf(e.format, e.args...)) }

// wrapped chains a subordinate error beneath a primary one.
type wrapped struct {
	main Error
	wrap error
}

func (e *wrapped) Kind() Kind          { return e.main.Kind() }
func (e *wrapped) Position() token.Pos { return e.main.Position() }
func (e *wrapped) Path() []string {
	if p := e.main.Path(); p != nil {
		return p
	}
	return Path(e.wrap)
}
func (e *wrapped) Msg() (string, []interface{}) { return e.main.Msg() }
func (e *wrapped) Unwrap() error                { return e.wrap }
func (e *wrapped) InputPositions() []token.Pos {
	return append(e.main.InputPositions(), Positions(e.wrap)...)
}
func (e *wrapped) Error() string {
	msg := e.main.Error()
	if e.wrap == nil {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, e.wrap)
}

// Path returns the path recorded on err, if any.
func Path(err error) []string {
	var e Error
	if errors.As(err, &e) {
		return e.Path()
	}
	return nil
}

// Positions returns every position associated with err, primary first,
// sorted and de-duplicated.
func Positions(err error) []token.Pos {
	var e Error
	if !errors.As(err, &e) {
		return nil
	}
	var a []token.Pos
	if p := e.Position(); p.IsValid() {
		a = append(a, p)
	}
	start := len(a)
	for _, p := range e.InputPositions() {
		if p.IsValid() {
			a = append(a, p)
		}
	}
	rest := a[start:]
	sort.Slice(rest, func(i, j int) bool { return rest[i].Compare(rest[j]) < 0 })
	out := a[:start]
	for _, p := range rest {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// List aggregates multiple Errors, e.g. from a parse that does not stop at
// the first syntax error.
type List []Error

func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
	}
}

// Add appends err to the list.
func (p *List) Add(err Error) { *p = append(*p, err) }

// AddNewf is a convenience wrapper around Newf followed by Add.
func (p *List) AddNewf(pos token.Pos, kind Kind, format string, args ...interface{}) {
	p.Add(Newf(pos, kind, format, args...))
}

// Err returns nil if the list is empty, the sole error if it has one entry,
// or the list itself otherwise.
func (p List) Err() error {
	switch len(p) {
	case 0:
		return nil
	case 1:
		return p[0]
	default:
		return p
	}
}

// Sort orders the list by position, then by message.
func (p List) Sort() {
	sort.SliceStable(p, func(i, j int) bool {
		if c := p[i].Position().Compare(p[j].Position()); c != 0 {
			return c < 0
		}
		return p[i].Error() < p[j].Error()
	})
}

// Print writes one line per error in err (flattening a List), followed by
// its positions, to w.
func Print(w io.Writer, err error) {
	for _, e := range Errors(err) {
		writeErr(w, e)
	}
}

// Errors flattens err into its individual Error values, promoting a bare
// error to a single-element slice.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	if l, ok := err.(List); ok {
		return l
	}
	var e Error
	if errors.As(err, &e) {
		return []Error{e}
	}
	return []Error{Newf(token.NoPos, UserFailure, "%s", err.Error())}
}

func writeErr(w io.Writer, err Error) {
	if path := strings.Join(err.Path(), "."); path != "" {
		fmt.Fprintf(w, "%s: ", path)
	}
	fmt.Fprintf(w, "%s\n", err.Error())
	for _, p := range Positions(err) {
		fmt.Fprintf(w, "    %s\n", p.Position())
	}
}

// Details renders err the way Print does, returning the result as a string.
func Details(err error) string {
	var b strings.Builder
	Print(&b, err)
	return b.String()
}
