// Package value defines the runtime value model produced by package eval:
// an immutable, dynamically-typed sum type with first-class functions and
// modules.
package value

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/jfranklin9000/ucg/ast"
)

// Kind is the closed set of type names recognized by the `is` operator.
type Kind string

const (
	KindNull   Kind = "null"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindStr    Kind = "str"
	KindTuple  Kind = "tuple"
	KindList   Kind = "list"
	KindFunc   Kind = "func"
	KindModule Kind = "module"
)

// Value is implemented by every runtime value variant.
type Value interface {
	valueNode()
	Kind() Kind
}

func (Null) valueNode()       {}
func (Bool) valueNode()       {}
func (Int) valueNode()        {}
func (Float) valueNode()      {}
func (Str) valueNode()        {}
func (*List) valueNode()      {}
func (*Tuple) valueNode()     {}
func (*Func) valueNode()      {}
func (*Module) valueNode()    {}
func (EnvProxy) valueNode()   {}
func (*Cyclic) valueNode()    {}

func (Null) Kind() Kind       { return KindNull }
func (Bool) Kind() Kind       { return KindBool }
func (Int) Kind() Kind        { return KindInt }
func (Float) Kind() Kind      { return KindFloat }
func (Str) Kind() Kind        { return KindStr }
func (*List) Kind() Kind      { return KindList }
func (*Tuple) Kind() Kind     { return KindTuple }
func (*Func) Kind() Kind      { return KindFunc }
func (*Module) Kind() Kind    { return KindModule }
func (EnvProxy) Kind() Kind   { return "envproxy" }
func (*Cyclic) Kind() Kind    { return "cyclic" }

// EnvProxy is the value bound to the reserved identifier "env" in every
// file's root scope. Selecting a field on it reads a host environment
// variable rather than a tuple field; it has no other use.
type EnvProxy struct{}

// Cyclic is the placeholder published into the import cache for a path
// that is still loading, letting a module body observe that its own file
// is in progress without blocking. Selecting a field on it is always an
// error; it exists to be assigned (e.g. to mod.pkg's result) and ignored.
type Cyclic struct {
	Path string
}

// Null is UCG's distinguished empty value.
type Null struct{}

// Bool, Int, Float, Str are thin wrappers over the corresponding Go
// primitives, made distinct types so they each implement Value.
type (
	Bool  bool
	Int   int64
	Float float64
	Str   string
)

// List is an ordered, heterogeneous sequence of values.
type List struct {
	Elems []Value
}

// NewList builds a List from elems, taking ownership of the slice.
func NewList(elems []Value) *List { return &List{Elems: elems} }

// TupleField is one (name, value) pair of a Tuple, in declaration order.
type TupleField struct {
	Name  string
	Value Value
}

// Tuple is an ordered associative container: field order is significant for
// equality and for the instance-tuple semantics of module instantiation.
type Tuple struct {
	Fields []TupleField
	index  map[string]int
}

// NewTuple builds a Tuple from fields in order, taking ownership of the
// slice. Later duplicate names shadow earlier ones for Get but both entries
// remain in Fields (callers constructing tuples are expected not to produce
// duplicates; the evaluator enforces this when building tuple literals).
func NewTuple(fields []TupleField) *Tuple {
	t := &Tuple{Fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		t.index[f.Name] = i
	}
	return t
}

// Get returns the value of the named field and whether it exists.
func (t *Tuple) Get(name string) (Value, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.Fields[i].Value, true
}

// With returns a new Tuple with overrides applied: existing fields are
// updated in place (their position preserved), new fields are appended in
// override order. It does not enforce the same-variant copy-typing rule;
// that check belongs to the evaluator, which knows how to report
// CopyTypeMismatch with position information.
func (t *Tuple) With(overrides []TupleField) *Tuple {
	fields := make([]TupleField, len(t.Fields))
	copy(fields, t.Fields)
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	for _, ov := range overrides {
		if i, ok := index[ov.Name]; ok {
			fields[i].Value = ov.Value
		} else {
			index[ov.Name] = len(fields)
			fields = append(fields, ov)
		}
	}
	return &Tuple{Fields: fields, index: index}
}

// Func is a closure: a parameter list, a single-expression body, and the
// lexical environment captured at the point of definition. File records the
// path of the source that defined it, so that `import`/`include` reached
// from inside Body resolve relative to that file rather than the call site.
type Func struct {
	ID     uuid.UUID
	Params []string
	Body   ast.Expr
	Env    *Env
	File   string
}

// Module is a parameterizable, deferred-evaluation template. Unlike Func it
// does not close over the lexical environment; it carries only the import
// context needed to resolve `import`/`include` from within its body, plus
// its own originating file path (used to build mod.pkg).
type Module struct {
	ID      uuid.UUID
	Params  *ast.TupleLit
	Body    []ast.Stmt
	Out     ast.Expr // nil if the instance tuple is assembled from top-level lets
	Path    string
	HasPath bool
}

// Env is a stack of lexical scopes mapping symbol names to values. The zero
// value is not usable; create scopes with NewRootEnv and Child.
type Env struct {
	parent *Env
	vars   map[string]Value
}

// NewRootEnv creates a scope with no parent.
func NewRootEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Child creates a new scope chained to e.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: make(map[string]Value)}
}

// Define binds name to v in e's own frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Lookup searches e and its ancestors for name.
func (e *Env) Lookup(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Equal reports whether a and b are deeply equal per the language's
// equality rules: tuples compare field-by-field in order, lists
// element-by-element in order, scalars by value, and Func/Module by
// reference identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name || !Equal(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	case *Func:
		bv, ok := b.(*Func)
		return ok && av == bv
	case *Module:
		bv, ok := b.(*Module)
		return ok && av == bv
	default:
		return false
	}
}

// Render returns the canonical textual form of v used by format-expression
// substitution and TRACE output. Scalars render to their natural text;
// composite values render to a stable, readable pretty form intended for
// diagnostics rather than round-tripping.
func Render(v Value) string {
	switch x := v.(type) {
	case Null:
		return ""
	case Bool:
		if x {
			return "true"
		}
		return "false"
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case Str:
		return string(x)
	case *List:
		var b []byte
		b = append(b, '[')
		for i, e := range x.Elems {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, Render(e)...)
		}
		b = append(b, ']')
		return string(b)
	case *Tuple:
		var b []byte
		b = append(b, '{')
		for i, f := range x.Fields {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, fmt.Sprintf("%s=%s", f.Name, Render(f.Value))...)
		}
		b = append(b, '}')
		return string(b)
	case *Func:
		return fmt.Sprintf("func<%s>", x.ID)
	case *Module:
		return fmt.Sprintf("module<%s>", x.ID)
	default:
		return fmt.Sprintf("%v", x)
	}
}
