// Package eval implements the tree-walking evaluator: it turns an ast.Expr
// and a lexical scope into a value.Value (or a diagnostic), including
// imports, module instantiation, and the map/filter/reduce built-ins.
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

func defaultLookupEnv(name string) (string, bool) { return os.LookupEnv(name) }

// Env is the lexical scope type threaded through Eval. The scope-chain
// implementation lives in package value (value.Env), since value.Value is
// eval's return type and a reciprocal import from value back into eval
// would cycle; this alias keeps the external name the rest of this
// package's API describes.
type Env = value.Env

// AssertionSink receives the outcome of every `assert` statement evaluated
// during a run. The evaluator never inspects or aggregates results itself;
// that is left to whatever drives `ucg test`.
type AssertionSink interface {
	Record(desc string, ok bool, pos token.Pos)
}

// Converter renders a value to w, used by `out` statements. Defined here
// (not in package convert) so eval need not import convert; cmd/ucg wires
// concrete converters into a Context's Converters map.
type Converter func(v value.Value, w io.Writer) error

// Settings carries run-wide configuration that does not change across
// imports: whether env-var lookups are strict, where TRACE output and
// warnings go, the assertion sink, and the registered out-converters.
type Settings struct {
	Nostrict   bool
	Trace      io.Writer
	Warnings   io.Writer
	Assertions AssertionSink
	Converters map[string]Converter
	LookupEnv  func(name string) (string, bool)
	Output     io.Writer
}

// Context is the per-call evaluation context: Settings plus the importer
// and the path of the file whose import/include statements are currently
// being resolved.
type Context struct {
	Importer    *Importer
	CurrentFile string
	Settings
}

// withFile returns a copy of c with CurrentFile set to path, used when
// entering a Func or Module body so that import/include inside it resolve
// relative to the file that defined it, not the call site.
func (c *Context) withFile(path string) *Context {
	cp := *c
	cp.CurrentFile = path
	return &cp
}

func (c *Context) warnf(format string, args ...interface{}) {
	if c.Warnings == nil {
		return
	}
	fmt.Fprintf(c.Warnings, format+"\n", args...)
}
