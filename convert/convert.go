// Package convert implements the `out CONVERTER VALUE-EXPR` output
// converters: each takes a fully evaluated value.Value and writes its
// serialized form to an io.Writer. The registry is a plain map rather than
// an init-time side-effecting registration mechanism, so a driver can build
// exactly the set of converters it wants (e.g. cmd/ucg's default registry,
// or a test registry with a subset).
package convert

import (
	"fmt"
	"io"

	"github.com/jfranklin9000/ucg/value"
)

// Converter renders v to w. It has the same underlying func type as
// eval.Converter, so each Registry entry converts to an eval.Converter with
// a plain type conversion and this package needs no import of package eval.
type Converter func(v value.Value, w io.Writer) error

// Registry is a named set of converters.
type Registry map[string]Converter

// NewDefaultRegistry returns the standard converter set named in spec.md
// §6: json, yaml, toml, flags, exec, txt, and xml (the last built directly
// on the standard library's encoding/xml, see DESIGN.md).
func NewDefaultRegistry() Registry {
	return Registry{
		"json":  JSON,
		"yaml":  YAML,
		"toml":  TOML,
		"flags": Flags,
		"exec":  Exec,
		"txt":   Text,
		"xml":   XML,
	}
}

// Register adds or replaces the named converter.
func (r Registry) Register(name string, c Converter) {
	r[name] = c
}

// Lookup returns the named converter and whether it exists.
func (r Registry) Lookup(name string) (Converter, bool) {
	c, ok := r[name]
	return c, ok
}

// toAny walks a value.Value into a plain Go any tree (map[string]any,
// []any, and scalar types) suitable for handing to a generic marshaler
// such as encoding/json or yaml.v3. Func and Module values have no
// serialized form: toAny itself rejects them (and any other non-data
// kind) with an error that does not name the calling converter.
func toAny(v value.Value) (interface{}, error) {
	switch x := v.(type) {
	case value.Null:
		return nil, nil
	case value.Bool:
		return bool(x), nil
	case value.Int:
		return int64(x), nil
	case value.Float:
		return float64(x), nil
	case value.Str:
		return string(x), nil
	case *value.List:
		out := make([]interface{}, len(x.Elems))
		for i, e := range x.Elems {
			a, err := toAny(e)
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	case *value.Tuple:
		out := make(map[string]interface{}, len(x.Fields))
		for _, f := range x.Fields {
			a, err := toAny(f.Value)
			if err != nil {
				return nil, err
			}
			out[f.Name] = a
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert a %s to structured data", v.Kind())
	}
}
