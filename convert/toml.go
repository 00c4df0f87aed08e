package convert

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/jfranklin9000/ucg/value"
)

// TOML renders v as TOML, grounded on encoding/toml/encode.go's asAny walk.
// Unlike toAny (used by json/yaml), the TOML conversion rules are explicit
// in spec.md: tuple→table, list→array, scalars as-is, Null is an error
// (TOML has no null), Func/Module are silently ignored rather than
// rejected.
func TOML(v value.Value, w io.Writer) error {
	tuple, ok := v.(*value.Tuple)
	if !ok {
		return &kindError{op: "toml", kind: v.Kind()}
	}
	a, err := tomlAny(tuple)
	if err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(a)
}

func tomlAny(v value.Value) (interface{}, error) {
	switch x := v.(type) {
	case value.Null:
		return nil, fmt.Errorf("toml: Null has no TOML representation")
	case value.Bool:
		return bool(x), nil
	case value.Int:
		return int64(x), nil
	case value.Float:
		return float64(x), nil
	case value.Str:
		return string(x), nil
	case *value.List:
		out := make([]interface{}, 0, len(x.Elems))
		for _, e := range x.Elems {
			if _, skip := e.(*value.Func); skip {
				continue
			}
			if _, skip := e.(*value.Module); skip {
				continue
			}
			a, err := tomlAny(e)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	case *value.Tuple:
		out := make(map[string]interface{}, len(x.Fields))
		for _, f := range x.Fields {
			if _, skip := f.Value.(*value.Func); skip {
				continue
			}
			if _, skip := f.Value.(*value.Module); skip {
				continue
			}
			a, err := tomlAny(f.Value)
			if err != nil {
				return nil, err
			}
			out[f.Name] = a
		}
		return out, nil
	default:
		return nil, fmt.Errorf("toml: cannot convert a %s", v.Kind())
	}
}

type kindError struct {
	op   string
	kind value.Kind
}

func (e *kindError) Error() string {
	return e.op + ": expected a tuple at the top level, got " + string(e.kind)
}
