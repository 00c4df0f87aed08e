package convert

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jfranklin9000/ucg/value"
)

// Flags renders v as a newline-separated sequence of `--k=v` command-line
// arguments, walked the same way TOML's tomlAny walks a tuple: nested tuples
// prefix keys with '.', list values expand into one repeated flag per
// element, Null fields are omitted entirely, and Func/Module fields are
// ignored. spec.md specifies these rules but not a separator; one argument
// per line matches how exec (below) tokenizes a rendered command line.
func Flags(v value.Value, w io.Writer) error {
	tuple, ok := v.(*value.Tuple)
	if !ok {
		return &kindError{op: "flags", kind: v.Kind()}
	}
	var args []string
	if err := flagsWalk(tuple, "", &args); err != nil {
		return err
	}
	_, err := io.WriteString(w, strings.Join(args, "\n"))
	return err
}

func flagsWalk(t *value.Tuple, prefix string, out *[]string) error {
	for _, f := range t.Fields {
		key := f.Name
		if prefix != "" {
			key = prefix + "." + f.Name
		}
		if err := flagsField(key, f.Value, out); err != nil {
			return err
		}
	}
	return nil
}

func flagsField(key string, v value.Value, out *[]string) error {
	switch x := v.(type) {
	case value.Null:
		return nil
	case *value.Func, *value.Module:
		return nil
	case *value.Tuple:
		return flagsWalk(x, key, out)
	case *value.List:
		for _, e := range x.Elems {
			if err := flagsField(key, e, out); err != nil {
				return err
			}
		}
		return nil
	default:
		s, err := flagScalar(x)
		if err != nil {
			return err
		}
		*out = append(*out, fmt.Sprintf("--%s=%s", key, s))
		return nil
	}
}

func flagScalar(v value.Value) (string, error) {
	switch x := v.(type) {
	case value.Bool:
		return strconv.FormatBool(bool(x)), nil
	case value.Int:
		return strconv.FormatInt(int64(x), 10), nil
	case value.Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64), nil
	case value.Str:
		return string(x), nil
	default:
		return "", fmt.Errorf("flags: cannot render a %s as a flag value", v.Kind())
	}
}
