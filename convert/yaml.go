package convert

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jfranklin9000/ucg/value"
)

// YAML renders v as YAML, grounded on internal/encoding/yaml/encode.go:
// walk the value into a plain Go any tree and marshal it with
// gopkg.in/yaml.v3, rather than re-deriving yaml.Node structure by hand.
func YAML(v value.Value, w io.Writer) error {
	a, err := toAny(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return err
	}
	return enc.Close()
}
