package convert

import (
	"encoding/json"
	"io"

	"github.com/jfranklin9000/ucg/value"
)

// JSON renders v as JSON, grounded on encoding/json/json.go's kind-switch-
// to-any shape: walk the value into a plain Go any tree, then hand it to
// the standard library's marshaler.
func JSON(v value.Value, w io.Writer) error {
	a, err := toAny(v)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
