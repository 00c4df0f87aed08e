package convert

import (
	"fmt"
	"io"

	"github.com/jfranklin9000/ucg/value"
)

// Text writes v's raw Str contents verbatim, with no quoting or escaping.
// Any other kind is an error: there is no reasonable default rendering of,
// say, a Tuple as "raw text" that wouldn't silently hide a caller's mistake
// (using out txt where out json was meant).
func Text(v value.Value, w io.Writer) error {
	s, ok := v.(value.Str)
	if !ok {
		return fmt.Errorf("txt: expected a Str, got %s", v.Kind())
	}
	_, err := io.WriteString(w, string(s))
	return err
}
