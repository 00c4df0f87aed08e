package convert_test

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/jfranklin9000/ucg/convert"
	"github.com/jfranklin9000/ucg/value"
)

func sampleTuple() *value.Tuple {
	return value.NewTuple([]value.TupleField{
		{Name: "name", Value: value.Str("demo")},
		{Name: "port", Value: value.Int(8080)},
		{Name: "tags", Value: value.NewList([]value.Value{value.Str("a"), value.Str("b")})},
		{Name: "nested", Value: value.NewTuple([]value.TupleField{
			{Name: "on", Value: value.Bool(true)},
		})},
	})
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.JSON(sampleTuple(), &buf)))
	out := buf.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `"name": "demo"`)))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `"port": 8080`)))
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.YAML(sampleTuple(), &buf)))
	out := buf.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "name: demo")))
}

func TestTOML(t *testing.T) {
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.TOML(sampleTuple(), &buf)))
	out := buf.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, `name = 'demo'`) || strings.Contains(out, `name = "demo"`)))
}

func TestTOMLRejectsNull(t *testing.T) {
	tuple := value.NewTuple([]value.TupleField{{Name: "x", Value: value.Null{}}})
	var buf bytes.Buffer
	err := convert.TOML(tuple, &buf)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestTOMLIgnoresFunc(t *testing.T) {
	tuple := value.NewTuple([]value.TupleField{
		{Name: "f", Value: &value.Func{}},
		{Name: "x", Value: value.Int(1)},
	})
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.TOML(tuple, &buf)))
	qt.Assert(t, qt.IsTrue(strings.Contains(buf.String(), "x = 1")))
	qt.Assert(t, qt.IsTrue(!strings.Contains(buf.String(), "f")))
}

func TestFlags(t *testing.T) {
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.Flags(sampleTuple(), &buf)))
	lines := strings.Split(buf.String(), "\n")
	qt.Assert(t, qt.IsTrue(contains(lines, "--name=demo")))
	qt.Assert(t, qt.IsTrue(contains(lines, "--port=8080")))
	qt.Assert(t, qt.IsTrue(contains(lines, "--tags=a")))
	qt.Assert(t, qt.IsTrue(contains(lines, "--tags=b")))
	qt.Assert(t, qt.IsTrue(contains(lines, "--nested.on=true")))
}

func TestFlagsOmitsNull(t *testing.T) {
	tuple := value.NewTuple([]value.TupleField{
		{Name: "a", Value: value.Null{}},
		{Name: "b", Value: value.Int(1)},
	})
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.Flags(tuple, &buf)))
	qt.Assert(t, qt.Equals(buf.String(), "--b=1"))
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.Text(value.Str("hello"), &buf)))
	qt.Assert(t, qt.Equals(buf.String(), "hello"))

	err := convert.Text(value.Int(1), &buf)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestXML(t *testing.T) {
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(convert.XML(sampleTuple(), &buf)))
	out := buf.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "<tuple>")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "<name>demo</name>")))
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
