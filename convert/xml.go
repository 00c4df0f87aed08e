package convert

import (
	"encoding/xml"
	"io"

	"github.com/jfranklin9000/ucg/value"
)

// XML renders v as an XML document rooted at <tuple>, walked against
// encoding/xml.Encoder directly rather than through a third-party library:
// the pack's only XML-adjacent dependency (encoding/xml/koala) is a
// decode-only reader for a struct-annotated dialect and has no path to
// encoding an arbitrary, dynamically-shaped UCG tuple (see DESIGN.md).
// Tuple fields become child elements; List elements repeat the parent
// element's tag; scalars become character data; Func/Module are rejected.
func XML(v value.Value, w io.Writer) error {
	if _, ok := v.(*value.Tuple); !ok {
		return &kindError{op: "xml", kind: v.Kind()}
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeXML(enc, "tuple", v); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeXML(enc *xml.Encoder, tag string, v value.Value) error {
	switch x := v.(type) {
	case *value.List:
		for _, e := range x.Elems {
			if err := encodeXML(enc, tag, e); err != nil {
				return err
			}
		}
		return nil
	case *value.Tuple:
		start := xml.StartElement{Name: xml.Name{Local: tag}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, f := range x.Fields {
			if err := encodeXML(enc, f.Name, f.Value); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	default:
		start := xml.StartElement{Name: xml.Name{Local: tag}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		chars, err := xmlChardata(x)
		if err != nil {
			return err
		}
		if chars != "" {
			if err := enc.EncodeToken(xml.CharData(chars)); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	}
}

func xmlChardata(v value.Value) (string, error) {
	switch x := v.(type) {
	case value.Null:
		return "", nil
	default:
		if _, isFunc := x.(*value.Func); isFunc {
			return "", xmlUnsupported(x)
		}
		if _, isMod := x.(*value.Module); isMod {
			return "", xmlUnsupported(x)
		}
		return value.Render(x), nil
	}
}

func xmlUnsupported(v value.Value) error {
	return &kindError{op: "xml", kind: v.Kind()}
}
