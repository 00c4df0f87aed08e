package errors_test

import (
	"strings"
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/token"
)

func TestNewfKind(t *testing.T) {
	err := errors.Newf(token.NoPos, errors.TypeMismatch, "bad %s", "thing")
	qt.Assert(t, qt.Equals(err.Kind(), errors.TypeMismatch))
	qt.Assert(t, qt.IsTrue(strings.Contains(err.Error(), "bad thing")))
}

func TestWithPath(t *testing.T) {
	err := errors.Newf(token.NoPos, errors.BadSelector, "no field")
	withPath := errors.WithPath(err, []string{"a", "b"})
	qt.Assert(t, qt.DeepEquals(withPath.Path(), []string{"a", "b"}))
}

func TestWrapfUnwrap(t *testing.T) {
	inner := errors.Newf(token.NoPos, errors.TypeMismatch, "inner")
	outer := errors.Wrapf(inner, token.NoPos, errors.CopyTypeMismatch, "outer")
	qt.Assert(t, qt.Equals(outer.Kind(), errors.CopyTypeMismatch))
	qt.Assert(t, qt.IsTrue(strings.Contains(outer.Error(), "inner")))
}

func TestListErrSingleVsMultiple(t *testing.T) {
	var l errors.List
	qt.Assert(t, qt.IsNil(l.Err()))

	l.AddNewf(token.NoPos, errors.ParseError, "one")
	qt.Assert(t, qt.IsNotNil(l.Err()))
	if _, ok := l.Err().(errors.List); ok {
		t.Fatalf("single-element list should unwrap to the bare Error")
	}

	l.AddNewf(token.NoPos, errors.ParseError, "two")
	if _, ok := l.Err().(errors.List); !ok {
		t.Fatalf("multi-element list should stay a List")
	}
}

func TestDetails(t *testing.T) {
	err := errors.Newf(token.NoPos, errors.RangeError, "step must be positive")
	out := errors.Details(err)
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "step must be positive")))
}
