package cmd

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jfranklin9000/ucg/convert"
	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/eval"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

// newResolver builds the PathResolver handed to eval.Importer: relative
// literals resolve against the importing file's directory; "std/..."
// literals resolve against a separately configured standard library root,
// per spec.md §4.3's two-root model.
func newResolver(stdRoot string) eval.PathResolver {
	return func(importerDir, literal string) (string, error) {
		if strings.HasPrefix(literal, "std/") {
			return literal, nil
		}
		dir := importerDir
		if dir == "" {
			dir = "."
		}
		return path.Clean(path.Join(dir, literal)), nil
	}
}

// newLoader builds the Loader handed to eval.Importer, reading "std/..."
// canonical paths from stdRoot and everything else from root.
func newLoader(root, stdRoot string) eval.Loader {
	return func(canonicalPath string) ([]byte, error) {
		if strings.HasPrefix(canonicalPath, "std/") {
			rel := strings.TrimPrefix(canonicalPath, "std/")
			return os.ReadFile(filepath.Join(stdRoot, filepath.FromSlash(rel)))
		}
		return os.ReadFile(filepath.Join(root, filepath.FromSlash(canonicalPath)))
	}
}

func newSettings(c *Command, assertions eval.AssertionSink, out io.Writer) eval.Settings {
	pf := c.Flags()
	conv := make(map[string]eval.Converter, 8)
	for name, fn := range convert.NewDefaultRegistry() {
		conv[name] = eval.Converter(fn)
	}
	return eval.Settings{
		Nostrict:   flagNostrict.Bool(pf),
		Trace:      c.OutOrStderr(),
		Warnings:   c.OutOrStderr(),
		Assertions: assertions,
		Converters: conv,
		Output:     out,
	}
}

// evalFiles parses and evaluates each of files (in declaration order)
// against a single shared importer, so cross-file imports are cached
// together, returning each file's top-level tuple.
func evalFiles(c *Command, files []string, assertions eval.AssertionSink, out io.Writer) ([]*value.Tuple, error) {
	pf := c.Flags()
	root := flagRoot.String(pf)
	stdRoot := flagStdRoot.String(pf)
	settings := newSettings(c, assertions, out)
	importer := eval.NewImporter(newResolver(stdRoot), newLoader(root, stdRoot), settings)

	tuples := make([]*value.Tuple, 0, len(files))
	for _, f := range files {
		canon, err := importer.Resolve("", filepath.ToSlash(f))
		if err != nil {
			return nil, errors.Newf(token.NoPos, errors.IoError, "resolving %q: %v", f, err)
		}
		v, err := importer.LoadCanonical(canon)
		if err != nil {
			return nil, err
		}
		tup, ok := v.(*value.Tuple)
		if !ok {
			return nil, errors.Newf(token.NoPos, errors.ParseError, "%s did not evaluate to a tuple", f)
		}
		tuples = append(tuples, tup)
	}
	return tuples, nil
}
