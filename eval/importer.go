package eval

import (
	"sync"

	"github.com/jfranklin9000/ucg/errors"
	"github.com/jfranklin9000/ucg/parser"
	"github.com/jfranklin9000/ucg/token"
	"github.com/jfranklin9000/ucg/value"
)

// PathResolver turns an import/include literal, relative to the directory
// of the file containing it, into a canonical path used as the import
// cache's key. "std/..." literals are conventionally resolved against a
// separate standard-library root rather than importerDir.
type PathResolver func(importerDir, literal string) (string, error)

// Loader reads the raw bytes backing a canonical path.
type Loader func(canonicalPath string) ([]byte, error)

// importEntry is the memoized outcome of loading one canonical path, once
// loading has finished.
type importEntry struct {
	value value.Value
	err   error
}

// Importer resolves and caches `import`/`include` targets. A path enters
// the loading set before its file's statements are evaluated; a second
// request for a path still in the loading set (the self-import-for-
// recursion case, see value.Cyclic) gets a placeholder instead of
// blocking, since evaluation here is single-threaded and recursive by
// construction — the request can only come from the very load it would be
// waiting on.
type Importer struct {
	mu      sync.Mutex
	entries map[string]*importEntry
	loading map[string]bool

	Resolve   PathResolver
	LoadBytes Loader
	Settings  Settings
}

// NewImporter builds an Importer with an empty cache.
func NewImporter(resolve PathResolver, load Loader, settings Settings) *Importer {
	return &Importer{
		entries:   make(map[string]*importEntry),
		loading:   make(map[string]bool),
		Resolve:   resolve,
		LoadBytes: load,
		Settings:  settings,
	}
}

// Load resolves literal relative to importerDir and loads the result.
func (imp *Importer) Load(importerDir, literal string) (value.Value, error) {
	canon, err := imp.Resolve(importerDir, literal)
	if err != nil {
		return nil, errors.Newf(token.NoPos, errors.IoError, "resolving %q: %v", literal, err)
	}
	return imp.LoadCanonical(canon)
}

// LoadCanonical loads the file at an already-resolved canonical path,
// parsing and evaluating it at most once per process.
func (imp *Importer) LoadCanonical(canon string) (value.Value, error) {
	imp.mu.Lock()
	if e, ok := imp.entries[canon]; ok {
		imp.mu.Unlock()
		return e.value, e.err
	}
	if imp.loading[canon] {
		imp.mu.Unlock()
		return &value.Cyclic{Path: canon}, nil
	}
	imp.loading[canon] = true
	imp.mu.Unlock()

	v, err := imp.loadFile(canon)

	imp.mu.Lock()
	delete(imp.loading, canon)
	imp.entries[canon] = &importEntry{value: v, err: err}
	imp.mu.Unlock()
	return v, err
}

func (imp *Importer) loadFile(canon string) (value.Value, error) {
	src, err := imp.LoadBytes(canon)
	if err != nil {
		return nil, errors.Newf(token.NoPos, errors.IoError, "loading %q: %v", canon, err)
	}
	file, err := parser.ParseFile(canon, src)
	if err != nil {
		return nil, err
	}
	root := value.NewRootEnv()
	root.Define("env", value.EnvProxy{})
	ctx := &Context{Importer: imp, CurrentFile: canon, Settings: imp.Settings}
	return EvalFile(file, root, ctx)
}
