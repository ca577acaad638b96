// Package readers loads normalized observation rows from relational data
// files. Each supported format has its own Reader; a Factory picks the right
// one from the file extension, and custom readers can be registered the same
// way the built-in ones are.
//
// Readers only produce rows. None of the reconciliation logic lives here;
// callers group rows into observation sequences and hand them to the
// reconciler.
package readers

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
)

// Reader loads observation rows from a file of one or more formats.
type Reader interface {
	// Read loads all rows from the file at path.
	Read(ctx context.Context, path string) ([]Row, error)

	// Extensions returns the file extensions this reader supports,
	// lower-case and without the leading dot.
	Extensions() []string
}

// Factory selects a Reader by file extension.
type Factory struct {
	mu      sync.RWMutex
	readers map[string]Reader
}

// NewFactory creates a factory with all built-in readers registered.
func NewFactory() *Factory {
	f := &Factory{readers: make(map[string]Reader)}
	for _, r := range []Reader{
		NewCSVReader(),
		NewJSONReader(),
		NewYAMLReader(),
		NewXMLReader(),
		NewSQLiteReader(),
		NewExcelReader(),
	} {
		f.Register(r)
	}
	return f
}

// Register adds a reader for every extension it supports. Registering a
// reader for an already-claimed extension replaces the previous one.
func (f *Factory) Register(r Reader) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ext := range r.Extensions() {
		f.readers[strings.ToLower(ext)] = r
	}
}

// Reader returns the reader registered for the file's extension.
func (f *Factory) Reader(path string) (Reader, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	f.mu.RLock()
	defer f.mu.RUnlock()
	if r, ok := f.readers[ext]; ok {
		return r, nil
	}
	return nil, errors.NewValidationError("path", path, "unsupported file format: "+ext)
}

// Extensions returns all registered extensions.
func (f *Factory) Extensions() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	exts := make([]string, 0, len(f.readers))
	for ext := range f.readers {
		exts = append(exts, ext)
	}
	return exts
}

// Read loads all rows from the file at path using the reader registered for
// its extension. Each call is one ingest batch, tagged with a batch ID in
// the logs.
func (f *Factory) Read(ctx context.Context, path string) ([]Row, error) {
	reader, err := f.Reader(path)
	if err != nil {
		return nil, err
	}

	batch := uuid.NewString()
	log := logging.Ctx(ctx)
	log.Debug().Str("batch", batch).Str("path", path).Msg("reading observation rows")

	rows, err := reader.Read(ctx, path)
	if err != nil {
		log.Error().Str("batch", batch).Str("path", path).Err(err).Msg("read failed")
		return nil, err
	}

	log.Info().Str("batch", batch).Str("path", path).Int("rows", len(rows)).Msg("read observation rows")
	return rows, nil
}
