package readers

import (
	"context"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/factmap/pkg/errors"
)

// YAMLReader reads observation rows from a YAML list of row mappings.
type YAMLReader struct{}

// NewYAMLReader creates a YAML reader.
func NewYAMLReader() *YAMLReader {
	return &YAMLReader{}
}

// Extensions returns the extensions this reader supports.
func (r *YAMLReader) Extensions() []string {
	return []string{"yaml", "yml"}
}

// Read loads all rows from the file at path.
func (r *YAMLReader) Read(ctx context.Context, path string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var rows []Row
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return rows, nil
}
