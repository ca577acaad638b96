package readers

import (
	"context"
	"encoding/json"
	"os"

	"github.com/agentstation/factmap/pkg/errors"
)

// JSONReader reads observation rows from a JSON array of row objects.
type JSONReader struct{}

// NewJSONReader creates a JSON reader.
func NewJSONReader() *JSONReader {
	return &JSONReader{}
}

// Extensions returns the extensions this reader supports.
func (r *JSONReader) Extensions() []string {
	return []string{"json"}
}

// Read loads all rows from the file at path.
func (r *JSONReader) Read(ctx context.Context, path string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return rows, nil
}
