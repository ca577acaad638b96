package readers

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/agentstation/factmap/pkg/errors"
)

// CSVReader reads observation rows from delimiter-separated files. Registry
// exports are frequently windows-1251 encoded, so the reader can decode that
// charset on the fly.
type CSVReader struct {
	comma       rune
	windows1251 bool
}

// CSVOption configures a CSVReader.
type CSVOption func(*CSVReader)

// WithComma sets the field delimiter. Registry exports commonly use ';'.
func WithComma(comma rune) CSVOption {
	return func(r *CSVReader) {
		r.comma = comma
	}
}

// WithWindows1251 decodes the file from windows-1251 instead of UTF-8.
func WithWindows1251() CSVOption {
	return func(r *CSVReader) {
		r.windows1251 = true
	}
}

// NewCSVReader creates a CSV reader.
func NewCSVReader(opts ...CSVOption) *CSVReader {
	r := &CSVReader{comma: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Extensions returns the extensions this reader supports.
func (r *CSVReader) Extensions() []string {
	return []string{"csv", "tsv"}
}

// Read loads all rows from the file at path.
func (r *CSVReader) Read(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if r.windows1251 {
		src = transform.NewReader(f, charmap.Windows1251.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = r.comma
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		cr.Comma = '\t'
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.NewParseError("csv", path, "missing header row", err)
	}
	columns, err := headerIndex("csv", path, header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &errors.ParseError{Format: "csv", File: path, Line: line, Message: "malformed record", Err: err}
		}
		rows = append(rows, rowFromRecord(record, columns))
	}
	return rows, nil
}

// headerIndex maps the required column names to their positions.
func headerIndex(format, path string, header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"inn", "field", "value", "source", "timestamp"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewParseError(format, path, "missing required column "+required, nil)
		}
	}
	return columns, nil
}

func rowFromRecord(record []string, columns map[string]int) Row {
	get := func(name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return Row{
		INN:       get("inn"),
		Field:     get("field"),
		Value:     get("value"),
		Source:    sourceID(get("source")),
		Timestamp: get("timestamp"),
	}
}
