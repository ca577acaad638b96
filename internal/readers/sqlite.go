package readers

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // cgo-free sqlite driver

	"github.com/agentstation/factmap/pkg/errors"
)

// DefaultSQLiteTable is the table observation rows are read from unless a
// reader is configured otherwise.
const DefaultSQLiteTable = "observations"

// SQLiteReader reads observation rows from a SQLite database file.
type SQLiteReader struct {
	table string
}

// SQLiteOption configures a SQLiteReader.
type SQLiteOption func(*SQLiteReader)

// WithTable sets the table to read rows from.
func WithTable(table string) SQLiteOption {
	return func(r *SQLiteReader) {
		r.table = table
	}
}

// NewSQLiteReader creates a SQLite reader.
func NewSQLiteReader(opts ...SQLiteOption) *SQLiteReader {
	r := &SQLiteReader{table: DefaultSQLiteTable}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Extensions returns the extensions this reader supports.
func (r *SQLiteReader) Extensions() []string {
	return []string{"db", "sqlite", "sqlite3"}
}

// Read loads all rows from the configured table.
func (r *SQLiteReader) Read(ctx context.Context, path string) ([]Row, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT inn, field, value, source, timestamp FROM %q ORDER BY rowid", r.table)
	result, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.WrapResource("read", "sqlite table", r.table, err)
	}
	defer result.Close()

	var rows []Row
	for result.Next() {
		var row Row
		var source string
		if err := result.Scan(&row.INN, &row.Field, &row.Value, &source, &row.Timestamp); err != nil {
			return nil, errors.WrapResource("read", "sqlite table", r.table, err)
		}
		row.Source = sourceID(source)
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, errors.WrapResource("read", "sqlite table", r.table, err)
	}
	return rows, nil
}
