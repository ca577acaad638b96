package readers

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/factmap/pkg/errors"
)

// ExcelReader reads observation rows from the first sheet of an XLSX
// workbook. The first row must be a header naming the inn, field, value,
// source and timestamp columns.
type ExcelReader struct{}

// NewExcelReader creates an Excel reader.
func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// Extensions returns the extensions this reader supports.
func (r *ExcelReader) Extensions() []string {
	return []string{"xlsx"}
}

// Read loads all rows from the file at path.
func (r *ExcelReader) Read(ctx context.Context, path string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("xlsx", path, "workbook has no sheets", nil)
	}

	cells, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	if len(cells) == 0 {
		return nil, errors.NewParseError("xlsx", path, "missing header row", nil)
	}

	columns, err := headerIndex("xlsx", path, cells[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, record := range cells[1:] {
		rows = append(rows, rowFromRecord(record, columns))
	}
	return rows, nil
}
