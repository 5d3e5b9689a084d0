package sources

import (
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tallysheet/pkg/errors"
)

// XLSXReader reads one worksheet of an Excel workbook.
type XLSXReader struct {
	sheet string
}

// NewXLSXReader creates a reader for the named sheet, or the first sheet
// when sheet is empty.
func NewXLSXReader(sheet string) *XLSXReader {
	return &XLSXReader{sheet: sheet}
}

// Read implements Reader.
func (r *XLSXReader) Read(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParseError("xlsx", path, "failed to open workbook", err)
	}
	defer func() { _ = f.Close() }()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, errors.NewParseError("xlsx", path, "workbook contains no sheets", nil)
	}

	sheet := sheetList[0]
	if r.sheet != "" {
		if !slices.Contains(sheetList, r.sheet) {
			return nil, &errors.ValidationError{
				Field:   "sheet",
				Value:   r.sheet,
				Message: fmt.Sprintf("sheet %q not found in %s (have %v)", r.sheet, path, sheetList),
			}
		}
		sheet = r.sheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParseError("xlsx", path, fmt.Sprintf("failed to read sheet %q", sheet), err)
	}

	if len(rows) == 0 {
		return &Table{Path: path}, nil
	}

	t := newTable(cleanHeader(rows[0]), rows[1:])
	t.Path = path
	return t, nil
}
