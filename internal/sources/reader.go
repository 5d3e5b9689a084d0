package sources

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/agentstation/tallysheet/pkg/errors"
)

// Reader reads one tabular file.
type Reader interface {
	Read(ctx context.Context, path string) (*Table, error)
}

// ReaderFor returns the reader for a file based on its extension. Sheet
// selects the worksheet of spreadsheet inputs and is ignored otherwise.
func ReaderFor(path, sheet string) (Reader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return NewCSVReader(), nil
	case ".xlsx", ".xlsm":
		return NewXLSXReader(sheet), nil
	case ".json":
		return NewJSONReader(), nil
	default:
		return nil, &errors.UnsupportedFormatError{File: path, Extension: ext}
	}
}

// trimBOM strips a UTF-8 byte order mark from the first header cell.
func trimBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}

// cleanHeader trims whitespace around column names.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}
