package sources

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/agentstation/tallysheet/pkg/errors"
)

// CSVReader reads comma-separated files. Every cell is kept as text.
type CSVReader struct{}

// NewCSVReader creates a new CSV reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Read implements Reader.
func (r *CSVReader) Read(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // input path comes from discovery or CLI flags
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	return r.decode(f, path)
}

func (r *CSVReader) decode(in io.Reader, path string) (*Table, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &errors.ParseError{Format: "csv", File: path, Line: line, Message: err.Error(), Err: err}
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return &Table{Path: path}, nil
	}

	t := newTable(cleanHeader(trimBOM(rows[0])), rows[1:])
	t.Path = path
	return t, nil
}
