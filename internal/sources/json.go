package sources

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/records"
)

// JSONReader reads a JSON array of objects. Numbers are kept as
// json.Number so identifiers never pass through float64.
type JSONReader struct{}

// NewJSONReader creates a new JSON reader.
func NewJSONReader() *JSONReader {
	return &JSONReader{}
}

// Read implements Reader.
func (r *JSONReader) Read(ctx context.Context, path string) (*Table, error) {
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

func (r *JSONReader) decode(in io.Reader, path string) (*Table, error) {
	dec := json.NewDecoder(in)
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		if err == io.EOF {
			return &Table{Path: path}, nil
		}
		return nil, errors.NewParseError("json", path, "expected an array of objects", err)
	}

	seen := make(map[string]bool)
	t := &Table{Path: path, Rows: make([]records.Row, 0, len(objects))}
	for _, obj := range objects {
		for k := range obj {
			if !seen[k] {
				seen[k] = true
				t.Header = append(t.Header, k)
			}
		}
		t.Rows = append(t.Rows, records.Row(obj))
	}
	sort.Strings(t.Header)
	return t, nil
}
