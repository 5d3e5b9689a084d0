// Package records defines the tabular inputs and normalized outputs of a
// tournament reconciliation run.
//
// Input sources arrive as generic rows keyed by column name. The Decode
// functions lift those rows into typed records without coercing any cell
// that is meant to stay text (scores, event labels, raw keys).
package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Row is a single record from a tabular source, keyed by column name.
// Values are whatever the reader produced: strings for CSV and xlsx cells,
// strings, json.Number, bools or nil for JSON.
type Row map[string]any

var fold = cases.Fold()

// Get returns the value for column. An exact column match wins; otherwise
// a column equal under Unicode case folding is used.
func (r Row) Get(column string) any {
	if v, ok := r[column]; ok {
		return v
	}
	want := fold.String(column)
	for k, v := range r {
		if fold.String(k) == want {
			return v
		}
	}
	return nil
}

// Text returns the cell for column rendered as text, without trimming.
func (r Row) Text(column string) string {
	return Text(r.Get(column))
}

// Text renders a raw cell value as text without numeric coercion.
// Strings are returned verbatim and JSON numbers keep their literal form.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// MissingColumns returns the required columns absent from header, using the
// same matching rules as Row.Get.
func MissingColumns(header []string, required ...string) []string {
	present := make(map[string]bool, len(header)*2)
	for _, h := range header {
		h = strings.TrimSpace(h)
		present[h] = true
		present[fold.String(h)] = true
	}

	var missing []string
	for _, col := range required {
		if present[col] || present[fold.String(col)] {
			continue
		}
		missing = append(missing, col)
	}
	return missing
}

// FormatName joins first and last names with a single space, skipping
// blank parts.
func FormatName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
