// Package sources locates and reads the tabular inputs of a run.
//
// Each input is described by a Source: an explicit path, or a directory and
// a file name token used to pick the most recently modified match. Readers
// are chosen by file extension and return generic rows; decoding into typed
// records happens in package records.
package sources

import (
	"github.com/agentstation/tallysheet/pkg/constants"
	"github.com/agentstation/tallysheet/pkg/records"
	"github.com/agentstation/tallysheet/pkg/types"
)

// Source describes one input to load.
type Source struct {
	ID       types.SourceID
	Path     string   // explicit file; skips discovery when set
	Dir      string   // directory searched when Path is empty
	Token    string   // file name token used for discovery
	Sheet    string   // worksheet for xlsx inputs; first sheet when empty
	Required bool     // a missing required input is fatal
	Columns  []string // columns that must be present in the header
	Exclude  []string // files discovery skips, with their _vN archives
}

// Table is the content of one loaded input.
type Table struct {
	Source types.SourceID
	Path   string
	Header []string
	Rows   []records.Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// newTable builds rows from a header and positional records. Short records
// are padded with empty cells; cells beyond the header are ignored.
func newTable(header []string, data [][]string) *Table {
	t := &Table{Header: header, Rows: make([]records.Row, 0, len(data))}
	for _, rec := range data {
		row := make(records.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Defaults returns the standard source set for a directory: registry,
// roster and matches required, ratings optional.
func Defaults(dir string) []Source {
	return []Source{
		{ID: types.RegistryID, Dir: dir, Token: constants.DefaultRegistryToken, Required: true, Columns: records.RegistryColumns},
		{ID: types.RosterID, Dir: dir, Token: constants.DefaultRosterToken, Required: true, Columns: records.RosterColumns},
		{ID: types.MatchesID, Dir: dir, Token: constants.DefaultMatchesToken, Required: true, Columns: records.MatchColumns},
		{ID: types.RatingsID, Dir: dir, Token: constants.DefaultRatingsToken},
	}
}
