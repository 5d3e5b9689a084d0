package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tallysheet/pkg/resolver"
	"github.com/agentstation/tallysheet/pkg/types"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", " yaml ", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &TableFormatter{}, NewFormatter("unknown"))
}

func sampleSummary() RunSummary {
	return RunSummary{
		Summary:  "Resolved 1 of 1 matches (0 blank dropped) and 1 estimated ratings",
		Inputs:   map[string]string{"roster": "roster.csv", "matches": "matches.csv"},
		Output:   "report.xlsx",
		Duration: "1ms",
		Stats:    resolver.ResultStatistics{MatchesRead: 1, MatchesWritten: 1},
		Warnings: []string{"identifier \"55\" appears both resolved and unresolved"},
	}
}

func TestRunSummary_TableData(t *testing.T) {
	data := sampleSummary().TableData()
	assert.Equal(t, []string{"Property", "Value"}, data.Headers)
	assert.Equal(t, []string{"Input (matches)", "matches.csv"}, data.Rows[1])
	assert.Equal(t, []string{"Input (roster)", "roster.csv"}, data.Rows[2])
	assert.Contains(t, data.Rows, []string{"Output", "report.xlsx"})
	assert.Contains(t, data.Rows, []string{"Matches written", "1"})
	assert.Equal(t, "Warning", data.Rows[len(data.Rows)-1][0])

	s := sampleSummary()
	s.DryRun = true
	assert.Contains(t, s.TableData().Rows, []string{"Output", "(dry run, nothing written)"})
}

func TestPrint(t *testing.T) {
	s := sampleSummary()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatJSON, s, s.TableData()))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "report.xlsx", decoded["output"])

	buf.Reset()
	require.NoError(t, Print(&buf, FormatYAML, s, s.TableData()))
	assert.Contains(t, buf.String(), "matches_written: 1")

	buf.Reset()
	require.NoError(t, Print(&buf, FormatTable, s, s.TableData()))
	assert.Contains(t, buf.String(), "Matches written")
	assert.Contains(t, buf.String(), "report.xlsx")
}

func TestLookupsTableData(t *testing.T) {
	data := LookupsTableData([]resolver.Lookup{
		{Raw: "p1", Key: "p1", Known: true, Membership: "100", Name: "Ann Lee", NameSource: types.RegistryID, Rating: "1500"},
		{Raw: "zz", Key: "zz", NameSource: types.NoneID},
		{Raw: "p3", Key: "p3", Known: true, Name: "Pat Roe", NameSource: types.RosterInternalID, NameFallback: true},
	})
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{`"p1"`, "p1", "yes", "100", "Ann Lee", "registry", "1500"}, data.Rows[0])
	assert.Equal(t, []string{`"zz"`, "zz", "no", "-", "-", "none", "-"}, data.Rows[1])
	assert.Equal(t, "roster_internal_id (fallback)", data.Rows[2][5])
}

func TestTableFormatter_Structs(t *testing.T) {
	type row struct {
		MatchRows int    `json:"match_rows"`
		Path      string `json:"path"`
		hidden    string
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{MatchRows: 2, Path: "a.xlsx", hidden: "x"}}))
	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "MATCH ROWS")
	assert.Contains(t, out, "A.XLSX")
	assert.NotContains(t, out, "HIDDEN")
}
