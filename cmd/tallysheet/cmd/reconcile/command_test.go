package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tallysheet/internal/appcontext"
	"github.com/agentstation/tallysheet/internal/cmd/output"
	"github.com/agentstation/tallysheet/internal/config"
	"github.com/agentstation/tallysheet/pkg/constants"
	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/provenance"
)

func writeInputs(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"membership_list.csv": "Membership#,FirstName,LastName,EstRating\n100,Ann,Lee,1500\n200,Bob,Kim,1400\n",
		"roster.csv":          "id,memberId,firstName,lastName\np1,100,Ann,Lee\n",
		"matches.csv":         "MemNum_W,MemNum_L,Score,Division\np1,200,\"11-9, 11-7\",Open\n,,,\n100,p2,3-1,Open\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func inputsFor(dir string) config.Inputs {
	in := config.Defaults()
	in.Dir = dir
	in.Output = filepath.Join(dir, "out", "report.xlsx")
	return in
}

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestRun_WritesReport(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	in := inputsFor(dir)

	summary, err := Run(context.Background(), &appcontext.Mock{}, in, false)
	require.NoError(t, err)

	assert.Equal(t, in.Output, summary.Output)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.Stats.MatchesRead)
	assert.Equal(t, 2, summary.Stats.MatchesWritten)
	assert.Equal(t, 1, summary.Stats.BlankRowsDropped)
	assert.Equal(t, filepath.Join(dir, "roster.csv"), summary.Inputs["roster"])

	wantMatches := [][]string{
		constants.MatchResultsHeader,
		{"Ann Lee", "100", "Bob Kim", "200", "11-9, 11-7", "Open"},
		{"Ann Lee", "100", "", "", "3-1", "Open"},
	}
	got := readSheet(t, in.Output, constants.MatchResultsSheet)
	if diff := cmp.Diff(wantMatches, got); diff != "" {
		t.Errorf("match sheet mismatch (-want +got):\n%s", diff)
	}

	wantRatings := [][]string{
		constants.EstimatedRatingsHeader,
		{"Ann Lee", "100", "1500"},
	}
	if diff := cmp.Diff(wantRatings, readSheet(t, in.Output, constants.EstimatedRatingsSheet)); diff != "" {
		t.Errorf("rating sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ArchivesPreviousReport(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	in := inputsFor(dir)

	_, err := Run(context.Background(), &appcontext.Mock{}, in, false)
	require.NoError(t, err)

	summary, err := Run(context.Background(), &appcontext.Mock{}, in, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "report_v1.xlsx"), summary.ArchivedTo)
	assert.FileExists(t, summary.ArchivedTo)
	assert.FileExists(t, in.Output)
}

func TestRun_RerunIgnoresReportInInputDir(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	in := inputsFor(dir)
	in.Output = filepath.Join(dir, "matches_report.xlsx")

	for range 3 {
		summary, err := Run(context.Background(), &appcontext.Mock{}, in, false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "matches.csv"), summary.Inputs["matches"])
		assert.Equal(t, 2, summary.Stats.MatchesWritten)
	}
	assert.FileExists(t, filepath.Join(dir, "matches_report_v2.xlsx"))
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	in := inputsFor(dir)
	in.Provenance = filepath.Join(dir, "provenance.yaml")

	summary, err := Run(context.Background(), &appcontext.Mock{}, in, true)
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Empty(t, summary.Output)
	assert.NoFileExists(t, in.Output)
	assert.NoFileExists(t, in.Provenance)
}

func TestRun_Provenance(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	in := inputsFor(dir)
	in.Provenance = filepath.Join(dir, "provenance.yaml")

	summary, err := Run(context.Background(), &appcontext.Mock{}, in, false)
	require.NoError(t, err)
	assert.Equal(t, in.Provenance, summary.Provenance)

	file, err := provenance.Load(in.Provenance)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.NotEmpty(t, file.Provenance)
}

func TestRun_MissingInputAbortsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roster.csv"), []byte("id,memberId,firstName,lastName\n"), 0o644))
	in := inputsFor(dir)

	_, err := Run(context.Background(), &appcontext.Mock{}, in, false)
	require.Error(t, err)
	assert.True(t, errors.IsMissingInput(err))
	assert.NoFileExists(t, in.Output)
}

func TestNewCommand_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	out := filepath.Join(dir, "flagged.xlsx")

	app := &appcontext.Mock{
		InputsFunc: func() config.Inputs {
			in := config.Defaults()
			in.Dir = filepath.Join(dir, "does-not-exist")
			return in
		},
	}

	cmd := NewCommand(app)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--dir", dir, "--output", out})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.FileExists(t, out)

	var summary output.RunSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	assert.Equal(t, out, summary.Output)
	assert.Equal(t, 2, summary.Stats.MatchesWritten)
}
