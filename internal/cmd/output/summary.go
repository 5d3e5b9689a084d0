package output

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/tallysheet/pkg/resolver"
)

// RunSummary is the printable outcome of a reconcile run.
type RunSummary struct {
	RunID      string                    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Summary    string                    `json:"summary" yaml:"summary"`
	Inputs     map[string]string         `json:"inputs" yaml:"inputs"`
	Output     string                    `json:"output,omitempty" yaml:"output,omitempty"`
	ArchivedTo string                    `json:"archived_to,omitempty" yaml:"archived_to,omitempty"`
	Provenance string                    `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	DryRun     bool                      `json:"dry_run" yaml:"dry_run"`
	Duration   string                    `json:"duration" yaml:"duration"`
	Stats      resolver.ResultStatistics `json:"stats" yaml:"stats"`
	Warnings   []string                  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// TableData renders the summary as a property/value table.
func (s RunSummary) TableData() Data {
	rows := [][]string{{"Summary", s.Summary}}

	sources := make([]string, 0, len(s.Inputs))
	for src := range s.Inputs {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		rows = append(rows, []string{"Input (" + src + ")", s.Inputs[src]})
	}

	switch {
	case s.DryRun:
		rows = append(rows, []string{"Output", "(dry run, nothing written)"})
	case s.Output != "":
		rows = append(rows, []string{"Output", s.Output})
	}
	if s.ArchivedTo != "" {
		rows = append(rows, []string{"Archived", s.ArchivedTo})
	}
	if s.Provenance != "" {
		rows = append(rows, []string{"Provenance", s.Provenance})
	}

	st := s.Stats
	for _, kv := range []struct {
		label string
		value int
	}{
		{"Matches read", st.MatchesRead},
		{"Matches written", st.MatchesWritten},
		{"Blank rows dropped", st.BlankRowsDropped},
		{"Unresolved sides", st.UnresolvedSides},
		{"Participants (resolved)", st.ResolvedParticipants},
		{"Participants (fallback)", st.FallbackParticipants},
		{"Roster included", st.RosterIncluded},
		{"Roster excluded", st.RosterExcluded},
		{"Registry overwrites", st.RegistryOverwrites},
		{"Roster overwrites", st.RosterOverwrites},
	} {
		rows = append(rows, []string{kv.label, strconv.Itoa(kv.value)})
	}

	rows = append(rows, []string{"Duration", s.Duration})
	for _, w := range s.Warnings {
		rows = append(rows, []string{"Warning", w})
	}

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// LookupsTableData renders identifier lookups as a table.
func LookupsTableData(lookups []resolver.Lookup) Data {
	rows := make([][]string, 0, len(lookups))
	for _, l := range lookups {
		known := "no"
		if l.Known {
			known = "yes"
		}
		source := l.NameSource.String()
		if l.NameFallback {
			source += " (fallback)"
		}
		rows = append(rows, []string{
			strconv.Quote(l.Raw),
			l.Key.String(),
			known,
			dash(l.Membership.String()),
			dash(l.Name),
			source,
			dash(l.Rating),
		})
	}
	return Data{
		Headers:         []string{"Identifier", "Key", "Known", "Membership#", "Name", "Name Source", "Rating"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter, AlignRight, AlignLeft, AlignLeft, AlignRight},
	}
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Print writes data in format. Table output uses the prepared table; the
// structured formats encode data directly.
func Print(w io.Writer, format Format, data any, table Data) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, data)
	default:
		return NewFormatter(FormatTable).Format(w, table)
	}
}
