package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/tallysheet/pkg/provenance"
)

// ProvenanceTableData renders a provenance report with one row per
// candidate value. Resources and fields are sorted; candidates keep their
// authority order and the emitted one is marked with an arrow.
func ProvenanceTableData(report *provenance.Report) Data {
	var rows [][]string

	resources := make([]string, 0, len(report.Resources))
	for key := range report.Resources {
		resources = append(resources, key)
	}
	sort.Strings(resources)

	for _, key := range resources {
		resource := report.Resources[key]
		fields := make([]string, 0, len(resource.Fields))
		for name := range resource.Fields {
			fields = append(fields, name)
		}
		sort.Strings(fields)

		for _, name := range fields {
			field := resource.Fields[name]
			conflict := ""
			if len(field.Conflicts) > 0 {
				conflict = "yes"
			}
			for i, entry := range field.History {
				// Resource and field only on the first row of a group
				resourceCol, fieldCol, conflictCol := "", "", ""
				if i == 0 {
					resourceCol, fieldCol, conflictCol = key, name, conflict
				}
				current := ""
				if entry.Selected {
					current = "→"
				}
				rows = append(rows, []string{
					resourceCol,
					fieldCol,
					current,
					formatValue(entry.Value),
					string(entry.Source),
					fmt.Sprintf("%d", entry.Priority),
					conflictCol,
					entry.Reason,
				})
			}
		}
	}

	return Data{
		Headers: []string{"Resource", "Field", "Curr", "Value", "Source", "Priority", "Conflict", "Reason"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft,   // Resource
			AlignLeft,   // Field
			AlignCenter, // Curr
			AlignLeft,   // Value
			AlignLeft,   // Source
			AlignRight,  // Priority
			AlignCenter, // Conflict
			AlignLeft,   // Reason
		},
	}
}

// MatchField reports whether field matches any of the glob patterns,
// case-insensitively. No patterns matches everything.
func MatchField(field string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	fieldLower := strings.ToLower(field)
	for _, pattern := range patterns {
		if matched, err := filepath.Match(strings.ToLower(pattern), fieldLower); err == nil && matched {
			return true
		}
	}
	return false
}

// formatValue renders a candidate value for a table cell.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "<nil>"
	case string:
		if v == "" {
			return "<empty>"
		}
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	}

	b, err := yaml.Marshal(val)
	if err != nil {
		return fmt.Sprintf("%v", val)
	}
	return strings.TrimSuffix(string(b), "\n")
}
