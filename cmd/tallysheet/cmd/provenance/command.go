// Package provenance provides the command that inspects a provenance file
// written by reconcile.
package provenance

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/agentstation/tallysheet/internal/cmd/output"
	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/provenance"
	"github.com/agentstation/tallysheet/pkg/types"
)

// AppContext defines what the provenance command needs from the app.
type AppContext interface {
	OutputFormat() string
}

// Options selects which provenance entries to show.
type Options struct {
	Resources     []string // resource IDs, e.g. "row-3" or "100"
	Fields        []string // field glob patterns
	Type          string   // "match" or "participant"
	ConflictsOnly bool
}

// NewCommand creates the provenance command.
func NewCommand(app AppContext) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "provenance <file>",
		GroupID: "core",
		Short:   "Show where report values came from",
		Long: `Provenance reads a file written by "reconcile --provenance" and shows, for
every match side and rating row, each source that was consulted, the value
it offered and which one was written to the report.`,
		Example: `  tallysheet provenance provenance.yaml                   # Show everything
  tallysheet provenance provenance.yaml --conflicts       # Only fields where sources disagreed
  tallysheet provenance provenance.yaml --resource row-3  # One match row
  tallysheet provenance provenance.yaml --field '*Name'   # Name fields only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := Load(args[0], *opts)
			if err != nil {
				return err
			}
			format := output.DetectFormat(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, report, output.ProvenanceTableData(report))
		},
	}

	cmd.Flags().StringSliceVar(&opts.Resources, "resource", nil, "resource IDs to show (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Fields, "field", nil, "field name patterns to show, e.g. '*Name' (repeatable)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "resource type to show: match or participant")
	cmd.Flags().BoolVar(&opts.ConflictsOnly, "conflicts", false, "only show fields where sources disagreed")

	return cmd
}

// Load reads a provenance file and builds the filtered report.
func Load(path string, opts Options) (*provenance.Report, error) {
	rt := types.ResourceType(opts.Type)
	if rt != "" && rt != types.ResourceTypeMatch && rt != types.ResourceTypeParticipant {
		return nil, errors.NewValidationError("type", opts.Type, "must be match or participant")
	}

	file, err := provenance.Load(path)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("provenance file %s: %w", path, errors.ErrNotFound)
	}

	filtered := file.Provenance.Filter(func(resourceType types.ResourceType, id, field string) bool {
		if rt != "" && resourceType != rt {
			return false
		}
		if len(opts.Resources) > 0 && !slices.Contains(opts.Resources, id) {
			return false
		}
		return output.MatchField(field, opts.Fields)
	})

	report := provenance.GenerateReport(filtered)
	if opts.ConflictsOnly {
		report = report.OnlyConflicts()
	}
	return report, nil
}
