// Package reconcile provides the command that builds the tournament report.
package reconcile

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/tallysheet/internal/appcontext"
	"github.com/agentstation/tallysheet/internal/cmd/output"
	"github.com/agentstation/tallysheet/internal/config"
	"github.com/agentstation/tallysheet/internal/report"
	"github.com/agentstation/tallysheet/internal/sources"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/provenance"
	"github.com/agentstation/tallysheet/pkg/resolver"
)

// Flags holds the reconcile command flags.
type Flags struct {
	Dir        string
	Registry   string
	Roster     string
	Matches    string
	Ratings    string
	Output     string
	Provenance string
	Sheet      string
	DryRun     bool
	NoArchive  bool
}

// NewCommand creates the reconcile command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Resolve match results and write the tournament report",
		Long: `Reconcile loads the registry, roster, match and optional rating inputs,
resolves every match side to a membership number and name, and writes a
workbook with "Match Results" and "Estimated Ratings" sheets.

An existing report at the output path is kept as a versioned copy
(name_v1.xlsx, name_v2.xlsx, ...) unless --no-archive is given.`,
		Example: `  tallysheet reconcile                                # Discover inputs in the current directory
  tallysheet reconcile --dir ./event                  # Discover inputs in ./event
  tallysheet reconcile --matches results.csv          # Use an explicit match file
  tallysheet reconcile --dry-run -o json              # Resolve without writing the report
  tallysheet reconcile --provenance provenance.yaml   # Record where every value came from`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := applyFlags(cmd, app.Inputs(), flags)
			summary, err := Run(cmd.Context(), app, in, flags.DryRun)
			if err != nil {
				return err
			}
			format := output.DetectFormat(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, summary, summary.TableData())
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.Dir, "dir", "", "directory searched for inputs (default \".\")")
	f.StringVar(&flags.Registry, "registry", "", "membership registry file")
	f.StringVar(&flags.Roster, "roster", "", "tournament roster file")
	f.StringVar(&flags.Matches, "matches", "", "match results file")
	f.StringVar(&flags.Ratings, "ratings", "", "rating roster file (defaults to the roster)")
	f.StringVar(&flags.Output, "output", "", "report path (default \"tournament_report.xlsx\")")
	f.StringVar(&flags.Provenance, "provenance", "", "write value provenance to this YAML file")
	f.StringVar(&flags.Sheet, "sheet", "", "worksheet to read from xlsx inputs (default first sheet)")
	f.BoolVar(&flags.DryRun, "dry-run", false, "resolve and print the summary without writing files")
	f.BoolVar(&flags.NoArchive, "no-archive", false, "replace an existing report instead of keeping a versioned copy")

	return cmd
}

// applyFlags overrides configured inputs with the flags that were set.
func applyFlags(cmd *cobra.Command, in config.Inputs, flags *Flags) config.Inputs {
	changed := cmd.Flags().Changed
	if changed("dir") {
		in.Dir = flags.Dir
	}
	if changed("registry") {
		in.Registry = flags.Registry
	}
	if changed("roster") {
		in.Roster = flags.Roster
	}
	if changed("matches") {
		in.Matches = flags.Matches
	}
	if changed("ratings") {
		in.Ratings = flags.Ratings
	}
	if changed("output") {
		in.Output = flags.Output
	}
	if changed("provenance") {
		in.Provenance = flags.Provenance
	}
	if changed("sheet") {
		in.Sheet = flags.Sheet
	}
	if changed("no-archive") {
		in.NoArchive = flags.NoArchive
	}
	return in
}

// Run loads the inputs, resolves them and, unless dryRun is set, writes the
// report and the provenance file.
func Run(ctx context.Context, app appcontext.Interface, in config.Inputs, dryRun bool) (*output.RunSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(logging.WithLogger(ctx, app.Logger()), "")
	logger := logging.FromContext(ctx)
	started := time.Now()

	tables, err := sources.LoadAll(ctx, in.Sources())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load inputs, aborting before resolution")
		return nil, err
	}

	r, err := app.Resolver(resolver.WithProvenance(in.Provenance != ""))
	if err != nil {
		return nil, err
	}

	result, err := r.Resolve(ctx, sources.Decode(tables))
	if err != nil {
		return nil, err
	}

	summary := &output.RunSummary{
		RunID:    result.Metadata.RunID,
		Summary:  result.Summary(),
		Inputs:   sources.Paths(tables),
		DryRun:   dryRun,
		Stats:    result.Metadata.Stats,
		Warnings: result.Warnings,
	}

	if !dryRun {
		writer := report.NewWriter(in.Output, report.WithArchive(!in.NoArchive))
		outcome, err := writer.Write(ctx, result.Matches, result.EstimatedRatings)
		if err != nil {
			return nil, err
		}
		summary.Output = outcome.Path
		summary.ArchivedTo = outcome.ArchivedTo

		if in.Provenance != "" {
			if err := provenance.Save(in.Provenance, result.Provenance); err != nil {
				return nil, err
			}
			summary.Provenance = in.Provenance
			logger.Info().
				Str("path", in.Provenance).
				Int("conflicts", provenance.GenerateReport(result.Provenance).Conflicts()).
				Msg("Wrote provenance")
		}
	}

	summary.Duration = time.Since(started).Round(time.Millisecond).String()
	return summary, nil
}
