// Package resolve provides the command that explains how identifiers
// resolve against the loaded registry and roster.
package resolve

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/tallysheet/internal/appcontext"
	"github.com/agentstation/tallysheet/internal/cmd/output"
	"github.com/agentstation/tallysheet/internal/config"
	"github.com/agentstation/tallysheet/internal/sources"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/resolver"
	"github.com/agentstation/tallysheet/pkg/types"
)

// NewCommand creates the resolve command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var dir, registry, roster, ratings string

	cmd := &cobra.Command{
		Use:     "resolve <identifier>...",
		GroupID: "core",
		Short:   "Show how identifiers resolve to members",
		Long: `Resolve looks up raw match identifiers (roster IDs or membership numbers)
the same way reconcile resolves a match side, and shows the membership
number, name, name source and rating each one resolves to.

Match results are not needed; only the registry, roster and ratings are loaded.`,
		Example: `  tallysheet resolve p12 100234        # Resolve a roster ID and a membership number
  tallysheet resolve --dir ./event 7   # Use inputs from ./event`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := app.Inputs()
			changed := cmd.Flags().Changed
			if changed("dir") {
				in.Dir = dir
			}
			if changed("registry") {
				in.Registry = registry
			}
			if changed("roster") {
				in.Roster = roster
			}
			if changed("ratings") {
				in.Ratings = ratings
			}

			lookups, err := Run(cmd.Context(), app, in, args)
			if err != nil {
				return err
			}
			format := output.DetectFormat(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, lookups, output.LookupsTableData(lookups))
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory searched for inputs (default \".\")")
	cmd.Flags().StringVar(&registry, "registry", "", "membership registry file")
	cmd.Flags().StringVar(&roster, "roster", "", "tournament roster file")
	cmd.Flags().StringVar(&ratings, "ratings", "", "rating roster file (defaults to the roster)")

	return cmd
}

// Run loads the lookup inputs and resolves each raw identifier.
func Run(ctx context.Context, app appcontext.Interface, in config.Inputs, raws []string) ([]resolver.Lookup, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, app.Logger())

	var srcs []sources.Source
	for _, src := range in.Sources() {
		if src.ID != types.MatchesID {
			srcs = append(srcs, src)
		}
	}

	tables, err := sources.LoadAll(ctx, srcs)
	if err != nil {
		return nil, err
	}

	r, err := app.Resolver()
	if err != nil {
		return nil, err
	}

	idx := r.BuildIndexes(sources.Decode(tables))
	lookups := make([]resolver.Lookup, 0, len(raws))
	for _, raw := range raws {
		lookups = append(lookups, r.Lookup(idx, raw))
	}
	return lookups, nil
}
