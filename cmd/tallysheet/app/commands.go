package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tallysheet/cmd/tallysheet/cmd/provenance"
	"github.com/agentstation/tallysheet/cmd/tallysheet/cmd/reconcile"
	"github.com/agentstation/tallysheet/cmd/tallysheet/cmd/resolve"
	"github.com/agentstation/tallysheet/cmd/tallysheet/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(reconcile.NewCommand(a))
	rootCmd.AddCommand(resolve.NewCommand(a))
	rootCmd.AddCommand(provenance.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
