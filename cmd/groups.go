package cmd

import (
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// groupsCmd lists all repository groups in the warehouse.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List all repository groups",
	Long: `List every repository group the warehouse knows about.

Use the returned repo_group_id values with --group on metric commands.

Examples:
  # Show all groups
  forgepulse groups

  # Feed group IDs into a script
  forgepulse groups --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		table, err := catalog.RepoGroups(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot list repository groups", err)
		}
		if err := outwriter.WriteTable(table, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
