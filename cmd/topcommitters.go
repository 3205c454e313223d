package cmd

import (
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// topCommittersCmd finds the smallest committer set covering a commit share.
var topCommittersCmd = &cobra.Command{
	Use:   "top-committers",
	Short: "Find the committers covering a share of annual commits",
	Long: `Rank committers by annual commit count and keep the smallest prefix
whose commits reach the requested share of the year's total. A final
'other_contributors' row carries everything the prefix does not cover,
so the column always sums to the year's total.

Edge cases:
- --threshold 0 lists nobody; the remainder row carries the full total
- --threshold 1 lists everyone; the remainder row is zero
- a year with no commits produces zero rows

Examples:
  # Who wrote half of this year's commits in group 1?
  forgepulse top-committers

  # 80%% coverage for one repository in 2023
  forgepulse top-committers --repo 25430 --year 2023 --threshold 0.8`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		table, err := catalog.TopCommitters(rootCtx, scopeFromConfig(cfg), cfg.Year, cfg.Threshold)
		if err != nil {
			contract.LogFatal("Cannot rank committers", err)
		}
		if err := outwriter.WriteTable(table, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
