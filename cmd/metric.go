package cmd

import (
	"github.com/forgepulse/forgepulse/core"
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// scopeFromConfig builds the metric scope from the validated config.
// An explicit --repo wins over the group scope.
func scopeFromConfig(cfg *contract.Config) core.Scope {
	if cfg.RepoID > 0 {
		return core.RepoScope(cfg.RepoID)
	}
	return core.GroupScope(cfg.GroupID)
}

// requestFromConfig carries every flag a metric runner may consume.
func requestFromConfig(cfg *contract.Config) core.Request {
	return core.Request{
		Scope: scopeFromConfig(cfg),
		Params: core.Params{
			Period: cfg.Period,
			Begin:  cfg.BeginDate,
			End:    cfg.EndDate,
		},
		Year:         cfg.Year,
		Threshold:    cfg.Threshold,
		Timeframe:    cfg.Timeframe,
		CalendarYear: cfg.CalendarYear,
	}
}

// metricCmd runs one catalog metric by name.
var metricCmd = &cobra.Command{
	Use:   "metric [name]",
	Short: "Run one catalog metric against the warehouse",
	Long: `Run a single metric from the catalog and print its rows.

The metric is scoped to a repository group (--group, default 1) or to a
single repository (--repo). Trend metrics bucket rows by --period and
honor the --begin/--end date range; annual and ranked metrics use
--year, --calendar-year and --timeframe instead.

An empty result is not an error: a repository with no activity in the
range simply produces zero rows.

Examples:
  # Daily commit counts for repo group 1
  forgepulse metric code-changes

  # Monthly new issues for one repository
  forgepulse metric issues-new --repo 25430 --period month --begin 2023-01-01

  # Smallest committer set covering 80%% of 2023 commits
  forgepulse metric top-committers --year 2023 --threshold 0.8

  # Top repos by commits over the last month, as JSON
  forgepulse metric annual-commit-count-ranked-by-repo --timeframe month --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		descriptor, err := core.Lookup(args[0])
		if err != nil {
			contract.LogFatal("Cannot resolve metric", err)
		}

		table, err := descriptor.Run(rootCtx, catalog, requestFromConfig(cfg))
		if err != nil {
			contract.LogFatal("Cannot run metric", err)
		}

		if err := outwriter.WriteTable(table, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
