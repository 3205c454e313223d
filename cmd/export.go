package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/forgepulse/forgepulse/core"
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/export"
	"github.com/spf13/cobra"
)

// exportCmd groups metric export commands.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export metric results for offline analysis",
	Long: `Export metric results into local files for BI tools and analytics.

Subcommands:
  sqlite - write metric rows into a local SQLite database

Parquet export needs no subcommand; any metric command accepts
--output parquet together with --output-file.

Examples:
  # SQLite file with one table per exported metric
  forgepulse export sqlite code-changes --output-file metrics.db

  # Parquet for DuckDB or pandas
  forgepulse metric issues-new --output parquet --output-file issues.parquet`,
}

// exportSqliteCmd runs one metric and persists its rows into SQLite.
var exportSqliteCmd = &cobra.Command{
	Use:   "sqlite [metric]",
	Short: "Run a metric and write its rows into a SQLite database",
	Long: `Run one catalog metric and write the result into a table of a local
SQLite database. Repeated exports into the same file accumulate one
table per metric; re-exporting a metric replaces its table.

Requires: --output-file parameter

Examples:
  # Default table name mirrors the metric name
  forgepulse export sqlite code-changes --output-file metrics.db

  # Explicit destination table
  forgepulse export sqlite issues-new --repo 25430 --table rails_issues --output-file metrics.db`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export metric", fmt.Errorf("sqlite export requires --output-file"))
		}

		descriptor, err := core.Lookup(args[0])
		if err != nil {
			contract.LogFatal("Cannot resolve metric", err)
		}

		table, err := descriptor.Run(rootCtx, catalog, requestFromConfig(cfg))
		if err != nil {
			contract.LogFatal("Cannot run metric", err)
		}

		tableName := cfg.TableName
		if tableName == "" {
			tableName = strings.ReplaceAll(descriptor.Name, "-", "_")
		}
		if err := export.WriteSQLite(table, cfg.OutputFile, tableName); err != nil {
			contract.LogFatal("Cannot export metric", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Saved %d rows to %s (table %s)\n", table.Len(), cfg.OutputFile, tableName)
	},
}
