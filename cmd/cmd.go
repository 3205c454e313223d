// Package cmd defines the command-line interface for forgepulse.
package cmd

import (
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(metricCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(topCommittersCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the export subcommands to the parent export command
	exportCmd.AddCommand(exportSqliteCmd)

	// Add the schema subcommands to the parent schema command
	schemaCmd.AddCommand(schemaMigrateCmd)
	schemaCmd.AddCommand(schemaVersionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("db-connect", "", "PostgreSQL connection string for the Augur warehouse (prefer FORGEPULSE_DB_CONNECT)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int64P("group", "g", 1, "Repository group ID to scope metrics to")
	rootCmd.PersistentFlags().Int64P("repo", "r", 0, "Repository ID to scope metrics to (overrides --group)")
	rootCmd.PersistentFlags().String("period", string(schema.DayPeriod), "Bucketing period: day or week or month or year")
	rootCmd.PersistentFlags().String("begin", "", "Start of the date range (YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().String("end", "", "End of the date range (YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().Int("year", 0, "Year for annual metrics (default current year)")
	rootCmd.PersistentFlags().Float64("threshold", contract.DefaultThreshold, "Commit share between 0 and 1 for top-committers")
	rootCmd.PersistentFlags().String("timeframe", string(schema.AllTimeframe), "Timeframe for ranked metrics: all or year or month")
	rootCmd.PersistentFlags().Int("calendar-year", 0, "Calendar year for ranked-by-new-repo metrics (default last year)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reposCmd to Viper
	reposCmd.Flags().String("owner", "", "Repository owner to look up")
	reposCmd.Flags().String("name", "", "Repository name to look up")
	reposCmd.Flags().Bool("paths", false, "List on-disk clone paths instead of warehouse rows")
	if err := viper.BindPFlags(reposCmd.Flags()); err != nil {
		contract.LogFatal("Error binding repos flags", err)
	}

	// Bind all flags of exportSqliteCmd to Viper
	exportSqliteCmd.Flags().String("table", "", "Destination table name (defaults to the metric name)")
	if err := viper.BindPFlags(exportSqliteCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of schemaMigrateCmd to Viper
	schemaMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(schemaMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding schema migrate flags", err)
	}
}
