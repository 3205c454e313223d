package cmd

import (
	"fmt"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// schemaCmd manages the warehouse schema.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the warehouse schema",
	Long: `Manage the database schema of the metric warehouse.

Subcommands:
  migrate - run schema migrations (upgrades/downgrades)
  version - show the current schema version

These commands only need a connection string; they work against a
fresh database before any data is loaded.

Examples:
  # Bring a fresh database up to the latest schema
  forgepulse schema migrate

  # Check what a deployment is running
  forgepulse schema version`,
}

// schemaMigrateCmd runs database migrations for the warehouse.
var schemaMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run warehouse schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the metric warehouse.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  forgepulse schema migrate

  # Migrate to specific version
  forgepulse schema migrate --target-version 1

  # Rollback to initial state
  forgepulse schema migrate --target-version 0`,
	PreRunE: migrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Migrate(cfg.DBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Cannot migrate warehouse schema", err)
		}
	},
}

// schemaVersionCmd reports the current migration version.
var schemaVersionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show the current warehouse schema version",
	PreRunE: migrateSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		version, dirty, err := store.MigrationVersion(cfg.DBConnect)
		if err != nil {
			contract.LogFatal("Cannot read schema version", err)
		}
		if version == 0 {
			cmd.Println("No migrations applied yet")
			return
		}
		state := "clean"
		if dirty {
			state = "dirty"
		}
		cmd.Println(fmt.Sprintf("Schema version %d (%s)", version, state))
	},
}
