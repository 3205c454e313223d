package cmd

import (
	"github.com/forgepulse/forgepulse/core"
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// metricsCmd lists the metric catalog.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List every metric in the catalog",
	Long: `Show the full metric catalog with categories and summaries.

No warehouse access is performed - this is purely informational.

Categories follow the CHAOSS working groups:
- evolution:    activity and growth over time
- risk:         sustainability and compliance signals
- value:        popularity and reach
- experimental: annual rankings and committer concentration
- utility:      warehouse lookups (groups, repos, issues)

Examples:
  # Show the whole catalog
  forgepulse metrics

  # Pipe the catalog into other tools
  forgepulse metrics --output csv`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Listing needs output settings only, never a warehouse.
		if err := loadConfigFile(); err != nil {
			return err
		}
		if err := viper.Unmarshal(input); err != nil {
			return err
		}
		return contract.ProcessAndValidate(cfg, input)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteMetricList(core.List(), cfg); err != nil {
			contract.LogFatal("Cannot write metric catalog", err)
		}
	},
}
