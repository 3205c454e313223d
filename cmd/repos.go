package cmd

import (
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/outwriter"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reposCmd lists repositories, resolved several ways.
var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories tracked by the warehouse",
	Long: `List mined repositories with lifetime commit and line totals.

By default every downloaded repository is listed. The listing narrows with:
- --group:        only repositories of one group
- --owner/--name: resolve a single repository by its forge owner and name
- --paths:        print on-disk clone paths instead of warehouse rows

Examples:
  # Everything the warehouse has mined
  forgepulse repos

  # Repositories of group 10
  forgepulse repos --group 10

  # Resolve one repository to its IDs
  forgepulse repos --owner rails --name rails`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		table, err := reposTable(cmd)
		if err != nil {
			contract.LogFatal("Cannot list repositories", err)
		}
		if err := outwriter.WriteTable(table, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}

func reposTable(cmd *cobra.Command) (schema.Table, error) {
	switch {
	case cfg.RepoOwner != "" || cfg.RepoName != "":
		return catalog.GetRepo(rootCtx, cfg.RepoOwner, cfg.RepoName)
	case viper.GetBool("paths"):
		return catalog.ReposForDosocs(rootCtx)
	case cmd.Flag("group").Changed:
		return catalog.ReposInGroup(rootCtx, cfg.GroupID)
	default:
		return catalog.DownloadedRepos(rootCtx)
	}
}
