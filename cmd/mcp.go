package cmd

import (
	"github.com/forgepulse/forgepulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Forgepulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to query warehouse metrics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; setup logs go to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, catalog)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
