// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/forgepulse/forgepulse/core"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Forgepulse MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(catalog *core.Catalog) *server.MCPServer {
	s := server.NewMCPServer(
		"Forgepulse Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{catalog: catalog}

	// --- 1. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List every metric in the catalog with its category and summary."),
		mcp.WithString("category", mcp.Description("Only list metrics of one category."), mcp.Enum("evolution", "risk", "value", "experimental", "utility")),
	), h.handleListMetrics)

	// --- 2. Tool: run_metric ---
	s.AddTool(mcp.NewTool("run_metric",
		mcp.WithDescription("Run a catalog metric against the warehouse and return its rows as JSON."),
		mcp.WithString("metric", mcp.Description("Metric name, e.g. 'code-changes' or 'issues-new'."), mcp.Required()),
		mcp.WithNumber("group", mcp.Description("Repository group ID to scope to (default 1).")),
		mcp.WithNumber("repo", mcp.Description("Repository ID to scope to; overrides the group scope.")),
		mcp.WithString("period", mcp.Description("Bucketing period for trend metrics."), mcp.Enum("day", "week", "month", "year")),
		mcp.WithString("begin", mcp.Description("Start of the date range (YYYY-MM-DD).")),
		mcp.WithString("end", mcp.Description("End of the date range (YYYY-MM-DD).")),
		mcp.WithString("timeframe", mcp.Description("Timeframe for ranked metrics."), mcp.Enum("all", "year", "month")),
		mcp.WithNumber("calendar_year", mcp.Description("Calendar year for ranked-by-new-repo metrics (default last year).")),
		mcp.WithNumber("year", mcp.Description("Year for annual metrics (default current year).")),
		mcp.WithNumber("threshold", mcp.Description("Commit share between 0 and 1 for top-committers.")),
	), h.handleRunMetric)

	// --- 3. Tool: top_committers ---
	s.AddTool(mcp.NewTool("top_committers",
		mcp.WithDescription("Find the smallest set of committers covering a share of annual commits."),
		mcp.WithNumber("group", mcp.Description("Repository group ID to scope to (default 1).")),
		mcp.WithNumber("repo", mcp.Description("Repository ID to scope to; overrides the group scope.")),
		mcp.WithNumber("year", mcp.Description("Year to rank (default current year).")),
		mcp.WithNumber("threshold", mcp.Description("Commit share between 0 and 1 (default 0.5).")),
	), h.handleTopCommitters)

	return s
}

// StartMCPServer starts the Forgepulse MCP server on stdio.
func StartMCPServer(_ context.Context, catalog *core.Catalog) error {
	s := NewMCPServer(catalog)
	return server.ServeStdio(s)
}
