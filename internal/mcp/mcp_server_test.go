package mcp_test

import (
	"context"
	"testing"

	"github.com/forgepulse/forgepulse/core"
	mcp_internal "github.com/forgepulse/forgepulse/internal/mcp"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWarehouse satisfies contract.Warehouse without a real database.
type stubWarehouse struct{}

func (stubWarehouse) Query(context.Context, string, any) (schema.Table, error) {
	return schema.Table{}, nil
}

func (stubWarehouse) Ping(context.Context) error { return nil }

func (stubWarehouse) Close() {}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(core.NewCatalog(stubWarehouse{}))

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	t.Run("run_metric unknown metric", func(t *testing.T) {
		res := callTool(t, "run_metric", map[string]any{"metric": "nonexistent"})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unknown metric")
	})

	t.Run("run_metric invalid period", func(t *testing.T) {
		res := callTool(t, "run_metric", map[string]any{
			"metric": "issues-new",
			"period": "decade",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid period")
	})

	t.Run("run_metric begin after end", func(t *testing.T) {
		res := callTool(t, "run_metric", map[string]any{
			"metric": "issues-new",
			"begin":  "2023-06-01",
			"end":    "2023-01-01",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "begin date is after end date")
	})

	t.Run("top_committers invalid threshold", func(t *testing.T) {
		res := callTool(t, "top_committers", map[string]any{"threshold": 1.5})
		assert.True(t, res.IsError)
	})
}

func TestMCPServerHandlers_Success(t *testing.T) {
	t.Run("list_metrics", func(t *testing.T) {
		res := callTool(t, "list_metrics", map[string]any{"category": "utility"})
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "repo-groups")
	})

	t.Run("run_metric empty result", func(t *testing.T) {
		res := callTool(t, "run_metric", map[string]any{
			"metric": "issues-new",
			"repo":   3.0,
		})
		assert.False(t, res.IsError)
	})
}
