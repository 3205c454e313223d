package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/forgepulse/forgepulse/core"
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	catalog *core.Catalog
}

func (h *toolHandler) handleListMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := schema.MetricCategory(request.GetString("category", ""))

	type entry struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Summary  string `json:"summary"`
	}
	var entries []entry
	for _, d := range core.List() {
		if category != "" && d.Category != category {
			continue
		}
		entries = append(entries, entry{Name: d.Name, Category: string(d.Category), Summary: d.Summary})
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRunMetric(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("metric", "")
	descriptor, err := core.Lookup(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown metric: %v", err)), nil
	}

	req, err := requestFromTool(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metric parameters: %v", err)), nil
	}

	table, err := descriptor.Run(ctx, h.catalog, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metric failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(table.Records(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleTopCommitters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	threshold := request.GetFloat("threshold", contract.DefaultThreshold)

	table, err := h.catalog.TopCommitters(ctx, toolScope(request), request.GetInt("year", 0), threshold)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("top committers failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(table.Records(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func toolScope(request mcp.CallToolRequest) core.Scope {
	if repo := request.GetInt("repo", 0); repo > 0 {
		return core.RepoScope(int64(repo))
	}
	return core.GroupScope(int64(request.GetInt("group", 1)))
}

func requestFromTool(request mcp.CallToolRequest) (core.Request, error) {
	req := core.Request{
		Scope:        toolScope(request),
		Year:         request.GetInt("year", 0),
		Threshold:    request.GetFloat("threshold", contract.DefaultThreshold),
		CalendarYear: request.GetInt("calendar_year", 0),
	}

	if p := request.GetString("period", ""); p != "" {
		if _, ok := schema.ValidPeriods[schema.Period(p)]; !ok {
			return core.Request{}, fmt.Errorf("%w: invalid period '%s'", contract.ErrInvalidArgument, p)
		}
		req.Params.Period = schema.Period(p)
	}
	if tf := request.GetString("timeframe", ""); tf != "" {
		if _, ok := schema.ValidTimeframes[schema.Timeframe(tf)]; !ok {
			return core.Request{}, fmt.Errorf("%w: invalid timeframe '%s'", contract.ErrInvalidArgument, tf)
		}
		req.Timeframe = schema.Timeframe(tf)
	}

	var err error
	if begin := request.GetString("begin", ""); begin != "" {
		if req.Params.Begin, err = parseToolDate(begin); err != nil {
			return core.Request{}, err
		}
	}
	if end := request.GetString("end", ""); end != "" {
		if req.Params.End, err = parseToolDate(end); err != nil {
			return core.Request{}, err
		}
	}
	if !req.Params.Begin.IsZero() && !req.Params.End.IsZero() && req.Params.Begin.After(req.Params.End) {
		return core.Request{}, fmt.Errorf("%w: begin date is after end date", contract.ErrInvalidArgument)
	}
	return req, nil
}

func parseToolDate(value string) (time.Time, error) {
	if t, err := time.Parse(contract.DateOnlyFormat, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(contract.DateTimeFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date '%s'", contract.ErrInvalidArgument, value)
	}
	return t, nil
}
