package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/codervisor/leanspec/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryTool handles the spec_history MCP tool: recent validation runs.
type HistoryTool struct {
	hist *history.Store
}

// NewHistoryTool creates a HistoryTool. hist may be nil when the history
// database could not be opened; the tool then reports that plainly.
func NewHistoryTool(hist *history.Store) *HistoryTool {
	return &HistoryTool{hist: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_history",
		mcp.WithDescription(
			"Show recent validation and mutation runs recorded for this machine: "+
				"operation, target, pass/fail, and finding counts.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to return (default 20)."),
		),
	)
}

// Handle processes the spec_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.hist == nil {
		return mcp.NewToolResultText("History is not available — the local database could not be opened."), nil
	}

	limit := req.GetInt("limit", 20)
	runs, err := t.hist.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("No runs recorded yet."), nil
	}

	var sb strings.Builder
	sb.WriteString("# Recent Runs\n\n")
	for _, r := range runs {
		status := "passed"
		if !r.Passed {
			status = "FAILED"
		}
		target := r.Target
		if target == "" {
			target = "(corpus)"
		}
		fmt.Fprintf(&sb, "- %s  %s %s — %s, %d error(s), %d warning(s)\n",
			r.CreatedAt, r.Operation, target, status, r.Errors, r.Warnings)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
