package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/codervisor/leanspec/internal/config"
	"github.com/codervisor/leanspec/internal/history"
	"github.com/codervisor/leanspec/internal/ops"
	"github.com/codervisor/leanspec/internal/spec"
	"github.com/mark3labs/mcp-go/mcp"
)

// UnlinkTool handles the spec_unlink MCP tool.
type UnlinkTool struct {
	store    spec.Store
	cfgStore config.Store
	hist     *history.Store
}

// NewUnlinkTool creates an UnlinkTool with its dependencies.
func NewUnlinkTool(st spec.Store, cs config.Store, hist *history.Store) *UnlinkTool {
	return &UnlinkTool{store: st, cfgStore: cs, hist: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *UnlinkTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_unlink",
		mcp.WithDescription(
			"Remove declared dependencies from a spec. Pass specific identifiers "+
				"or set all=true to clear every declared dependency. Removing an "+
				"identifier that was never declared is a warning, not a failure.",
		),
		mcp.WithString("spec",
			mcp.Required(),
			mcp.Description("Identifier (folder name) of the spec to modify."),
		),
		mcp.WithString("depends_on",
			mcp.Description("Comma-separated identifiers to remove. Ignored when all=true."),
		),
		mcp.WithBoolean("all",
			mcp.Description("Remove every declared dependency."),
		),
	)
}

// Handle processes the spec_unlink tool call.
func (t *UnlinkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("spec", ""))
	if id == "" {
		return mcp.NewToolResultError("'spec' is required — the folder name of the spec to modify"), nil
	}
	all := req.GetBool("all", false)
	deps := splitList(req.GetString("depends_on", ""))
	if !all && len(deps) == 0 {
		return mcp.NewToolResultError("pass 'depends_on' identifiers or all=true"), nil
	}

	projectRoot, err := FindProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}
	cfg, err := t.cfgStore.Load(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	res, err := ops.Unlink(t.store, projectRoot, id, deps, all, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	recordRun(t.hist, "unlink", id, true, 0, len(res.Warnings), res)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Unlinked\n\n**Spec:** `%s`\n**Removed:** %s\n", res.Spec, joinOrNone(res.Removed))
	if len(res.Missing) > 0 {
		fmt.Fprintf(&sb, "**Not declared:** %s\n", strings.Join(res.Missing, ", "))
	}
	if len(res.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		sb.WriteString(renderFindings(res.Warnings))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
