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

// LinkTool handles the spec_link MCP tool. It declares dependencies
// between specs, reporting (never blocking on) cycles.
type LinkTool struct {
	store    spec.Store
	cfgStore config.Store
	hist     *history.Store // nullable — linking works without history
}

// NewLinkTool creates a LinkTool with its dependencies.
func NewLinkTool(st spec.Store, cs config.Store, hist *history.Store) *LinkTool {
	return &LinkTool{store: st, cfgStore: cs, hist: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *LinkTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_link",
		mcp.WithDescription(
			"Declare that a spec depends on one or more other specs. "+
				"The spec and every dependency must name existing spec folders; "+
				"self-references are rejected. A dependency cycle is reported as a "+
				"warning with the full path, but the link is still recorded — "+
				"authoring is intentionally never blocked on graph shape.",
		),
		mcp.WithString("spec",
			mcp.Required(),
			mcp.Description("Identifier (folder name) of the spec being linked, e.g. '001-auth-flow'."),
		),
		mcp.WithString("depends_on",
			mcp.Required(),
			mcp.Description("Comma-separated identifiers the spec depends on."),
		),
	)
}

// Handle processes the spec_link tool call.
func (t *LinkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("spec", ""))
	if id == "" {
		return mcp.NewToolResultError("'spec' is required — the folder name of the spec to link"), nil
	}
	deps := splitList(req.GetString("depends_on", ""))
	if len(deps) == 0 {
		return mcp.NewToolResultError("'depends_on' is required — one or more identifiers, comma-separated"), nil
	}

	projectRoot, err := FindProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}
	cfg, err := t.cfgStore.Load(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	res, err := ops.Link(t.store, projectRoot, id, deps, cfg)
	if err != nil {
		// Unresolved targets and self-references abort before any write.
		return mcp.NewToolResultError(err.Error()), nil
	}

	recordRun(t.hist, "link", id, true, 0, len(res.Warnings), res)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Linked\n\n**Spec:** `%s`\n**Added:** %s\n", res.Spec, joinOrNone(res.Added))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(&sb, "**Already declared:** %s\n", strings.Join(res.Skipped, ", "))
	}
	if len(res.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		sb.WriteString(renderFindings(res.Warnings))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// splitList parses a comma-separated identifier list, dropping empties.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
