package tools

import (
	"context"
	"fmt"

	"github.com/codervisor/leanspec/internal/config"
	"github.com/codervisor/leanspec/internal/history"
	"github.com/codervisor/leanspec/internal/ops"
	"github.com/codervisor/leanspec/internal/sequence"
	"github.com/codervisor/leanspec/internal/spec"
	"github.com/mark3labs/mcp-go/mcp"
)

// CheckTool handles the spec_check MCP tool: sequence-number conflict
// detection across the corpus.
type CheckTool struct {
	store    spec.Store
	cfgStore config.Store
	hist     *history.Store
}

// NewCheckTool creates a CheckTool with its dependencies.
func NewCheckTool(st spec.Store, cs config.Store, hist *history.Store) *CheckTool {
	return &CheckTool{store: st, cfgStore: cs, hist: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *CheckTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_check",
		mcp.WithDescription(
			"Check the corpus for sequence-number conflicts — two or more spec "+
				"folders whose names parse to the same sequence number. Conflicts "+
				"are advisory; nothing is blocked. The check is read-only.",
		),
		mcp.WithString("mode",
			mcp.Description("Presentation mode: 'silent' (result only), 'quiet' "+
				"(one warning line), or 'full' (default — every group with guidance)."),
			mcp.Enum("silent", "quiet", "full"),
		),
		mcp.WithBoolean("json",
			mcp.Description("Return the structured result as JSON with no prose."),
		),
	)
}

// Handle processes the spec_check tool call.
func (t *CheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := sequence.Mode(req.GetString("mode", string(sequence.ModeFull)))
	if err := sequence.ValidateMode(mode); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	projectRoot, err := FindProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}
	cfg, err := t.cfgStore.Load(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	res, err := ops.Check(t.store, projectRoot)
	if err != nil {
		return nil, fmt.Errorf("checking corpus: %w", err)
	}

	recordRun(t.hist, "check", "", !res.Conflicts, 0, len(res.Groups), res)

	if req.GetBool("json", false) {
		return mcp.NewToolResultText(renderJSON(res)), nil
	}

	text := sequence.Render(res, mode, cfg.SequenceDigits)
	if text == "" {
		if mode == sequence.ModeSilent {
			text = fmt.Sprintf("conflicts: %t", res.Conflicts)
		} else {
			text = "No sequence conflicts found."
		}
	}
	return mcp.NewToolResultText(text), nil
}
