package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/codervisor/leanspec/internal/engine"
	"github.com/codervisor/leanspec/internal/history"
	"github.com/codervisor/leanspec/internal/ops"
	"github.com/codervisor/leanspec/internal/spec"
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateTool handles the spec_validate MCP tool: structural corruption
// checks plus graph-derived and cross-reference findings.
type ValidateTool struct {
	store spec.Store
	hist  *history.Store
}

// NewValidateTool creates a ValidateTool with its dependencies.
func NewValidateTool(st spec.Store, hist *history.Store) *ValidateTool {
	return &ValidateTool{store: st, hist: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("spec_validate",
		mcp.WithDescription(
			"Validate spec documents: unterminated code fences, unbalanced bold/"+
				"italic markers outside code blocks, self-references, dangling "+
				"dependencies, and (optionally) prose mentions of other specs that "+
				"are not declared as dependencies. All findings for a document are "+
				"collected in one pass. Unreadable specs degrade to warnings.",
		),
		mcp.WithString("spec",
			mcp.Description("Identifier of a single spec to validate. Omit to validate the whole corpus."),
		),
		mcp.WithBoolean("cross_references",
			mcp.Description("Also cross-check prose mentions against declared dependencies (advisory)."),
		),
		mcp.WithBoolean("json",
			mcp.Description("Return the structured report as JSON with no prose."),
		),
	)
}

// Handle processes the spec_validate tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("spec", ""))
	crossRefs := req.GetBool("cross_references", false)

	projectRoot, err := FindProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	rep, err := ops.Validate(t.store, projectRoot, id, crossRefs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	errs, warns := countFindings(rep)
	recordRun(t.hist, "validate", id, rep.Passed, errs, warns, rep)

	if req.GetBool("json", false) {
		return mcp.NewToolResultText(renderJSON(rep)), nil
	}
	return mcp.NewToolResultText(renderCorpusReport(rep)), nil
}

func countFindings(rep *engine.CorpusReport) (errs, warns int) {
	for _, rr := range rep.Records {
		errs += len(rr.Report.Errors)
		warns += len(rr.Report.Warnings)
	}
	errs += len(rep.Corpus.Errors)
	warns += len(rep.Corpus.Warnings)
	return errs, warns
}

// renderCorpusReport formats a validation report as markdown, one section
// per record with findings, clean records summarized at the end.
func renderCorpusReport(rep *engine.CorpusReport) string {
	var sb strings.Builder
	if rep.Passed {
		sb.WriteString("# Validation Passed\n\n")
	} else {
		sb.WriteString("# Validation Failed\n\n")
	}

	clean := 0
	for _, rr := range rep.Records {
		if len(rr.Report.Errors) == 0 && len(rr.Report.Warnings) == 0 {
			clean++
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", rr.ID)
		sb.WriteString(renderFindings(rr.Report.Errors))
		sb.WriteString(renderFindings(rr.Report.Warnings))
		sb.WriteString("\n")
	}

	if len(rep.Corpus.Errors)+len(rep.Corpus.Warnings) > 0 {
		sb.WriteString("## Corpus\n\n")
		sb.WriteString(renderFindings(rep.Corpus.Errors))
		sb.WriteString(renderFindings(rep.Corpus.Warnings))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%d record(s) validated, %d clean.\n", len(rep.Records), clean)
	return sb.String()
}
