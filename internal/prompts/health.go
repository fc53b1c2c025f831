// Package prompts implements MCP prompt handlers for the spec corpus.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HealthPrompt handles the spec-health MCP prompt.
// It instructs the AI to run the integrity checks and present the state
// of the corpus.
type HealthPrompt struct{}

// NewHealthPrompt creates a HealthPrompt.
func NewHealthPrompt() *HealthPrompt {
	return &HealthPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *HealthPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("spec-health",
		mcp.WithPromptDescription(
			"Review the health of the spec corpus: sequence conflicts, "+
				"dependency cycles, dangling references, and document corruption.",
		),
	)
}

// Handle processes the spec-health prompt request.
func (p *HealthPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Spec Corpus Health",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `spec_check` (full mode) and `spec_validate` with cross_references=true.\n\n" +
						"Then:\n" +
						"1. Summarize the corpus state: how many specs, how many clean\n" +
						"2. List every error (unterminated fences, unbalanced emphasis, self-references) with its spec\n" +
						"3. List advisory warnings (sequence conflicts, cycles, dangling or undeclared references)\n" +
						"4. Suggest the smallest set of edits that would clear the errors",
				),
			},
		},
	}, nil
}
