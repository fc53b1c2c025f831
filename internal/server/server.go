// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts, and resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"fmt"
	"os"

	"github.com/codervisor/leanspec/internal/config"
	"github.com/codervisor/leanspec/internal/history"
	"github.com/codervisor/leanspec/internal/prompts"
	"github.com/codervisor/leanspec/internal/resources"
	"github.com/codervisor/leanspec/internal/spec"
	"github.com/codervisor/leanspec/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts, and
// resources registered.
//
// The returned cleanup function closes the history database and must be
// called on shutdown (typically via defer). It is always non-nil and safe
// to call even when history init failed — the server degrades gracefully
// and tools simply skip run recording.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	specStore := spec.NewFileStore()
	cfgStore := config.NewFileStore()

	cleanup := noop
	hist, err := history.Open(history.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "history unavailable: %v\n", err)
		hist = nil
	} else {
		cleanup = func() { _ = hist.Close() }
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"leanspec",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register corpus tools ---

	linkTool := tools.NewLinkTool(specStore, cfgStore, hist)
	s.AddTool(linkTool.Definition(), linkTool.Handle)

	unlinkTool := tools.NewUnlinkTool(specStore, cfgStore, hist)
	s.AddTool(unlinkTool.Definition(), unlinkTool.Handle)

	checkTool := tools.NewCheckTool(specStore, cfgStore, hist)
	s.AddTool(checkTool.Definition(), checkTool.Handle)

	validateTool := tools.NewValidateTool(specStore, hist)
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	historyTool := tools.NewHistoryTool(hist)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	// --- Register resources ---

	res := resources.NewHandler(specStore)
	s.AddResource(res.GraphResource(), res.HandleGraph)
	s.AddResource(res.ConflictsResource(), res.HandleConflicts)

	// --- Register prompts ---

	health := prompts.NewHealthPrompt()
	s.AddPrompt(health.Definition(), health.Handle)

	return s, cleanup, nil
}

// noop is the cleanup function used when there is nothing to clean up.
func noop() {}

// serverInstructions describes the corpus model and the advisory-first
// validation policy to the connected AI host.
func serverInstructions() string {
	return `LeanSpec manages a corpus of spec documents: one markdown file per unit
of work, in a folder named like "001-auth-flow" or "20251103-001-auth-flow",
with a YAML frontmatter header (status, priority, tags, depends_on) and a
free-form body.

Validation policy: errors are structural defects (unterminated code fences,
unbalanced emphasis outside code blocks, self-references, unresolved link
targets). Warnings are advisory and never block work (sequence conflicts,
dependency cycles, dangling references, undeclared prose mentions). Cycles
are reported with their full path but the link is recorded anyway — spec
authoring is a branching, concurrent process and visibility beats
enforcement.

Use spec_check before renumbering folders, spec_link/spec_unlink to manage
dependencies, and spec_validate for document integrity.`
}
