// Package resources implements MCP resource handlers for the spec corpus.
//
// Resources provide read-only derived data that the host can consume for
// context. They use URI-based addressing (spec://...) following MCP
// conventions, and every payload is a pure structural echo of the engine
// result — no prose, no summarization.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codervisor/leanspec/internal/graph"
	"github.com/codervisor/leanspec/internal/ops"
	"github.com/codervisor/leanspec/internal/spec"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages corpus resource endpoints.
type Handler struct {
	store spec.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store spec.Store) *Handler {
	return &Handler{store: store}
}

// GraphResource returns the MCP resource definition for the dependency graph.
func (h *Handler) GraphResource() mcp.Resource {
	return mcp.NewResource(
		"spec://corpus/graph",
		"Spec Dependency Graph",
		mcp.WithResourceDescription("Bidirectional dependency graph (dependsOn/requiredBy) over the whole corpus"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleGraph rebuilds and returns the relationship graph as JSON.
func (h *Handler) HandleGraph(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projectRoot, err := findResourceRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	records, _, err := h.store.List(projectRoot)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(graph.Build(records).Nodes(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling graph: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// ConflictsResource returns the MCP resource definition for sequence conflicts.
func (h *Handler) ConflictsResource() mcp.Resource {
	return mcp.NewResource(
		"spec://corpus/conflicts",
		"Spec Sequence Conflicts",
		mcp.WithResourceDescription("Sequence numbers claimed by more than one spec folder"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleConflicts runs the sequence check and returns the result as JSON.
func (h *Handler) HandleConflicts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projectRoot, err := findResourceRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	res, err := ops.Check(h.store, projectRoot)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling conflicts: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: text},
	}
}

// errorResource returns a resource carrying an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: fmt.Sprintf("Error: %s", message)},
	}
}

// findResourceRoot walks up from the working directory looking for a
// specs/ directory, falling back to the working directory itself.
func findResourceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	current := dir
	for {
		if info, err := os.Stat(filepath.Join(current, "specs")); err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
