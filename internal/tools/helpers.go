// Package tools implements the MCP tool handlers for the spec corpus.
//
// Each tool is a struct that receives its dependencies at construction
// and exposes a Definition for registration plus a Handle compatible with
// mcp-go's CallToolRequest signature. One file per tool.
package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codervisor/leanspec/internal/history"
	"github.com/codervisor/leanspec/internal/integrity"
)

// FindProjectRoot walks up from the working directory looking for a
// specs/ directory. If none is found, the working directory itself is
// returned — the caller decides what to do with an empty corpus.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, "specs")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

// recordRun logs an operation outcome to the history store. Best-effort:
// a nil store or a write failure never affects the operation result.
func recordRun(hist *history.Store, operation, target string, passed bool, errs, warns int, result any) {
	if hist == nil {
		return
	}
	if _, err := hist.RecordResult(operation, target, passed, errs, warns, result); err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
	}
}

// renderJSON is the machine-readable rendering: a pure structural echo of
// the findings with no prose around it.
func renderJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// renderFindings appends warning lines to a markdown response.
func renderFindings(findings []integrity.Finding) string {
	out := ""
	for _, f := range findings {
		out += fmt.Sprintf("- %s: %s", f.Severity, f.Message)
		if f.Hint != "" {
			out += fmt.Sprintf(" (%s)", f.Hint)
		}
		out += "\n"
	}
	return out
}
