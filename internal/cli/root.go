// Package cli implements the leanspec command-line interface. Commands
// are thin: they parse flags, call the same operations the MCP tools use,
// and render the structured result.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codervisor/leanspec/internal/config"
	"github.com/codervisor/leanspec/internal/spec"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "leanspec",
	Version: Version,
	Short:   "Manage a corpus of spec documents and keep it internally consistent",
	Long: `LeanSpec manages a corpus of markdown spec documents — one folder per
unit of work under specs/ — and keeps the corpus internally consistent:
dependency links between specs, cycle reporting, sequence-number conflict
detection, and structural corruption checks.`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return RootCmd.Execute()
}

// findProjectRoot walks up from the working directory looking for a
// specs/ directory, falling back to the working directory itself.
func findProjectRoot() (string, error) {
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

// loadContext resolves the project root, its settings, and a spec store.
func loadContext() (root string, cfg config.Settings, st spec.Store, err error) {
	root, err = findProjectRoot()
	if err != nil {
		return "", config.Settings{}, nil, err
	}
	cfg, err = config.NewFileStore().Load(root)
	if err != nil {
		return "", config.Settings{}, nil, err
	}
	return root, cfg, spec.NewFileStore(), nil
}
