// LeanSpec: a spec corpus manager.
//
// One markdown document per unit of work, stored in an identifiable
// folder with a structured metadata header. The CLI keeps the corpus
// internally consistent — dependency links, cycle reporting, sequence
// conflict detection, corruption checks — and "leanspec serve" exposes
// the same operations as MCP tools for AI coding hosts.
package main

import (
	"fmt"
	"os"

	"github.com/codervisor/leanspec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
