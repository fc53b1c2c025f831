package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/codervisor/leanspec/internal/graph"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every spec in the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		root, _, st, err := loadContext()
		if err != nil {
			return err
		}

		records, failures, err := st.List(root)
		if err != nil {
			return err
		}

		if jsonOut {
			data, _ := json.MarshalIndent(records, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		if len(records) == 0 && len(failures) == 0 {
			fmt.Println("No specs found. Create a folder like specs/001-first-spec/spec.md to start.")
			return nil
		}

		g := graph.Build(records)
		for _, rec := range records {
			line := fmt.Sprintf("%-40s %-12s %-8s", rec.ID, rec.Status, rec.Priority)
			if len(rec.DependsOn) > 0 {
				line += "  deps: " + strings.Join(rec.DependsOn, ", ")
			}
			if rb := g.RequiredBy(rec.ID); len(rb) > 0 {
				line += "  required by: " + strings.Join(rb, ", ")
			}
			fmt.Println(line)
		}
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", f.ID, f.Err)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Emit records as JSON")
	RootCmd.AddCommand(listCmd)
}
