package cli

import (
	"fmt"

	"github.com/codervisor/leanspec/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent validation and mutation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		hist, err := history.Open(history.DefaultConfig())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer hist.Close()

		runs, err := hist.Recent(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		for _, r := range runs {
			status := "passed"
			if !r.Passed {
				status = "FAILED"
			}
			target := r.Target
			if target == "" {
				target = "(corpus)"
			}
			fmt.Printf("%s  %-9s %-40s %s  %d error(s), %d warning(s)\n",
				r.CreatedAt, r.Operation, target, status, r.Errors, r.Warnings)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
