package cli

import (
	"encoding/json"
	"fmt"

	"github.com/codervisor/leanspec/internal/integrity"
	"github.com/codervisor/leanspec/internal/ops"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [spec]",
	Short: "Validate spec documents for structural corruption and graph issues",
	Long: `Validate checks documents for unterminated code fences and unbalanced
bold/italic markers outside code blocks, plus self-references, dangling
dependencies, and — with --cross-references — prose mentions of other
specs that are not declared as dependencies. All findings for a document
are collected in one pass. Unreadable specs degrade to warnings instead
of aborting the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		crossRefs, _ := cmd.Flags().GetBool("cross-references")
		jsonOut, _ := cmd.Flags().GetBool("json")

		root, _, st, err := loadContext()
		if err != nil {
			return err
		}

		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		rep, err := ops.Validate(st, root, id, crossRefs)
		if err != nil {
			return err
		}

		if jsonOut {
			data, _ := json.MarshalIndent(rep, "", "  ")
			fmt.Println(string(data))
		} else {
			clean := 0
			for _, rr := range rep.Records {
				if len(rr.Report.Errors) == 0 && len(rr.Report.Warnings) == 0 {
					clean++
					continue
				}
				fmt.Printf("%s:\n", rr.ID)
				printFindings(rr.Report.Errors)
				printFindings(rr.Report.Warnings)
			}
			if len(rep.Corpus.Errors)+len(rep.Corpus.Warnings) > 0 {
				fmt.Println("corpus:")
				printFindings(rep.Corpus.Errors)
				printFindings(rep.Corpus.Warnings)
			}
			fmt.Printf("%d record(s) validated, %d clean\n", len(rep.Records), clean)
		}

		if !rep.Passed {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func printFindings(findings []integrity.Finding) {
	for _, f := range findings {
		line := ""
		if f.Line > 0 {
			line = fmt.Sprintf(" (line %d)", f.Line)
		}
		fmt.Printf("  %s: %s%s\n", f.Severity, f.Message, line)
	}
}

func init() {
	validateCmd.Flags().Bool("cross-references", false, "Cross-check prose mentions against declared dependencies")
	validateCmd.Flags().Bool("json", false, "Emit the structured report as JSON")
	RootCmd.AddCommand(validateCmd)
}
