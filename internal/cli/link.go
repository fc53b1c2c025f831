package cli

import (
	"fmt"
	"strings"

	"github.com/codervisor/leanspec/internal/ops"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link <spec> <dependency>...",
	Short: "Declare that a spec depends on other specs",
	Long: `Link records one or more dependencies on a spec. The spec and every
dependency must name existing spec folders; a self-reference is always
rejected. A dependency cycle is printed with its full path but the link
is recorded anyway — cycles are advisory, not blocking.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, st, err := loadContext()
		if err != nil {
			return err
		}

		res, err := ops.Link(st, root, args[0], args[1:], cfg)
		if err != nil {
			return err
		}

		if len(res.Added) > 0 {
			fmt.Printf("%s now depends on: %s\n", res.Spec, strings.Join(res.Added, ", "))
		}
		if len(res.Skipped) > 0 {
			fmt.Printf("already declared: %s\n", strings.Join(res.Skipped, ", "))
		}
		for _, w := range res.Warnings {
			fmt.Printf("warning: %s\n", w.Message)
		}
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <spec> [dependency]...",
	Short: "Remove declared dependencies from a spec",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		root, cfg, st, err := loadContext()
		if err != nil {
			return err
		}

		res, err := ops.Unlink(st, root, args[0], args[1:], all, cfg)
		if err != nil {
			return err
		}

		if len(res.Removed) > 0 {
			fmt.Printf("removed from %s: %s\n", res.Spec, strings.Join(res.Removed, ", "))
		} else {
			fmt.Printf("%s: nothing removed\n", res.Spec)
		}
		for _, w := range res.Warnings {
			fmt.Printf("warning: %s\n", w.Message)
		}
		return nil
	},
}

func init() {
	unlinkCmd.Flags().Bool("all", false, "Remove every declared dependency")
	RootCmd.AddCommand(linkCmd)
	RootCmd.AddCommand(unlinkCmd)
}
