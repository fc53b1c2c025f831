package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codervisor/leanspec/internal/ops"
	"github.com/codervisor/leanspec/internal/sequence"
	"github.com/codervisor/leanspec/internal/spec"
	"github.com/codervisor/leanspec/internal/watch"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Detect sequence-number conflicts across spec folders",
	Long: `Check parses every spec folder name against the naming grammar and
reports sequence numbers claimed by more than one folder. Conflicts are
advisory: the command exits non-zero so scripts can gate on it, but
nothing in the corpus is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		jsonOut, _ := cmd.Flags().GetBool("json")
		watchFlag, _ := cmd.Flags().GetBool("watch")

		mode := sequence.Mode(modeFlag)
		if err := sequence.ValidateMode(mode); err != nil {
			return err
		}

		root, cfg, st, err := loadContext()
		if err != nil {
			return err
		}

		runOnce := func() (sequence.CheckResult, error) {
			res, err := ops.Check(st, root)
			if err != nil {
				return res, err
			}
			if jsonOut {
				data, _ := json.MarshalIndent(res, "", "  ")
				fmt.Println(string(data))
				return res, nil
			}
			if text := sequence.Render(res, mode, cfg.SequenceDigits); text != "" {
				fmt.Print(text)
			} else if mode != sequence.ModeSilent {
				fmt.Println("No sequence conflicts found.")
			}
			return res, nil
		}

		if watchFlag {
			return watchAndCheck(root, func() { _, _ = runOnce() })
		}

		res, err := runOnce()
		if err != nil {
			return err
		}
		if res.Conflicts {
			// Advisory, but scripts gate on the exit code.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return fmt.Errorf("%d sequence conflict(s)", len(res.Groups))
		}
		return nil
	},
}

// watchAndCheck re-runs the check whenever the specs/ tree changes,
// until interrupted.
func watchAndCheck(root string, run func()) error {
	w, err := watch.New(500*time.Millisecond, run)
	if err != nil {
		return err
	}
	if err := w.WatchRecursive(spec.SpecsPath(root)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	run()
	fmt.Fprintln(os.Stderr, "watching specs/ for changes — Ctrl-C to stop")
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func init() {
	checkCmd.Flags().String("mode", "full", "Presentation mode: silent, quiet, or full")
	checkCmd.Flags().Bool("json", false, "Emit the structured result as JSON")
	checkCmd.Flags().Bool("watch", false, "Re-run the check whenever specs/ changes")
	RootCmd.AddCommand(checkCmd)
}
