package cli

import (
	"fmt"

	lsserver "github.com/codervisor/leanspec/internal/server"
	"github.com/codervisor/leanspec/internal/updater"
	"github.com/spf13/cobra"
)

var upgradeCheckOnly bool

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Update leanspec to the latest release",
	Long: `Upgrade checks GitHub releases for a newer leanspec build and replaces
the running binary in place. Use --check to only report whether an update
exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if upgradeCheckOnly {
			res := updater.CheckVersion(lsserver.Version)
			if res.UpdateAvailable {
				fmt.Printf("leanspec %s is available (running %s): %s\n",
					res.LatestVersion, res.CurrentVersion, res.ReleaseURL)
			} else {
				fmt.Printf("leanspec %s is up to date\n", res.CurrentVersion)
			}
			return nil
		}

		if err := updater.SelfUpdate(lsserver.Version); err != nil {
			return err
		}
		fmt.Println("leanspec updated; restart any running servers to pick it up")
		return nil
	},
}

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeCheckOnly, "check", false, "only check for a newer release")
	RootCmd.AddCommand(upgradeCmd)
}
