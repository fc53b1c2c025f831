package cli

import (
	"fmt"
	"os"

	lsserver "github.com/codervisor/leanspec/internal/server"
	"github.com/codervisor/leanspec/internal/updater"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Serve exposes the corpus operations (spec_link, spec_unlink, spec_check,
spec_validate, spec_history) as MCP tools over stdio, so AI coding hosts
can manage the corpus directly. Diagnostics go to stderr; stdout belongs
to the MCP transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := lsserver.New()
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		// Best-effort version notice on stderr; never delays stdio startup.
		go func() {
			if res := updater.CheckVersion(lsserver.Version); res.UpdateAvailable {
				fmt.Fprintf(os.Stderr, "leanspec %s is available (running %s): %s\n",
					res.LatestVersion, res.CurrentVersion, res.ReleaseURL)
			}
		}()

		return server.ServeStdio(s)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
