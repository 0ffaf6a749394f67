package cli

import (
	"fmt"
	"os"

	"github.com/dc-blueorange/dxc-scd-dse/internal/storage"
	"github.com/dc-blueorange/dxc-scd-dse/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse the latest stored scan run",
	Long: `Open an interactive table over the matches of the most recent stored
scan run. Search with /, filter by database with d, cycle sort with s, copy
the selected match with c.

Requires a terminal; run 'scdscan scan --store' first to have something to
browse.

Example:
  scdscan scan --dentists --store
  scdscan browse`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("browse needs an interactive terminal.")
		fmt.Println("Use 'scdscan scan --format text' for non-interactive output.")
		return nil
	}

	storagePath, err := getStoragePath(cfg.StorageDir)
	if err != nil {
		logError("Failed to get storage path: %v", err)
		return err
	}

	store := storage.NewLocal(storagePath)

	report, err := store.GetLatestRun()
	if err != nil {
		fmt.Println("No stored runs found. Run 'scdscan scan --store' first.")
		return nil
	}

	logVerbose("Browsing run from %s (%d matches)",
		report.Timestamp.Format("2006-01-02 15:04:05"), len(report.Matches))

	return tui.Run(report)
}
