package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
	"github.com/dc-blueorange/dxc-scd-dse/internal/storage"
	"github.com/spf13/cobra"
)

var (
	diffFormat   string
	diffOutput   string
	diffBaseline string
	diffFailNew  bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show what changed between two scan runs",
	Long: `Compare the latest stored scan run against a baseline to show drift
between dump generations.

Shows matches that appeared and matches that cleared between two runs.
Useful in CI to catch new provider/network/DSO columns introduced by a
schema change.

By default compares the two most recent stored runs. Use --baseline to
specify a report file as the comparison target.

Exit codes:
  0  No new matches (or --fail-new not set)
  1  New matches detected (with --fail-new)

Example:
  scdscan diff
  scdscan diff --fail-new
  scdscan diff --baseline ./baseline.json --format json`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text",
		"output format: text or json")
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "",
		"write output to file instead of stdout")
	diffCmd.Flags().StringVar(&diffBaseline, "baseline", "",
		"path to baseline report JSON (default: previous stored run)")
	diffCmd.Flags().BoolVar(&diffFailNew, "fail-new", false,
		"exit 1 if new matches are found (for CI gating)")
}

// DiffResult is the structured output of a diff operation.
type DiffResult struct {
	Baseline       string         `json:"baseline"`
	Current        string         `json:"current"`
	NewMatches     []models.Match `json:"new_matches"`
	ClearedMatches []models.Match `json:"cleared_matches"`
	Summary        DiffSummary    `json:"summary"`
}

// DiffSummary holds aggregate counts for a diff.
type DiffSummary struct {
	BaselineTotal int            `json:"baseline_total"`
	CurrentTotal  int            `json:"current_total"`
	NewCount      int            `json:"new_count"`
	ClearedCount  int            `json:"cleared_count"`
	Delta         int            `json:"delta"` // positive = more matches
	NewByDatabase map[string]int `json:"new_by_database"`
	NewByTermSet  map[string]int `json:"new_by_term_set"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	storagePath, err := getStoragePath(cfg.StorageDir)
	if err != nil {
		logError("Failed to get storage path: %v", err)
		return err
	}

	store := storage.NewLocal(storagePath)

	// Load current (latest) run.
	current, err := store.GetLatestRun()
	if err != nil {
		fmt.Println("No stored runs found. Run 'scdscan scan --store' first.")
		return err
	}

	// Load baseline.
	var baseline *models.ScanReport
	if diffBaseline != "" {
		baseline, err = storage.LoadReportFromFile(diffBaseline)
		if err != nil {
			logError("Failed to load baseline: %v", err)
			return err
		}
	} else {
		reports, err := store.GetLastNRuns(2)
		if err != nil || len(reports) < 2 {
			fmt.Println("Need at least 2 stored runs for diff.")
			fmt.Println("Run 'scdscan scan --store' to generate more reports.")
			return nil
		}
		baseline = reports[0]
	}

	logVerbose("Comparing %s (current) vs %s (baseline)",
		current.Timestamp.Format("2006-01-02 15:04"),
		baseline.Timestamp.Format("2006-01-02 15:04"))

	result := computeDiff(baseline, current)

	if err := outputDiff(result, diffFormat, diffOutput); err != nil {
		return err
	}

	// CI gate.
	if diffFailNew && result.Summary.NewCount > 0 {
		return &GateFailedError{NewMatches: result.Summary.NewCount}
	}

	return nil
}

// computeDiff calculates new and cleared matches between baseline and current.
func computeDiff(baseline, current *models.ScanReport) *DiffResult {
	baseSet := make(map[string]models.Match, len(baseline.Matches))
	for _, m := range baseline.Matches {
		baseSet[m.Key()] = m
	}

	currSet := make(map[string]models.Match, len(current.Matches))
	for _, m := range current.Matches {
		currSet[m.Key()] = m
	}

	result := &DiffResult{
		Baseline: baseline.Timestamp.Format("2006-01-02 15:04:05"),
		Current:  current.Timestamp.Format("2006-01-02 15:04:05"),
		Summary: DiffSummary{
			BaselineTotal: len(baseline.Matches),
			CurrentTotal:  len(current.Matches),
			NewByDatabase: make(map[string]int),
			NewByTermSet:  make(map[string]int),
		},
	}

	for _, m := range current.Matches {
		if _, ok := baseSet[m.Key()]; !ok {
			result.NewMatches = append(result.NewMatches, m)
			result.Summary.NewByDatabase[m.Database]++
			result.Summary.NewByTermSet[m.TermSet]++
		}
	}

	for _, m := range baseline.Matches {
		if _, ok := currSet[m.Key()]; !ok {
			result.ClearedMatches = append(result.ClearedMatches, m)
		}
	}

	result.Summary.NewCount = len(result.NewMatches)
	result.Summary.ClearedCount = len(result.ClearedMatches)
	result.Summary.Delta = result.Summary.CurrentTotal - result.Summary.BaselineTotal

	return result
}

// outputDiff renders the diff result in the given format.
func outputDiff(result *DiffResult, format, output string) error {
	var writer io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text":
		printDiffText(writer, result)
		return nil
	default:
		return &ValidationError{
			Message: fmt.Sprintf("unsupported format: %s (use text or json)", format),
		}
	}
}

func printDiffText(w io.Writer, result *DiffResult) {
	fmt.Fprintf(w, "Diff: %s (baseline) → %s (current)\n", result.Baseline, result.Current)
	fmt.Fprintf(w, "Matches: %d → %d (%+d)\n\n",
		result.Summary.BaselineTotal, result.Summary.CurrentTotal, result.Summary.Delta)

	if len(result.NewMatches) > 0 {
		fmt.Fprintf(w, "New matches (%d):\n", len(result.NewMatches))
		for _, m := range result.NewMatches {
			fmt.Fprintf(w, "  + [%s] %s.%s: %s (%s)\n", m.TermSet, m.Database, m.Table, m.Matched, m.File)
		}
		fmt.Fprintln(w)
	}

	if len(result.ClearedMatches) > 0 {
		fmt.Fprintf(w, "Cleared matches (%d):\n", len(result.ClearedMatches))
		for _, m := range result.ClearedMatches {
			fmt.Fprintf(w, "  - [%s] %s.%s: %s (%s)\n", m.TermSet, m.Database, m.Table, m.Matched, m.File)
		}
		fmt.Fprintln(w)
	}

	if len(result.NewMatches) == 0 && len(result.ClearedMatches) == 0 {
		fmt.Fprintln(w, "No changes between runs.")
	}
}
