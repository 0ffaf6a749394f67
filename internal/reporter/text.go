package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// TextReporter generates a human-readable summary of a scan run.
type TextReporter struct {
	writer io.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(writer io.Writer) *TextReporter {
	return &TextReporter{
		writer: writer,
	}
}

// Generate creates a text report from the scan data.
func (r *TextReporter) Generate(report *models.ScanReport) error {
	r.printHeader(report)
	r.printSummary(report)
	r.printMatches(report)
	return nil
}

func (r *TextReporter) printHeader(report *models.ScanReport) {
	scope := "Tables and Columns"
	if report.TablesOnly {
		scope = "Tables Only"
	}
	r.printf("--- Report for %s (%s) ---\n", strings.Join(report.TermSets, ", "), scope)
	r.printf("Scanned: %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05"))
}

func (r *TextReporter) printSummary(report *models.ScanReport) {
	r.printf("Summary:\n")
	r.printf("--------------------------------------------------\n")
	r.printf("  Files Scanned: %d\n", report.Summary.FilesScanned)
	if report.Summary.FilesSkipped > 0 {
		r.printf("  Files Skipped: %d\n", report.Summary.FilesSkipped)
	}
	r.printf("  Tables Seen: %d\n", report.Summary.TablesSeen)
	r.printf("  Total Matches: %d\n", report.Summary.TotalMatches)

	if len(report.Summary.MatchesByDatabase) > 0 {
		r.printf("\nMatches by Database:\n")
		for _, db := range sortedKeys(report.Summary.MatchesByDatabase) {
			r.printf("  %s: %d\n", db, report.Summary.MatchesByDatabase[db])
		}
	}

	if len(report.Summary.MatchesByTerm) > 0 {
		r.printf("\nMatches by Term:\n")
		for _, term := range sortedKeys(report.Summary.MatchesByTerm) {
			r.printf("  %s: %d\n", term, report.Summary.MatchesByTerm[term])
		}
	}

	r.printf("\n")
}

func (r *TextReporter) printMatches(report *models.ScanReport) {
	if len(report.Matches) == 0 {
		r.printf("No matches found.\n")
		return
	}

	r.printf("Matches:\n")
	r.printf("--------------------------------------------------\n")
	for _, m := range report.Matches {
		r.printf("  Database: %s, Table: %s, Matched: %s (%s)\n",
			m.Database, m.Table, m.Matched, m.File)
	}
}

// printf is a helper to write formatted output.
func (r *TextReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

// sortedKeys returns map keys in lexical order for deterministic output.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
