package tui

import (
	"fmt"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// headerHeight is the number of terminal lines the header occupies.
const headerHeight = 5

// renderHeader produces the header string from scan report data.
func renderHeader(report *models.ScanReport, width int) string {
	var b strings.Builder

	// Line 1: title and run timestamp
	scope := "columns"
	if report.TablesOnly {
		scope = "table names"
	}
	b.WriteString(fmt.Sprintf("scdscan  Run: %s  Scope: %s",
		report.Timestamp.Format("2006-01-02 15:04:05"), scope))
	b.WriteString("\n")

	// Line 2: files and matches
	b.WriteString(fmt.Sprintf("Files: %d scanned, %d skipped  Tables: %d  Matches: %d",
		report.Summary.FilesScanned,
		report.Summary.FilesSkipped,
		report.Summary.TablesSeen,
		report.Summary.TotalMatches))
	b.WriteString("\n")

	// Line 3: per-term-set breakdown in selection order
	setParts := make([]string, 0, len(report.TermSets))
	for _, name := range report.TermSets {
		if count, ok := report.Summary.MatchesByTermSet[name]; ok && count > 0 {
			label := fmt.Sprintf("%s:%d", name, count)
			setParts = append(setParts, termSetStyle(name).Render(label))
		}
	}
	if len(setParts) > 0 {
		b.WriteString(strings.Join(setParts, "  "))
	}

	return styleHeader.Width(width).Render(b.String())
}
