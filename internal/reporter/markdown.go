package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// MarkdownReporter writes matches as a GitHub-flavored Markdown table.
type MarkdownReporter struct {
	writer io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(writer io.Writer) *MarkdownReporter {
	return &MarkdownReporter{
		writer: writer,
	}
}

// Generate writes the report's matches as a Markdown table. An empty match
// list still produces the header and separator rows.
func (r *MarkdownReporter) Generate(report *models.ScanReport) error {
	if _, err := fmt.Fprintln(r.writer, "| Database | Table | Matched | File |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, "| --- | --- | --- | --- |"); err != nil {
		return err
	}

	for _, m := range report.Matches {
		_, err := fmt.Fprintf(r.writer, "| %s | %s | %s | %s |\n",
			escapeCell(m.Database), escapeCell(m.Table), escapeCell(m.Matched), escapeCell(m.File))
		if err != nil {
			return err
		}
	}

	return nil
}

// escapeCell keeps pipe characters in identifiers from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
