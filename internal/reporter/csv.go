package reporter

import (
	"encoding/csv"
	"io"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// CSVReporter writes matches as comma-separated rows with a header line.
type CSVReporter struct {
	writer io.Writer
}

// NewCSVReporter creates a new CSV reporter.
func NewCSVReporter(writer io.Writer) *CSVReporter {
	return &CSVReporter{
		writer: writer,
	}
}

// Generate writes the report's matches as CSV. An empty match list still
// produces the header row.
func (r *CSVReporter) Generate(report *models.ScanReport) error {
	w := csv.NewWriter(r.writer)
	defer w.Flush()

	if err := w.Write([]string{"Database", "Table", "Matched", "File"}); err != nil {
		return err
	}

	for _, m := range report.Matches {
		if err := w.Write([]string{m.Database, m.Table, m.Matched, m.File}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
