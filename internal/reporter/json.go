package reporter

import (
	"encoding/json"
	"io"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// JSONReporter generates machine-readable JSON reports.
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		pretty: pretty,
	}
}

// Generate writes the match list as a JSON array. A scan with no matches
// produces an empty array, not null.
func (r *JSONReporter) Generate(report *models.ScanReport) error {
	matches := report.Matches
	if matches == nil {
		matches = []models.Match{}
	}

	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(matches, "", "  ")
	} else {
		data, err = json.Marshal(matches)
	}
	if err != nil {
		return err
	}

	if _, err := r.writer.Write(data); err != nil {
		return err
	}

	// Trailing newline for terminal output
	_, err = r.writer.Write([]byte("\n"))
	return err
}

// GenerateFull writes the whole report including summary, the same shape the
// storage layer persists.
func (r *JSONReporter) GenerateFull(report *models.ScanReport) error {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return err
	}

	if _, err := r.writer.Write(data); err != nil {
		return err
	}

	_, err = r.writer.Write([]byte("\n"))
	return err
}
