package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
	"github.com/dc-blueorange/dxc-scd-dse/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportLastN  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored scan runs for review and tracking",
	Long: `Export stored scan history in formats suitable for data-governance
review. Generates evidence of which dumps still expose provider, network,
or DSO identifiers.

Supported formats:
  csv    Tabular format for spreadsheets
  json   Structured JSON for programmatic consumption
  sarif  SARIF 2.1.0 for GitHub code scanning over the dump repository

Example:
  scdscan export --format csv -o matches.csv
  scdscan export --format sarif -o results.sarif --last 1
  scdscan export --format json --last 5`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv",
		"output format: csv, json, or sarif")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write output to file (default: stdout)")
	exportCmd.Flags().IntVarP(&exportLastN, "last", "n", 1,
		"number of recent runs to include")
}

// ExportRecord is a single row in the export.
type ExportRecord struct {
	RunTimestamp string `json:"run_timestamp"`
	Database     string `json:"database"`
	Table        string `json:"table"`
	Matched      string `json:"matched"`
	TermSet      string `json:"term_set"`
	File         string `json:"file"`
}

// Export is the full export payload.
type Export struct {
	ExportedAt string         `json:"exported_at"`
	RunCount   int            `json:"run_count"`
	MatchCount int            `json:"match_count"`
	Records    []ExportRecord `json:"records"`
}

func runExport(cmd *cobra.Command, args []string) error {
	storagePath, err := getStoragePath(cfg.StorageDir)
	if err != nil {
		logError("Failed to get storage path: %v", err)
		return err
	}

	store := storage.NewLocal(storagePath)

	reports, err := store.GetLastNRuns(exportLastN)
	if err != nil || len(reports) == 0 {
		fmt.Println("No stored runs found. Run 'scdscan scan --store' first.")
		return nil
	}

	logVerbose("Exporting %d runs", len(reports))

	export := buildExport(reports)

	var writer *os.File
	if exportOutput != "" {
		writer, err = os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = writer.Close() }()
	} else {
		writer = os.Stdout
	}

	switch exportFormat {
	case "csv":
		return writeExportCSV(writer, export)
	case "json":
		return writeExportJSON(writer, export)
	case "sarif":
		return writeSARIF(writer, reports)
	default:
		return &ValidationError{
			Message: fmt.Sprintf("unsupported format: %s (use csv, json, or sarif)", exportFormat),
		}
	}
}

func buildExport(reports []*models.ScanReport) *Export {
	var records []ExportRecord

	for _, report := range reports {
		ts := report.Timestamp.Format(time.RFC3339)
		for _, m := range report.Matches {
			records = append(records, ExportRecord{
				RunTimestamp: ts,
				Database:     m.Database,
				Table:        m.Table,
				Matched:      m.Matched,
				TermSet:      m.TermSet,
				File:         m.File,
			})
		}
	}

	// Sort by database, then table, then file for stable review diffs.
	sort.Slice(records, func(i, j int) bool {
		if records[i].Database != records[j].Database {
			return records[i].Database < records[j].Database
		}
		if records[i].Table != records[j].Table {
			return records[i].Table < records[j].Table
		}
		return records[i].File < records[j].File
	})

	return &Export{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		RunCount:   len(reports),
		MatchCount: len(records),
		Records:    records,
	}
}

func writeExportCSV(w *os.File, export *Export) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"run_timestamp", "database", "table", "matched", "term_set", "file"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range export.Records {
		row := []string{r.RunTimestamp, r.Database, r.Table, r.Matched, r.TermSet, r.File}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func writeExportJSON(w *os.File, export *Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}

// SARIF 2.1.0 output for code-scanning over the dump repository.
// Minimal structures — only what's needed for valid SARIF.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

func writeSARIF(w *os.File, reports []*models.ScanReport) error {
	rulesMap := map[string]sarifRule{}
	var results []sarifResult

	for _, report := range reports {
		for _, m := range report.Matches {
			ruleID := m.TermSet + "/" + m.Matched
			if _, exists := rulesMap[ruleID]; !exists {
				rulesMap[ruleID] = sarifRule{
					ID:               ruleID,
					ShortDescription: sarifMessage{Text: m.TermSet + " term " + m.Matched},
					DefaultConfig:    sarifDefaultConfig{Level: "warning"},
				}
			}

			results = append(results, sarifResult{
				RuleID: ruleID,
				Level:  "warning",
				Message: sarifMessage{
					Text: fmt.Sprintf("%s.%s contains %q (%s term set)", m.Database, m.Table, m.Matched, m.TermSet),
				},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysical{
						ArtifactLocation: sarifArtifact{URI: m.File},
					},
				}},
			})
		}
	}

	var rules []sarifRule
	for _, r := range rulesMap {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:    "scdscan",
					Version: buildVersion,
					Rules:   rules,
				},
			},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}
