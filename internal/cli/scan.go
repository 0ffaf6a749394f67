package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/config"
	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
	"github.com/dc-blueorange/dxc-scd-dse/internal/reporter"
	"github.com/dc-blueorange/dxc-scd-dse/internal/scanner"
	"github.com/dc-blueorange/dxc-scd-dse/internal/storage"
	"github.com/dc-blueorange/dxc-scd-dse/internal/termset"
	"github.com/spf13/cobra"
)

var (
	// Scan command flags
	scanDentists   bool
	scanNetworks   bool
	scanDSOs       bool
	scanTermSets   []string
	scanFormat     string
	scanJSON       bool
	scanMarkdown   bool
	scanNoColumns  bool
	scanOutput     string
	scanStore      bool
	scanStorageDir string
	scanTermsFile  string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "Scan SQL DDL dumps for matching table and column names",
	Long: `Scan UTF-16 encoded .sql dump files for CREATE TABLE / CREATE VIEW
definitions whose columns (or, with --no-columns, whose table names) contain
any term from the selected term sets.

Paths may be single files or directories (walked recursively for .sql files).
Without paths, the configured default directories are scanned. At least one
term set must be selected.

The command will:
1. Resolve the selected term sets (built-in modes and --termset names)
2. Walk the paths for .sql files
3. Decode each file as UTF-16, extract USE [db] and table definition blocks
4. Match column text or table names against the term alternations
5. Output matches in the selected format, optionally storing the run

Example:
  scdscan scan --dentists ./DTT-ANA-PRD
  scdscan scan --networks --dsos --format markdown dump.sql
  scdscan scan --dentists --no-columns --json
  scdscan scan --termset phi --store`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanDentists, "dentists", false,
		"match dentist/provider terms (NPI, dentist, hygienist, provider)")
	scanCmd.Flags().BoolVar(&scanNetworks, "networks", false,
		"match network terms (dental network provider, network, ...)")
	scanCmd.Flags().BoolVar(&scanDSOs, "dsos", false,
		"match DSO terms (dental service organization, dso, ...)")
	scanCmd.Flags().StringSliceVar(&scanTermSets, "termset", nil,
		"additional term set name from the terms file (repeatable)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "",
		"output format: csv, json, markdown, or text (default from config)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false,
		"shorthand for --format json")
	scanCmd.Flags().BoolVar(&scanMarkdown, "markdown", false,
		"shorthand for --format markdown")
	scanCmd.Flags().BoolVar(&scanNoColumns, "no-columns", false,
		"match table names only, ignore column definitions")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "",
		"output file path (default: stdout)")
	scanCmd.Flags().BoolVar(&scanStore, "store", false,
		"store the scan run for browse/diff/export")
	scanCmd.Flags().StringVar(&scanStorageDir, "storage-dir", "",
		"storage directory (default from config)")
	scanCmd.Flags().StringVar(&scanTermsFile, "terms-file", "",
		"custom term set YAML (default from config or .scdscan-terms.yaml)")
}

func runScan(cmd *cobra.Command, args []string) error {
	sets, err := selectedTermSets()
	if err != nil {
		return err
	}

	format, err := resolveFormat()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.DefaultPaths
		logVerbose("No paths given, scanning defaults: %s", strings.Join(paths, ", "))
	}

	if scanStorageDir == "" {
		scanStorageDir = cfg.StorageDir
	}

	logDebug("Config: format=%s, tables_only=%v, store=%v, sets=%d",
		format, scanNoColumns, scanStore, len(sets))

	s := scanner.New(scanner.Config{
		TablesOnly: scanNoColumns,
		Verbose:    cfg.Verbose,
	}, sets)

	report, err := s.ScanPaths(paths)
	if err != nil {
		logError("Scan failed: %v", err)
		return err
	}

	logVerbose("Scanned %d file(s), %d match(es)",
		report.Summary.FilesScanned, report.Summary.TotalMatches)

	if scanStore {
		storagePath, err := getStoragePath(scanStorageDir)
		if err != nil {
			logError("Failed to get storage path: %v", err)
			return err
		}
		store := storage.NewLocal(storagePath)
		if err := store.SaveScanReport(report); err != nil {
			logError("Failed to store run: %v", err)
			return err
		}
		logVerbose("Stored run under %s", storagePath)
	}

	return writeReport(report, format, scanOutput)
}

// selectedTermSets resolves the mode flags and --termset names into term
// sets, preserving the documented order: dentists, networks, dsos, custom.
func selectedTermSets() ([]models.TermSet, error) {
	var names []string
	if scanDentists {
		names = append(names, models.SetDentists)
	}
	if scanNetworks {
		names = append(names, models.SetNetworks)
	}
	if scanDSOs {
		names = append(names, models.SetDSOs)
	}
	names = append(names, scanTermSets...)

	if len(names) == 0 {
		return nil, &ValidationError{
			Message: "no mode selected: use at least one of --dentists, --networks, --dsos, or --termset",
		}
	}

	custom, err := loadCustomTerms()
	if err != nil {
		return nil, err
	}

	sets := make([]models.TermSet, 0, len(names))
	for _, name := range names {
		set, err := termset.Resolve(name, custom)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		sets = append(sets, set)
	}

	return sets, nil
}

// loadCustomTerms loads the terms file named by flag, config, or upward
// search. Returns nil when no file exists anywhere.
func loadCustomTerms() (*termset.File, error) {
	path := scanTermsFile
	if path == "" {
		path = cfg.TermsFile
	}
	if path == "" {
		path = termset.FindTermsFile()
	}
	if path == "" {
		return nil, nil
	}

	logDebug("Loading term sets from %s", path)

	custom, err := termset.LoadFromFile(path)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	return custom, nil
}

// resolveFormat applies the format flag precedence: --json / --markdown
// shorthands beat --format, which beats the config default.
func resolveFormat() (string, error) {
	format := scanFormat
	if format == "" {
		format = cfg.Format
	}
	if scanJSON {
		format = "json"
	}
	if scanMarkdown {
		format = "markdown"
	}

	if !config.ValidFormats[format] {
		return "", &ValidationError{
			Message: fmt.Sprintf("unsupported format: %s (use csv, json, markdown, or text)", format),
		}
	}
	return format, nil
}

// writeReport renders the report in the given format to stdout or a file.
func writeReport(report *models.ScanReport, format, output string) error {
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
	case "csv":
		return reporter.NewCSVReporter(writer).Generate(report)
	case "json":
		return reporter.NewJSONReporter(writer, true).Generate(report)
	case "markdown":
		return reporter.NewMarkdownReporter(writer).Generate(report)
	case "text":
		return reporter.NewTextReporter(writer).Generate(report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
