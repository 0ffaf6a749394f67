package scanner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// Config holds configuration for the scanner.
type Config struct {
	// TablesOnly matches term sets against object names instead of
	// column-definition text.
	TablesOnly bool
	// Verbose prints per-file progress to ErrOut.
	Verbose bool
	// ErrOut receives read-failure and progress messages. Defaults to
	// os.Stderr.
	ErrOut io.Writer
}

// Scanner walks paths, extracts table definitions from UTF-16 DDL dumps, and
// matches them against the configured term sets. Files are processed one at a
// time; a file that cannot be read or decoded is reported and skipped, and
// the scan continues with the remaining files.
type Scanner struct {
	config   Config
	matchers []*Matcher
}

// New creates a scanner for the given term sets.
func New(config Config, sets []models.TermSet) *Scanner {
	if config.ErrOut == nil {
		config.ErrOut = os.Stderr
	}

	matchers := make([]*Matcher, 0, len(sets))
	for _, set := range sets {
		matchers = append(matchers, NewMatcher(set))
	}

	return &Scanner{
		config:   config,
		matchers: matchers,
	}
}

// ScanPaths scans every .sql file reachable from the given paths. A path may
// be a single file or a directory walked recursively; anything else is
// reported and skipped. The returned report is never nil.
func (s *Scanner) ScanPaths(paths []string) (*models.ScanReport, error) {
	report := &models.ScanReport{
		Timestamp:  time.Now(),
		Paths:      paths,
		TablesOnly: s.config.TablesOnly,
	}
	for _, m := range s.matchers {
		report.TermSets = append(report.TermSets, m.Set().Name)
	}

	files, err := s.resolveFiles(paths)
	if err != nil {
		return report, err
	}

	if s.config.Verbose {
		fmt.Fprintf(s.config.ErrOut, "Found %d SQL file(s) to process\n", len(files))
	}

	for _, file := range files {
		matches, tables, err := s.scanFile(file)
		if err != nil {
			fmt.Fprintf(s.config.ErrOut, "Error reading %s: %v\n", file, err)
			report.Summary.FilesSkipped++
			continue
		}
		report.Summary.FilesScanned++
		report.Summary.TablesSeen += tables
		report.Matches = append(report.Matches, matches...)
	}

	report.Summarize()
	return report, nil
}

// resolveFiles expands the path arguments into a flat list of .sql files.
func (s *Scanner) resolveFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(s.config.ErrOut, "Error: path %s is neither a file nor a directory\n", path)
			continue
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				// An unreadable subdirectory must not kill the run.
				fmt.Fprintf(s.config.ErrOut, "Error reading %s: %v\n", p, err)
				return nil
			}
			if fi.IsDir() || !isSQLFile(p) {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return files, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	return files, nil
}

// isSQLFile reports whether the path has a .sql extension, case-insensitive.
func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}

// scanFile extracts and matches all table blocks in a single dump file.
func (s *Scanner) scanFile(path string) ([]models.Match, int, error) {
	content, err := ReadUTF16File(path)
	if err != nil {
		return nil, 0, err
	}

	if s.config.Verbose {
		fmt.Fprintf(s.config.ErrOut, "Processing file: %s\n", path)
	}

	database := ExtractDatabase(content)
	blocks := ExtractTableBlocks(content)

	var matches []models.Match
	for _, block := range blocks {
		for _, matcher := range s.matchers {
			var hits []string
			if s.config.TablesOnly {
				hits = matcher.MatchTableName(block.Name)
			} else {
				hits = matcher.MatchColumns(block.Columns)
			}

			for _, hit := range hits {
				matches = append(matches, models.Match{
					Database: database,
					Table:    block.Name,
					Matched:  hit,
					TermSet:  matcher.Set().Name,
					File:     path,
				})
			}
		}
	}

	return matches, len(blocks), nil
}
