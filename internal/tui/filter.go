package tui

import (
	"sort"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// filterState holds current active filters.
type filterState struct {
	Database   string
	TermSet    string
	SearchText string
}

// sortField enumerates columns that can be sorted.
type sortField int

const (
	sortByDatabase sortField = iota
	sortByTable
	sortByMatched
	sortByFile
)

// sortFieldCount is the total number of sortable columns.
const sortFieldCount = 4

// applyFilters returns matches passing all active filters.
func applyFilters(matches []models.Match, f filterState) []models.Match {
	result := make([]models.Match, 0, len(matches))
	searchLower := strings.ToLower(f.SearchText)

	for _, m := range matches {
		if f.Database != "" && m.Database != f.Database {
			continue
		}
		if f.TermSet != "" && m.TermSet != f.TermSet {
			continue
		}
		if searchLower != "" && !matchesSearch(m, searchLower) {
			continue
		}
		result = append(result, m)
	}
	return result
}

func matchesSearch(m models.Match, searchLower string) bool {
	return strings.Contains(strings.ToLower(m.Database), searchLower) ||
		strings.Contains(strings.ToLower(m.Table), searchLower) ||
		strings.Contains(strings.ToLower(m.Matched), searchLower) ||
		strings.Contains(strings.ToLower(m.TermSet), searchLower) ||
		strings.Contains(strings.ToLower(m.File), searchLower)
}

// sortMatches sorts a slice of matches in place by the given field.
func sortMatches(matches []models.Match, field sortField) {
	sort.SliceStable(matches, func(i, j int) bool {
		switch field {
		case sortByDatabase:
			return matches[i].Database < matches[j].Database
		case sortByTable:
			return matches[i].Table < matches[j].Table
		case sortByMatched:
			return matches[i].Matched < matches[j].Matched
		case sortByFile:
			return matches[i].File < matches[j].File
		default:
			return false
		}
	})
}

// uniqueDatabases returns deduplicated, sorted database names from matches.
func uniqueDatabases(matches []models.Match) []string {
	seen := make(map[string]bool)
	var dbs []string
	for _, m := range matches {
		if !seen[m.Database] {
			seen[m.Database] = true
			dbs = append(dbs, m.Database)
		}
	}
	sort.Strings(dbs)
	return dbs
}

// sortFieldName returns a human-readable name for the sort field.
func sortFieldName(f sortField) string {
	switch f {
	case sortByDatabase:
		return "database"
	case sortByTable:
		return "table"
	case sortByMatched:
		return "matched"
	case sortByFile:
		return "file"
	default:
		return "unknown"
	}
}
