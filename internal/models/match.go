package models

import "time"

// Match is the atomic unit of scan output: one keyword hit inside one
// table definition of one DDL file.
type Match struct {
	Database string `json:"database"` // from USE [db], or "Unknown"
	Table    string `json:"table"`    // object name without schema
	Matched  string `json:"matched"`  // the term or column identifier that hit
	TermSet  string `json:"term_set"` // which term set produced the hit
	File     string `json:"file"`     // source .sql file path
}

// Key returns a string that uniquely identifies a match for diff purposes.
// All five fields participate, so a hit moving between term sets reads as
// cleared-plus-new rather than unchanged.
func (m Match) Key() string {
	return m.Database + "|" + m.Table + "|" + m.Matched + "|" + m.TermSet + "|" + m.File
}

// ScanReport contains the complete output of one scan invocation.
type ScanReport struct {
	Timestamp  time.Time   `json:"timestamp"`
	Paths      []string    `json:"paths"`
	TermSets   []string    `json:"term_sets"`
	TablesOnly bool        `json:"tables_only"`
	Matches    []Match     `json:"matches"`
	Summary    ScanSummary `json:"summary"`
}

// ScanSummary provides aggregate statistics for a scan run.
type ScanSummary struct {
	FilesScanned      int            `json:"files_scanned"`
	FilesSkipped      int            `json:"files_skipped"`
	TablesSeen        int            `json:"tables_seen"`
	TotalMatches      int            `json:"total_matches"`
	MatchesByDatabase map[string]int `json:"matches_by_database"`
	MatchesByTermSet  map[string]int `json:"matches_by_term_set"`
	MatchesByTerm     map[string]int `json:"matches_by_term"`
}

// Summarize recomputes the summary counters from the match list.
// FilesScanned and FilesSkipped are owned by the scanner and left alone.
func (r *ScanReport) Summarize() {
	r.Summary.TotalMatches = len(r.Matches)
	r.Summary.MatchesByDatabase = make(map[string]int)
	r.Summary.MatchesByTermSet = make(map[string]int)
	r.Summary.MatchesByTerm = make(map[string]int)

	for _, m := range r.Matches {
		r.Summary.MatchesByDatabase[m.Database]++
		r.Summary.MatchesByTermSet[m.TermSet]++
		r.Summary.MatchesByTerm[m.Matched]++
	}
}

// UnknownDatabase is reported when a file carries no USE statement.
const UnknownDatabase = "Unknown"
