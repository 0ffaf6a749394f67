package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

func reportWith(ts time.Time, matches ...models.Match) *models.ScanReport {
	r := &models.ScanReport{Timestamp: ts, Matches: matches}
	r.Summarize()
	return r
}

var (
	matchA = models.Match{Database: "FooDB", Table: "Providers", Matched: "ProviderNPI", TermSet: "dentists", File: "a.sql"}
	matchB = models.Match{Database: "FooDB", Table: "Network", Matched: "Network", TermSet: "networks", File: "a.sql"}
	matchC = models.Match{Database: "BarDB", Table: "DSOList", Matched: "dso", TermSet: "dsos", File: "b.sql"}
)

func TestComputeDiff(t *testing.T) {
	baseline := reportWith(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), matchA, matchB)
	current := reportWith(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), matchA, matchC)

	result := computeDiff(baseline, current)

	if result.Summary.BaselineTotal != 2 || result.Summary.CurrentTotal != 2 {
		t.Errorf("unexpected totals: %+v", result.Summary)
	}
	if result.Summary.Delta != 0 {
		t.Errorf("expected delta 0, got %d", result.Summary.Delta)
	}
	if len(result.NewMatches) != 1 || result.NewMatches[0].Table != "DSOList" {
		t.Errorf("unexpected new matches: %+v", result.NewMatches)
	}
	if len(result.ClearedMatches) != 1 || result.ClearedMatches[0].Table != "Network" {
		t.Errorf("unexpected cleared matches: %+v", result.ClearedMatches)
	}
	if result.Summary.NewByDatabase["BarDB"] != 1 {
		t.Errorf("unexpected new-by-database: %+v", result.Summary.NewByDatabase)
	}
	if result.Summary.NewByTermSet["dsos"] != 1 {
		t.Errorf("unexpected new-by-term-set: %+v", result.Summary.NewByTermSet)
	}
}

func TestComputeDiffNoChanges(t *testing.T) {
	baseline := reportWith(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), matchA)
	current := reportWith(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), matchA)

	result := computeDiff(baseline, current)
	if len(result.NewMatches) != 0 || len(result.ClearedMatches) != 0 {
		t.Errorf("expected empty diff, got %+v", result)
	}
}

func TestComputeDiffTermSetMoveIsNew(t *testing.T) {
	// The same term reported under a different set is a distinct match.
	moved := matchA
	moved.TermSet = "networks"

	baseline := reportWith(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), matchA)
	current := reportWith(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), moved)

	result := computeDiff(baseline, current)
	if len(result.NewMatches) != 1 || len(result.ClearedMatches) != 1 {
		t.Errorf("term set is part of match identity: %+v", result.Summary)
	}
	if result.Summary.NewByTermSet["networks"] != 1 {
		t.Errorf("unexpected new-by-term-set: %+v", result.Summary.NewByTermSet)
	}
}

func TestComputeDiffSameMatchDifferentFileIsNew(t *testing.T) {
	moved := matchA
	moved.File = "c.sql"

	baseline := reportWith(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), matchA)
	current := reportWith(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), moved)

	result := computeDiff(baseline, current)
	if len(result.NewMatches) != 1 || len(result.ClearedMatches) != 1 {
		t.Errorf("file is part of match identity: %+v", result.Summary)
	}
}

func TestPrintDiffText(t *testing.T) {
	baseline := reportWith(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), matchB)
	current := reportWith(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), matchA)
	result := computeDiff(baseline, current)

	var buf bytes.Buffer
	printDiffText(&buf, result)
	out := buf.String()

	if !strings.Contains(out, "New matches (1):") {
		t.Errorf("missing new matches section:\n%s", out)
	}
	if !strings.Contains(out, "+ [dentists] FooDB.Providers: ProviderNPI (a.sql)") {
		t.Errorf("missing new match line:\n%s", out)
	}
	if !strings.Contains(out, "- [networks] FooDB.Network: Network (a.sql)") {
		t.Errorf("missing cleared match line:\n%s", out)
	}
}

func TestPrintDiffTextNoChanges(t *testing.T) {
	baseline := reportWith(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), matchA)
	current := reportWith(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), matchA)

	var buf bytes.Buffer
	printDiffText(&buf, computeDiff(baseline, current))
	if !strings.Contains(buf.String(), "No changes between runs.") {
		t.Errorf("expected no-changes message:\n%s", buf.String())
	}
}

func TestOutputDiffInvalidFormat(t *testing.T) {
	result := computeDiff(reportWith(time.Now()), reportWith(time.Now()))
	err := outputDiff(result, "yaml", "")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if HandleError(err) != ExitInvalidInput {
		t.Errorf("expected invalid-input exit code, got %d", HandleError(err))
	}
}
