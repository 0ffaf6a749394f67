package scanner

import (
	"reflect"
	"testing"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

func builtinSet(t *testing.T, name string) models.TermSet {
	t.Helper()
	set, ok := models.BuiltinTermSet(name)
	if !ok {
		t.Fatalf("missing builtin set %s", name)
	}
	return set
}

func TestMatchColumnsBracketed(t *testing.T) {
	m := NewMatcher(builtinSet(t, models.SetDentists))
	columns := `
	[ProviderNPI] [int] NOT NULL,
	[Name] [varchar](50) NULL,
	[HygienistID] [int] NULL,
`
	hits := m.MatchColumns(columns)
	want := []string{"ProviderNPI", "HygienistID"}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("expected %v, got %v", want, hits)
	}
}

func TestMatchColumnsFallbackUnbracketed(t *testing.T) {
	m := NewMatcher(builtinSet(t, models.SetDentists))
	hits := m.MatchColumns("ProviderNPI int, Name varchar(50)")
	if len(hits) != 1 {
		t.Fatalf("expected 1 fallback hit, got %d: %v", len(hits), hits)
	}
	// Plain substring matching, leftmost hit: "provider" inside "ProviderNPI".
	if hits[0] != "Provider" {
		t.Errorf("expected Provider, got %s", hits[0])
	}
}

func TestMatchColumnsNoHit(t *testing.T) {
	m := NewMatcher(builtinSet(t, models.SetDentists))
	if hits := m.MatchColumns("[InvoiceID] [int] NOT NULL"); hits != nil {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestMatchColumnsCaseInsensitive(t *testing.T) {
	m := NewMatcher(builtinSet(t, models.SetDentists))
	hits := m.MatchColumns("[provider_npi] [int] NULL")
	if len(hits) != 1 || hits[0] != "provider_npi" {
		t.Errorf("expected [provider_npi], got %v", hits)
	}
}

func TestMatchTableName(t *testing.T) {
	m := NewMatcher(builtinSet(t, models.SetDentists))
	hits := m.MatchTableName("DentistProviderXref")
	want := []string{"Dentist", "Provider"}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("expected %v, got %v", want, hits)
	}
}

func TestMatchTableNameIgnoresColumnTerms(t *testing.T) {
	m := NewMatcher(builtinSet(t, models.SetDentists))
	if hits := m.MatchTableName("ClaimsArchive"); hits != nil {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestSpecificPhraseWinsOverWord(t *testing.T) {
	m := NewMatcher(builtinSet(t, models.SetNetworks))
	hits := m.MatchColumns("dental network provider flag")
	if len(hits) != 1 || hits[0] != "dental network provider" {
		t.Errorf("expected whole phrase, got %v", hits)
	}
}

func TestMatcherEscapesTermMetacharacters(t *testing.T) {
	m := NewMatcher(models.TermSet{Name: "custom", Terms: []string{"a.b"}})
	if hits := m.MatchColumns("aXb col"); hits != nil {
		t.Errorf("dot must be literal, got %v", hits)
	}
	if hits := m.MatchColumns("a.b col"); len(hits) != 1 {
		t.Errorf("expected literal a.b hit, got %v", hits)
	}
}
