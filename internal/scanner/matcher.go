package scanner

import (
	"regexp"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
)

// Matcher applies one term set to table definitions. Matching is plain
// case-insensitive substring alternation — "NPI" hits inside "ProviderNPI".
// Terms are compiled in the order given so the most specific phrase wins
// when several terms overlap at the same offset.
type Matcher struct {
	set models.TermSet

	// terms matches the alternation anywhere in free text.
	terms *regexp.Regexp
	// column matches a bracketed column identifier containing any term,
	// followed by a bracketed type: [ProviderNPI] [int] ...
	column *regexp.Regexp
}

// NewMatcher compiles the term set into its matching expressions.
func NewMatcher(set models.TermSet) *Matcher {
	escaped := make([]string, len(set.Terms))
	for i, t := range set.Terms {
		escaped[i] = regexp.QuoteMeta(t)
	}
	alt := strings.Join(escaped, "|")

	return &Matcher{
		set:    set,
		terms:  regexp.MustCompile(`(?i)(?:` + alt + `)`),
		column: regexp.MustCompile(`(?i)\[\s*([^\]]*(?:` + alt + `)[^\]]*)\s*\]\s*\[`),
	}
}

// Set returns the term set this matcher was built from.
func (m *Matcher) Set() models.TermSet {
	return m.set
}

// MatchColumns reports hits inside the column-definition text of one block.
// Bracketed column identifiers are preferred: each matching [Column] [type]
// pair yields the full column identifier. Dumps without bracketed columns
// fall back to the first raw alternation hit over the column text.
func (m *Matcher) MatchColumns(columns string) []string {
	var hits []string
	for _, sub := range m.column.FindAllStringSubmatch(columns, -1) {
		hits = append(hits, strings.TrimSpace(sub[1]))
	}
	if hits != nil {
		return hits
	}

	if hit := m.terms.FindString(columns); hit != "" {
		return []string{hit}
	}
	return nil
}

// MatchTableName reports every alternation hit inside the object name itself.
// Column text is never consulted here.
func (m *Matcher) MatchTableName(name string) []string {
	return m.terms.FindAllString(name, -1)
}
