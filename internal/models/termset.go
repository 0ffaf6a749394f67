package models

// TermSet names a keyword vocabulary applied to table definitions.
// Terms are ordered most-specific first so that a multi-word phrase wins
// over its single-word substrings when the alternation is compiled.
type TermSet struct {
	Name  string   `json:"name" yaml:"name"`
	Terms []string `json:"terms" yaml:"terms"`
}

// Built-in term set names, selectable via the scan mode flags.
const (
	SetDentists = "dentists"
	SetNetworks = "networks"
	SetDSOs     = "dsos"
)

// BuiltinTermSets defines the three fixed vocabularies.
var BuiltinTermSets = map[string]TermSet{
	SetDentists: {
		Name:  SetDentists,
		Terms: []string{"NPI", "dentist", "hygienist", "provider"},
	},
	SetNetworks: {
		Name: SetNetworks,
		Terms: []string{
			"dental network provider",
			"network provider",
			"dental network",
			"provider",
			"network",
		},
	},
	SetDSOs: {
		Name: SetDSOs,
		Terms: []string{
			"dental service organization",
			"dental support organization",
			"service org",
			"support organization",
			"support org",
			"dso",
			"service",
			"support",
		},
	},
}

// BuiltinTermSet returns a built-in set by name.
func BuiltinTermSet(name string) (TermSet, bool) {
	ts, ok := BuiltinTermSets[name]
	return ts, ok
}

// BuiltinNames lists built-in set names in the order the mode flags are
// documented: dentists, networks, dsos.
func BuiltinNames() []string {
	return []string{SetDentists, SetNetworks, SetDSOs}
}
