// Package termset loads user-defined keyword vocabularies from a YAML file,
// extending the built-in dentists/networks/dsos sets.
package termset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is searched for in the working directory and its parents.
const DefaultFileName = ".scdscan-terms.yaml"

// File is the on-disk shape of a custom term set definition.
type File struct {
	Version string           `yaml:"version"`
	Sets    []models.TermSet `yaml:"sets"`
}

// LoadFromFile reads custom term sets from a YAML file. A missing file is
// not an error; it returns nil.
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read terms file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse terms file: %w", err)
	}

	for _, set := range f.Sets {
		if set.Name == "" {
			return nil, fmt.Errorf("terms file %s: set with empty name", path)
		}
		if len(set.Terms) == 0 {
			return nil, fmt.Errorf("terms file %s: set %q has no terms", path, set.Name)
		}
		if _, builtin := models.BuiltinTermSet(set.Name); builtin {
			return nil, fmt.Errorf("terms file %s: set %q shadows a built-in set", path, set.Name)
		}
	}

	return &f, nil
}

// FindTermsFile searches for a terms file in the current directory and
// parent directories up to the filesystem root. Returns "" when none exists.
func FindTermsFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Resolve returns the named term set, consulting built-ins first and then
// the custom file (which may be nil).
func Resolve(name string, custom *File) (models.TermSet, error) {
	if set, ok := models.BuiltinTermSet(name); ok {
		return set, nil
	}

	if custom != nil {
		for _, set := range custom.Sets {
			if set.Name == name {
				return set, nil
			}
		}
	}

	return models.TermSet{}, fmt.Errorf("unknown term set: %s", name)
}

// Names lists all selectable set names: built-ins in documented order,
// then custom sets sorted by name.
func Names(custom *File) []string {
	names := models.BuiltinNames()

	if custom != nil {
		var extra []string
		for _, set := range custom.Sets {
			extra = append(extra, set.Name)
		}
		sort.Strings(extra)
		names = append(names, extra...)
	}

	return names
}
