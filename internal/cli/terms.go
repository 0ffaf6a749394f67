package cli

import (
	"fmt"
	"strings"

	"github.com/dc-blueorange/dxc-scd-dse/internal/models"
	"github.com/dc-blueorange/dxc-scd-dse/internal/termset"
	"github.com/spf13/cobra"
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List the available term sets",
	Long: `Show every selectable term set and its keywords: the built-in
dentists/networks/dsos modes plus any sets defined in the terms file.

Example:
  scdscan terms
  scdscan terms --terms-file ./my-terms.yaml`,
	RunE: runTerms,
}

var termsFileFlag string

func init() {
	termsCmd.Flags().StringVar(&termsFileFlag, "terms-file", "",
		"custom term set YAML (default from config or .scdscan-terms.yaml)")
}

func runTerms(cmd *cobra.Command, args []string) error {
	path := termsFileFlag
	if path == "" {
		path = cfg.TermsFile
	}
	if path == "" {
		path = termset.FindTermsFile()
	}

	var custom *termset.File
	if path != "" {
		var err error
		custom, err = termset.LoadFromFile(path)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		if custom != nil {
			logVerbose("Loaded custom sets from %s", path)
		}
	}

	for _, name := range termset.Names(custom) {
		set, err := termset.Resolve(name, custom)
		if err != nil {
			continue
		}

		origin := "built-in"
		if _, ok := models.BuiltinTermSet(name); !ok {
			origin = "custom"
		}

		fmt.Printf("%s (%s):\n", set.Name, origin)
		fmt.Printf("  %s\n", strings.Join(set.Terms, ", "))
	}

	return nil
}
