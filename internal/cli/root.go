package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dc-blueorange/dxc-scd-dse/internal/config"
	"github.com/spf13/cobra"
)

const (
	ExitOK           = 0 // Success
	ExitGateFail     = 1 // Diff gate tripped (--fail-new)
	ExitInvalidInput = 2 // No mode selected, unknown format or term set
	ExitRuntimeError = 3 // I/O, permissions, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// buildVersion is injected from main via SetVersion.
	buildVersion = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scdscan",
	Short: "scdscan - SQL Server DDL keyword scanner",
	Long: `scdscan scans SQL Server DDL dump files (UTF-16 .sql scripts with USE
headers and GO batch separators) for table and column identifiers that match
domain keyword sets: dentist/provider terms, network terms, DSO terms, or
your own term sets.

Quick start:
  scdscan scan --dentists ./DTT-ANA-PRD
  scdscan scan --networks --format markdown dump.sql
  scdscan scan --dsos --no-columns --store

Other commands:
  scdscan browse
  scdscan diff --fail-new
  scdscan export --format sarif
  scdscan terms`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags if provided
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}

		return nil
	},
}

// SetVersion records the build version injected from main.
func SetVersion(v string) {
	buildVersion = v
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(HandleError(err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/scdscan.yaml or ./scdscan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scdscan %s\n", buildVersion)
		fmt.Println("SQL Server DDL keyword scanner")
	},
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	switch err.(type) {
	case *ValidationError:
		return ExitInvalidInput
	case *GateFailedError:
		return ExitGateFail
	default:
		return ExitRuntimeError
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GateFailedError means the diff gate found new matches with --fail-new set.
type GateFailedError struct {
	NewMatches int
}

func (e *GateFailedError) Error() string {
	return fmt.Sprintf("%d new match(es) since baseline", e.NewMatches)
}

// getStoragePath resolves the storage path, expanding ~ and converting to absolute.
func getStoragePath(storageDir string) (string, error) {
	if len(storageDir) >= 2 && storageDir[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		storageDir = filepath.Join(home, storageDir[2:])
	}

	absPath, err := filepath.Abs(storageDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return absPath, nil
}

// logVerbose prints a message if verbose mode is enabled
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", args...)
	}
}

// logDebug prints a message if debug mode is enabled
func logDebug(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// logError prints an error message
func logError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", args...)
}
