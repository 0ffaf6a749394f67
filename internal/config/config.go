package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for scdscan.
type Config struct {
	// DefaultPaths are scanned when no positional paths are given.
	DefaultPaths []string `mapstructure:"default_paths"`

	// Format is the default report format (csv, json, markdown, text).
	Format string `mapstructure:"format"`

	// StorageDir holds stored scan runs for browse/diff/export.
	StorageDir string `mapstructure:"storage_dir"`

	// TermsFile points at a custom term set YAML. Empty means "search for
	// .scdscan-terms.yaml upward from the working directory".
	TermsFile string `mapstructure:"terms_file"`

	// Verbose output
	Verbose bool `mapstructure:"verbose"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// ValidFormats enumerates the accepted report formats.
var ValidFormats = map[string]bool{
	"csv":      true,
	"json":     true,
	"markdown": true,
	"text":     true,
}

// DefaultConfig returns configuration with default values. The default scan
// paths are the production dump directories the tool was written for.
func DefaultConfig() *Config {
	return &Config{
		DefaultPaths: []string{"DTT-ANA-PRD", "DTT-TRX-PRD", "Livesql3"},
		Format:       "csv",
		StorageDir:   ".scdscan",
		TermsFile:    "",
		Verbose:      false,
		Debug:        false,
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (./scdscan.yaml, ~/scdscan.yaml, or XDG config dir)
// 3. Environment variables (SCDSCAN_*)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path.
// If path is empty, it searches for config in standard locations.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("default_paths", defaults.DefaultPaths)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("storage_dir", defaults.StorageDir)
	v.SetDefault("terms_file", defaults.TermsFile)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("debug", defaults.Debug)

	v.SetConfigName("scdscan")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "scdscan"))
		}
	}

	v.SetEnvPrefix("SCDSCAN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is OK, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !ValidFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be csv, json, markdown, or text)", c.Format)
	}

	if len(c.DefaultPaths) == 0 {
		return fmt.Errorf("default_paths cannot be empty")
	}

	if c.StorageDir == "" {
		return fmt.Errorf("storage_dir cannot be empty")
	}

	return nil
}

// GetStoragePath returns the absolute path to the storage directory.
func (c *Config) GetStoragePath() (string, error) {
	if strings.HasPrefix(c.StorageDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, c.StorageDir[2:]), nil
	}

	absPath, err := filepath.Abs(c.StorageDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return absPath, nil
}

// GenerateSampleConfig generates a sample configuration file content.
func GenerateSampleConfig() string {
	return `# scdscan Configuration
# Save this file as ./scdscan.yaml or ~/scdscan.yaml

# Directories scanned when no paths are given on the command line
default_paths:
  - DTT-ANA-PRD
  - DTT-TRX-PRD
  - Livesql3

# Default report format: csv, json, markdown, or text
format: csv

# Directory to store scan runs for browse/diff/export
storage_dir: .scdscan

# Custom term set definitions (default: search for .scdscan-terms.yaml)
# terms_file: ./my-terms.yaml

# Enable verbose output
verbose: false

# Enable debug mode
debug: false
`
}
