// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPresetsDB is the SQLite preset file used when neither DATABASE_URL nor PRESETS_DB is set.
const DefaultPresetsDB = "style-remixer.db"

// DefaultPort is the HTTP port used by serve.
const DefaultPort = 8080

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Style  string `json:"style,omitempty" yaml:"style,omitempty"`   // Path to a style file
	Facts  string `json:"facts,omitempty" yaml:"facts,omitempty"`   // Path to a newline-separated fact list
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"` // Saved preset name or ID
	Output string `json:"output,omitempty" yaml:"output,omitempty"` // Output file path

	// Enhancement
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Gemini API key
	Model   string `json:"model,omitempty" yaml:"model,omitempty"`     // Advanced-tier model override
	Enhance bool   `json:"enhance,omitempty" yaml:"enhance,omitempty"` // Run the LLM enhancement step
	Verbose bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print plan and heatmap details

	// Storage and server
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	PresetsDB   string `json:"presets_db,omitempty" yaml:"presets_db,omitempty"`     // SQLite preset file
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`                 // HTTP port for serve
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
		return &cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.PresetsDB != "" {
		return fmt.Errorf("config error: 'database_url' and 'presets_db' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	if c.Style != "" {
		if _, err := os.Stat(c.Style); os.IsNotExist(err) {
			return fmt.Errorf("config error: style file not found: %s", c.Style)
		}
	}

	if c.Facts != "" {
		if _, err := os.Stat(c.Facts); os.IsNotExist(err) {
			return fmt.Errorf("config error: facts file not found: %s", c.Facts)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.Facts == "" {
		result.Facts = defaults.Facts
	}
	if result.Preset == "" {
		result.Preset = defaults.Preset
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.PresetsDB == "" && result.DatabaseURL == "" {
		result.PresetsDB = defaults.PresetsDB
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv returns the environment-provided configuration used as the lowest-priority defaults.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		APIKey:      getenv("GEMINI_API_KEY"),
		Model:       getenv("GEMINI_MODEL"),
		DatabaseURL: getenv("DATABASE_URL"),
		PresetsDB:   getenv("PRESETS_DB"),
		Port:        DefaultPort,
	}
	if cfg.DatabaseURL == "" && cfg.PresetsDB == "" {
		cfg.PresetsDB = DefaultPresetsDB
	}
	return cfg
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
