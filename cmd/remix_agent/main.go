// Package main provides the remix_agent CLI: deterministic style remixing with optional
// LLM enhancement, preset management and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/style-remixer/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "remix_agent",
	Short: "Style Remixer CLI and HTTP API server",
	Long: `Style Remixer rewrites text by mixing four style dimensions (structure, perception,
meaning, distribution) over paragraph roles, then applies a language skin. The local
remix is deterministic; an optional Gemini pass enhances it under a fact lock.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		built, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print plan and heatmap details and debug logs")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
}

// loadSettings merges the config file (if any) over environment defaults.
func loadSettings() (config.Config, error) {
	env := config.FromEnv(os.Getenv)
	if configPath == "" {
		return env, nil
	}

	file, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := file.Validate(); err != nil {
		return config.Config{}, err
	}
	return file.MergeWithDefaults(env), nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
