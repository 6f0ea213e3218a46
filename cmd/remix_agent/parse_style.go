package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/style-remixer/internal/config"
	"github.com/jonathan/style-remixer/internal/observability"
	"github.com/jonathan/style-remixer/internal/parsing"
	"github.com/jonathan/style-remixer/internal/presets"
	"github.com/jonathan/style-remixer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	parseStylePrompt string
	parseStyleAPIKey string
	parseStyleOutput string
	parseStyleSave   string
	parseStyleJSON   bool
)

var parseStyleCmd = &cobra.Command{
	Use:   "parse-style [description]",
	Short: "Turn a free-text style description into sliders",
	Long: `Ask Gemini to map a style description onto the style mix, language skin and task.
When the model call fails the defaults are printed with a fallback signal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseStyle,
}

func init() {
	parseStyleCmd.Flags().StringVarP(&parseStylePrompt, "prompt", "p", "", "Style description")
	parseStyleCmd.Flags().StringVar(&parseStyleAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	parseStyleCmd.Flags().StringVarP(&parseStyleOutput, "out", "o", "", "Write the parsed style to a style file")
	parseStyleCmd.Flags().StringVar(&parseStyleSave, "save", "", "Save the parsed style as a preset with this name")
	parseStyleCmd.Flags().BoolVar(&parseStyleJSON, "json", false, "Print the profile as JSON")

	rootCmd.AddCommand(parseStyleCmd)
}

func runParseStyle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	prompt := parseStylePrompt
	if prompt == "" && len(args) == 1 {
		prompt = args[0]
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("a style description is required (argument or --prompt)")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newLLMClient(ctx, settings, parseStyleAPIKey, 0)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	// On failure profile holds the defaults; they are printed but not saved.
	profile, parseErr := parsing.ParseStyleProfile(ctx, client, prompt)
	if parseErr != nil {
		logger.Warn("style parsing failed, using defaults", zap.Error(parseErr))
	}

	if parseStyleJSON {
		data, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintStyleProfile(profile)
	}

	if parseErr != nil {
		return parseErr
	}

	cfg := types.StyleConfig{Mix: profile.Mix, Skin: profile.Skin, Task: profile.Task}
	if parseStyleOutput != "" {
		if err := config.WriteStyleFile(parseStyleOutput, config.NewStyleFile(cfg, nil)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", parseStyleOutput)
	}

	if parseStyleSave != "" {
		store, closeStore, err := openStore(ctx, settings)
		if err != nil {
			return err
		}
		defer closeStore()

		saved, err := store.SavePreset(ctx, localOwner, presets.NewPreset(parseStyleSave, prompt, cfg, time.Now()))
		if err != nil {
			return fmt.Errorf("failed to save preset: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved preset %q (%s)\n", saved.Name, saved.ID)
	}

	return nil
}
