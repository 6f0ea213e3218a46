package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/style-remixer/internal/observability"
	"github.com/jonathan/style-remixer/internal/remix"
	"github.com/spf13/cobra"
)

var (
	heatmapText   string
	heatmapInput  string
	heatmapStyle  string
	heatmapPreset string
	heatmapJSON   bool
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show sentence-level style weights and balance warnings",
	Long: `Split the text into sentences, assign roles, and print the allocation of each sentence
across the four style dimensions. Warnings flag a weak third style or a missing dominant one.`,
	RunE: runHeatmap,
}

func init() {
	heatmapCmd.Flags().StringVarP(&heatmapText, "text", "t", "", "Text to diagnose")
	heatmapCmd.Flags().StringVarP(&heatmapInput, "input", "i", "", "Input file (.txt, .md, .html)")
	heatmapCmd.Flags().StringVarP(&heatmapStyle, "style", "s", "", "Style file (JSON or YAML)")
	heatmapCmd.Flags().StringVar(&heatmapPreset, "preset", "", "Saved preset name or ID")
	heatmapCmd.Flags().BoolVar(&heatmapJSON, "json", false, "Print the diagnostics as JSON")
	heatmapCmd.MarkFlagsMutuallyExclusive("text", "input")
	heatmapCmd.MarkFlagsMutuallyExclusive("style", "preset")

	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	docs, err := readDocuments(ctx, heatmapText, optional(heatmapInput), cmd.InOrStdin())
	if err != nil {
		return err
	}
	style, err := loadStyle(ctx, settings, heatmapStyle, heatmapPreset)
	if err != nil {
		return err
	}

	diagnostics := remix.Diagnose(docs[0].Text, style.Config.Mix, style.Config.Task)

	if heatmapJSON {
		data, err := json.MarshalIndent(diagnostics, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal diagnostics: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintHeatmap(diagnostics)
	return nil
}
