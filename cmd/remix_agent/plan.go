package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/style-remixer/internal/observability"
	"github.com/jonathan/style-remixer/internal/remix"
	"github.com/jonathan/style-remixer/internal/types"
	"github.com/spf13/cobra"
)

var (
	planText   string
	planInput  string
	planStyle  string
	planPreset string
	planJSON   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the paragraph role and style plan without rewriting",
	Long:  `Print the structure plan: one line per paragraph with its role and its primary and secondary styles.`,
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planText, "text", "t", "", "Text to plan")
	planCmd.Flags().StringVarP(&planInput, "input", "i", "", "Input file (.txt, .md, .html)")
	planCmd.Flags().StringVarP(&planStyle, "style", "s", "", "Style file (JSON or YAML)")
	planCmd.Flags().StringVar(&planPreset, "preset", "", "Saved preset name or ID")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the run result as JSON")
	planCmd.MarkFlagsMutuallyExclusive("text", "input")
	planCmd.MarkFlagsMutuallyExclusive("style", "preset")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	docs, err := readDocuments(ctx, planText, optional(planInput), cmd.InOrStdin())
	if err != nil {
		return err
	}
	style, err := loadStyle(ctx, settings, planStyle, planPreset)
	if err != nil {
		return err
	}

	result := remix.Plan(&types.RemixRequest{
		Text: docs[0].Text,
		Mix:  style.Config.Mix,
		Skin: style.Config.Skin,
		Task: style.Config.Task,
	})

	if planJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if verbose {
		printer.PrintMetadata(docs[0].Metadata)
	}
	printer.PrintPlan(result)
	return nil
}

// optional turns a single optional path flag into the input list readDocuments takes.
func optional(path string) []string {
	if path == "" {
		return nil
	}
	return []string{path}
}
