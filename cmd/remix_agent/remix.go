package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/style-remixer/internal/config"
	"github.com/jonathan/style-remixer/internal/enhance"
	"github.com/jonathan/style-remixer/internal/ingestion"
	"github.com/jonathan/style-remixer/internal/observability"
	"github.com/jonathan/style-remixer/internal/remix"
	"github.com/jonathan/style-remixer/internal/rewriting"
	"github.com/jonathan/style-remixer/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	remixText      string
	remixInputs    []string
	remixStyle     string
	remixFacts     string
	remixOutput    string
	remixEnhance   bool
	remixAPIKey    string
	remixPreset    string
	remixNoSummary bool

	remixTemperature float32
)

var remixCmd = &cobra.Command{
	Use:   "remix",
	Short: "Remix text with a style mix and language skin",
	Long: `Remix text paragraph by paragraph. Text comes from --text, one or more --input files
(.txt or .html), or stdin. The style comes from --style, --preset, or the defaults.
With --enhance the local result is sent to Gemini once; on failure the local result stands.`,
	RunE: runRemix,
}

func init() {
	remixCmd.Flags().StringVarP(&remixText, "text", "t", "", "Text to remix")
	remixCmd.Flags().StringArrayVarP(&remixInputs, "input", "i", nil, "Input file, repeatable (.txt, .md, .html)")
	remixCmd.Flags().StringVarP(&remixStyle, "style", "s", "", "Style file (JSON or YAML)")
	remixCmd.Flags().StringVar(&remixFacts, "facts", "", "Newline-separated facts to lock")
	remixCmd.Flags().StringVarP(&remixOutput, "out", "o", "", "Output file, or directory with several inputs")
	remixCmd.Flags().BoolVar(&remixEnhance, "enhance", false, "Enhance the local remix with Gemini")
	remixCmd.Flags().StringVar(&remixAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	remixCmd.Flags().StringVar(&remixPreset, "preset", "", "Saved preset name or ID")
	remixCmd.Flags().Float32Var(&remixTemperature, "temperature", 0, "Sampling temperature for --enhance (default 0.7)")
	remixCmd.Flags().BoolVar(&remixNoSummary, "no-summary", false, "Omit the skin hint and fact lock from the output")
	remixCmd.MarkFlagsMutuallyExclusive("text", "input")
	remixCmd.MarkFlagsMutuallyExclusive("style", "preset")

	rootCmd.AddCommand(remixCmd)
}

func runRemix(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	docs, err := readDocuments(ctx, remixText, remixInputs, cmd.InOrStdin())
	if err != nil {
		return err
	}

	style, err := loadStyle(ctx, settings, remixStyle, remixPreset)
	if err != nil {
		return err
	}

	factsPath := remixFacts
	if factsPath == "" {
		factsPath = settings.Facts
	}
	facts := style.Facts
	if factsPath != "" {
		fileFacts, err := config.ReadFacts(factsPath)
		if err != nil {
			return err
		}
		facts = append(facts, fileFacts...)
	}

	var enhancer remix.Enhancer
	if remixEnhance || settings.Enhance {
		client, err := newLLMClient(ctx, settings, remixAPIKey, remixTemperature)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		enhancer = enhance.NewLLMEnhancer(client)
	}

	logger.Debug("remix starting",
		zap.Int("inputs", len(docs)),
		zap.String("style", style.Source),
		zap.Int("facts", len(facts)),
		zap.Bool("enhance", enhancer != nil))

	outcomes, err := remixDocuments(ctx, docs, style.Config, facts, enhancer)
	if err != nil {
		return err
	}

	multiple := len(docs) > 1
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	for i, doc := range docs {
		outcome := outcomes[i]
		if outcome.Status == remix.StatusFallback {
			logger.Warn("enhancement failed, using local remix",
				zap.String("source", doc.Source),
				zap.String("reason", outcome.Reason))
		}
		if len(outcome.MissingFacts) > 0 {
			logger.Warn("enhanced text dropped locked facts",
				zap.String("source", doc.Source),
				zap.Strings("missing", outcome.MissingFacts))
		}

		if verbose {
			printer.PrintMetadata(doc.Metadata)
			printer.PrintPlan(outcome.RunResult)
			printer.PrintOutcome(outcome)
		}

		text := renderOutcome(outcome, doc.Text, style.Config, remixNoSummary)
		if remixOutput != "" {
			path := outputPath(remixOutput, doc, multiple)
			if err := ingestion.WriteOutput(path, text, doc.Metadata); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
			continue
		}
		writeDocument(cmd.OutOrStdout(), doc, text, multiple, i)
	}
	return nil
}

// remixDocuments runs every document concurrently; outcomes keep the input order.
func remixDocuments(ctx context.Context, docs []document, cfg types.StyleConfig, facts []string, enhancer remix.Enhancer) ([]*remix.Outcome, error) {
	outcomes := make([]*remix.Outcome, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelInputs)
	for i, doc := range docs {
		g.Go(func() error {
			req := &types.RemixRequest{
				Text:         doc.Text,
				Facts:        facts,
				Mix:          cfg.Mix,
				Skin:         cfg.Skin,
				Task:         cfg.Task,
				CustomPrompt: cfg.CustomPrompt,
			}
			outcomes[i] = remix.Run(gctx, req, enhancer)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// renderOutcome returns the final text, or only the remixed paragraphs when bare is set.
func renderOutcome(outcome *remix.Outcome, source string, cfg types.StyleConfig, bare bool) string {
	if !bare {
		return outcome.Final
	}
	if outcome.Status == remix.StatusOK {
		return strings.TrimSuffix(outcome.Final, remix.ParagraphSeparator+rewriting.SkinHint(cfg.Skin))
	}
	return remix.Remix(source, cfg.Mix, cfg.Skin, cfg.Task)
}

func writeDocument(w io.Writer, doc document, text string, multiple bool, index int) {
	if multiple {
		if index > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "==> %s <==\n", doc.Source)
	}
	fmt.Fprintln(w, text)
}
