// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/style-remixer/internal/ingestion"
	"github.com/jonathan/style-remixer/internal/remix"
	"github.com/jonathan/style-remixer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for plans, heatmaps and run outcomes.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintPlan outputs the structure plan of a local run.
func (p *Printer) PrintPlan(result *remix.RunResult) {
	if result == nil || len(result.Allocations) == 0 {
		return
	}
	p.printBox("STRUCTURE PLAN", result.StructurePlan)
}

// PrintHeatmap outputs the sentence-level allocation grid.
// Active dimensions are marked with * and scores are shown as percentages.
func (p *Printer) PrintHeatmap(diag *remix.Diagnostics) {
	if diag == nil || len(diag.Allocations) == 0 {
		p.printBox("STYLE HEATMAP", "No sentences found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %-12s", "#", "role"))
	for _, d := range types.Dimensions {
		sb.WriteString(fmt.Sprintf(" %-8s", shortName(d)))
	}
	sb.WriteString("\n")

	for i, a := range diag.Allocations {
		sb.WriteString(fmt.Sprintf("%-4s %-12s", fmt.Sprintf("S%d", i+1), a.Role))
		for _, d := range types.Dimensions {
			mark := " "
			if a.Active(d) {
				mark = "*"
			}
			sb.WriteString(fmt.Sprintf(" %s%5.1f%% ", mark, a.Scores[d]*100))
		}
		sb.WriteString("\n")
	}

	if len(diag.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(diag.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", diag.Warnings[i]))
		}
		if len(diag.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(diag.Warnings)-maxItemsToShow))
		}
	}

	p.printBox("STYLE HEATMAP", strings.TrimSuffix(sb.String(), "\n"))
}

func shortName(d types.Dimension) string {
	if len(d) > 8 {
		return string(d[:8])
	}
	return string(d)
}

// PrintOutcome outputs the enhancement status of a run.
func (p *Printer) PrintOutcome(outcome *remix.Outcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:   %s\n", outcome.Status))
	if outcome.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason:   %s\n", outcome.Reason))
	}
	if len(outcome.MissingFacts) > 0 {
		sb.WriteString("\nMissing facts:\n")
		for _, fact := range outcome.MissingFacts {
			sb.WriteString(fmt.Sprintf("  • %s\n", fact))
		}
	}

	p.printBox("REMIX RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStyleProfile outputs a style profile parsed from a prompt.
func (p *Printer) PrintStyleProfile(profile *types.StyleProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Mix:      structure %.0f, perception %.0f, meaning %.0f, distribution %.0f\n",
		profile.Mix.Structure, profile.Mix.Perception, profile.Mix.Meaning, profile.Mix.Distribution))
	sb.WriteString(fmt.Sprintf("Skin:     sentence %.0f, abstraction %.0f, emotion %.0f\n",
		profile.Skin.SentenceLength, profile.Skin.Abstraction, profile.Skin.Emotion))
	sb.WriteString(fmt.Sprintf("Task:     %s / %s / audience %.0f\n",
		profile.Task.ContentType, profile.Task.PrimaryGoal, profile.Task.Audience))

	if len(profile.Signals) > 0 {
		sb.WriteString("\nSignals:\n")
		for _, s := range profile.Signals {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("STYLE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPresets outputs a preset listing, newest first.
func (p *Printer) PrintPresets(presets []types.Preset) {
	if len(presets) == 0 {
		p.printBox("PRESETS", "No presets saved")
		return
	}

	var sb strings.Builder
	for _, preset := range presets {
		sb.WriteString(fmt.Sprintf("%s  %s\n", preset.CreatedAt.Format("2006-01-02 15:04"), preset.Name))
		sb.WriteString(fmt.Sprintf("  %s\n", preset.ID))
	}

	p.printBox(fmt.Sprintf("PRESETS (%d)", len(presets)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetadata outputs ingestion counts for an input.
func (p *Printer) PrintMetadata(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	if meta.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:     %s\n", meta.Source))
	}
	sb.WriteString(fmt.Sprintf("Paragraphs: %d\n", meta.Paragraphs))
	sb.WriteString(fmt.Sprintf("Sentences:  %d\n", meta.Sentences))
	sb.WriteString(fmt.Sprintf("Characters: %d\n", meta.Characters))
	sb.WriteString(fmt.Sprintf("Hash:       %s", truncate(meta.Hash, 16)))

	p.printBox("INPUT", sb.String())
}
