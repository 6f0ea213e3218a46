package remix

import (
	"fmt"

	"github.com/jonathan/style-remixer/internal/allocation"
	"github.com/jonathan/style-remixer/internal/segment"
	"github.com/jonathan/style-remixer/internal/types"
)

// Diagnostics is the sentence-level allocation grid used for the heatmap.
// It never feeds the rewrite.
type Diagnostics struct {
	Allocations []types.Allocation `json:"allocations"`
	Warnings    []string           `json:"warnings"`
}

// Diagnose computes sentence-level allocations over the whole text.
// Text without sentences yields empty diagnostics rather than a single-sentence grid.
func Diagnose(text string, mix types.StyleMix, task types.TaskMeta) *Diagnostics {
	sentences := segment.SplitSentences(text)
	if len(sentences) == 0 {
		return &Diagnostics{Allocations: []types.Allocation{}, Warnings: []string{}}
	}

	allocations := allocation.DiagnosticProfile.ComputeForCount(mix, task.ContentType, len(sentences))
	warnings := make([]string, 0)
	for i, a := range allocations {
		if a.Warning != "" {
			warnings = append(warnings, fmt.Sprintf("S%d: %s", i+1, a.Warning))
		}
	}

	return &Diagnostics{Allocations: allocations, Warnings: warnings}
}
