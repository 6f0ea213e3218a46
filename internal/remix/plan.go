package remix

import (
	"fmt"
	"strings"

	"github.com/jonathan/style-remixer/internal/allocation"
	"github.com/jonathan/style-remixer/internal/rewriting"
	"github.com/jonathan/style-remixer/internal/segment"
	"github.com/jonathan/style-remixer/internal/types"
)

// RunResult is the local, deterministic result of a run.
type RunResult struct {
	Canonical     string             `json:"canonical"`
	StructurePlan string             `json:"structurePlan"`
	Final         string             `json:"final"`
	Allocations   []types.Allocation `json:"allocations"`
}

// Plan computes the local run result: the canonical paragraph list, the structure plan,
// the remixed final text annotated with the skin hint and fact lock, and the plan allocations.
func Plan(req *types.RemixRequest) *RunResult {
	paragraphs := segment.SplitParagraphs(req.Text)
	allocations := allocation.DiagnosticProfile.ComputeForCount(req.Mix, req.Task.ContentType, max(len(paragraphs), 1))

	canonical := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		canonical[i] = "- " + p
	}

	final := Remix(req.Text, req.Mix, req.Skin, req.Task)

	return &RunResult{
		Canonical:     strings.Join(canonical, "\n"),
		StructurePlan: StructurePlan(allocations),
		Final:         final + ParagraphSeparator + rewriting.SkinHint(req.Skin) + rewriting.FactLockBlock(req.Facts),
		Allocations:   allocations,
	}
}

// StructurePlan renders one "P<n>: role -> primary + secondary" line per allocation.
func StructurePlan(allocations []types.Allocation) string {
	lines := make([]string, len(allocations))
	for i, a := range allocations {
		lines[i] = fmt.Sprintf("P%d: %s -> %s + %s", i+1, a.Role.Label(), a.Primary.Label(), a.Secondary.Label())
	}
	return strings.Join(lines, "\n")
}
