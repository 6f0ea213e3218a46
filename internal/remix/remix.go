// Package remix drives segmentation, role assignment, allocation and rewriting over a whole text.
//
// Remix is the deterministic engine: pure, synchronous and safe to call concurrently.
// Run layers the optional enhancement collaborator on top of it and always keeps the
// deterministic result as the fallback.
package remix

import (
	"strings"

	"github.com/jonathan/style-remixer/internal/allocation"
	"github.com/jonathan/style-remixer/internal/rewriting"
	"github.com/jonathan/style-remixer/internal/segment"
	"github.com/jonathan/style-remixer/internal/types"
)

// ParagraphSeparator joins rewritten paragraphs.
const ParagraphSeparator = "\n\n"

// Paragraph is one rewritten paragraph with the allocation that shaped it.
type Paragraph struct {
	Index      int              `json:"index"`
	Original   string           `json:"original"`
	Allocation types.Allocation `json:"allocation"`
	Text       string           `json:"text"`
}

// Remix rewrites text paragraph by paragraph and joins the results with a blank line.
// Empty text yields an empty string.
func Remix(text string, mix types.StyleMix, skin types.LanguageSkin, task types.TaskMeta) string {
	paragraphs := RemixParagraphs(text, mix, skin, task)
	if len(paragraphs) == 0 {
		return ""
	}
	return Join(paragraphs)
}

// RemixParagraphs is Remix without the final join.
func RemixParagraphs(text string, mix types.StyleMix, skin types.LanguageSkin, task types.TaskMeta) []Paragraph {
	paragraphs := segment.SplitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	roles := allocation.AssignRoles(len(paragraphs))
	allocations := allocation.ComputeAllocations(mix, task.ContentType, roles)

	out := make([]Paragraph, 0, len(paragraphs))
	for i, p := range paragraphs {
		// Roles are generated one per paragraph, so the modulo never wraps today.
		// It keeps indexing safe for role schemes that yield fewer allocations.
		a := allocations[i%len(allocations)]
		out = append(out, Paragraph{
			Index:      i,
			Original:   p,
			Allocation: a,
			Text:       rewriting.ApplyStyles(p, a, skin),
		})
	}
	return out
}

// Join concatenates rewritten paragraphs with ParagraphSeparator.
func Join(paragraphs []Paragraph) string {
	texts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		texts[i] = p.Text
	}
	return strings.Join(texts, ParagraphSeparator)
}
