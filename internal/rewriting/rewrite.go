// Package rewriting applies the deterministic style and skin rules to a paragraph.
//
// Which style rules fire depends on the paragraph's allocation: only its primary and
// secondary dimensions are active. The rules are lexical; they never parse grammar.
package rewriting

import (
	"strings"

	"github.com/jonathan/style-remixer/internal/segment"
	"github.com/jonathan/style-remixer/internal/types"
)

// ApplyStyles rewrites paragraph with the rules of its two active dimensions, then the skin.
// Structure, perception and meaning rules run on sentences; distribution runs on the merged text.
func ApplyStyles(paragraph string, allocation types.Allocation, skin types.LanguageSkin) string {
	sentences := segment.SentencesOrWhole(paragraph)

	if allocation.Active(types.DimensionStructure) {
		sentences = applyStructure(sentences)
	}
	if allocation.Active(types.DimensionPerception) {
		sentences = applyPerception(sentences)
	}
	if allocation.Active(types.DimensionMeaning) {
		sentences = applyMeaning(sentences)
	}

	merged := strings.Join(sentences, "")

	if allocation.Active(types.DimensionDistribution) {
		merged = applyDistribution(merged)
	}

	return ApplyLanguageSkin(merged, skin)
}
