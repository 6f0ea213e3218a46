package rewriting

import (
	"strings"

	"github.com/jonathan/style-remixer/internal/types"
)

const (
	concreteMarker = "具体来说"
	abstractMarker = "从更抽象的层面看"
	// maxPunctuationSwaps bounds the sentence-length rules regardless of text length.
	maxPunctuationSwaps = 2
)

// ApplyLanguageSkin runs the abstraction, sentence-length and emotion rules in that order.
// Each rule sees the output of the previous one; the mid band of a slider does nothing.
func ApplyLanguageSkin(text string, skin types.LanguageSkin) string {
	if skin.Abstraction < types.SkinLowThreshold && !strings.HasPrefix(text, concreteMarker) {
		text = concreteMarker + "，" + text
	}
	if skin.Abstraction > types.SkinHighThreshold && !strings.HasPrefix(text, abstractMarker) {
		text = abstractMarker + "，" + text
	}

	if skin.SentenceLength < types.SkinLowThreshold {
		text = splitClauses(text)
	}
	if skin.SentenceLength > types.SkinHighThreshold {
		text = mergeSentences(text)
	}

	if skin.Emotion < types.SkinLowThreshold {
		text = strings.NewReplacer("！", "。", "!", ".").Replace(text)
	}
	if skin.Emotion > types.SkinHighThreshold {
		text = emphasizeEnding(text)
	}

	return text
}

// splitClauses turns the first two full-width commas into full stops.
// ASCII commas are left alone so figures like 1,250 survive.
func splitClauses(text string) string {
	return swapFirst(text, map[rune]rune{'，': '。'}, false)
}

// mergeSentences turns the first two full stops into commas, never touching the final character.
func mergeSentences(text string) string {
	return swapFirst(text, map[rune]rune{'。': '，'}, true)
}

func swapFirst(text string, swaps map[rune]rune, keepLast bool) string {
	runes := []rune(text)
	limit := len(runes)
	if keepLast {
		limit--
	}
	swapped := 0
	for i := 0; i < limit && swapped < maxPunctuationSwaps; i++ {
		if to, ok := swaps[runes[i]]; ok {
			runes[i] = to
			swapped++
		}
	}
	return string(runes)
}

// emphasizeEnding replaces a single trailing full stop with an exclamation mark.
func emphasizeEnding(text string) string {
	switch {
	case strings.HasSuffix(text, "。"):
		return strings.TrimSuffix(text, "。") + "！"
	case strings.HasSuffix(text, "."):
		return strings.TrimSuffix(text, ".") + "!"
	default:
		return text
	}
}

// SkinHint describes the skin as a one-line annotation appended to final texts.
func SkinHint(skin types.LanguageSkin) string {
	sentence := map[types.Band]string{
		types.BandLow:  "短（Short）",
		types.BandMid:  "混合（Mixed）",
		types.BandHigh: "长（Long）",
	}[types.BandOf(skin.SentenceLength)]
	abstraction := map[types.Band]string{
		types.BandLow:  "更具体（Concrete）",
		types.BandMid:  "适中（Balanced）",
		types.BandHigh: "更抽象（Abstract）",
	}[types.BandOf(skin.Abstraction)]
	emotion := map[types.Band]string{
		types.BandLow:  "更克制（Restrained）",
		types.BandMid:  "中性（Neutral）",
		types.BandHigh: "更外放（Expressive）",
	}[types.BandOf(skin.Emotion)]

	return "语言皮肤（Skin）：" + sentence + "句为主，" + abstraction + "细节，" + emotion + "情绪。"
}
