// Package segment splits raw text into paragraphs and sentences.
package segment

import (
	"regexp"
	"strings"
)

var (
	// blankLine matches a paragraph break: a newline, optional whitespace, and another newline.
	blankLine = regexp.MustCompile(`\n\s*\n`)
	// sentence matches a run of non-terminal characters plus an optional terminal mark.
	sentence = regexp.MustCompile(`[^。！？!?]+[。！？!?]?`)
)

// Terminals are the sentence-terminal punctuation marks.
const Terminals = "。！？!?"

// SplitParagraphs splits text on blank lines, or on single newlines when the text has no blank line.
// Pieces are trimmed and empty pieces dropped. Empty input yields an empty slice.
func SplitParagraphs(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{}
	}

	var pieces []string
	if blankLine.MatchString(trimmed) {
		pieces = blankLine.Split(trimmed, -1)
	} else {
		pieces = strings.Split(trimmed, "\n")
	}

	return compact(pieces)
}

// SplitSentences returns the trimmed, non-empty sentences of text.
// It returns an empty slice when nothing matches; callers decide what "no sentences" means.
func SplitSentences(text string) []string {
	matches := sentence.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return compact(matches)
}

// SentencesOrWhole splits text into sentences, falling back to the whole text as one sentence.
func SentencesOrWhole(text string) []string {
	if !sentence.MatchString(text) {
		return []string{text}
	}
	return SplitSentences(text)
}

func compact(pieces []string) []string {
	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if p := strings.TrimSpace(piece); p != "" {
			out = append(out, p)
		}
	}
	return out
}
