package rewriting

import (
	"regexp"
	"strings"

	"github.com/jonathan/style-remixer/internal/segment"
)

// Discourse connectors prefixed by the structure rule.
const (
	connectorFirst = "首先"
	connectorNext  = "接着"
	connectorFinal = "最后"
)

const (
	perceptionMarker = "在画面上，"
	meaningSentence  = "这也提示了其中的意义走向。"
	summaryMarker    = "一句话："
	// summaryLength is counted in characters, not bytes; it may cut a word in half.
	summaryLength = 24
)

var (
	// existingConnector guards the structure rule against prefixing twice.
	existingConnector = regexp.MustCompile(`^(首先|接着|随后|同时|另外|最后|最终|因此)`)
	// sceneMarker guards the perception rule.
	sceneMarker = regexp.MustCompile(`^在(画面|场景|细节)`)
)

// addConnector prefixes sentence with connector unless it already opens with one.
func addConnector(sentence, connector string) string {
	trimmed := strings.TrimSpace(sentence)
	if existingConnector.MatchString(trimmed) {
		return trimmed
	}
	return connector + "，" + trimmed
}

// applyStructure marks the first sentence, and for three or more sentences the second and last.
func applyStructure(sentences []string) []string {
	out := make([]string, len(sentences))
	last := len(sentences) - 1
	for i, s := range sentences {
		switch {
		case i == 0:
			out[i] = addConnector(s, connectorFirst)
		case i == 1 && len(sentences) > 2:
			out[i] = addConnector(s, connectorNext)
		case i == last && len(sentences) > 2:
			out[i] = addConnector(s, connectorFinal)
		default:
			out[i] = s
		}
	}
	return out
}

// applyPerception opens the first sentence with a scene marker.
func applyPerception(sentences []string) []string {
	if len(sentences) == 0 || sceneMarker.MatchString(sentences[0]) {
		return sentences
	}
	out := make([]string, len(sentences))
	copy(out, sentences)
	out[0] = perceptionMarker + out[0]
	return out
}

// applyMeaning appends the reflective closing sentence.
func applyMeaning(sentences []string) []string {
	out := make([]string, len(sentences), len(sentences)+1)
	copy(out, sentences)
	return append(out, meaningSentence)
}

// applyDistribution appends a one-line pull quote built from the first characters of the text.
func applyDistribution(paragraph string) string {
	cleaned := strings.TrimSpace(stripTerminals(paragraph))
	if cleaned == "" {
		return paragraph
	}
	return paragraph + "\n" + summaryMarker + Summary(cleaned) + "。"
}

// Summary returns the leading summaryLength characters of text.
func Summary(text string) string {
	runes := []rune(text)
	if len(runes) > summaryLength {
		runes = runes[:summaryLength]
	}
	return string(runes)
}

func stripTerminals(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(segment.Terminals, r) {
			return -1
		}
		return r
	}, text)
}
