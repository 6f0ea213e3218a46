package rewriting

import (
	"strings"
)

// MissingFacts returns the locked facts that do not appear verbatim in text.
// Matching is case-insensitive; blank and duplicate facts are ignored.
// Returns nil when every fact is present.
func MissingFacts(text string, facts []string) []string {
	if len(facts) == 0 {
		return nil
	}

	normalizedText := strings.ToLower(text)

	var missing []string
	seen := make(map[string]bool)

	for _, fact := range facts {
		normalizedFact := strings.ToLower(strings.TrimSpace(fact))
		if normalizedFact == "" || seen[normalizedFact] {
			continue
		}
		seen[normalizedFact] = true

		if !strings.Contains(normalizedText, normalizedFact) {
			missing = append(missing, strings.TrimSpace(fact))
		}
	}

	if len(missing) == 0 {
		return nil
	}
	return missing
}

// ParseFacts splits a newline-separated fact list into trimmed, non-empty facts.
func ParseFacts(text string) []string {
	lines := strings.Split(text, "\n")
	facts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			facts = append(facts, line)
		}
	}
	return facts
}

// FactLockBlock renders the fact lock appended to local final texts.
// It is empty when there are no facts.
func FactLockBlock(facts []string) string {
	if len(facts) == 0 {
		return ""
	}
	return "\n\n事实锁定（Fact Lock）：\n- " + strings.Join(facts, "\n- ")
}
