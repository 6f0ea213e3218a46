// Package ingestion reads remix input from files and readers and normalizes it into paragraphs.
package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\x{3000}]+`)
	excessBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace while keeping blank-line paragraph breaks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses runs of spaces, tabs and ideographic spaces.
// Bullet markers are kept so list items stay one paragraph line each.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if isBulletLine(trimmed) {
		marker, rest, _ := strings.Cut(trimmed, " ")
		return marker + " " + innerSpace.ReplaceAllString(strings.TrimSpace(rest), " ")
	}
	return innerSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}

// removeExcessiveBlankLines keeps at most one blank line between paragraphs.
func removeExcessiveBlankLines(content string) string {
	return excessBlank.ReplaceAllString(content, "\n\n")
}

// IsHTML reports whether path has an HTML extension.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	default:
		return false
	}
}

// IngestFromFile reads a text or HTML file and returns its cleaned text with metadata.
// HTML is chosen by extension; everything else is read as plain text.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	if IsHTML(path) {
		text, err = ExtractHTMLText(text)
		if err != nil {
			return "", nil, err
		}
	}

	cleanedText := CleanText(text)
	return cleanedText, NewMetadata(cleanedText, path), nil
}

// IngestFromReader reads plain text from r, typically stdin.
func IngestFromReader(r io.Reader, source string) (string, *Metadata, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read input: %w", err)
	}
	cleanedText := CleanText(string(content))
	return cleanedText, NewMetadata(cleanedText, source), nil
}

// WriteOutput writes text to path, creating parent directories.
// When metadata is non-nil it is written next to the text as <path>.meta.json.
func WriteOutput(path string, text string, metadata *Metadata) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if metadata == nil {
		return nil
	}
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(path+".meta.json", metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
