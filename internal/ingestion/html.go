package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are the elements whose text becomes one paragraph each.
const blockSelectors = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"

// noiseSelectors are removed before extraction.
const noiseSelectors = "script, style, noscript, nav, footer, header, aside, form"

// ExtractHTMLText turns an HTML document into blank-line separated paragraphs.
// Nested block elements are emitted once, by their innermost block ancestor.
// A document without block elements falls back to the text of its body.
func ExtractHTMLText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelectors).Remove()

	var paragraphs []string
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		if s.Find(blockSelectors).Length() > 0 {
			return
		}
		if text := collapse(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		if text := collapse(doc.Find("body").Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n\n"), nil
}

// collapse joins the whitespace-separated fields of s with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
