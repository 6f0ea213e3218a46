package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jonathan/style-remixer/internal/segment"
)

// Metadata describes an ingested input text.
type Metadata struct {
	Source     string `json:"source,omitempty"`
	Timestamp  string `json:"timestamp"` // RFC3339
	Hash       string `json:"hash"`      // SHA256 hex digest
	Paragraphs int    `json:"paragraphs"`
	Sentences  int    `json:"sentences"`
	Characters int    `json:"characters"`
}

// NewMetadata computes counts and hash for content, stamped with the current time.
func NewMetadata(content string, source string) *Metadata {
	paragraphs := segment.SplitParagraphs(content)
	sentences := 0
	for _, p := range paragraphs {
		sentences += len(segment.SplitSentences(p))
	}

	return &Metadata{
		Source:     source,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Paragraphs: len(paragraphs),
		Sentences:  sentences,
		Characters: utf8.RuneCountInString(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to indented JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
