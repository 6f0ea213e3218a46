package llm

import (
	"github.com/jonathan/style-remixer/internal/prompts"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "StyleProfile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
	Rules       []string      // Extra instructions listed under IMPORTANT
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// TypeHint is the field's type as shown to the model; an empty Type means string.
func (f SchemaField) TypeHint() string {
	if f.Type == "" {
		return "string"
	}
	return f.Type
}

// BuildExtractionPrompt renders the structured-extraction prompt for schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) (string, error) {
	return prompts.Render("extraction.json", "structured-extraction", struct {
		ExtractionSchema
		Input string
	}{schema, inputText})
}

// StyleProfileSchema returns the extraction schema for turning a free-text style
// description into slider values, a task and short style signals.
func StyleProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "StyleProfile",
		Description: prompts.MustGet("style.json", "style-profile-system"),
		Fields: []SchemaField{
			{
				Name:        "mix",
				Type:        `{"structure": 0, "perception": 0, "meaning": 0, "distribution": 0}`,
				Description: "Style dimension weights, 0-100 each",
				Required:    true,
			},
			{
				Name:        "skin",
				Type:        `{"sentenceLength": 0, "abstraction": 0, "emotion": 0}`,
				Description: "Language skin sliders: short to long sentences, concrete to abstract, restrained to expressive",
				Required:    true,
			},
			{
				Name:        "task",
				Type:        `{"contentType": "news|novel|nonfiction|commentary|audio", "primaryGoal": "clarity|moving|thinking|viral|long_value", "audience": 0}`,
				Description: "Content type, primary goal and audience breadth (0 niche, 100 broad)",
				Required:    true,
			},
			{
				Name:        "signals",
				Type:        `["string"]`,
				Description: "Up to 8 short phrases from the description that drove the values",
				Required:    true,
			},
		},
		Rules: []string{
			"Use 50 for any slider the description does not mention.",
			"Signals are short Chinese phrases naming the traits you detected, keeping English terms in parentheses.",
		},
	}
}
