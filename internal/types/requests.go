package types

import (
	"github.com/go-playground/validator/v10"
)

// RemixRequest is the input to a remix run, shared by the CLI, the HTTP API and the enhancer.
type RemixRequest struct {
	Text         string       `json:"rawText" validate:"required"`
	Facts        []string     `json:"facts,omitempty"`
	Mix          StyleMix     `json:"mix"`
	Skin         LanguageSkin `json:"skin"`
	Task         TaskMeta     `json:"task"`
	CustomPrompt string       `json:"customPrompt,omitempty"`
}

// AllocationsRequest asks for the allocation grid of a role sequence.
// Roles wins over Count when both are set.
type AllocationsRequest struct {
	Mix         StyleMix    `json:"mix"`
	ContentType ContentType `json:"contentType" validate:"omitempty,oneof=news novel nonfiction commentary audio"`
	Count       int         `json:"count" validate:"gte=0,lte=1000"`
	Roles       []Role      `json:"roles,omitempty" validate:"omitempty,dive,oneof=opening development turn closing"`
}

// DiagnosticsRequest asks for the sentence-level allocation grid of a text.
// Unlike RemixRequest, empty text is allowed and yields empty diagnostics.
type DiagnosticsRequest struct {
	Text string   `json:"rawText"`
	Mix  StyleMix `json:"mix"`
	Task TaskMeta `json:"task"`
}

// StyleParseRequest carries a free-text style description.
type StyleParseRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// SavePresetRequest creates a preset.
type SavePresetRequest struct {
	Name         string       `json:"name" validate:"required,min=1,max=120"`
	Prompt       string       `json:"prompt,omitempty"`
	CustomPrompt string       `json:"customPrompt,omitempty"`
	Mix          StyleMix     `json:"mix"`
	Skin         LanguageSkin `json:"skin"`
	Task         TaskMeta     `json:"task"`
}

// Validate validates the RemixRequest using the validator.
func (r *RemixRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AllocationsRequest using the validator.
func (r *AllocationsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DiagnosticsRequest using the validator.
func (r *DiagnosticsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StyleParseRequest using the validator.
func (r *StyleParseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SavePresetRequest using the validator.
func (r *SavePresetRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StyleConfig using the validator.
func (c *StyleConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
