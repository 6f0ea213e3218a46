// Package enhance rewrites a remix request with an LLM, using the style sliders,
// skin, task, custom prompt and fact lock as constraints.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/style-remixer/internal/llm"
	"github.com/jonathan/style-remixer/internal/prompts"
	"github.com/jonathan/style-remixer/internal/types"
)

// APICallError represents a failed call to the LLM provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enhancement call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enhancement call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError is returned when the model answers with no text.
type EmptyResponseError struct {
	Model string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("model %s returned an empty enhancement", e.Model)
}

// LLMEnhancer implements remix.Enhancer on top of an llm.Client.
type LLMEnhancer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMEnhancer returns an enhancer that rewrites with the advanced model tier.
func NewLLMEnhancer(client llm.Client) *LLMEnhancer {
	return &LLMEnhancer{client: client, tier: llm.TierAdvanced}
}

// Enhance sends one generation request and returns the trimmed text with the user prompt used.
func (e *LLMEnhancer) Enhance(ctx context.Context, req *types.RemixRequest) (*types.Enhancement, error) {
	userPrompt, err := BuildUserPrompt(req)
	if err != nil {
		return nil, err
	}
	fullPrompt := prompts.MustGet("remix.json", "remix-system") + "\n\n" + userPrompt

	text, err := e.client.GenerateContent(ctx, fullPrompt, e.tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate enhanced text", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &EmptyResponseError{Model: e.client.GetModel(e.tier)}
	}

	return &types.Enhancement{Final: text, Prompt: userPrompt}, nil
}

// sliders holds slider values already formatted without trailing zeros.
type sliders map[string]string

// userPromptData is the data of the remix-user template.
type userPromptData struct {
	RawText      string
	Mix          sliders
	Skin         sliders
	Task         string
	CustomPrompt string
	Facts        []string
}

// BuildUserPrompt renders the user half of the enhancement prompt.
func BuildUserPrompt(req *types.RemixRequest) (string, error) {
	task, err := json.Marshal(req.Task)
	if err != nil {
		return "", fmt.Errorf("failed to encode task: %w", err)
	}

	return prompts.Render("remix.json", "remix-user", userPromptData{
		RawText: req.Text,
		Mix: sliders{
			"Structure":    number(req.Mix.Structure),
			"Perception":   number(req.Mix.Perception),
			"Meaning":      number(req.Mix.Meaning),
			"Distribution": number(req.Mix.Distribution),
		},
		Skin: sliders{
			"SentenceLength": number(req.Skin.SentenceLength),
			"Abstraction":    number(req.Skin.Abstraction),
			"Emotion":        number(req.Skin.Emotion),
		},
		Task:         string(task),
		CustomPrompt: strings.TrimSpace(req.CustomPrompt),
		Facts:        req.Facts,
	})
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
