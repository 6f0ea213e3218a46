// Package parsing turns a free-text style description into a StyleProfile using LLM extraction.
package parsing

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/jonathan/style-remixer/internal/llm"
	"github.com/jonathan/style-remixer/internal/types"
)

// MaxSignals caps the number of signals kept from a model response.
const MaxSignals = 8

// Signals reported alongside default values when parsing could not run.
const (
	MissingKeySignal = "未配置 Gemini Key（Missing API key）"
	FallbackSignal   = "解析失败，已回退默认值（Fallback）"
)

// rawProfile mirrors the model output with pointers so absent values can be defaulted.
type rawProfile struct {
	Mix struct {
		Structure    *float64 `json:"structure"`
		Perception   *float64 `json:"perception"`
		Meaning      *float64 `json:"meaning"`
		Distribution *float64 `json:"distribution"`
	} `json:"mix"`
	Skin struct {
		SentenceLength *float64 `json:"sentenceLength"`
		Abstraction    *float64 `json:"abstraction"`
		Emotion        *float64 `json:"emotion"`
	} `json:"skin"`
	Task struct {
		ContentType *string  `json:"contentType"`
		PrimaryGoal *string  `json:"primaryGoal"`
		Audience    *float64 `json:"audience"`
	} `json:"task"`
	Signals []string `json:"signals"`
}

// ParseStyleProfile asks the model to map prompt onto style sliders and sanitizes the answer.
// On any failure it returns the default profile with a fallback signal together with the error,
// so callers can show a usable configuration either way.
func ParseStyleProfile(ctx context.Context, client llm.Client, prompt string) (*types.StyleProfile, error) {
	if client == nil {
		return FallbackProfile(MissingKeySignal), &APICallError{Message: "API key is required"}
	}

	extraction, err := llm.BuildExtractionPrompt(llm.StyleProfileSchema(), prompt)
	if err != nil {
		return FallbackProfile(FallbackSignal), &APICallError{Message: "failed to build style prompt", Cause: err}
	}

	// TierStandard is enough for slider extraction
	responseText, err := client.GenerateJSON(ctx, extraction, llm.TierStandard)
	if err != nil {
		return FallbackProfile(FallbackSignal), &APICallError{
			Message: "failed to generate style profile",
			Cause:   err,
		}
	}

	profile, err := parseJSONResponse(llm.CleanJSONBlock(responseText))
	if err != nil {
		return FallbackProfile(FallbackSignal), err
	}
	return profile, nil
}

// FallbackProfile returns the default configuration carrying a single signal.
func FallbackProfile(signal string) *types.StyleProfile {
	cfg := types.DefaultStyleConfig()
	return &types.StyleProfile{
		Mix:     cfg.Mix,
		Skin:    cfg.Skin,
		Task:    cfg.Task,
		Signals: []string{signal},
	}
}

func parseJSONResponse(jsonText string) (*types.StyleProfile, error) {
	var raw rawProfile
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, &ParseError{
			Message:  "not a JSON object",
			Response: quoteResponse(jsonText),
			Cause:    err,
		}
	}
	return sanitize(&raw), nil
}

// sanitize rounds and clamps every slider to 0..100 and fills absent values from the defaults.
func sanitize(raw *rawProfile) *types.StyleProfile {
	mix := types.DefaultMix()
	skin := types.DefaultSkin()
	task := types.DefaultTask()

	profile := &types.StyleProfile{
		Mix: types.StyleMix{
			Structure:    slider(raw.Mix.Structure, mix.Structure),
			Perception:   slider(raw.Mix.Perception, mix.Perception),
			Meaning:      slider(raw.Mix.Meaning, mix.Meaning),
			Distribution: slider(raw.Mix.Distribution, mix.Distribution),
		},
		Skin: types.LanguageSkin{
			SentenceLength: slider(raw.Skin.SentenceLength, skin.SentenceLength),
			Abstraction:    slider(raw.Skin.Abstraction, skin.Abstraction),
			Emotion:        slider(raw.Skin.Emotion, skin.Emotion),
		},
		Task: types.TaskMeta{
			ContentType: types.ContentType(text(raw.Task.ContentType, string(task.ContentType))),
			PrimaryGoal: types.PrimaryGoal(text(raw.Task.PrimaryGoal, string(task.PrimaryGoal))),
			Audience:    slider(raw.Task.Audience, task.Audience),
		},
		Signals: make([]string, 0, MaxSignals),
	}

	for _, signal := range raw.Signals {
		if len(profile.Signals) == MaxSignals {
			break
		}
		if signal = strings.TrimSpace(signal); signal != "" {
			profile.Signals = append(profile.Signals, signal)
		}
	}

	return profile
}

func slider(value *float64, fallback float64) float64 {
	if value == nil || math.IsNaN(*value) {
		return fallback
	}
	return min(max(math.Round(*value), 0), 100)
}

func text(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return strings.TrimSpace(*value)
}
