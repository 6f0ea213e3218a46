package types

import (
	"time"

	"github.com/google/uuid"
)

// StyleConfig is the "current configuration" a caller persists between sessions.
type StyleConfig struct {
	Mix          StyleMix     `json:"mix" yaml:"mix"`
	Skin         LanguageSkin `json:"skin" yaml:"skin"`
	Task         TaskMeta     `json:"task" yaml:"task"`
	CustomPrompt string       `json:"customPrompt,omitempty" yaml:"customPrompt,omitempty"`
}

// DefaultStyleConfig returns the configuration used when nothing has been saved.
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		Mix:  DefaultMix(),
		Skin: DefaultSkin(),
		Task: DefaultTask(),
	}
}

// StyleProfile is a style configuration derived from a free-text prompt.
type StyleProfile struct {
	Mix     StyleMix     `json:"mix"`
	Skin    LanguageSkin `json:"skin"`
	Task    TaskMeta     `json:"task"`
	Signals []string     `json:"signals"`
}

// Preset is a named, saved style configuration.
type Preset struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Prompt       string       `json:"prompt,omitempty"`
	CustomPrompt string       `json:"customPrompt,omitempty"`
	Mix          StyleMix     `json:"mix"`
	Skin         LanguageSkin `json:"skin"`
	Task         TaskMeta     `json:"task"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Config returns the preset's style configuration.
func (p *Preset) Config() StyleConfig {
	return StyleConfig{
		Mix:          p.Mix,
		Skin:         p.Skin,
		Task:         p.Task,
		CustomPrompt: p.CustomPrompt,
	}
}

// Enhancement is the output of the external enhancement collaborator.
type Enhancement struct {
	Final  string `json:"final"`
	Prompt string `json:"prompt,omitempty"`
}
