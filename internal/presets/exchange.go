package presets

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/schemas"
	"github.com/jonathan/style-remixer/internal/types"
)

// exportSchema is the minimum shape an imported preset must have.
const exportSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "mix", "skin"],
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string", "minLength": 1},
		"prompt": {"type": "string"},
		"customPrompt": {"type": "string"},
		"mix": {"type": "object"},
		"skin": {"type": "object"},
		"task": {"type": "object"},
		"createdAt": {"type": "string"}
	}
}`

var exportValidator = schemas.MustCompile(exportSchema)

// exported mirrors types.Preset with a free-form ID, since exports from other tools
// may carry non-UUID identifiers such as timestamps.
type exported struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Prompt       string             `json:"prompt"`
	CustomPrompt string             `json:"customPrompt"`
	Mix          types.StyleMix     `json:"mix"`
	Skin         types.LanguageSkin `json:"skin"`
	Task         *types.TaskMeta    `json:"task"`
	CreatedAt    string             `json:"createdAt"`
}

// Import parses an exported preset. Payloads without a name, mix or skin are rejected.
// A missing task defaults; a non-UUID ID or unparsable timestamp is replaced.
func Import(data []byte) (*types.Preset, error) {
	if err := exportValidator.ValidateBytes(data); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}

	var raw exported
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}

	p := &types.Preset{
		Name:         raw.Name,
		Prompt:       raw.Prompt,
		CustomPrompt: raw.CustomPrompt,
		Mix:          raw.Mix,
		Skin:         raw.Skin,
		Task:         types.DefaultTask(),
	}
	if raw.Task != nil {
		p.Task = *raw.Task
	}
	if id, err := uuid.Parse(raw.ID); err == nil {
		p.ID = id
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw.CreatedAt); err == nil {
		p.CreatedAt = ts.UTC()
	}
	return p, nil
}

// Export renders a preset as indented JSON.
func Export(p *types.Preset) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export preset: %w", err)
	}
	return data, nil
}

// ExportFileName is the suggested file name for an exported preset.
func ExportFileName(p *types.Preset) string {
	if p.Name == "" {
		return "style.json"
	}
	return p.Name + ".json"
}
