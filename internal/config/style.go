package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/style-remixer/internal/rewriting"
	"github.com/jonathan/style-remixer/internal/schemas"
	"github.com/jonathan/style-remixer/internal/types"
	"gopkg.in/yaml.v3"
)

// StyleSchemaPath is the style file schema, relative to the repository root.
var StyleSchemaPath = filepath.Join("schemas", "style.schema.json")

// StyleFile is the on-disk form of a style configuration.
// A section that is absent falls back to its default as a whole.
type StyleFile struct {
	Mix          *types.StyleMix     `json:"mix,omitempty" yaml:"mix,omitempty"`
	Skin         *types.LanguageSkin `json:"skin,omitempty" yaml:"skin,omitempty"`
	Task         *types.TaskMeta     `json:"task,omitempty" yaml:"task,omitempty"`
	CustomPrompt string              `json:"customPrompt,omitempty" yaml:"customPrompt,omitempty"`
	Facts        []string            `json:"facts,omitempty" yaml:"facts,omitempty"`
}

// StyleFileError reports a style file that could not be read, parsed or validated.
type StyleFileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *StyleFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("style file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("style file %s: %s", e.Path, e.Message)
}

func (e *StyleFileError) Unwrap() error {
	return e.Cause
}

// LoadStyleFile reads a JSON or YAML style file. When the style schema can be resolved
// from the working directory the file is validated against it first.
func LoadStyleFile(path string) (*StyleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StyleFileError{Path: path, Message: "failed to read", Cause: err}
	}

	schemaPath := schemas.ResolveSchemaPath(StyleSchemaPath)

	var style StyleFile
	if isYAML(path) {
		var document map[string]any
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, &StyleFileError{Path: path, Message: "failed to parse YAML", Cause: err}
		}
		if schemaPath != "" && document != nil {
			if err := schemas.ValidateDocument(schemaPath, document); err != nil {
				return nil, &StyleFileError{Path: path, Message: "does not match style schema", Cause: err}
			}
		}
		if err := yaml.Unmarshal(data, &style); err != nil {
			return nil, &StyleFileError{Path: path, Message: "failed to parse YAML", Cause: err}
		}
		return &style, nil
	}

	if err := json.Unmarshal(data, &style); err != nil {
		return nil, &StyleFileError{Path: path, Message: "failed to parse JSON", Cause: err}
	}
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			return nil, &StyleFileError{Path: path, Message: "does not match style schema", Cause: err}
		}
	}
	return &style, nil
}

// StyleConfig returns the file's configuration with absent sections defaulted.
func (s *StyleFile) StyleConfig() types.StyleConfig {
	cfg := types.DefaultStyleConfig()
	if s == nil {
		return cfg
	}
	if s.Mix != nil {
		cfg.Mix = *s.Mix
	}
	if s.Skin != nil {
		cfg.Skin = *s.Skin
	}
	if s.Task != nil {
		cfg.Task = *s.Task
	}
	cfg.CustomPrompt = s.CustomPrompt
	return cfg
}

// ReadFacts reads a newline-separated fact list, dropping blank lines.
func ReadFacts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read facts file %s: %w", path, err)
	}
	return rewriting.ParseFacts(string(data)), nil
}

// NewStyleFile captures a configuration with every section present.
func NewStyleFile(cfg types.StyleConfig, facts []string) *StyleFile {
	return &StyleFile{
		Mix:          &cfg.Mix,
		Skin:         &cfg.Skin,
		Task:         &cfg.Task,
		CustomPrompt: cfg.CustomPrompt,
		Facts:        facts,
	}
}

// WriteStyleFile writes style as YAML or JSON, chosen by extension.
func WriteStyleFile(path string, style *StyleFile) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(style)
	} else {
		data, err = json.MarshalIndent(style, "", "  ")
	}
	if err != nil {
		return &StyleFileError{Path: path, Message: "failed to encode", Cause: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &StyleFileError{Path: path, Message: "failed to create directory", Cause: err}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &StyleFileError{Path: path, Message: "failed to write", Cause: err}
	}
	return nil
}
