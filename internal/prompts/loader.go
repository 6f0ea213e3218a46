// Package prompts loads the embedded LLM prompt templates.
//
// Each JSON file maps a key to a text/template body. Templates use {{.Field}}
// placeholders and fail on missing keys, so a renamed field surfaces as an error
// instead of a silently empty prompt section.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// file is one parsed prompt file with lazily compiled templates.
type file struct {
	raw       map[string]string
	mu        sync.Mutex
	templates map[string]*template.Template
}

var (
	filesMu sync.RWMutex
	files   = make(map[string]*file)
)

// Get returns the raw text of a prompt. filename is relative to the package (e.g. "remix.json").
func Get(filename, key string) (string, error) {
	f, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := f.raw[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the program cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Render executes a prompt template with data, usually a struct or map.
func Render(filename, key string, data any) (string, error) {
	f, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl, err := f.template(filename, key)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return buf.String(), nil
}

// List returns the prompt keys of a file in sorted order.
func List(filename string) ([]string, error) {
	f, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.raw))
	for key := range f.raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

// ClearCache drops every parsed file and template.
func ClearCache() {
	filesMu.Lock()
	files = make(map[string]*file)
	filesMu.Unlock()
}

func load(filename string) (*file, error) {
	filesMu.RLock()
	f, ok := files[filename]
	filesMu.RUnlock()
	if ok {
		return f, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	filesMu.Lock()
	defer filesMu.Unlock()
	if existing, ok := files[filename]; ok {
		return existing, nil
	}
	f = &file{raw: raw, templates: make(map[string]*template.Template)}
	files[filename] = f
	return f, nil
}

func (f *file) template(filename, key string) (*template.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if tmpl, ok := f.templates[key]; ok {
		return tmpl, nil
	}
	body, ok := f.raw[key]
	if !ok {
		return nil, fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	tmpl, err := template.New(key).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template %s/%s: %w", filename, key, err)
	}
	f.templates[key] = tmpl
	return tmpl, nil
}
