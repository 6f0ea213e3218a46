package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/style-remixer/internal/schemas"
	"github.com/jonathan/style-remixer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useRepoRoot runs the test from the repository root so the style schema resolves.
func useRepoRoot(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Chdir(filepath.Join(wd, "..", ".."))
}

func TestLoadStyleFile_JSON(t *testing.T) {
	path := writeFile(t, "style.json", `{
		"mix": {"structure": 90, "perception": 10, "meaning": 10, "distribution": 10},
		"customPrompt": "保持克制",
		"facts": ["2024年", "上海"]
	}`)
	useRepoRoot(t)

	style, err := LoadStyleFile(path)
	require.NoError(t, err)

	cfg := style.StyleConfig()
	assert.Equal(t, types.StyleMix{Structure: 90, Perception: 10, Meaning: 10, Distribution: 10}, cfg.Mix)
	assert.Equal(t, types.DefaultSkin(), cfg.Skin)
	assert.Equal(t, types.DefaultTask(), cfg.Task)
	assert.Equal(t, "保持克制", cfg.CustomPrompt)
	assert.Equal(t, []string{"2024年", "上海"}, style.Facts)
}

func TestLoadStyleFile_YAML(t *testing.T) {
	path := writeFile(t, "style.yaml", `
skin:
  sentenceLength: 20
  abstraction: 80
  emotion: 75
task:
  contentType: novel
  primaryGoal: moving
  audience: 40
`)
	useRepoRoot(t)

	style, err := LoadStyleFile(path)
	require.NoError(t, err)

	cfg := style.StyleConfig()
	assert.Equal(t, types.DefaultMix(), cfg.Mix)
	assert.Equal(t, types.LanguageSkin{SentenceLength: 20, Abstraction: 80, Emotion: 75}, cfg.Skin)
	assert.Equal(t, types.ContentNovel, cfg.Task.ContentType)
}

func TestLoadStyleFile_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "json slider out of range", file: "style.json", content: `{"mix": {"structure": 150}}`},
		{name: "yaml unknown content type", file: "style.yml", content: "task:\n  contentType: poetry\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			useRepoRoot(t)

			_, err := LoadStyleFile(path)
			var styleErr *StyleFileError
			require.ErrorAs(t, err, &styleErr)
			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestLoadStyleFile_Unreadable(t *testing.T) {
	_, err := LoadStyleFile(filepath.Join(t.TempDir(), "missing.json"))
	var styleErr *StyleFileError
	require.ErrorAs(t, err, &styleErr)
	assert.Contains(t, err.Error(), "failed to read")

	_, err = LoadStyleFile(writeFile(t, "style.json", "{not json"))
	require.ErrorAs(t, err, &styleErr)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestStyleConfig_NilFile(t *testing.T) {
	var style *StyleFile
	assert.Equal(t, types.DefaultStyleConfig(), style.StyleConfig())
}

func TestReadFacts(t *testing.T) {
	path := writeFile(t, "facts.txt", "北京\n\n  3月5日  \n")

	facts, err := ReadFacts(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"北京", "3月5日"}, facts)

	_, err = ReadFacts("/nope/facts.txt")
	assert.Error(t, err)
}

func TestWriteStyleFile_LoadsBack(t *testing.T) {
	cfg := types.StyleConfig{
		Mix:          types.StyleMix{Structure: 20, Perception: 80, Meaning: 40, Distribution: 60},
		Skin:         types.LanguageSkin{SentenceLength: 30, Abstraction: 70, Emotion: 50},
		Task:         types.TaskMeta{ContentType: types.ContentNovel, PrimaryGoal: types.GoalMoving, Audience: 40},
		CustomPrompt: "多写画面",
	}
	dir := t.TempDir()
	useRepoRoot(t)

	for _, name := range []string{"style.yaml", "nested/style.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteStyleFile(path, NewStyleFile(cfg, []string{"主角叫林舟"})))

			style, err := LoadStyleFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, style.StyleConfig())
			assert.Equal(t, []string{"主角叫林舟"}, style.Facts)
		})
	}
}
