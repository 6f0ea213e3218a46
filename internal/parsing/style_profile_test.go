package parsing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/style-remixer/internal/llm"
	"github.com/jonathan/style-remixer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient is a mock implementation of llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	prompts          []string
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", errors.New("not implemented")
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	return nil
}

func respond(body string) func(context.Context, string, llm.ModelTier) (string, error) {
	return func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
		return body, nil
	}
}

func TestParseStyleProfile_Sanitizes(t *testing.T) {
	client := &MockLLMClient{GenerateJSONFunc: respond("```json\n" + `{
		"mix": {"structure": 88.6, "perception": -5, "meaning": 140},
		"skin": {"sentenceLength": 20.4, "abstraction": 49.5},
		"task": {"contentType": "commentary", "audience": 70},
		"signals": ["一", "二", " ", "三", "四", "五", "六", "七", "八", "九"]
	}` + "\n```")}

	profile, err := ParseStyleProfile(context.Background(), client, "冷静、理性的评论文章")
	require.NoError(t, err)

	assert.Equal(t, types.StyleMix{Structure: 89, Perception: 0, Meaning: 100, Distribution: 34}, profile.Mix)
	assert.Equal(t, types.LanguageSkin{SentenceLength: 20, Abstraction: 50, Emotion: 32}, profile.Skin)
	assert.Equal(t, types.TaskMeta{ContentType: types.ContentCommentary, PrimaryGoal: types.GoalClarity, Audience: 70}, profile.Task)
	assert.Equal(t, []string{"一", "二", "三", "四", "五", "六", "七", "八"}, profile.Signals)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "冷静、理性的评论文章")
	assert.Contains(t, client.prompts[0], `"signals"`)
}

func TestParseStyleProfile_EmptyObjectUsesDefaults(t *testing.T) {
	profile, err := ParseStyleProfile(context.Background(), &MockLLMClient{}, "随便")
	require.NoError(t, err)

	assert.Equal(t, types.DefaultMix(), profile.Mix)
	assert.Equal(t, types.DefaultSkin(), profile.Skin)
	assert.Equal(t, types.DefaultTask(), profile.Task)
	assert.Empty(t, profile.Signals)
}

func TestParseStyleProfile_Failures(t *testing.T) {
	tests := []struct {
		name       string
		client     llm.Client
		wantSignal string
		wantErr    any
	}{
		{
			name:       "no client",
			client:     nil,
			wantSignal: MissingKeySignal,
			wantErr:    &APICallError{},
		},
		{
			name: "api failure",
			client: &MockLLMClient{GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
				return "", errors.New("quota exceeded")
			}},
			wantSignal: FallbackSignal,
			wantErr:    &APICallError{},
		},
		{
			name:       "invalid json",
			client:     &MockLLMClient{GenerateJSONFunc: respond("not json at all")},
			wantSignal: FallbackSignal,
			wantErr:    &ParseError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := ParseStyleProfile(context.Background(), tt.client, "prompt")
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)

			require.NotNil(t, profile)
			assert.Equal(t, types.DefaultMix(), profile.Mix)
			assert.Equal(t, []string{tt.wantSignal}, profile.Signals)
		})
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("boom")
	err := &APICallError{Message: "failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "style profile request failed: failed: boom", err.Error())
	assert.Equal(t, "style profile request failed: API key is required", (&APICallError{Message: "API key is required"}).Error())

	parseErr := &ParseError{Message: "not a JSON object", Response: "好的", Cause: cause}
	assert.ErrorIs(t, parseErr, cause)
	assert.Equal(t, `style profile response unreadable: not a JSON object (response "好的"): boom`, parseErr.Error())
}

func TestParseJSONResponse_QuotesShortenedResponse(t *testing.T) {
	answer := strings.Repeat("风", maxQuotedResponse+10)
	_, err := parseJSONResponse(answer)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, strings.Repeat("风", maxQuotedResponse)+"...", parseErr.Response)
}
