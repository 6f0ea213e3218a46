//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemixRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request RemixRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: RemixRequest{
				Text: "第一段。",
				Mix:  DefaultMix(),
				Skin: DefaultSkin(),
				Task: DefaultTask(),
			},
		},
		{
			name:    "missing text",
			request: RemixRequest{Mix: DefaultMix(), Skin: DefaultSkin(), Task: DefaultTask()},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "mix above range",
			request: RemixRequest{
				Text: "x",
				Mix:  StyleMix{Structure: 120},
				Skin: DefaultSkin(),
			},
			wantErr: true,
			errMsg:  "lte",
		},
		{
			name: "negative skin",
			request: RemixRequest{
				Text: "x",
				Mix:  DefaultMix(),
				Skin: LanguageSkin{Emotion: -1},
			},
			wantErr: true,
			errMsg:  "gte",
		},
		{
			name: "unknown content type",
			request: RemixRequest{
				Text: "x",
				Mix:  DefaultMix(),
				Skin: DefaultSkin(),
				Task: TaskMeta{ContentType: "poem"},
			},
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name: "empty content type is allowed",
			request: RemixRequest{
				Text: "x",
				Mix:  DefaultMix(),
				Skin: DefaultSkin(),
				Task: TaskMeta{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllocationsRequest_Validation(t *testing.T) {
	valid := AllocationsRequest{Mix: DefaultMix(), ContentType: ContentAudio, Roles: []Role{RoleOpening, RoleTurn}}
	assert.NoError(t, valid.Validate())

	badRole := AllocationsRequest{Mix: DefaultMix(), Roles: []Role{"climax"}}
	assert.Error(t, badRole.Validate())

	negative := AllocationsRequest{Mix: DefaultMix(), Count: -1}
	assert.Error(t, negative.Validate())
}

func TestSavePresetRequest_Validation(t *testing.T) {
	req := SavePresetRequest{Name: "", Mix: DefaultMix(), Skin: DefaultSkin(), Task: DefaultTask()}
	assert.Error(t, req.Validate())

	req.Name = "新闻快讯"
	assert.NoError(t, req.Validate())
}

func TestDiagnosticsRequest_Validation(t *testing.T) {
	empty := DiagnosticsRequest{Mix: DefaultMix(), Task: DefaultTask()}
	assert.NoError(t, empty.Validate())

	bad := DiagnosticsRequest{Mix: StyleMix{Meaning: 120}}
	assert.Error(t, bad.Validate())
}

func TestRemixRequest_JSONFieldNames(t *testing.T) {
	var req RemixRequest
	payload := `{"rawText":"正文","facts":["A"],"mix":{"structure":1,"perception":2,"meaning":3,"distribution":4},` +
		`"skin":{"sentenceLength":10,"abstraction":20,"emotion":30},"task":{"contentType":"novel","primaryGoal":"moving","audience":40},` +
		`"customPrompt":"更短"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.Equal(t, "正文", req.Text)
	assert.Equal(t, []string{"A"}, req.Facts)
	assert.Equal(t, StyleMix{Structure: 1, Perception: 2, Meaning: 3, Distribution: 4}, req.Mix)
	assert.Equal(t, LanguageSkin{SentenceLength: 10, Abstraction: 20, Emotion: 30}, req.Skin)
	assert.Equal(t, ContentNovel, req.Task.ContentType)
	assert.Equal(t, GoalMoving, req.Task.PrimaryGoal)
	assert.Equal(t, "更短", req.CustomPrompt)
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, BandLow, BandOf(39.9))
	assert.Equal(t, BandMid, BandOf(40))
	assert.Equal(t, BandMid, BandOf(70))
	assert.Equal(t, BandHigh, BandOf(70.1))
}

func TestStyleMix_Get(t *testing.T) {
	mix := StyleMix{Structure: 1, Perception: 2, Meaning: 3, Distribution: 4}
	for i, d := range Dimensions {
		assert.Equal(t, float64(i+1), mix.Get(d))
	}
	assert.Equal(t, 0.0, mix.Get("unknown"))
	assert.Equal(t, 10.0, mix.Total())
}
