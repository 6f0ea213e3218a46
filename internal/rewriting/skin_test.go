package rewriting

import (
	"strings"
	"testing"

	"github.com/jonathan/style-remixer/internal/types"
	"github.com/stretchr/testify/assert"
)

func skin(sentenceLength, abstraction, emotion float64) types.LanguageSkin {
	return types.LanguageSkin{SentenceLength: sentenceLength, Abstraction: abstraction, Emotion: emotion}
}

func TestApplyLanguageSkin(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		skin     types.LanguageSkin
		expected string
	}{
		{"mid bands do nothing", "甲，乙！丙。", skin(50, 50, 50), "甲，乙！丙。"},
		{"band edges are mid", "甲，乙！丙。", skin(40, 70, 40), "甲，乙！丙。"},
		{"low abstraction prefixes concrete marker", "文本。", skin(50, 20, 50), "具体来说，文本。"},
		{"concrete marker not repeated", "具体来说，文本。", skin(50, 20, 50), "具体来说，文本。"},
		{"high abstraction prefixes abstract marker", "文本。", skin(50, 80, 50), "从更抽象的层面看，文本。"},
		{"abstract marker not repeated", "从更抽象的层面看，文本。", skin(50, 80, 50), "从更抽象的层面看，文本。"},
		{"short sentences split two commas", "一，二，三，四。", skin(20, 50, 50), "一。二。三，四。"},
		{"short sentences keep ascii thousands separators", "营收达到1,250万元，同比增长3.5%。", skin(20, 50, 50), "营收达到1,250万元。同比增长3.5%。"},
		{"long sentences merge two stops", "一。二。三。四。", skin(80, 50, 50), "一，二，三。四。"},
		{"long sentences keep the final stop", "一。二。", skin(80, 50, 50), "一，二。"},
		{"long sentences single sentence", "一。", skin(80, 50, 50), "一。"},
		{"low emotion removes exclamations", "好！真好！Wow!", skin(50, 50, 20), "好。真好。Wow."},
		{"high emotion only touches trailing stop", "一。二。", skin(50, 50, 80), "一。二！"},
		{"high emotion ascii trailing stop", "Done.", skin(50, 50, 80), "Done!"},
		{"high emotion without trailing stop", "一。二", skin(50, 50, 80), "一。二"},
		{"abstraction runs before sentence length", "甲，乙。", skin(20, 20, 50), "具体来说。甲。乙。"},
		{"sentence length runs before emotion", "甲。乙。", skin(80, 50, 80), "甲，乙！"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyLanguageSkin(tt.text, tt.skin))
		})
	}
}

func TestApplyLanguageSkin_LowEmotionStripsEveryExclamation(t *testing.T) {
	text := strings.Repeat("太棒了！", 10) + "真的!"
	result := ApplyLanguageSkin(text, skin(50, 50, 10))
	assert.NotContains(t, result, "！")
	assert.NotContains(t, result, "!")
}

func TestSkinHint(t *testing.T) {
	tests := []struct {
		name     string
		skin     types.LanguageSkin
		expected string
	}{
		{
			"defaults",
			types.DefaultSkin(),
			"语言皮肤（Skin）：混合（Mixed）句为主，适中（Balanced）细节，更克制（Restrained）情绪。",
		},
		{
			"all high",
			skin(90, 90, 90),
			"语言皮肤（Skin）：长（Long）句为主，更抽象（Abstract）细节，更外放（Expressive）情绪。",
		},
		{
			"all low",
			skin(0, 0, 0),
			"语言皮肤（Skin）：短（Short）句为主，更具体（Concrete）细节，更克制（Restrained）情绪。",
		},
		{
			"all mid",
			skin(50, 50, 50),
			"语言皮肤（Skin）：混合（Mixed）句为主，适中（Balanced）细节，中性（Neutral）情绪。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SkinHint(tt.skin))
		})
	}
}
