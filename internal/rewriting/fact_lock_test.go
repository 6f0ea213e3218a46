package rewriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingFacts(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		facts    []string
		expected []string
	}{
		{"no facts", "任何文本", nil, nil},
		{"all present", "会议于3月5日在北京召开。", []string{"3月5日", "北京"}, nil},
		{"one missing", "会议在北京召开。", []string{"3月5日", "北京"}, []string{"3月5日"}},
		{"case insensitive", "The launch used GO 1.24.", []string{"go 1.24"}, nil},
		{"blank facts ignored", "文本", []string{"  ", ""}, nil},
		{"duplicates reported once", "文本", []string{"北京", "北京 "}, []string{"北京"}},
		{"empty text", "", []string{"北京"}, []string{"北京"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MissingFacts(tt.text, tt.facts))
		})
	}
}

func TestParseFacts(t *testing.T) {
	assert.Equal(t, []string{"事实一", "事实二"}, ParseFacts("  事实一 \n\n事实二\n"))
	assert.Empty(t, ParseFacts(""))
}

func TestFactLockBlock(t *testing.T) {
	assert.Equal(t, "", FactLockBlock(nil))
	assert.Equal(t, "\n\n事实锁定（Fact Lock）：\n- 甲\n- 乙", FactLockBlock([]string{"甲", "乙"}))
}
