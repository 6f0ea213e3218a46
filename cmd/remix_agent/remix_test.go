package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/style-remixer/internal/remix"
	"github.com/jonathan/style-remixer/internal/rewriting"
	"github.com/jonathan/style-remixer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnhancer struct {
	final string
	err   error
}

func (s *stubEnhancer) Enhance(_ context.Context, _ *types.RemixRequest) (*types.Enhancement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &types.Enhancement{Final: s.final, Prompt: "prompt"}, nil
}

func TestRemixDocuments_KeepsOrder(t *testing.T) {
	docs := []document{
		{Source: "a", Text: "第一篇的开头。\n\n第一篇的结尾。"},
		{Source: "b", Text: "第二篇只有一段。"},
		{Source: "c", Text: "第三篇。\n\n中间。\n\n结尾。"},
	}
	cfg := types.DefaultStyleConfig()

	outcomes, err := remixDocuments(context.Background(), docs, cfg, []string{"第一篇"}, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	for i, doc := range docs {
		expected := remix.Plan(&types.RemixRequest{Text: doc.Text, Facts: []string{"第一篇"}, Mix: cfg.Mix, Skin: cfg.Skin, Task: cfg.Task})
		assert.Equal(t, expected.Final, outcomes[i].Final, doc.Source)
		assert.Equal(t, remix.StatusSkipped, outcomes[i].Status)
	}
}

func TestRemixDocuments_EnhancerFallback(t *testing.T) {
	docs := []document{{Source: "a", Text: "会议召开。"}}
	cfg := types.DefaultStyleConfig()

	outcomes, err := remixDocuments(context.Background(), docs, cfg, nil, &stubEnhancer{err: errors.New("quota exceeded")})
	require.NoError(t, err)
	assert.Equal(t, remix.StatusFallback, outcomes[0].Status)
	assert.Equal(t, "quota exceeded", outcomes[0].Reason)
}

func TestRemixDocuments_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := remixDocuments(ctx, []document{{Source: "a", Text: "一段。"}}, types.DefaultStyleConfig(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderOutcome(t *testing.T) {
	cfg := types.DefaultStyleConfig()
	source := "第一段。\n\n第二段。"
	req := &types.RemixRequest{Text: source, Facts: []string{"事实"}, Mix: cfg.Mix, Skin: cfg.Skin, Task: cfg.Task}

	local := remix.Run(context.Background(), req, nil)
	assert.Equal(t, local.Final, renderOutcome(local, source, cfg, false))
	assert.Equal(t, remix.Remix(source, cfg.Mix, cfg.Skin, cfg.Task), renderOutcome(local, source, cfg, true))

	enhanced := remix.Run(context.Background(), req, &stubEnhancer{final: "改写后的事实文本。"})
	require.Equal(t, remix.StatusOK, enhanced.Status)
	assert.Equal(t, "改写后的事实文本。", renderOutcome(enhanced, source, cfg, true))
	assert.Equal(t, "改写后的事实文本。\n\n"+rewriting.SkinHint(cfg.Skin), renderOutcome(enhanced, source, cfg, false))
}

func TestWriteDocument(t *testing.T) {
	var single bytes.Buffer
	writeDocument(&single, document{Source: "a.txt"}, "正文", false, 0)
	assert.Equal(t, "正文\n", single.String())

	var several bytes.Buffer
	writeDocument(&several, document{Source: "a.txt"}, "一", true, 0)
	writeDocument(&several, document{Source: "b.txt"}, "二", true, 1)
	assert.Equal(t, "==> a.txt <==\n一\n\n==> b.txt <==\n二\n", several.String())
}

func TestRemixCommand_TextFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "remix", "--text", "第一段。\n\n第二段，带有更多细节。")
	output, err := cmd.Output()

	require.NoError(t, err)
	assert.Contains(t, string(output), "语言皮肤（Skin）：")
}

func TestRemixCommand_Stdin(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "remix", "--no-summary")
	cmd.Stdin = strings.NewReader("来自标准输入的一段话。")
	output, err := cmd.Output()

	require.NoError(t, err)
	assert.NotContains(t, string(output), "语言皮肤（Skin）：")
	assert.Contains(t, string(output), "来自标准输入的一段话")
}

func TestRemixCommand_MultipleInputsToDirectory(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	first := writeTestFile(t, tmpDir, "one.txt", "第一篇。")
	second := writeTestFile(t, tmpDir, "two.txt", "第二篇。")
	outDir := filepath.Join(tmpDir, "out")

	cmd := exec.Command(binaryPath, "remix", "--input", first, "--input", second, "--out", outDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	for _, name := range []string{"one.remix.txt", "two.remix.txt", "one.remix.txt.meta.json"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRemixCommand_TextAndInputExclusive(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "remix", "--text", "一段。", "--input", "a.txt")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "if any flags in the group [text input] are set none of the others can be")
}

func TestRemixCommand_EnhanceWithoutKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "remix", "--text", "一段。", "--enhance")
	cmd.Env = append(os.Environ(), "GEMINI_API_KEY=")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "API key is required")
}
