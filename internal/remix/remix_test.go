package remix

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/style-remixer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newsTask = types.TaskMeta{ContentType: types.ContentNews, PrimaryGoal: types.GoalClarity, Audience: 55}

func TestRemix_Empty(t *testing.T) {
	assert.Equal(t, "", Remix("", types.DefaultMix(), types.DefaultSkin(), newsTask))
	assert.Equal(t, "", Remix(" \n\n ", types.DefaultMix(), types.DefaultSkin(), newsTask))
	assert.Nil(t, RemixParagraphs("", types.DefaultMix(), types.DefaultSkin(), newsTask))
}

func TestRemix_StructureHeavyNews(t *testing.T) {
	text := "第一段。\n\n第二段，带有更多细节。"
	mix := types.StyleMix{Structure: 90, Perception: 10, Meaning: 10, Distribution: 10}

	paragraphs := RemixParagraphs(text, mix, types.DefaultSkin(), newsTask)
	require.Len(t, paragraphs, 2)

	opening := paragraphs[0]
	assert.Equal(t, types.RoleOpening, opening.Allocation.Role)
	assert.Equal(t, types.DimensionStructure, opening.Allocation.Primary)
	assert.Contains(t, opening.Text, "首先，第一段。")

	closing := paragraphs[1]
	assert.Equal(t, types.RoleClosing, closing.Allocation.Role)
	assert.Equal(t, types.DimensionStructure, closing.Allocation.Primary)
	assert.Equal(t, types.DimensionMeaning, closing.Allocation.Secondary)

	expected := "在画面上，首先，第一段。" + "\n\n" + "首先，第二段，带有更多细节。这也提示了其中的意义走向。"
	assert.Equal(t, expected, Remix(text, mix, types.DefaultSkin(), newsTask))
}

func TestRemix_ParagraphsJoinedWithBlankLine(t *testing.T) {
	text := "一。\n二。\n三。\n四。"
	result := Remix(text, types.DefaultMix(), types.DefaultSkin(), newsTask)
	assert.Len(t, strings.Split(result, ParagraphSeparator), 4)
}

func TestRemix_Deterministic(t *testing.T) {
	text := "清晨的街道很安静。\n\n人们陆续出门，开始新的一天！\n\n傍晚时分，城市重新热闹起来。"
	first := Remix(text, types.DefaultMix(), types.DefaultSkin(), newsTask)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Remix(text, types.DefaultMix(), types.DefaultSkin(), newsTask)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, first, r)
	}
}

func TestRemix_LowEmotionSkin(t *testing.T) {
	skin := types.LanguageSkin{SentenceLength: 50, Abstraction: 50, Emotion: 10}
	result := Remix("太好了！真的太好了！\n\n我们赢了!", types.DefaultMix(), skin, newsTask)
	assert.NotContains(t, result, "！")
	assert.NotContains(t, result, "!")
}

func TestStructurePlan(t *testing.T) {
	allocations := []types.Allocation{
		{Role: types.RoleOpening, Primary: types.DimensionStructure, Secondary: types.DimensionPerception},
		{Role: types.RoleClosing, Primary: types.DimensionMeaning, Secondary: types.DimensionDistribution},
	}
	expected := "P1: 开场（Opening） -> 结构（Structure） + 感知（Perception）\n" +
		"P2: 结尾（Closing） -> 意义（Meaning） + 传播（Distribution）"
	assert.Equal(t, expected, StructurePlan(allocations))
}

func TestPlan(t *testing.T) {
	req := &types.RemixRequest{
		Text:  "第一段。\n\n第二段。\n\n第三段。",
		Facts: []string{"事实一"},
		Mix:   types.DefaultMix(),
		Skin:  types.DefaultSkin(),
		Task:  newsTask,
	}

	result := Plan(req)
	assert.Equal(t, "- 第一段。\n- 第二段。\n- 第三段。", result.Canonical)
	require.Len(t, result.Allocations, 3)
	assert.Equal(t, types.RoleTurn, result.Allocations[1].Role)
	assert.Len(t, strings.Split(result.StructurePlan, "\n"), 3)
	assert.True(t, strings.HasPrefix(result.Final, Remix(req.Text, req.Mix, req.Skin, req.Task)))
	assert.Contains(t, result.Final, "\n\n语言皮肤（Skin）：")
	assert.True(t, strings.HasSuffix(result.Final, "事实锁定（Fact Lock）：\n- 事实一"))
}

func TestPlan_EmptyTextStillPlansOneRole(t *testing.T) {
	result := Plan(&types.RemixRequest{Mix: types.DefaultMix(), Skin: types.DefaultSkin(), Task: newsTask})
	assert.Equal(t, "", result.Canonical)
	require.Len(t, result.Allocations, 1)
	assert.Equal(t, types.RoleOpening, result.Allocations[0].Role)
}

func TestDiagnose(t *testing.T) {
	t.Run("no sentences yields empty grid", func(t *testing.T) {
		d := Diagnose("。！？", types.DefaultMix(), newsTask)
		assert.Empty(t, d.Allocations)
		assert.Empty(t, d.Warnings)
	})

	t.Run("one allocation per sentence", func(t *testing.T) {
		d := Diagnose("一。二。三。四。五。", types.DefaultMix(), newsTask)
		require.Len(t, d.Allocations, 5)
		assert.Equal(t, types.RoleTurn, d.Allocations[2].Role)
	})

	t.Run("warnings are labelled by sentence", func(t *testing.T) {
		mix := types.StyleMix{Structure: 34, Perception: 33, Meaning: 33}
		d := Diagnose("一。二。", mix, types.TaskMeta{ContentType: types.ContentCommentary})
		require.NotEmpty(t, d.Warnings)
		assert.Equal(t, "S1: "+types.ThirdStyleWarning, d.Warnings[0])
	})
}

type fakeEnhancer struct {
	result *types.Enhancement
	err    error
	calls  int
}

func (f *fakeEnhancer) Enhance(_ context.Context, _ *types.RemixRequest) (*types.Enhancement, error) {
	f.calls++
	return f.result, f.err
}

func TestRun(t *testing.T) {
	req := &types.RemixRequest{
		Text:  "会议在北京召开。\n\n与会者讨论了预算。",
		Facts: []string{"北京", "3月5日"},
		Mix:   types.DefaultMix(),
		Skin:  types.DefaultSkin(),
		Task:  newsTask,
	}
	local := Plan(req)

	t.Run("no enhancer is skipped", func(t *testing.T) {
		outcome := Run(context.Background(), req, nil)
		assert.Equal(t, StatusSkipped, outcome.Status)
		assert.Equal(t, local.Final, outcome.Final)
	})

	t.Run("enhancer success replaces final", func(t *testing.T) {
		enhancer := &fakeEnhancer{result: &types.Enhancement{Final: "  北京的会议讨论了预算。 ", Prompt: "prompt"}}
		outcome := Run(context.Background(), req, enhancer)

		assert.Equal(t, 1, enhancer.calls)
		assert.Equal(t, StatusOK, outcome.Status)
		assert.Equal(t, "北京的会议讨论了预算。\n\n"+"语言皮肤（Skin）：混合（Mixed）句为主，适中（Balanced）细节，更克制（Restrained）情绪。", outcome.Final)
		assert.Equal(t, "prompt", outcome.Prompt)
		assert.Equal(t, []string{"3月5日"}, outcome.MissingFacts)
		assert.Equal(t, local.StructurePlan, outcome.StructurePlan)
	})

	t.Run("enhancer error falls back", func(t *testing.T) {
		outcome := Run(context.Background(), req, &fakeEnhancer{err: errors.New("network down")})
		assert.Equal(t, StatusFallback, outcome.Status)
		assert.Equal(t, "network down", outcome.Reason)
		assert.Equal(t, local.Final, outcome.Final)
	})

	t.Run("nil enhancement falls back", func(t *testing.T) {
		outcome := Run(context.Background(), req, &fakeEnhancer{})
		assert.Equal(t, StatusFallback, outcome.Status)
		assert.Equal(t, "empty enhancement", outcome.Reason)
		assert.Equal(t, local.Final, outcome.Final)
	})

	t.Run("empty enhancement falls back", func(t *testing.T) {
		outcome := Run(context.Background(), req, &fakeEnhancer{result: &types.Enhancement{Final: "  "}})
		assert.Equal(t, StatusFallback, outcome.Status)
		assert.Equal(t, local.Final, outcome.Final)
	})
}

func TestComplete_UsesGivenLocalResult(t *testing.T) {
	req := &types.RemixRequest{Text: "一段文字。", Mix: types.DefaultMix(), Skin: types.DefaultSkin(), Task: newsTask}
	local := &RunResult{Final: "已经算好的结果"}

	outcome := Complete(context.Background(), req, local, nil)
	assert.Equal(t, StatusSkipped, outcome.Status)
	assert.Same(t, local, outcome.RunResult)
}
