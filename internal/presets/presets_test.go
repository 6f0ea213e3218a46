package presets

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores returns every Store implementation under test, each with a fixed clock.
func stores(t *testing.T, now func() time.Time) map[string]Store {
	t.Helper()

	memory := NewMemoryStore()
	memory.clock = now

	sqlite, err := Open(filepath.Join(t.TempDir(), "presets.db"))
	require.NoError(t, err)
	sqlite.clock = now
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{"memory": memory, "sqlite": sqlite}
}

func fixedClock() func() time.Time {
	ts := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestStore_CurrentConfig(t *testing.T) {
	for name, store := range stores(t, fixedClock()) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			owner := uuid.New()

			cfg, err := store.LoadCurrent(ctx, owner)
			require.NoError(t, err)
			assert.Equal(t, types.DefaultStyleConfig(), *cfg)

			saved := types.StyleConfig{
				Mix:          types.StyleMix{Structure: 10, Perception: 20, Meaning: 30, Distribution: 40},
				Skin:         types.LanguageSkin{SentenceLength: 1, Abstraction: 2, Emotion: 3},
				Task:         types.TaskMeta{ContentType: types.ContentAudio, PrimaryGoal: types.GoalViral, Audience: 90},
				CustomPrompt: "口语化",
			}
			require.NoError(t, store.SaveCurrent(ctx, owner, saved))
			require.NoError(t, store.SaveCurrent(ctx, owner, saved))

			cfg, err = store.LoadCurrent(ctx, owner)
			require.NoError(t, err)
			assert.Equal(t, saved, *cfg)

			other, err := store.LoadCurrent(ctx, uuid.Nil)
			require.NoError(t, err)
			assert.Equal(t, types.DefaultStyleConfig(), *other)
		})
	}
}

func TestStore_PresetLifecycle(t *testing.T) {
	for name, store := range stores(t, fixedClock()) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			owner := uuid.New()

			first, err := store.SavePreset(ctx, owner, &types.Preset{Name: "新闻", Mix: types.DefaultMix(), Skin: types.DefaultSkin(), Task: types.DefaultTask()})
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, first.ID)
			assert.Equal(t, fixedClock()(), first.CreatedAt)

			second, err := store.SavePreset(ctx, owner, &types.Preset{Name: "小说", Prompt: "细腻", Mix: types.DefaultMix(), Skin: types.DefaultSkin(), Task: types.DefaultTask()})
			require.NoError(t, err)

			got, err := store.GetPreset(ctx, owner, second.ID)
			require.NoError(t, err)
			assert.Equal(t, *second, *got)

			list, err := store.ListPresets(ctx, owner)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "小说", list[0].Name, "same timestamp lists the later save first")
			assert.Equal(t, "新闻", list[1].Name)

			_, err = store.GetPreset(ctx, uuid.New(), second.ID)
			var notFound *NotFoundError
			assert.ErrorAs(t, err, &notFound, "presets are scoped by owner")

			require.NoError(t, store.DeletePreset(ctx, owner, first.ID))
			assert.ErrorAs(t, store.DeletePreset(ctx, owner, first.ID), &notFound)

			list, err = store.ListPresets(ctx, owner)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestStore_ImportAcrossOwners(t *testing.T) {
	for name, store := range stores(t, fixedClock()) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			alice, bob := uuid.New(), uuid.New()

			original, err := store.SavePreset(ctx, alice, NewPreset("播客", "", types.DefaultStyleConfig(), fixedClock()()))
			require.NoError(t, err)
			data, err := Export(original)
			require.NoError(t, err)

			imported, err := Import(data)
			require.NoError(t, err)
			require.Equal(t, original.ID, imported.ID)

			saved, err := store.SavePreset(ctx, bob, imported)
			require.NoError(t, err)
			assert.NotEqual(t, original.ID, saved.ID, "an ID held by another owner is replaced")

			got, err := store.GetPreset(ctx, bob, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, "播客", got.Name)

			list, err := store.ListPresets(ctx, bob)
			require.NoError(t, err)
			assert.Len(t, list, 1)

			kept, err := store.GetPreset(ctx, alice, original.ID)
			require.NoError(t, err)
			assert.Equal(t, *original, *kept)

			// Saving again under the owner's own ID updates in place.
			saved.Name = "播客二"
			again, err := store.SavePreset(ctx, bob, saved)
			require.NoError(t, err)
			assert.Equal(t, saved.ID, again.ID)
			list, err = store.ListPresets(ctx, bob)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "播客二", list[0].Name)
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	for name, store := range stores(t, fixedClock()) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			for i, n := range []string{"旧", "最新", "中间"} {
				offset := map[int]time.Duration{0: 0, 1: 2 * time.Hour, 2: time.Hour}[i]
				_, err := store.SavePreset(ctx, uuid.Nil, &types.Preset{Name: n, CreatedAt: base.Add(offset)})
				require.NoError(t, err)
			}

			list, err := store.ListPresets(ctx, uuid.Nil)
			require.NoError(t, err)
			names := []string{list[0].Name, list[1].Name, list[2].Name}
			assert.Equal(t, []string{"最新", "中间", "旧"}, names)
		})
	}
}

func TestFindAndUse(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cfg := types.StyleConfig{Mix: types.StyleMix{Structure: 99}, Skin: types.DefaultSkin(), Task: types.DefaultTask(), CustomPrompt: "简短"}

	saved, err := store.SavePreset(ctx, uuid.Nil, NewPreset("评论", "", cfg, time.Now()))
	require.NoError(t, err)

	byID, err := Find(ctx, store, uuid.Nil, saved.ID.String())
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byID.ID)

	byName, err := Find(ctx, store, uuid.Nil, " 评论 ")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byName.ID)

	_, err = Find(ctx, store, uuid.Nil, "不存在")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "preset not found: 不存在", err.Error())

	_, err = Use(ctx, store, uuid.Nil, "评论")
	require.NoError(t, err)
	current, err := store.LoadCurrent(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, *current)
}

func TestNewPreset_FallbackName(t *testing.T) {
	now := time.Date(2025, 6, 9, 23, 0, 0, 0, time.UTC)
	p := NewPreset("  ", "prompt", types.DefaultStyleConfig(), now)

	assert.Equal(t, "Style 2025-06-09", p.Name)
	assert.Equal(t, "prompt", p.Prompt)
	assert.Equal(t, now, p.CreatedAt)
	assert.NotEqual(t, uuid.Nil, p.ID)
}
