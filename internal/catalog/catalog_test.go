// ABOUTME: Tests for the seed catalog, directory loading, merging, and the store.
// ABOUTME: Uses temp dirs for overlay files and hot reload.
package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

func TestSeed(t *testing.T) {
	exercises, err := Seed()
	require.NoError(t, err)
	require.Len(t, exercises, 64)

	ids := map[string]bool{}
	for _, ex := range exercises {
		assert.False(t, ids[ex.ID], "duplicate id %s", ex.ID)
		ids[ex.ID] = true
	}

	byID := map[string]models.Exercise{}
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}
	squat := byID["barbell-back-squat"]
	assert.Equal(t, models.PatternSquat, squat.MovementPattern)
	assert.Equal(t, models.EquipmentBarbell, squat.Equipment)
	assert.False(t, squat.PelvicSafe)
	assert.True(t, squat.OsteoSafe)
	assert.True(t, squat.Priority)
	assert.Equal(t, models.AffinityFollicular, squat.PhaseAffinity)

	sitUp := byID["sit-up"]
	assert.False(t, sitUp.PelvicSafe)
	assert.False(t, sitUp.OsteoSafe)

	assert.Equal(t, models.DifficultyAdvanced, byID["pull-up"].Difficulty)
}

func TestParseDefaultsAndValidation(t *testing.T) {
	exercises, err := Parse([]byte(`
- id: x
  name: Thing
  movement_pattern: squat
`))
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, models.PatternSquat, exercises[0].MovementPattern)
	assert.Equal(t, models.EquipmentNone, exercises[0].Equipment)
	assert.Equal(t, models.AffinityAny, exercises[0].PhaseAffinity)
	assert.Equal(t, models.DifficultyIntermediate, exercises[0].Difficulty)

	_, err = Parse([]byte(`- {id: y, name: Y, movement_pattern: WIGGLE}`))
	assert.ErrorContains(t, err, "invalid movement pattern")

	_, err = Parse([]byte(`- {name: Nameless, movement_pattern: PUSH}`))
	assert.ErrorContains(t, err, "missing id")
}

func TestParseJSON(t *testing.T) {
	exercises, err := Parse([]byte(`[{"id":"j","name":"Json Press","movement_pattern":"PUSH","equipment":"DUMBBELLS","pelvic_safe":true}]`))
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.True(t, exercises[0].PelvicSafe)
	assert.Equal(t, models.EquipmentDumbbells, exercises[0].Equipment)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "- {id: a, name: A, movement_pattern: PULL}\n")
	writeFile(t, filepath.Join(dir, "nested", "b.json"), `[{"id":"b","name":"B","movement_pattern":"CORE"}]`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	exercises, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "a", exercises[0].ID)
	assert.Equal(t, "b", exercises[1].ID)
}

func TestLoadDirReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "- {id: z, name: Z, movement_pattern: NOPE}\n")

	_, err := LoadDir(dir)
	assert.ErrorContains(t, err, "bad.yaml")
}

func TestMerge(t *testing.T) {
	base := []models.Exercise{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	overlay := []models.Exercise{{ID: "b", Name: "B2"}, {ID: "c", Name: "C"}}

	got := Merge(base, overlay)
	require.Len(t, got, 3)
	assert.Equal(t, "B2", got[1].Name)
	assert.Equal(t, "c", got[2].ID)
	assert.Equal(t, "B", base[1].Name, "base must not be modified")
}

func TestIsCatalogFile(t *testing.T) {
	assert.True(t, IsCatalogFile("x.yaml"))
	assert.True(t, IsCatalogFile("deep/er/x.yml"))
	assert.True(t, IsCatalogFile("x.json"))
	assert.False(t, IsCatalogFile("x.txt"))
}

func TestStoreSnapshot(t *testing.T) {
	s, err := NewStore("", nil)
	require.NoError(t, err)
	assert.Equal(t, 64, s.Len())

	snap, err := s.Exercises(context.Background())
	require.NoError(t, err)
	snap[0].Name = "changed"

	again, err := s.Exercises(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0].Name)

	_, ok := s.Get("goblet-squat")
	assert.True(t, ok)
	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreCancelledContext(t *testing.T) {
	s, err := NewStore("", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Exercises(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "extra.yaml"), "- {id: pelvic-tilts, name: Pelvic Tilts, movement_pattern: CORE, pelvic_safe: true, osteo_safe: true}\n")

	s, err := NewStore(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 65, s.Len())
}

func TestStoreReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "broken.yaml"), "- {id: q}\n")
	assert.Error(t, s.Reload())
	assert.Equal(t, 64, s.Len())
}

func TestStoreWatchReloads(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	path := filepath.Join(dir, "hot.yaml")
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("- {id: hot, name: Hot Move, movement_pattern: PUSH}\n"), 0644)
		_, ok := s.Get("hot")
		return ok
	}, 5*time.Second, 300*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestStoreWatchReloadsNestedDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "extra", "deep"), 0755))
	s, err := NewStore(dir, nil)
	require.NoError(t, err)
	base := s.Len()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	nested := filepath.Join(dir, "extra", "deep", "nested.yaml")
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(nested, []byte("- {id: nested-move, name: Nested Move, movement_pattern: PULL}\n"), 0644)
		return s.Len() == base+1
	}, 5*time.Second, 300*time.Millisecond)

	// A directory created after the watch started is picked up as well.
	later := filepath.Join(dir, "later")
	assert.Eventually(t, func() bool {
		_ = os.MkdirAll(later, 0755)
		_ = os.WriteFile(filepath.Join(later, "late.yaml"), []byte("- {id: late-move, name: Late Move, movement_pattern: CORE}\n"), 0644)
		return s.Len() == base+2
	}, 5*time.Second, 300*time.Millisecond)

	_, ok := s.Get("late-move")
	assert.True(t, ok)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchWithoutDir(t *testing.T) {
	s, err := NewStore("", nil)
	require.NoError(t, err)
	assert.NoError(t, s.Watch(context.Background()))
}
