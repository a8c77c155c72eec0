// ABOUTME: Tests for the cycle-sync and bone density composers.
// ABOUTME: Covers slot selection, prescriptions, cardio choice, and duration.
package composer

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scar96-claude/femtech-fitness-app/internal/catalog"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

func seed(t *testing.T) []models.Exercise {
	t.Helper()
	exercises, err := catalog.Seed()
	require.NoError(t, err)
	return exercises
}

func onePerPattern(patterns ...models.MovementPattern) []models.Exercise {
	var out []models.Exercise
	for _, p := range patterns {
		out = append(out, models.Exercise{
			ID: "ex-" + string(p), Name: string(p) + " Move", MovementPattern: p,
			PhaseAffinity: models.AffinityAny, PelvicSafe: true, OsteoSafe: true,
		})
	}
	return out
}

func rng(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func patternsOf(blocks []models.ExerciseBlock) []models.MovementPattern {
	var out []models.MovementPattern
	for _, b := range blocks {
		out = append(out, b.MovementPattern)
	}
	return out
}

func TestFor(t *testing.T) {
	assert.Equal(t, models.ProtocolCycleSync, For(models.ProtocolCycleSync).Protocol())
	assert.Equal(t, models.ProtocolOsteoStrong, For(models.ProtocolOsteoStrong).Protocol())
	assert.IsType(t, BoneDensity{}, For(models.ProtocolOsteoStrong))
}

func TestCycleSyncSlotsAndPrescription(t *testing.T) {
	got := CycleSync{}.Compose(Input{Pool: seed(t), Phase: models.PhaseFollicular, Rand: rng(1)})

	require.Len(t, got.Main, 5)
	assert.Equal(t, []models.MovementPattern{
		models.PatternSquat, models.PatternHinge, models.PatternPush, models.PatternPull, models.PatternCore,
	}, patternsOf(got.Main))
	for _, b := range got.Main {
		assert.Equal(t, 4, b.Sets)
		assert.Equal(t, 8, b.Reps)
		assert.Equal(t, 60, b.RestSeconds)
		assert.Equal(t, 8, b.TargetRPE)
		assert.NotEmpty(t, b.ExerciseName)
	}
	assert.Equal(t, 5, got.Warmup.DurationMinutes)
	assert.Equal(t, 5, got.Cooldown.DurationMinutes)
	assert.Nil(t, got.Cardio)
}

func TestCycleSyncPrefersPhaseAffinity(t *testing.T) {
	pool := seed(t)
	byID := map[string]models.Exercise{}
	for _, ex := range pool {
		byID[ex.ID] = ex
	}
	for s := uint64(0); s < 25; s++ {
		got := CycleSync{}.Compose(Input{Pool: pool, Phase: models.PhaseLuteal, Rand: rng(s)})
		for _, b := range got.Main {
			assert.Equal(t, models.AffinityAny, byID[b.ExerciseID].PhaseAffinity, b.ExerciseID)
		}
	}
}

func TestCycleSyncFallsBackToWholeSlot(t *testing.T) {
	pool := []models.Exercise{{
		ID: "jump", Name: "Jump Squat", MovementPattern: models.PatternSquat,
		PhaseAffinity: models.AffinityFollicular,
	}}
	got := CycleSync{}.Compose(Input{Pool: pool, Phase: models.PhaseLuteal, Rand: rng(3)})
	require.Len(t, got.Main, 1)
	assert.Equal(t, "jump", got.Main[0].ExerciseID)
}

func TestCycleSyncCardio(t *testing.T) {
	tests := []struct {
		phase    models.Phase
		wantType models.CardioType
		wantMins int
	}{
		{models.PhaseMenstrual, models.CardioLISS, 20},
		{models.PhaseFollicular, models.CardioHIIT, 15},
		{models.PhaseOvulatory, models.CardioHIIT, 15},
		{models.PhaseLuteal, models.CardioLISS, 20},
	}
	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			got := CycleSync{}.Compose(Input{Pool: seed(t), Phase: tt.phase, IncludeCardio: true, Rand: rng(9)})
			require.NotNil(t, got.Cardio)
			assert.Equal(t, tt.wantType, got.Cardio.Type)
			assert.Equal(t, tt.wantMins, got.Cardio.DurationMinutes)
		})
	}
}

func TestCycleSyncDuration(t *testing.T) {
	pool := onePerPattern(cyclePatterns...)
	// Menstrual: each block is 2*12*3/60 + 2*90/60 = 4.2 minutes.
	got := CycleSync{}.Compose(Input{Pool: pool, Phase: models.PhaseMenstrual, Rand: rng(1)})
	assert.Equal(t, 5+21+5, got.EstimatedMinutes)

	withCardio := CycleSync{}.Compose(Input{Pool: pool, Phase: models.PhaseMenstrual, IncludeCardio: true, Rand: rng(1)})
	assert.Equal(t, 5+21+20+5, withCardio.EstimatedMinutes)
}

func TestCycleSyncOmitsEmptySlots(t *testing.T) {
	pool := onePerPattern(models.PatternPush, models.PatternCore)
	got := CycleSync{}.Compose(Input{Pool: pool, Phase: models.PhaseFollicular, Rand: rng(1)})
	assert.Equal(t, []models.MovementPattern{models.PatternPush, models.PatternCore}, patternsOf(got.Main))

	empty := CycleSync{}.Compose(Input{Phase: models.PhaseFollicular, Rand: rng(1)})
	assert.Empty(t, empty.Main)
	assert.Equal(t, 10, empty.EstimatedMinutes)
}

func TestComposeDeterministicWithSeed(t *testing.T) {
	pool := seed(t)
	a := CycleSync{}.Compose(Input{Pool: pool, Phase: models.PhaseOvulatory, Rand: rng(42)})
	b := CycleSync{}.Compose(Input{Pool: pool, Phase: models.PhaseOvulatory, Rand: rng(42)})
	assert.Equal(t, a.Main, b.Main)
}

func TestComposeNilRand(t *testing.T) {
	got := BoneDensity{}.Compose(Input{Pool: seed(t)})
	assert.NotEmpty(t, got.Main)
}

func TestAlternatives(t *testing.T) {
	got := CycleSync{}.Compose(Input{Pool: seed(t), Phase: models.PhaseFollicular, Rand: rng(5)})
	for _, b := range got.Main {
		assert.LessOrEqual(t, len(b.Alternatives), MaxAlternatives)
		for _, alt := range b.Alternatives {
			assert.NotEqual(t, b.ExerciseID, alt.ExerciseID)
		}
	}
}

func TestBoneDensitySlotsAndPrescription(t *testing.T) {
	pool := seed(t)
	byID := map[string]models.Exercise{}
	for _, ex := range pool {
		byID[ex.ID] = ex
	}

	got := BoneDensity{}.Compose(Input{Pool: pool, Phase: models.PhaseFollicular, Rand: rng(2)})
	require.Len(t, got.Main, 6)
	assert.Equal(t, []models.MovementPattern{
		models.PatternSquat, models.PatternHinge, models.PatternPush, models.PatternPull,
		models.PatternCarry, models.PatternImpact,
	}, patternsOf(got.Main))

	for _, b := range got.Main[:5] {
		assert.Equal(t, 3, b.Sets)
		assert.Equal(t, 6, b.Reps)
		assert.Equal(t, 150, b.RestSeconds)
		assert.Equal(t, 8, b.TargetRPE)
		hasPriority := false
		for _, ex := range models.ByPattern(pool, b.MovementPattern) {
			hasPriority = hasPriority || ex.Priority
		}
		if hasPriority {
			assert.True(t, byID[b.ExerciseID].Priority, "%s should be a priority exercise", b.ExerciseID)
		}
	}
	assert.Equal(t, tempoNote, got.Main[0].Notes)
	assert.Equal(t, tempoNote, got.Main[1].Notes)
	assert.Empty(t, got.Main[2].Notes)

	impact := got.Main[5]
	assert.Equal(t, "heel-drops", impact.ExerciseID)
	assert.Equal(t, "20", impact.RepsText)
	assert.Zero(t, impact.Reps)
	assert.Equal(t, 60, impact.RestSeconds)
	assert.Equal(t, 5, impact.TargetRPE)
	assert.Equal(t, impactNote, impact.Notes)

	assert.Equal(t, 8, got.Warmup.DurationMinutes)
	assert.Equal(t, 7, got.Cooldown.DurationMinutes)
}

func TestBoneDensityNeverHIIT(t *testing.T) {
	pool := seed(t)
	for _, phase := range []models.Phase{models.PhaseFollicular, models.PhaseOvulatory, ""} {
		got := BoneDensity{}.Compose(Input{Pool: pool, Phase: phase, IncludeCardio: true, Rand: rng(4)})
		require.NotNil(t, got.Cardio)
		assert.Equal(t, models.CardioSIT, got.Cardio.Type)
		assert.Equal(t, 12, got.Cardio.DurationMinutes)
	}
}

func TestBoneDensityImpactSelection(t *testing.T) {
	tests := []struct {
		name string
		pool []models.Exercise
		want string
	}{
		{
			name: "prefers heel over earlier step-up",
			pool: []models.Exercise{
				{ID: "step", Name: "Step-Ups", MovementPattern: models.PatternCardio, OsteoSafe: true},
				{ID: "heel", Name: "Heel Drops", MovementPattern: models.PatternCardio, OsteoSafe: true},
			},
			want: "heel",
		},
		{
			name: "first match without heel",
			pool: []models.Exercise{
				{ID: "box", Name: "Box Jump", MovementPattern: models.PatternCardio, OsteoSafe: true},
				{ID: "step", Name: "Step Up", MovementPattern: models.PatternCardio},
			},
			want: "box",
		},
		{
			name: "unsafe jump skipped",
			pool: []models.Exercise{
				{ID: "rope", Name: "Jump Rope", MovementPattern: models.PatternCardio, OsteoSafe: false},
			},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := impactBlock(tt.pool, map[string]bool{})
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].ExerciseID)
			assert.Equal(t, models.PatternImpact, got[0].MovementPattern)
		})
	}
}

func TestImpactSkipsChosen(t *testing.T) {
	pool := []models.Exercise{{ID: "heel", Name: "Heel Drops", OsteoSafe: true}}
	assert.Empty(t, impactBlock(pool, map[string]bool{"heel": true}))
}

func TestImpactMatchingFoldsCase(t *testing.T) {
	tests := []struct {
		ex   models.Exercise
		want bool
	}{
		{models.Exercise{Name: "HEEL DROPS"}, true},
		{models.Exercise{Name: "Box STEP-UP"}, true},
		{models.Exercise{Name: "Low Step Up"}, true},
		{models.Exercise{Name: "Jump Squat", OsteoSafe: true}, true},
		{models.Exercise{Name: "JUMP Lunge", OsteoSafe: false}, false},
		{models.Exercise{Name: "Goblet Squat", OsteoSafe: true}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isImpact(tt.ex), tt.ex.Name)
	}

	pool := []models.Exercise{
		{ID: "step", Name: "Step Ups", OsteoSafe: true},
		{ID: "heel", Name: "HEEL Drops", OsteoSafe: true},
	}
	got := impactBlock(pool, map[string]bool{})
	require.Len(t, got, 1)
	assert.Equal(t, "heel", got[0].ExerciseID)
}

func TestBoneDensityDuration(t *testing.T) {
	pool := onePerPattern(models.PatternSquat, models.PatternHinge, models.PatternPush, models.PatternPull)
	pool = append(pool, models.Exercise{ID: "heel", Name: "Heel Drops", MovementPattern: models.PatternCardio, OsteoSafe: true})

	// Four slots at 3*6*4/60 + 3*150/60 = 8.7 and an impact block at
	// 3*20*4/60 + 3*60/60 = 7 give 41.8, rounded to 42.
	got := BoneDensity{}.Compose(Input{Pool: pool, Rand: rng(1)})
	require.Len(t, got.Main, 5)
	assert.Equal(t, 8+42+7, got.EstimatedMinutes)

	withCardio := BoneDensity{}.Compose(Input{Pool: pool, IncludeCardio: true, Rand: rng(1)})
	assert.Equal(t, 8+42+12+7, withCardio.EstimatedMinutes)
}

func TestRoutinesAreFresh(t *testing.T) {
	a := cycleWarmup()
	a.Exercises[0].Name = "changed"
	assert.Equal(t, "Arm Circles", cycleWarmup().Exercises[0].Name)
	assert.Len(t, osteoWarmup().Exercises, 8)
	assert.Len(t, osteoCooldown().Exercises, 5)
	assert.Len(t, cycleCooldown().Exercises, 4)
}
