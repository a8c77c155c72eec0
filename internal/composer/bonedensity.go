// ABOUTME: Bone density composer for the osteo_strong protocol.
// ABOUTME: Heavy low-rep loading, one impact exercise, and sprint intervals.
package composer

import (
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/safety"
)

const (
	osteoSets        = 3
	osteoReps        = 6
	osteoRestSeconds = 150
	osteoRPE         = 8

	impactSets        = 3
	impactReps        = "20"
	impactRestSeconds = 60
	impactRPE         = 5

	tempoNote  = "Focus on controlled descent. Full range of motion."
	impactNote = "Drop heels firmly to create bone-building impact stimulus."
)

var osteoPatterns = []models.MovementPattern{
	models.PatternSquat, models.PatternHinge, models.PatternPush,
	models.PatternPull, models.PatternCarry,
}

// BoneDensity composes workouts for the osteo_strong protocol. Cycle phase is
// ignored and HIIT is never used.
type BoneDensity struct{}

func (BoneDensity) Protocol() models.Protocol { return models.ProtocolOsteoStrong }

// Compose favors priority exercises in each slot and then adds an impact block
// when the pool has a suitable exercise.
func (BoneDensity) Compose(in Input) Blocks {
	return assemble(in, recipe{
		patterns: osteoPatterns,
		prefer:   func(ex models.Exercise) bool { return ex.Priority },
		prescribe: func(ex models.Exercise) models.ExerciseBlock {
			b := blockFor(ex)
			b.Sets = osteoSets
			b.Reps = osteoReps
			b.RestSeconds = osteoRestSeconds
			b.TargetRPE = osteoRPE
			if ex.MovementPattern == models.PatternSquat || ex.MovementPattern == models.PatternHinge {
				b.Notes = tempoNote
			}
			return b
		},
		extra:         impactBlock,
		cardio:        &sitCardio,
		warmup:        osteoWarmup(),
		cooldown:      osteoCooldown(),
		secondsPerRep: 4,
		defaultReps:   20,
	})
}

func isImpact(ex models.Exercise) bool {
	for _, key := range []string{"heel drop", "step up", "step-up"} {
		if safety.NameContains(ex.Name, key) {
			return true
		}
	}
	return safety.NameContains(ex.Name, "jump") && ex.OsteoSafe
}

// impactBlock returns at most one impact block, preferring heel drops. It
// skips exercises already chosen for a slot.
func impactBlock(pool []models.Exercise, chosen map[string]bool) []models.ExerciseBlock {
	var candidates []models.Exercise
	for _, ex := range pool {
		if !chosen[ex.ID] && isImpact(ex) {
			candidates = append(candidates, ex)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	impact := candidates[0]
	for _, ex := range candidates {
		if safety.NameContains(ex.Name, "heel") {
			impact = ex
			break
		}
	}

	b := blockFor(impact)
	b.MovementPattern = models.PatternImpact
	b.Sets = impactSets
	b.RepsText = impactReps
	b.RestSeconds = impactRestSeconds
	b.TargetRPE = impactRPE
	b.Notes = impactNote
	return []models.ExerciseBlock{b}
}
