// ABOUTME: Cycle-sync composer adapting volume and cardio to the cycle phase.
// ABOUTME: Prefers exercises tagged for the current phase or for any phase.
package composer

import (
	"github.com/scar96-claude/femtech-fitness-app/internal/cycle"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

var cyclePatterns = []models.MovementPattern{
	models.PatternSquat, models.PatternHinge, models.PatternPush,
	models.PatternPull, models.PatternCore,
}

// CycleSync composes workouts for the cycle_sync protocol.
type CycleSync struct{}

func (CycleSync) Protocol() models.Protocol { return models.ProtocolCycleSync }

// Compose applies the phase's sets, reps, rest, and RPE to every main block.
// HIIT is offered only in phases that allow it; otherwise cardio is LISS.
func (CycleSync) Compose(in Input) Blocks {
	cfg := cycle.ConfigFor(in.Phase)
	affinity := in.Phase.Affinity()

	cardio := &lissCardio
	if cfg.AllowHIIT {
		cardio = &hiitCardio
	}

	return assemble(in, recipe{
		patterns: cyclePatterns,
		prefer: func(ex models.Exercise) bool {
			return ex.PhaseAffinity == affinity || ex.PhaseAffinity == models.AffinityAny
		},
		prescribe: func(ex models.Exercise) models.ExerciseBlock {
			b := blockFor(ex)
			b.Sets = cfg.Sets
			b.Reps = cfg.Reps
			b.RestSeconds = cfg.RestSeconds
			b.TargetRPE = cfg.TargetRPE
			return b
		},
		cardio:        cardio,
		warmup:        cycleWarmup(),
		cooldown:      cycleCooldown(),
		secondsPerRep: 3,
		defaultReps:   10,
	})
}
