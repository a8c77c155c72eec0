// ABOUTME: Workout composer contract and the shared block assembly helper.
// ABOUTME: Protocol variants supply slots, prescriptions, and fixed routines.
package composer

import (
	"math"
	"math/rand/v2"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/safety"
)

// MaxAlternatives is how many swap candidates each main block lists.
const MaxAlternatives = 2

// Source picks a uniform index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Input is everything a composer needs for one workout. Pool must already be
// equipment and safety filtered.
type Input struct {
	Pool          []models.Exercise
	Flags         safety.Flags
	Phase         models.Phase
	IncludeCardio bool
	Rand          Source
}

// Blocks is a composed workout without plan metadata.
type Blocks struct {
	Warmup           models.TimedBlock
	Main             []models.ExerciseBlock
	Cardio           *models.CardioBlock
	Cooldown         models.TimedBlock
	EstimatedMinutes int
}

// Composer builds a workout for one protocol.
type Composer interface {
	Protocol() models.Protocol
	Compose(in Input) Blocks
}

// For returns the composer for protocol. Anything other than osteo_strong
// gets the cycle-sync composer.
func For(protocol models.Protocol) Composer {
	if protocol == models.ProtocolOsteoStrong {
		return BoneDensity{}
	}
	return CycleSync{}
}

// recipe is what a protocol variant contributes to assemble.
type recipe struct {
	patterns  []models.MovementPattern
	prefer    func(models.Exercise) bool
	prescribe func(models.Exercise) models.ExerciseBlock
	// extra adds blocks after the pattern slots, given the ids already chosen.
	extra         func(pool []models.Exercise, chosen map[string]bool) []models.ExerciseBlock
	cardio        *models.CardioBlock
	warmup        models.TimedBlock
	cooldown      models.TimedBlock
	secondsPerRep int
	defaultReps   int
}

// assemble fills one block per pattern slot, then extras, then estimates the
// duration. A slot with no candidates is left out.
func assemble(in Input, r recipe) Blocks {
	rng := in.Rand
	if rng == nil {
		rng = globalSource{}
	}

	chosen := map[string]bool{}
	var main []models.ExerciseBlock
	for _, pattern := range r.patterns {
		ex, ok := pick(models.ByPattern(in.Pool, pattern), r.prefer, rng)
		if !ok {
			continue
		}
		chosen[ex.ID] = true
		b := r.prescribe(ex)
		for _, alt := range safety.FindSafeAlternatives(ex, in.Pool, in.Flags, MaxAlternatives) {
			b.Alternatives = append(b.Alternatives, models.Alternative{ExerciseID: alt.ID, ExerciseName: alt.Name})
		}
		main = append(main, b)
	}
	if r.extra != nil {
		main = append(main, r.extra(in.Pool, chosen)...)
	}

	var cardio *models.CardioBlock
	if in.IncludeCardio && r.cardio != nil {
		c := *r.cardio
		cardio = &c
	}

	return Blocks{
		Warmup:           r.warmup,
		Main:             main,
		Cardio:           cardio,
		Cooldown:         r.cooldown,
		EstimatedMinutes: estimate(main, cardio, r),
	}
}

// pick chooses a random candidate, restricted to preferred ones when any exist.
func pick(candidates []models.Exercise, prefer func(models.Exercise) bool, rng Source) (models.Exercise, bool) {
	if len(candidates) == 0 {
		return models.Exercise{}, false
	}
	pool := candidates
	if prefer != nil {
		var preferred []models.Exercise
		for _, ex := range candidates {
			if prefer(ex) {
				preferred = append(preferred, ex)
			}
		}
		if len(preferred) > 0 {
			pool = preferred
		}
	}
	return pool[rng.IntN(len(pool))], true
}

// estimate returns whole minutes: main block work and rest rounded once, plus
// the fixed warmup, cardio, and cooldown minutes.
func estimate(main []models.ExerciseBlock, cardio *models.CardioBlock, r recipe) int {
	var mins float64
	for _, b := range main {
		reps := b.RepCount(r.defaultReps)
		mins += float64(b.Sets*reps*r.secondsPerRep)/60 + float64(b.Sets*b.RestSeconds)/60
	}
	total := r.warmup.DurationMinutes + int(math.Round(mins)) + r.cooldown.DurationMinutes
	if cardio != nil {
		total += cardio.DurationMinutes
	}
	return total
}

func blockFor(ex models.Exercise) models.ExerciseBlock {
	return models.ExerciseBlock{
		ExerciseID:      ex.ID,
		ExerciseName:    ex.Name,
		MovementPattern: ex.MovementPattern,
		VideoURL:        ex.VideoURL,
	}
}
