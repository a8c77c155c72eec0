// ABOUTME: Substitution resolver binding suggested names to catalog exercises.
// ABOUTME: Also finds same-pattern safe alternatives for swaps.
package safety

import (
	"math/rand/v2"
	"slices"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// DefaultAlternatives is the FindSafeAlternatives limit when none is given.
const DefaultAlternatives = 3

// Source picks a uniform index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Flags are the risk flags that gate exercise eligibility.
type Flags struct {
	PelvicRisk      bool
	BoneDensityRisk bool
}

// FlagsOf extracts the risk flags from a profile.
func FlagsOf(p *models.Profile) Flags {
	if p == nil {
		return Flags{}
	}
	return Flags{PelvicRisk: p.PelvicRisk, BoneDensityRisk: p.BoneDensityRisk}
}

// Permits reports whether ex satisfies every set flag.
func (f Flags) Permits(ex models.Exercise) bool {
	if f.PelvicRisk && !ex.PelvicSafe {
		return false
	}
	if f.BoneDensityRisk && !ex.OsteoSafe {
		return false
	}
	return true
}

// Resolve binds each suggested candidate name to the first pool exercise whose
// name contains it. Unresolved candidates are dropped, and so are
// substitutions left with none.
func Resolve(subs []models.Substitution, pool []models.Exercise) []models.Substitution {
	var out []models.Substitution
	for _, sub := range subs {
		resolved := sub
		resolved.Candidates = nil
		for _, c := range sub.Candidates {
			match, ok := findByName(pool, c.ExerciseName)
			if !ok || hasCandidate(resolved.Candidates, match.ID) {
				continue
			}
			resolved.Candidates = append(resolved.Candidates, models.Candidate{
				ExerciseID:   match.ID,
				ExerciseName: match.Name,
				SafetyNote:   c.SafetyNote,
			})
		}
		if len(resolved.Candidates) > 0 {
			out = append(out, resolved)
		}
	}
	return out
}

func findByName(pool []models.Exercise, name string) (models.Exercise, bool) {
	for _, ex := range pool {
		if NameContains(ex.Name, name) {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

func hasCandidate(cs []models.Candidate, id string) bool {
	for _, c := range cs {
		if c.ExerciseID == id {
			return true
		}
	}
	return false
}

func sameSlotCandidates(ex models.Exercise, pool []models.Exercise, flags Flags) []models.Exercise {
	var out []models.Exercise
	for _, e := range pool {
		if e.MovementPattern == ex.MovementPattern && e.ID != ex.ID && flags.Permits(e) {
			out = append(out, e)
		}
	}
	return out
}

// FindSafeAlternative picks a random same-pattern exercise from pool that
// satisfies flags. Replacements for advanced exercises favor easier ones. A
// nil rng uses the package-level generator.
func FindSafeAlternative(ex models.Exercise, pool []models.Exercise, flags Flags, rng Source) (models.Exercise, bool) {
	if rng == nil {
		rng = globalSource{}
	}
	safe := sameSlotCandidates(ex, pool, flags)
	if len(safe) == 0 {
		return models.Exercise{}, false
	}
	if ex.Difficulty == models.DifficultyAdvanced {
		var easier []models.Exercise
		for _, e := range safe {
			if e.Difficulty != models.DifficultyAdvanced {
				easier = append(easier, e)
			}
		}
		if len(easier) > 0 {
			safe = easier
		}
	}
	return safe[rng.IntN(len(safe))], true
}

// FindSafeAlternatives returns up to limit same-pattern exercises that satisfy
// flags, easiest first. Ties keep pool order.
func FindSafeAlternatives(ex models.Exercise, pool []models.Exercise, flags Flags, limit int) []models.Exercise {
	if limit <= 0 {
		limit = DefaultAlternatives
	}
	safe := sameSlotCandidates(ex, pool, flags)
	slices.SortStableFunc(safe, func(a, b models.Exercise) int {
		return a.Difficulty.Rank() - b.Difficulty.Rank()
	})
	if len(safe) > limit {
		safe = safe[:limit]
	}
	return safe
}
