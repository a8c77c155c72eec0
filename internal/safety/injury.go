// ABOUTME: Injury filter mapping body parts to excluded patterns and name keywords.
// ABOUTME: Exclusions from all injuries are merged and applied once.
package safety

import (
	"slices"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

type injuryRule struct {
	bodyPart string
	patterns []models.MovementPattern
	keywords []string
}

var injuryRules = []injuryRule{
	{"knee", []models.MovementPattern{models.PatternSquat}, []string{"lunge", "jump", "running", "leg press", "leg extension"}},
	{"shoulder", []models.MovementPattern{models.PatternPush}, []string{"overhead", "press", "pull-up", "lateral raise", "dip"}},
	{"lower back", []models.MovementPattern{models.PatternHinge}, []string{"deadlift", "row", "squat", "good morning"}},
	{"hip", []models.MovementPattern{models.PatternSquat, models.PatternHinge}, []string{"lunge", "running", "hip thrust"}},
	{"ankle", nil, []string{"jump", "running", "skip", "hop", "calf", "step-up"}},
	{"wrist", nil, []string{"push-up", "plank", "front squat", "clean", "press"}},
	{"elbow", []models.MovementPattern{models.PatternPush, models.PatternPull}, []string{"curl", "tricep", "press", "dip"}},
	{"neck", nil, []string{"overhead", "shrug", "press", "pull-up"}},
}

// Exclusion is a merged set of movement patterns and name keywords to avoid.
type Exclusion struct {
	Patterns []models.MovementPattern `json:"patterns,omitempty"`
	Keywords []string                 `json:"keywords,omitempty"`
}

// Empty reports whether the exclusion removes nothing.
func (x Exclusion) Empty() bool {
	return len(x.Patterns) == 0 && len(x.Keywords) == 0
}

// Matches reports whether ex is excluded by pattern or by a name keyword.
func (x Exclusion) Matches(ex models.Exercise) bool {
	if slices.Contains(x.Patterns, ex.MovementPattern) {
		return true
	}
	_, ok := firstKeyword(ex.Name, x.Keywords)
	return ok
}

func (x *Exclusion) merge(r injuryRule) {
	for _, p := range r.patterns {
		if !slices.Contains(x.Patterns, p) {
			x.Patterns = append(x.Patterns, p)
		}
	}
	for _, k := range r.keywords {
		if !slices.Contains(x.Keywords, k) {
			x.Keywords = append(x.Keywords, k)
		}
	}
}

// Excluded returns what to avoid for a body part description. Every rule
// whose body part appears in the description contributes, so "left knee and
// hip" merges both rules.
func Excluded(bodyPart string) Exclusion {
	var x Exclusion
	for _, r := range injuryRules {
		if NameContains(bodyPart, r.bodyPart) {
			x.merge(r)
		}
	}
	return x
}

// exclusionFor merges the exclusions of every injury.
func exclusionFor(injuries []models.Injury) Exclusion {
	var x Exclusion
	for _, inj := range injuries {
		for _, r := range injuryRules {
			if NameContains(inj.BodyPart, r.bodyPart) {
				x.merge(r)
			}
		}
	}
	return x
}

// FilterInjuries removes exercises excluded by any injury. Injuries that
// match no known body part remove nothing.
func FilterInjuries(exercises []models.Exercise, injuries []models.Injury) []models.Exercise {
	if len(injuries) == 0 {
		return exercises
	}
	x := exclusionFor(injuries)
	if x.Empty() {
		return exercises
	}
	kept := make([]models.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if !x.Matches(ex) {
			kept = append(kept, ex)
		}
	}
	return kept
}
