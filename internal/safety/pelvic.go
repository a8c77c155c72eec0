// ABOUTME: Pelvic floor safety filter and its substitution table.
// ABOUTME: Gated on the stored pelvic-safe flag; names only drive suggestions.
package safety

import "github.com/scar96-claude/femtech-fitness-app/internal/models"

const (
	pelvicReason = "May increase intra-abdominal pressure or impact pelvic floor"
	pelvicNote   = "Pelvic floor safe alternative"
)

var pelvicSubstitutions = []substitutionRule{
	{"hip thrust", []string{"glute bridge", "single-leg glute bridge"}},
	{"barbell back squat", []string{"goblet squat", "wall squat", "bodyweight squat"}},
	{"barbell front squat", []string{"goblet squat", "wall squat"}},
	{"deadlift", []string{"romanian deadlift (light)", "glute bridge", "cable pull-through"}},
	{"jump squat", []string{"bodyweight squat", "slow tempo squat"}},
	{"box jump", []string{"step-up", "box step-up"}},
	{"burpee", []string{"squat to stand", "inchworm"}},
	{"plank", []string{"modified plank (knees)", "bird dog", "dead bug (modified)"}},
	{"sit-up", []string{"dead bug (modified)", "pelvic tilts"}},
	{"crunch", []string{"dead bug (modified)", "pelvic tilts"}},
	{"running", []string{"walking", "cycling", "swimming"}},
}

// Name keywords associated with impact, pelvic floor load, or high pressure.
// Used by the catalog audit only.
var pelvicKeywords = []string{
	"jump", "box jump", "burpee", "running", "sprint", "skip", "hop",
	"sit-up", "sit up", "crunch", "v-up", "v up", "leg raise", "plank", "dead bug",
	"back squat", "front squat", "deadlift", "heavy", "barbell",
}

var pelvicStage = flagStage{
	safe:   func(ex models.Exercise) bool { return ex.PelvicSafe },
	rules:  pelvicSubstitutions,
	reason: pelvicReason,
	note:   pelvicNote,
}

// FilterPelvic removes exercises not flagged pelvic-safe when risk is set.
// With no risk the input is returned unchanged.
func FilterPelvic(exercises []models.Exercise, risk bool) ([]models.Exercise, []models.Substitution) {
	if !risk {
		return exercises, nil
	}
	return pelvicStage.apply(exercises)
}

// PelvicAlternatives returns the suggested replacement names for an exercise
// name, or nil when no rule matches.
func PelvicAlternatives(name string) []string {
	if r, ok := lookupRule(name, pelvicSubstitutions); ok {
		return append([]string(nil), r.alternatives...)
	}
	return nil
}
