// ABOUTME: Bone density safety filter and its spine-neutral substitution table.
// ABOUTME: Gated on the stored osteo-safe flag.
package safety

import "github.com/scar96-claude/femtech-fitness-app/internal/models"

const (
	boneReason = "Involves spinal flexion or loaded rotation - risk for vertebral fracture"
	boneNote   = "Spine-neutral alternative"
)

var boneSubstitutions = []substitutionRule{
	{"sit-up", []string{"bird dog", "dead bug", "pallof press"}},
	{"crunch", []string{"bird dog", "dead bug", "pallof press"}},
	{"russian twist", []string{"pallof press", "farmer walk", "suitcase carry"}},
	{"toe touch", []string{"standing hamstring stretch (supported)", "seated stretch"}},
	{"bicycle crunch", []string{"bird dog", "dead bug"}},
	{"rowing machine", []string{"lat pulldown", "seated cable row (upright)"}},
	{"forward fold", []string{"standing hamstring stretch (wall supported)"}},
}

// Spinal flexion and loaded rotation name keywords, for the catalog audit.
var boneKeywords = []string{
	"toe touch", "forward fold", "sit-up", "sit up", "crunch", "v-up",
	"russian twist", "bicycle crunch", "rollover", "rolling",
	"roll up", "roll-up",
	"wood chop", "rotational",
}

var boneBuildingKeywords = []string{
	"squat", "deadlift", "overhead press", "farmer", "carry", "step-up", "heel drop", "lunge",
}

var boneStage = flagStage{
	safe:   func(ex models.Exercise) bool { return ex.OsteoSafe },
	rules:  boneSubstitutions,
	reason: boneReason,
	note:   boneNote,
}

// FilterBoneDensity removes exercises not flagged osteo-safe when risk is set.
func FilterBoneDensity(exercises []models.Exercise, risk bool) ([]models.Exercise, []models.Substitution) {
	if !risk {
		return exercises, nil
	}
	return boneStage.apply(exercises)
}

// IsBoneBuilding reports whether a name suggests a bone-loading movement.
func IsBoneBuilding(name string) bool {
	_, ok := firstKeyword(name, boneBuildingKeywords)
	return ok
}
