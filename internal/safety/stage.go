// ABOUTME: Flag-gated filter stage shared by the pelvic and bone density filters.
// ABOUTME: Removes exercises failing the stored flag and suggests replacements.
package safety

import "github.com/scar96-claude/femtech-fitness-app/internal/models"

type flagStage struct {
	safe   func(models.Exercise) bool
	rules  []substitutionRule
	reason string
	note   string
}

// apply drops every exercise that fails the stage's flag. Suggestions carry
// names only; Resolve attaches catalog ids later.
func (s flagStage) apply(exercises []models.Exercise) ([]models.Exercise, []models.Substitution) {
	kept := make([]models.Exercise, 0, len(exercises))
	var subs []models.Substitution
	for _, ex := range exercises {
		if s.safe(ex) {
			kept = append(kept, ex)
			continue
		}
		rule, ok := lookupRule(ex.Name, s.rules)
		if !ok {
			continue
		}
		sub := models.Substitution{
			OriginalID:   ex.ID,
			OriginalName: ex.Name,
			Reason:       s.reason,
		}
		for _, alt := range rule.alternatives {
			sub.Candidates = append(sub.Candidates, models.Candidate{ExerciseName: alt, SafetyNote: s.note})
		}
		subs = append(subs, sub)
	}
	return kept, subs
}
