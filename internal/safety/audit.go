// ABOUTME: Advisory audit comparing stored safety flags with exercise names.
// ABOUTME: Produces review warnings only; flags remain the sole gate.
package safety

import (
	"fmt"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// Audit lists exercises that pass the active flags but whose names contain a
// keyword associated with the matching risk.
func Audit(exercises []models.Exercise, flags Flags) []string {
	var out []string
	for _, ex := range exercises {
		if flags.PelvicRisk {
			if k, ok := firstKeyword(ex.Name, pelvicKeywords); ok {
				out = append(out, fmt.Sprintf("Review catalog flag: %s is marked pelvic-safe but its name matches %q", ex.Name, k))
			}
		}
		if flags.BoneDensityRisk {
			if k, ok := firstKeyword(ex.Name, boneKeywords); ok {
				out = append(out, fmt.Sprintf("Review catalog flag: %s is marked osteo-safe but its name matches %q", ex.Name, k))
			}
		}
	}
	return out
}
