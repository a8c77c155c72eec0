// ABOUTME: Equipment tier filter for the exercise catalog.
// ABOUTME: Tiers are nested: bodyweight within home_gym within full_gym.
package equipment

import (
	"fmt"
	"strings"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

var allowed = map[models.EquipmentTier][]models.Equipment{
	models.TierBodyweight: {models.EquipmentNone},
	models.TierHomeGym:    {models.EquipmentNone, models.EquipmentDumbbells, models.EquipmentBands},
	models.TierFullGym: {
		models.EquipmentNone, models.EquipmentDumbbells, models.EquipmentBarbell,
		models.EquipmentMachine, models.EquipmentBands,
	},
}

// Tiers lists the equipment tiers from smallest to largest.
var Tiers = []models.EquipmentTier{models.TierBodyweight, models.TierHomeGym, models.TierFullGym}

// ParseTier validates a tier name. Hyphens are accepted in place of underscores.
func ParseTier(s string) (models.EquipmentTier, error) {
	tier := models.EquipmentTier(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := allowed[tier]; !ok {
		return "", fmt.Errorf("unknown equipment tier: %s", s)
	}
	return tier, nil
}

// Allowed returns the equipment usable at tier. Unknown tiers allow nothing.
func Allowed(tier models.EquipmentTier) []models.Equipment {
	return append([]models.Equipment(nil), allowed[tier]...)
}

// Allows reports whether equipment is usable at tier.
func Allows(tier models.EquipmentTier, eq models.Equipment) bool {
	for _, e := range allowed[tier] {
		if e == eq {
			return true
		}
	}
	return false
}

// Filter returns the exercises usable at tier, preserving order.
func Filter(exercises []models.Exercise, tier models.EquipmentTier) []models.Exercise {
	out := make([]models.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if Allows(tier, ex.Equipment) {
			out = append(out, ex)
		}
	}
	return out
}
