// ABOUTME: Exercise swap lookups that respect equipment and safety filters.
// ABOUTME: Used to replace one exercise in an existing plan.
package engine

import (
	"fmt"

	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/safety"
)

// swapPool validates a swap request and returns the target exercise plus the
// filtered pool it may be replaced from.
func (e *Engine) swapPool(req Request, exerciseID string) (models.Exercise, []models.Exercise, error) {
	if req.Profile == nil {
		return models.Exercise{}, nil, precondition(req.UserID, "profile", ErrProfileMissing)
	}
	tier, err := equipment.ParseTier(string(req.EquipmentTier))
	if err != nil {
		return models.Exercise{}, nil, precondition(req.UserID, "equipment_tier", fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	var target models.Exercise
	var found bool
	for _, ex := range req.Catalog {
		if ex.ID == exerciseID {
			target, found = ex, true
			break
		}
	}
	if !found {
		return models.Exercise{}, nil, precondition(req.UserID, "exercise_id",
			fmt.Errorf("%w: unknown exercise %s", ErrInvalidRequest, exerciseID))
	}

	pool := safety.Apply(equipment.Filter(req.Catalog, tier), req.Profile, safety.Options{}).Exercises
	return target, pool, nil
}

// Alternatives lists up to limit safe same-pattern replacements for
// exerciseID, easiest first.
func (e *Engine) Alternatives(req Request, exerciseID string, limit int) ([]models.Exercise, error) {
	target, pool, err := e.swapPool(req, exerciseID)
	if err != nil {
		return nil, err
	}
	return safety.FindSafeAlternatives(target, pool, safety.FlagsOf(req.Profile), limit), nil
}

// Swap picks one random safe replacement for exerciseID. The bool is false
// when nothing in the pool can replace it.
func (e *Engine) Swap(req Request, exerciseID string) (models.Exercise, bool, error) {
	target, pool, err := e.swapPool(req, exerciseID)
	if err != nil {
		return models.Exercise{}, false, err
	}
	alt, ok := safety.FindSafeAlternative(target, pool, safety.FlagsOf(req.Profile), req.source(0))
	if ok {
		e.log.Debugf("user %s: swapping %s for %s", req.UserID, target.ID, alt.ID)
	}
	return alt, ok, nil
}
