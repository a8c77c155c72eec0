// ABOUTME: Fixed warmup, cooldown, and cardio routines for each protocol.
// ABOUTME: Catalog independent; each call returns fresh slices.
package composer

import "github.com/scar96-claude/femtech-fitness-app/internal/models"

func cycleWarmup() models.TimedBlock {
	return models.TimedBlock{
		DurationMinutes: 5,
		Exercises: []models.Movement{
			{Name: "Arm Circles", Duration: "30s"},
			{Name: "Leg Swings", Duration: "30s each leg"},
			{Name: "Cat-Cow", Duration: "60s"},
			{Name: "Bodyweight Squats", Duration: "10 reps"},
			{Name: "Glute Bridges", Duration: "10 reps"},
		},
	}
}

func cycleCooldown() models.TimedBlock {
	return models.TimedBlock{
		DurationMinutes: 5,
		Exercises: []models.Movement{
			{Name: "Quad Stretch", Duration: "30s each leg"},
			{Name: "Hamstring Stretch", Duration: "30s each leg"},
			{Name: "Pigeon Pose", Duration: "45s each side"},
			{Name: "Child's Pose", Duration: "60s"},
		},
	}
}

// Joint-protective routine for the bone density protocol.
func osteoWarmup() models.TimedBlock {
	return models.TimedBlock{
		DurationMinutes: 8,
		Exercises: []models.Movement{
			{Name: "Cat-Cow", Duration: "60s"},
			{Name: "Thoracic Rotations", Duration: "30s each side"},
			{Name: "Hip Circles", Duration: "30s each direction"},
			{Name: "Ankle Circles", Duration: "20s each foot"},
			{Name: "Arm Circles", Duration: "30s"},
			{Name: "Bodyweight Squats (slow)", Duration: "10 reps"},
			{Name: "Glute Bridges", Duration: "10 reps"},
			{Name: "Band Pull-Aparts (if available)", Duration: "15 reps"},
		},
	}
}

func osteoCooldown() models.TimedBlock {
	return models.TimedBlock{
		DurationMinutes: 7,
		Exercises: []models.Movement{
			{Name: "Quad Stretch", Duration: "45s each leg"},
			{Name: "Hip Flexor Stretch", Duration: "45s each side"},
			{Name: "Chest Doorway Stretch", Duration: "45s"},
			{Name: "Seated Hamstring Stretch", Duration: "60s"},
			{Name: "Neck Rolls", Duration: "30s each direction"},
		},
	}
}

var (
	hiitCardio = models.CardioBlock{
		Type:            models.CardioHIIT,
		DurationMinutes: 15,
		Instructions:    "30 seconds work, 30 seconds rest. Repeat 15 rounds. Choose: battle ropes, burpees, or bike sprints.",
	}
	lissCardio = models.CardioBlock{
		Type:            models.CardioLISS,
		DurationMinutes: 20,
		Instructions:    "Steady-state cardio at conversational pace. Choose: incline walking, cycling, or swimming.",
	}
	sitCardio = models.CardioBlock{
		Type:            models.CardioSIT,
		DurationMinutes: 12,
		Instructions:    "20 seconds ALL OUT effort, then 2 minutes complete rest. Repeat 4 times. Use bike or rower (low impact).",
	}
)
