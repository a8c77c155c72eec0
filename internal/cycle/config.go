// ABOUTME: Fixed training parameters for each cycle phase.
// ABOUTME: Sets, reps, rest, RPE, cardio type, and intensity label.
package cycle

import "github.com/scar96-claude/femtech-fitness-app/internal/models"

// PhaseConfig holds the training parameters applied uniformly to every main
// block during a phase.
type PhaseConfig struct {
	Sets        int
	Reps        int
	RestSeconds int
	TargetRPE   int
	CardioType  models.CardioType
	AllowHIIT   bool
	Intensity   string
}

var phaseConfigs = map[models.Phase]PhaseConfig{
	models.PhaseMenstrual: {
		Sets: 2, Reps: 12, RestSeconds: 90, TargetRPE: 5,
		CardioType: models.CardioLISS, Intensity: "low",
	},
	models.PhaseFollicular: {
		Sets: 4, Reps: 8, RestSeconds: 60, TargetRPE: 8,
		CardioType: models.CardioHIIT, AllowHIIT: true, Intensity: "high",
	},
	models.PhaseOvulatory: {
		Sets: 4, Reps: 6, RestSeconds: 90, TargetRPE: 9,
		CardioType: models.CardioHIIT, AllowHIIT: true, Intensity: "peak",
	},
	models.PhaseLuteal: {
		Sets: 3, Reps: 10, RestSeconds: 120, TargetRPE: 6,
		CardioType: models.CardioLISS, Intensity: "moderate",
	},
}

// ConfigFor returns the parameters for phase. Unknown phases get the luteal
// parameters.
func ConfigFor(phase models.Phase) PhaseConfig {
	if cfg, ok := phaseConfigs[phase]; ok {
		return cfg
	}
	return phaseConfigs[models.PhaseLuteal]
}
