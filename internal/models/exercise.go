// ABOUTME: Exercise catalog record and its classification enums.
// ABOUTME: Movement patterns, equipment, difficulty, and phase affinity.
package models

import "strings"

// MovementPattern classifies an exercise into a workout slot.
type MovementPattern string

const (
	PatternSquat  MovementPattern = "SQUAT"
	PatternHinge  MovementPattern = "HINGE"
	PatternPush   MovementPattern = "PUSH"
	PatternPull   MovementPattern = "PULL"
	PatternCarry  MovementPattern = "CARRY"
	PatternCore   MovementPattern = "CORE"
	PatternCardio MovementPattern = "CARDIO"

	// PatternImpact labels the bone-loading impact block. It never appears on
	// a catalog record.
	PatternImpact MovementPattern = "IMPACT"
)

// AllMovementPatterns lists the patterns a catalog record may carry.
var AllMovementPatterns = []MovementPattern{
	PatternSquat, PatternHinge, PatternPush, PatternPull,
	PatternCarry, PatternCore, PatternCardio,
}

// IsValidMovementPattern checks if a string names a catalog movement pattern.
func IsValidMovementPattern(s string) bool {
	for _, p := range AllMovementPatterns {
		if string(p) == strings.ToUpper(s) {
			return true
		}
	}
	return false
}

// Equipment is the equipment an exercise requires.
type Equipment string

const (
	EquipmentNone      Equipment = "NONE"
	EquipmentDumbbells Equipment = "DUMBBELLS"
	EquipmentBarbell   Equipment = "BARBELL"
	EquipmentMachine   Equipment = "MACHINE"
	EquipmentBands     Equipment = "BANDS"
)

// Difficulty is the skill level an exercise demands.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

// Rank orders difficulties from easiest to hardest. Unknown values rank as
// intermediate.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyAdvanced:
		return 2
	default:
		return 1
	}
}

// PhaseAffinity marks the cycle phase an exercise is recommended for.
type PhaseAffinity string

const (
	AffinityAny        PhaseAffinity = "ANY"
	AffinityMenstrual  PhaseAffinity = "MENSTRUAL"
	AffinityFollicular PhaseAffinity = "FOLLICULAR"
	AffinityOvulatory  PhaseAffinity = "OVULATORY"
	AffinityLuteal     PhaseAffinity = "LUTEAL"
)

// Exercise is an immutable catalog entry. The engine reads these and never
// modifies them.
type Exercise struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	MovementPattern MovementPattern `json:"movement_pattern" yaml:"movement_pattern"`
	Equipment       Equipment       `json:"equipment" yaml:"equipment"`
	PrimaryMuscle   string          `json:"primary_muscle,omitempty" yaml:"primary_muscle,omitempty"`
	PelvicSafe      bool            `json:"pelvic_safe" yaml:"pelvic_safe"`
	OsteoSafe       bool            `json:"osteo_safe" yaml:"osteo_safe"`
	Priority        bool            `json:"priority" yaml:"priority"`
	PhaseAffinity   PhaseAffinity   `json:"phase_affinity" yaml:"phase_affinity"`
	Difficulty      Difficulty      `json:"difficulty" yaml:"difficulty"`
	VideoURL        string          `json:"video_url,omitempty" yaml:"video_url,omitempty"`
}

// ByPattern returns the exercises with the given movement pattern, in order.
func ByPattern(exercises []Exercise, pattern MovementPattern) []Exercise {
	var out []Exercise
	for _, e := range exercises {
		if e.MovementPattern == pattern {
			out = append(out, e)
		}
	}
	return out
}
