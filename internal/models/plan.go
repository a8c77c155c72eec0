// ABOUTME: Generated plan model with warmup, main, cardio, and cooldown blocks.
// ABOUTME: Also holds substitution suggestions carried from safety filtering.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for plan dates.
const DateLayout = "2006-01-02"

// CardioType names a conditioning format.
type CardioType string

const (
	CardioHIIT CardioType = "HIIT"
	CardioLISS CardioType = "LISS"
	CardioSIT  CardioType = "SIT"
)

// Movement is one warmup or cooldown item, such as "Cat-Cow" for "60s".
type Movement struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

// TimedBlock is a fixed warmup or cooldown routine.
type TimedBlock struct {
	DurationMinutes int        `json:"duration_minutes"`
	Exercises       []Movement `json:"exercises"`
}

// CardioBlock is the optional conditioning finisher.
type CardioBlock struct {
	Type            CardioType `json:"type"`
	DurationMinutes int        `json:"duration_minutes"`
	Instructions    string     `json:"instructions"`
}

// Alternative is a swap candidate offered alongside a main block.
type Alternative struct {
	ExerciseID   string `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
}

// ExerciseBlock is one prescribed exercise in the main workout.
type ExerciseBlock struct {
	ExerciseID      string          `json:"exercise_id"`
	ExerciseName    string          `json:"exercise_name"`
	MovementPattern MovementPattern `json:"movement_pattern"`
	Sets            int             `json:"sets"`
	Reps            int             `json:"reps,omitempty"`
	RepsText        string          `json:"reps_text,omitempty"`
	RestSeconds     int             `json:"rest_seconds"`
	TargetRPE       int             `json:"target_rpe"`
	Notes           string          `json:"notes,omitempty"`
	VideoURL        string          `json:"video_url,omitempty"`
	Alternatives    []Alternative   `json:"alternatives,omitempty"`
}

// RepCount returns the numeric rep count, or fallback when the block has none.
func (b ExerciseBlock) RepCount(fallback int) int {
	if b.Reps > 0 {
		return b.Reps
	}
	return fallback
}

// Candidate is a resolved catalog exercise suggested as a replacement.
type Candidate struct {
	ExerciseID   string `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	SafetyNote   string `json:"safety_note,omitempty"`
}

// Substitution records an exercise removed by a safety filter and what can
// replace it.
type Substitution struct {
	OriginalID   string      `json:"original_id"`
	OriginalName string      `json:"original_name"`
	Reason       string      `json:"reason"`
	Candidates   []Candidate `json:"candidates"`
}

// PhaseDetails describes where the user is in their cycle on the plan date.
type PhaseDetails struct {
	DayOfCycle         int    `json:"day_of_cycle"`
	DaysUntilNextPhase int    `json:"days_until_next_phase"`
	CycleLength        int    `json:"cycle_length"`
	Intensity          string `json:"intensity"`
}

// Plan is one generated workout for one user and date.
type Plan struct {
	ID                       uuid.UUID       `json:"id"`
	UserID                   string          `json:"user_id"`
	Date                     string          `json:"date"`
	Protocol                 Protocol        `json:"protocol"`
	Phase                    *Phase          `json:"phase,omitempty"`
	PhaseDetails             *PhaseDetails   `json:"phase_details,omitempty"`
	DayNumber                int             `json:"day_number"`
	TotalDays                int             `json:"total_days"`
	Warmup                   TimedBlock      `json:"warmup"`
	MainWorkout              []ExerciseBlock `json:"main_workout"`
	Cardio                   *CardioBlock    `json:"cardio,omitempty"`
	Cooldown                 TimedBlock      `json:"cooldown"`
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`
	Warnings                 []string        `json:"warnings,omitempty"`
	Substitutions            []Substitution  `json:"substitutions,omitempty"`
	ActiveFilters            []string        `json:"active_filters,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
}

// NewPlan creates a Plan with a generated UUID for the given user and date.
func NewPlan(userID string, date time.Time, protocol Protocol) *Plan {
	return &Plan{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date.Format(DateLayout),
		Protocol:  protocol,
		DayNumber: 1,
		TotalDays: 1,
		CreatedAt: time.Now(),
	}
}

// WithPhase attaches the cycle phase and its details.
func (p *Plan) WithPhase(phase Phase, details PhaseDetails) *Plan {
	p.Phase = &phase
	p.PhaseDetails = &details
	return p
}

// WithSchedule sets the day position within a weekly schedule.
func (p *Plan) WithSchedule(day, total int) *Plan {
	p.DayNumber = day
	p.TotalDays = total
	return p
}

// ExerciseIDs returns the ids of the main workout exercises in order.
func (p *Plan) ExerciseIDs() []string {
	ids := make([]string, 0, len(p.MainWorkout))
	for _, b := range p.MainWorkout {
		ids = append(ids, b.ExerciseID)
	}
	return ids
}
