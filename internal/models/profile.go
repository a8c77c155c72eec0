// ABOUTME: User health profile model with injuries and cycle data.
// ABOUTME: Also defines protocol, demographic, phase, and equipment tier enums.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Protocol is the top-level workout strategy selected by age.
type Protocol string

const (
	ProtocolCycleSync   Protocol = "cycle_sync"
	ProtocolOsteoStrong Protocol = "osteo_strong"
)

// Demographic is the age-derived user category.
type Demographic string

const (
	DemographicReproductive  Demographic = "reproductive"
	DemographicPerimenopause Demographic = "perimenopause"
)

// Phase is a menstrual cycle stage.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
)

// Affinity maps a phase to the catalog affinity tag that matches it.
func (p Phase) Affinity() PhaseAffinity {
	switch p {
	case PhaseMenstrual:
		return AffinityMenstrual
	case PhaseFollicular:
		return AffinityFollicular
	case PhaseOvulatory:
		return AffinityOvulatory
	case PhaseLuteal:
		return AffinityLuteal
	}
	return AffinityAny
}

// EquipmentTier is the equipment access a user declares.
type EquipmentTier string

const (
	TierBodyweight EquipmentTier = "bodyweight"
	TierHomeGym    EquipmentTier = "home_gym"
	TierFullGym    EquipmentTier = "full_gym"
)

// Regularity describes how predictable a user's cycle is.
type Regularity string

const (
	RegularityRegular   Regularity = "regular"
	RegularityIrregular Regularity = "irregular"
	RegularityUnknown   Regularity = "unknown"
)

// Injury is one entry of a user's injury history.
type Injury struct {
	BodyPart string    `json:"body_part"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

// CycleData holds menstrual cycle tracking inputs.
type CycleData struct {
	LastPeriodDate *time.Time `json:"last_period_date,omitempty"`
	AvgCycleLength int        `json:"avg_cycle_length"`
	Regularity     Regularity `json:"regularity"`
}

// Profile is the user health profile consumed by plan generation.
type Profile struct {
	UserID           string        `json:"user_id"`
	DateOfBirth      time.Time     `json:"date_of_birth"`
	PelvicRisk       bool          `json:"pelvic_risk"`
	BoneDensityRisk  bool          `json:"bone_density_risk"`
	Injuries         []Injury      `json:"injuries,omitempty"`
	Cycle            CycleData     `json:"cycle"`
	EquipmentTier    EquipmentTier `json:"equipment_tier,omitempty"`
	FlaggedQuestions []string      `json:"flagged_questions,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NewProfile creates a Profile with a generated user ID and default cycle data.
func NewProfile(dateOfBirth time.Time) *Profile {
	now := time.Now()
	return &Profile{
		UserID:      uuid.New().String(),
		DateOfBirth: dateOfBirth,
		Cycle: CycleData{
			AvgCycleLength: 28,
			Regularity:     RegularityUnknown,
		},
		EquipmentTier: TierBodyweight,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// WithLastPeriod sets the start date of the most recent period.
func (p *Profile) WithLastPeriod(t time.Time) *Profile {
	p.Cycle.LastPeriodDate = &t
	return p
}

// WithCycleLength sets the average cycle length in days.
func (p *Profile) WithCycleLength(days int) *Profile {
	p.Cycle.AvgCycleLength = days
	return p
}

// WithRisks sets both screening-derived risk flags.
func (p *Profile) WithRisks(pelvic, boneDensity bool) *Profile {
	p.PelvicRisk = pelvic
	p.BoneDensityRisk = boneDensity
	return p
}

// WithInjury appends an injury record.
func (p *Profile) WithInjury(bodyPart, injuryType string, date time.Time) *Profile {
	p.Injuries = append(p.Injuries, Injury{BodyPart: bodyPart, Type: injuryType, Date: date})
	return p
}
