// ABOUTME: Menstrual cycle phase calculator and per-phase training parameters.
// ABOUTME: Phase boundaries scale with the user's average cycle length.
package cycle

import (
	"math"
	"time"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// DefaultLength is used when a cycle length is missing or invalid.
const DefaultLength = 28

// Phase boundaries for a 28-day cycle, as the last day of each phase.
const (
	menstrualEnd  = 5
	follicularEnd = 14
	ovulatoryEnd  = 17
)

// Info is the computed position within a cycle.
type Info struct {
	Phase              models.Phase
	DayOfCycle         int
	DaysUntilNextPhase int
	CycleLength        int
}

// Details converts Info to the plan representation, including the phase
// intensity label.
func (i Info) Details() models.PhaseDetails {
	return models.PhaseDetails{
		DayOfCycle:         i.DayOfCycle,
		DaysUntilNextPhase: i.DaysUntilNextPhase,
		CycleLength:        i.CycleLength,
		Intensity:          ConfigFor(i.Phase).Intensity,
	}
}

// NormalizeLength converts a possibly fractional or invalid cycle length to a
// usable day count.
func NormalizeLength(length float64) int {
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return DefaultLength
	}
	n := int(math.Round(length))
	if n <= 0 {
		return DefaultLength
	}
	return n
}

// Calculate determines the phase on now for a cycle that started on
// lastPeriod. Future period dates are treated as day one.
func Calculate(lastPeriod, now time.Time, avgCycleLength int) Info {
	length := avgCycleLength
	if length <= 0 {
		length = DefaultLength
	}

	daysSince := calendarDay(now) - calendarDay(lastPeriod)
	if daysSince < 0 {
		daysSince = 0
	}
	day := daysSince%length + 1

	scale := float64(length) / DefaultLength
	bounds := []struct {
		phase models.Phase
		end   int
	}{
		{models.PhaseMenstrual, scaled(menstrualEnd, scale)},
		{models.PhaseFollicular, scaled(follicularEnd, scale)},
		{models.PhaseOvulatory, scaled(ovulatoryEnd, scale)},
	}
	for _, b := range bounds {
		if day <= b.end {
			return Info{
				Phase:              b.phase,
				DayOfCycle:         day,
				DaysUntilNextPhase: b.end - day + 1,
				CycleLength:        length,
			}
		}
	}
	return Info{
		Phase:              models.PhaseLuteal,
		DayOfCycle:         day,
		DaysUntilNextPhase: length - day + 1,
		CycleLength:        length,
	}
}

func scaled(boundary int, scale float64) int {
	return int(math.Round(float64(boundary) * scale))
}

// calendarDay counts days since the epoch for the civil date of t, ignoring
// the time of day.
func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
