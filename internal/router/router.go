// ABOUTME: Demographic router mapping date of birth to protocol and demographic.
// ABOUTME: Ages are whole calendar years, decremented before the birthday.
package router

import (
	"time"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// PerimenopauseAge is the first age routed to the bone-density protocol.
const PerimenopauseAge = 40

// Age returns whole years elapsed from dob to now.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// ProtocolFor selects the workout protocol for a user born on dob.
func ProtocolFor(dob, now time.Time) models.Protocol {
	if Age(dob, now) < PerimenopauseAge {
		return models.ProtocolCycleSync
	}
	return models.ProtocolOsteoStrong
}

// DemographicFor returns the age-derived demographic for a user born on dob.
func DemographicFor(dob, now time.Time) models.Demographic {
	if Age(dob, now) < PerimenopauseAge {
		return models.DemographicReproductive
	}
	return models.DemographicPerimenopause
}
