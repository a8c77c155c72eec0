// ABOUTME: Safety filter pipeline running pelvic, bone density, and injury stages.
// ABOUTME: Resolves substitutions and reports movement pattern coverage.
package safety

import (
	"fmt"
	"strings"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// MinCoverage is the fewest exercises per pattern before a coverage warning.
const MinCoverage = 2

const (
	pelvicWarning = "High-impact and high-pressure exercises have been removed for pelvic floor safety."
	boneWarning   = "Spinal flexion and loaded rotation exercises have been removed for bone safety."
)

var coveragePatterns = []models.MovementPattern{
	models.PatternSquat, models.PatternHinge, models.PatternPush,
	models.PatternPull, models.PatternCarry, models.PatternCore,
}

// Result is the outcome of running the pipeline over a catalog.
type Result struct {
	Exercises     []models.Exercise     `json:"exercises"`
	RemovedCount  int                   `json:"removed_count"`
	Substitutions []models.Substitution `json:"substitutions"`
	Warnings      []string              `json:"warnings"`
}

// Options tunes the pipeline.
type Options struct {
	// NameAudit adds advisory warnings for exercises whose stored flag passes
	// but whose name matches a risky keyword. It never removes anything.
	NameAudit bool
}

// Apply runs the stages in order: pelvic, bone density, injury. A nil profile
// applies no restrictions. The input slice is never modified.
func Apply(exercises []models.Exercise, profile *models.Profile, opts Options) Result {
	if profile == nil {
		profile = &models.Profile{}
	}
	res := Result{
		Substitutions: []models.Substitution{},
		Warnings:      []string{},
	}

	filtered, pelvicSubs := FilterPelvic(exercises, profile.PelvicRisk)
	if profile.PelvicRisk {
		res.Warnings = append(res.Warnings, pelvicWarning)
	}

	filtered, boneSubs := FilterBoneDensity(filtered, profile.BoneDensityRisk)
	if profile.BoneDensityRisk {
		res.Warnings = append(res.Warnings, boneWarning)
	}

	filtered = FilterInjuries(filtered, profile.Injuries)

	if resolved := Resolve(append(pelvicSubs, boneSubs...), filtered); resolved != nil {
		res.Substitutions = resolved
	}
	res.Warnings = append(res.Warnings, coverageWarnings(filtered)...)
	if opts.NameAudit {
		res.Warnings = append(res.Warnings, Audit(filtered, FlagsOf(profile))...)
	}

	res.Exercises = filtered
	res.RemovedCount = len(exercises) - len(filtered)
	return res
}

func coverageWarnings(exercises []models.Exercise) []string {
	var out []string
	for _, p := range coveragePatterns {
		n := len(models.ByPattern(exercises, p))
		if n < MinCoverage {
			out = append(out, fmt.Sprintf("Limited %s exercises available (%d remaining). Consider equipment upgrade.", p, n))
		}
	}
	return out
}

// HasRestrictions reports whether any stage would filter for this profile.
func HasRestrictions(p *models.Profile) bool {
	if p == nil {
		return false
	}
	return p.PelvicRisk || p.BoneDensityRisk || len(p.Injuries) > 0
}

// ActiveFilters describes the stages that apply to a profile.
func ActiveFilters(p *models.Profile) []string {
	if p == nil {
		return nil
	}
	var filters []string
	if p.PelvicRisk {
		filters = append(filters, "Pelvic Floor Safety (no high-impact, no high-pressure)")
	}
	if p.BoneDensityRisk {
		filters = append(filters, "Bone Density Safety (no spinal flexion, no loaded rotation)")
	}
	if len(p.Injuries) > 0 {
		parts := make([]string, 0, len(p.Injuries))
		for _, inj := range p.Injuries {
			parts = append(parts, inj.BodyPart)
		}
		filters = append(filters, fmt.Sprintf("Injury Protection (%s)", strings.Join(parts, ", ")))
	}
	return filters
}
