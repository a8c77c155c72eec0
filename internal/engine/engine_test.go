// ABOUTME: Tests for plan generation, precondition errors, and plan invariants.
// ABOUTME: Runs many seeded generations over the seed catalog.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scar96-claude/femtech-fitness-app/internal/catalog"
	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func seed(t *testing.T) []models.Exercise {
	t.Helper()
	exercises, err := catalog.Seed()
	require.NoError(t, err)
	return exercises
}

func youngProfile() *models.Profile {
	last := now.AddDate(0, 0, -10)
	return &models.Profile{
		UserID:      "young",
		DateOfBirth: time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC),
		Cycle:       models.CycleData{LastPeriodDate: &last, AvgCycleLength: 28},
	}
}

func olderProfile() *models.Profile {
	return &models.Profile{
		UserID:      "older",
		DateOfBirth: time.Date(1975, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func request(t *testing.T, profile *models.Profile) Request {
	return Request{
		UserID:           profile.UserID,
		EquipmentTier:    models.TierFullGym,
		FrequencyPerWeek: 3,
		Profile:          profile,
		Catalog:          seed(t),
	}
}

func TestGenerateCycleSync(t *testing.T) {
	e := New(WithClock(fixedClock))
	plan, err := e.Generate(request(t, youngProfile()))
	require.NoError(t, err)

	assert.Equal(t, models.ProtocolCycleSync, plan.Protocol)
	require.NotNil(t, plan.Phase)
	assert.Equal(t, models.PhaseFollicular, *plan.Phase)
	require.NotNil(t, plan.PhaseDetails)
	assert.Equal(t, 11, plan.PhaseDetails.DayOfCycle)
	assert.Equal(t, "high", plan.PhaseDetails.Intensity)
	assert.Equal(t, "2024-06-15", plan.Date)
	assert.Equal(t, "young", plan.UserID)
	assert.Equal(t, 1, plan.DayNumber)
	assert.Equal(t, 3, plan.TotalDays)
	assert.Len(t, plan.MainWorkout, 5)
	assert.Nil(t, plan.Cardio)
	assert.Positive(t, plan.EstimatedDurationMinutes)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", plan.ID.String())
}

func TestGenerateOsteoStrong(t *testing.T) {
	e := New(WithClock(fixedClock))
	req := request(t, olderProfile())
	req.IncludeCardio = true

	plan, err := e.Generate(req)
	require.NoError(t, err)
	assert.Equal(t, models.ProtocolOsteoStrong, plan.Protocol)
	assert.Nil(t, plan.Phase)
	assert.Nil(t, plan.PhaseDetails)
	require.NotNil(t, plan.Cardio)
	assert.Equal(t, models.CardioSIT, plan.Cardio.Type)
	assert.Equal(t, models.PatternImpact, plan.MainWorkout[len(plan.MainWorkout)-1].MovementPattern)
}

func TestGenerateOsteoIgnoresCycleData(t *testing.T) {
	e := New(WithClock(fixedClock))
	p := olderProfile()
	last := now.AddDate(0, 0, -3)
	p.Cycle.LastPeriodDate = &last

	plan, err := e.Generate(request(t, p))
	require.NoError(t, err)
	assert.Nil(t, plan.Phase)
}

func TestGeneratePreconditions(t *testing.T) {
	e := New(WithClock(fixedClock))
	tests := []struct {
		name      string
		mutate    func(*Request)
		wantErr   error
		wantField string
	}{
		{"missing profile", func(r *Request) { r.Profile = nil }, ErrProfileMissing, "profile"},
		{"missing last period", func(r *Request) { r.Profile.Cycle.LastPeriodDate = nil }, ErrLastPeriodMissing, "cycle.last_period_date"},
		{"empty user id", func(r *Request) { r.UserID = "" }, ErrInvalidRequest, "user_id"},
		{"unknown tier", func(r *Request) { r.EquipmentTier = "garage" }, ErrInvalidRequest, "equipment_tier"},
		{"frequency too low", func(r *Request) { r.FrequencyPerWeek = 1 }, ErrInvalidRequest, "frequency_per_week"},
		{"frequency too high", func(r *Request) { r.FrequencyPerWeek = 7 }, ErrInvalidRequest, "frequency_per_week"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(t, youngProfile())
			tt.mutate(&req)

			plan, err := e.Generate(req)
			require.Error(t, err)
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *PreconditionError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantField, pe.Field)
			assert.Equal(t, req.UserID, pe.UserID)
		})
	}
}

func TestPreconditionErrorMessage(t *testing.T) {
	err := precondition("u1", "profile", ErrProfileMissing)
	assert.Equal(t, "user u1: profile: profile missing", err.Error())
}

func TestGenerateAcceptsHyphenatedTier(t *testing.T) {
	e := New(WithClock(fixedClock))
	req := request(t, olderProfile())
	req.EquipmentTier = "home-gym"
	_, err := e.Generate(req)
	assert.NoError(t, err)
}

// TestPlanInvariants checks the safety and structure guarantees across
// protocols, tiers, risk flags, and seeds.
func TestPlanInvariants(t *testing.T) {
	e := New(WithClock(fixedClock))
	cat := seed(t)
	byID := map[string]models.Exercise{}
	for _, ex := range cat {
		byID[ex.ID] = ex
	}

	profiles := map[string]func() *models.Profile{"young": youngProfile, "older": olderProfile}
	for name, mk := range profiles {
		for _, tier := range equipment.Tiers {
			for _, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
				for s := uint64(0); s < 10; s++ {
					p := mk()
					p.PelvicRisk, p.BoneDensityRisk = flags[0], flags[1]
					req := Request{
						UserID: p.UserID, EquipmentTier: tier, FrequencyPerWeek: 4,
						IncludeCardio: true, Profile: p, Catalog: cat,
						Rand: rand.New(rand.NewPCG(s, 99)),
					}
					label := fmt.Sprintf("%s/%s/%v/%d", name, tier, flags, s)

					plan, err := e.Generate(req)
					require.NoError(t, err, label)

					patterns := map[models.MovementPattern]bool{}
					for _, b := range plan.MainWorkout {
						ex, ok := byID[b.ExerciseID]
						require.True(t, ok, label)
						if p.PelvicRisk {
							assert.True(t, ex.PelvicSafe, "%s: %s not pelvic-safe", label, ex.ID)
						}
						if p.BoneDensityRisk {
							assert.True(t, ex.OsteoSafe, "%s: %s not osteo-safe", label, ex.ID)
						}
						assert.True(t, equipment.Allows(tier, ex.Equipment), "%s: %s needs %s", label, ex.ID, ex.Equipment)
						assert.False(t, patterns[b.MovementPattern], "%s: duplicate slot %s", label, b.MovementPattern)
						patterns[b.MovementPattern] = true
					}

					assert.Equal(t, plan.Protocol == models.ProtocolCycleSync, plan.Phase != nil, label)
					if plan.Protocol == models.ProtocolOsteoStrong && plan.Cardio != nil {
						assert.NotEqual(t, models.CardioHIIT, plan.Cardio.Type, label)
					}
				}
			}
		}
	}
}

func TestGenerateDoesNotMutateInputs(t *testing.T) {
	e := New(WithClock(fixedClock))
	req := request(t, youngProfile())
	req.Profile.PelvicRisk = true
	req.Profile.Injuries = []models.Injury{{BodyPart: "knee"}}

	catBefore := slices.Clone(req.Catalog)
	profBefore := *req.Profile

	_, err := e.Generate(req)
	require.NoError(t, err)
	assert.Equal(t, catBefore, req.Catalog)
	assert.Equal(t, profBefore, *req.Profile)
}

func TestGenerateSeedIsDeterministic(t *testing.T) {
	e := New(WithClock(fixedClock))
	s := uint64(1234)
	req := request(t, youngProfile())
	req.Seed = &s

	a, err := e.Generate(req)
	require.NoError(t, err)
	b, err := e.Generate(req)
	require.NoError(t, err)

	assert.Equal(t, a.ExerciseIDs(), b.ExerciseIDs())
	assert.Equal(t, a.PhaseDetails, b.PhaseDetails)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateUsesRequestDate(t *testing.T) {
	e := New(WithClock(fixedClock))
	req := request(t, youngProfile())
	req.Date = now.AddDate(0, 0, 6)

	plan, err := e.Generate(req)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-21", plan.Date)
	assert.Equal(t, 17, plan.PhaseDetails.DayOfCycle)
	assert.Equal(t, models.PhaseOvulatory, *plan.Phase)
}

func TestGenerateCarriesSafetyOutput(t *testing.T) {
	e := New(WithClock(fixedClock))
	p := olderProfile()
	p.PelvicRisk = true
	p.Injuries = []models.Injury{{BodyPart: "wrist"}}

	plan, err := e.Generate(request(t, p))
	require.NoError(t, err)
	assert.Contains(t, plan.Warnings, "High-impact and high-pressure exercises have been removed for pelvic floor safety.")
	assert.NotEmpty(t, plan.Substitutions)
	assert.Equal(t, []string{
		"Pelvic Floor Safety (no high-impact, no high-pressure)",
		"Injury Protection (wrist)",
	}, plan.ActiveFilters)
}

func TestGenerateNameAudit(t *testing.T) {
	p := olderProfile()
	p.PelvicRisk = true

	plain, err := New(WithClock(fixedClock)).Generate(request(t, p))
	require.NoError(t, err)
	audited, err := New(WithClock(fixedClock), WithNameAudit(true)).Generate(request(t, p))
	require.NoError(t, err)
	assert.Greater(t, len(audited.Warnings), len(plain.Warnings))
}

func TestGenerateEmptyCatalog(t *testing.T) {
	e := New(WithClock(fixedClock))
	req := request(t, olderProfile())
	req.Catalog = nil

	plan, err := e.Generate(req)
	require.NoError(t, err)
	assert.Empty(t, plan.MainWorkout)
	assert.Contains(t, plan.Warnings, "Limited SQUAT exercises available (0 remaining). Consider equipment upgrade.")
}

func TestGenerateLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	e := New(WithClock(fixedClock), WithLogger(log))
	plan, err := e.Generate(request(t, youngProfile()))
	require.NoError(t, err)

	var infos int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.InfoLevel {
			infos++
			assert.Contains(t, entry.Message, plan.ID.String())
		}
	}
	assert.Equal(t, 1, infos)
}

func TestWithLoggerNilKeepsNop(t *testing.T) {
	e := New(WithLogger(nil))
	assert.IsType(t, nopLogger{}, e.log)
}
