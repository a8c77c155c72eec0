// ABOUTME: Plan generation entry point tying routing, filtering, and composing together.
// ABOUTME: Stateless apart from injected clock, logger, and safety options.
package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/scar96-claude/femtech-fitness-app/internal/composer"
	"github.com/scar96-claude/femtech-fitness-app/internal/cycle"
	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/router"
	"github.com/scar96-claude/femtech-fitness-app/internal/safety"
)

// Frequency bounds for FrequencyPerWeek.
const (
	MinFrequency = 2
	MaxFrequency = 6
)

// Request is one plan generation call. Profile and Catalog are read, never
// modified.
type Request struct {
	UserID           string
	EquipmentTier    models.EquipmentTier
	FrequencyPerWeek int
	IncludeCardio    bool
	Profile          *models.Profile
	Catalog          []models.Exercise

	// Date is the plan date. Zero means the engine clock's current time.
	Date time.Time
	// Rand drives exercise selection. When nil, Seed is used if set and the
	// package-level generator otherwise.
	Rand composer.Source
	Seed *uint64
}

func (r Request) source(stream uint64) composer.Source {
	if r.Rand != nil {
		return r.Rand
	}
	if r.Seed != nil {
		return rand.New(rand.NewPCG(*r.Seed, stream))
	}
	return nil
}

// Logger is the logging surface the engine uses. *logrus.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}

// Engine generates plans.
type Engine struct {
	clock  func() time.Time
	log    Logger
	safety safety.Options
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used when a request has no date.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the logger. A nil logger discards messages.
func WithLogger(log Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithNameAudit enables advisory catalog flag warnings.
func WithNameAudit(enabled bool) Option {
	return func(e *Engine) { e.safety.NameAudit = enabled }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{clock: time.Now, log: nopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// validate checks the request and returns the normalized tier.
func (e *Engine) validate(req Request) (models.EquipmentTier, error) {
	if req.UserID == "" {
		return "", precondition("", "user_id", fmt.Errorf("%w: empty user id", ErrInvalidRequest))
	}
	if req.Profile == nil {
		return "", precondition(req.UserID, "profile", ErrProfileMissing)
	}
	tier, err := equipment.ParseTier(string(req.EquipmentTier))
	if err != nil {
		return "", precondition(req.UserID, "equipment_tier", fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}
	if req.FrequencyPerWeek < MinFrequency || req.FrequencyPerWeek > MaxFrequency {
		return "", precondition(req.UserID, "frequency_per_week",
			fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidRequest, req.FrequencyPerWeek, MinFrequency, MaxFrequency))
	}
	return tier, nil
}

func (e *Engine) dateOf(req Request) time.Time {
	if req.Date.IsZero() {
		return e.clock()
	}
	return req.Date
}

// Generate builds one plan. Missing preconditions return a
// *PreconditionError; everything else degrades into warnings or omissions.
func (e *Engine) Generate(req Request) (*models.Plan, error) {
	tier, err := e.validate(req)
	if err != nil {
		return nil, err
	}
	return e.generate(req, tier, e.dateOf(req), req.source(0))
}

func (e *Engine) generate(req Request, tier models.EquipmentTier, now time.Time, rng composer.Source) (*models.Plan, error) {
	profile := req.Profile
	protocol := router.ProtocolFor(profile.DateOfBirth, now)

	var phase cycle.Info
	if protocol == models.ProtocolCycleSync {
		if profile.Cycle.LastPeriodDate == nil {
			return nil, precondition(req.UserID, "cycle.last_period_date", ErrLastPeriodMissing)
		}
		phase = cycle.Calculate(*profile.Cycle.LastPeriodDate, now, profile.Cycle.AvgCycleLength)
	}

	pool := equipment.Filter(req.Catalog, tier)
	filtered := safety.Apply(pool, profile, e.safety)
	e.log.Debugf("user %s: %d of %d exercises usable with %s, %d removed by safety filters",
		req.UserID, len(pool), len(req.Catalog), tier, filtered.RemovedCount)

	blocks := composer.For(protocol).Compose(composer.Input{
		Pool:          filtered.Exercises,
		Flags:         safety.FlagsOf(profile),
		Phase:         phase.Phase,
		IncludeCardio: req.IncludeCardio,
		Rand:          rng,
	})

	plan := models.NewPlan(req.UserID, now, protocol).WithSchedule(1, req.FrequencyPerWeek)
	if protocol == models.ProtocolCycleSync {
		plan.WithPhase(phase.Phase, phase.Details())
	}
	plan.Warmup = blocks.Warmup
	plan.MainWorkout = blocks.Main
	plan.Cardio = blocks.Cardio
	plan.Cooldown = blocks.Cooldown
	plan.EstimatedDurationMinutes = blocks.EstimatedMinutes
	plan.Warnings = filtered.Warnings
	plan.Substitutions = filtered.Substitutions
	plan.ActiveFilters = safety.ActiveFilters(profile)

	if len(blocks.Main) == 0 {
		e.log.Warnf("user %s: plan %s has no main exercises", req.UserID, plan.ID)
	}
	e.log.Infof("generated %s plan %s with %d exercises", protocol, plan.ID, len(plan.MainWorkout))
	return plan, nil
}
