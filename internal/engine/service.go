// ABOUTME: Service that fetches catalog and profile from providers, then generates.
// ABOUTME: All I/O happens here; the engine itself only sees plain data.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// CatalogProvider returns the current exercise catalog. The returned slice is
// treated as a snapshot for one call.
type CatalogProvider interface {
	Exercises(ctx context.Context) ([]models.Exercise, error)
}

// ProfileProvider returns a user's health profile. A user without a profile
// yields a nil profile and a nil error.
type ProfileProvider interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
}

// PlanOptions are the caller-chosen parts of a request.
type PlanOptions struct {
	EquipmentTier    models.EquipmentTier
	FrequencyPerWeek int
	IncludeCardio    bool
	Date             time.Time
	Seed             *uint64
}

// Service generates plans for stored users.
type Service struct {
	engine   *Engine
	catalog  CatalogProvider
	profiles ProfileProvider
}

// NewService wires an engine to its providers.
func NewService(engine *Engine, catalog CatalogProvider, profiles ProfileProvider) *Service {
	return &Service{engine: engine, catalog: catalog, profiles: profiles}
}

// Engine returns the underlying engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

func (s *Service) request(ctx context.Context, userID string, opts PlanOptions) (Request, error) {
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return Request{}, fmt.Errorf("fetch profile: %w", err)
	}
	exercises, err := s.catalog.Exercises(ctx)
	if err != nil {
		return Request{}, fmt.Errorf("fetch catalog: %w", err)
	}
	return Request{
		UserID:           userID,
		EquipmentTier:    opts.EquipmentTier,
		FrequencyPerWeek: opts.FrequencyPerWeek,
		IncludeCardio:    opts.IncludeCardio,
		Profile:          profile,
		Catalog:          exercises,
		Date:             opts.Date,
		Seed:             opts.Seed,
	}, nil
}

// Generate fetches inputs and builds one plan.
func (s *Service) Generate(ctx context.Context, userID string, opts PlanOptions) (*models.Plan, error) {
	req, err := s.request(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	return s.engine.Generate(req)
}

// GenerateWeek fetches inputs once and builds a weekly schedule.
func (s *Service) GenerateWeek(ctx context.Context, userID string, opts PlanOptions) ([]*models.Plan, error) {
	req, err := s.request(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	return s.engine.GenerateWeek(ctx, req)
}

// Alternatives lists safe replacements for one exercise.
func (s *Service) Alternatives(ctx context.Context, userID string, tier models.EquipmentTier, exerciseID string, limit int) ([]models.Exercise, error) {
	req, err := s.request(ctx, userID, PlanOptions{EquipmentTier: tier})
	if err != nil {
		return nil, err
	}
	return s.engine.Alternatives(req, exerciseID, limit)
}

// Swap picks one safe replacement for an exercise.
func (s *Service) Swap(ctx context.Context, userID string, tier models.EquipmentTier, exerciseID string, seed *uint64) (models.Exercise, bool, error) {
	req, err := s.request(ctx, userID, PlanOptions{EquipmentTier: tier, Seed: seed})
	if err != nil {
		return models.Exercise{}, false, err
	}
	return s.engine.Swap(req, exerciseID)
}
