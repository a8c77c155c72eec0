// ABOUTME: Weekly schedule generation composing one plan per training day.
// ABOUTME: Days are generated concurrently with independent random sources.
package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// GenerateWeek builds FrequencyPerWeek plans spread across seven days starting
// at the request date. Each day gets its own random source, so req.Rand is
// ignored; set Seed for reproducible weeks.
func (e *Engine) GenerateWeek(ctx context.Context, req Request) ([]*models.Plan, error) {
	tier, err := e.validate(req)
	if err != nil {
		return nil, err
	}
	start := e.dateOf(req)
	days := req.FrequencyPerWeek
	req.Rand = nil

	plans := make([]*models.Plan, days)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < days; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			date := start.AddDate(0, 0, i*7/days)
			plan, err := e.generate(req, tier, date, req.source(uint64(i+1)))
			if err != nil {
				return fmt.Errorf("day %d: %w", i+1, err)
			}
			plans[i] = plan.WithSchedule(i+1, days)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}
