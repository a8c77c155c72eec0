// ABOUTME: Data migration between femfit storage backends.
// ABOUTME: Copies profiles and plan history from source to destination.
package storage

import (
	"context"
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Profiles int
	Plans    int
}

// MigrateData copies all profiles and plans from src to dst. Profiles are
// upserted; plans that already exist in dst fail the migration.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	profiles, err := src.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source profiles: %w", err)
	}
	for _, p := range profiles {
		if err := dst.SaveProfile(ctx, p); err != nil {
			return nil, fmt.Errorf("save profile %s: %w", p.UserID, err)
		}
		summary.Profiles++
	}

	plans, err := src.ListPlans(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("list source plans: %w", err)
	}
	for _, p := range plans {
		if err := dst.SavePlan(ctx, p); err != nil {
			return nil, fmt.Errorf("save plan %s: %w", p.ID, err)
		}
		summary.Plans++
	}

	return summary, nil
}
