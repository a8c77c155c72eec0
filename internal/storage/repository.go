// ABOUTME: Repository interface for profile and plan history storage.
// ABOUTME: Defines the contract used by the CLI, MCP server, and migrations.
package storage

import (
	"context"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// Repository defines the storage interface for profiles and plans.
type Repository interface {
	// Profile operations
	SaveProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]*models.Profile, error)
	DeleteProfile(ctx context.Context, userID string) error

	// Plan operations
	SavePlan(ctx context.Context, p *models.Plan) error
	SavePlans(ctx context.Context, plans []*models.Plan) error
	GetPlan(ctx context.Context, idOrPrefix string) (*models.Plan, error)
	ListPlans(ctx context.Context, userID string, limit int) ([]*models.Plan, error)
	DeletePlan(ctx context.Context, idOrPrefix string) error

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
