// ABOUTME: Generated plan history persistence for SQLite storage.
// ABOUTME: Plans are stored as JSON payloads with indexed summary columns.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// SavePlan stores a generated plan.
func (d *DB) SavePlan(ctx context.Context, p *models.Plan) error {
	return d.SavePlans(ctx, []*models.Plan{p})
}

// SavePlans stores several plans in one transaction.
func (d *DB) SavePlans(ctx context.Context, plans []*models.Plan) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plans: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range plans {
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("save plan %s: %w", p.ID, err)
		}
		var phase any
		if p.Phase != nil {
			phase = string(*p.Phase)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO plans (id, user_id, plan_date, protocol, phase, payload, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID.String(), p.UserID, p.Date, string(p.Protocol), phase, string(payload), formatTimestamp(p.CreatedAt))
		if err != nil {
			return fmt.Errorf("save plan %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// GetPlan retrieves a plan by ID or ID prefix.
func (d *DB) GetPlan(ctx context.Context, idOrPrefix string) (*models.Plan, error) {
	id, err := d.resolvePlanID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	var payload string
	err = d.db.QueryRowContext(ctx, "SELECT payload FROM plans WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(idOrPrefix)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return decodePlan(payload)
}

// ListPlans returns plans newest first. An empty userID lists every user's
// plans; a limit of zero or less returns all of them.
func (d *DB) ListPlans(ctx context.Context, userID string, limit int) ([]*models.Plan, error) {
	query := "SELECT payload FROM plans"
	var args []any
	if userID != "" {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY plan_date DESC, created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p, err := decodePlan(payload)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan by ID or ID prefix.
func (d *DB) DeletePlan(ctx context.Context, idOrPrefix string) error {
	id, err := d.resolvePlanID(ctx, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	result, err := d.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected == 0 {
		return notFound(idOrPrefix)
	}
	return nil
}

// resolvePlanID finds the full ID from a prefix.
func (d *DB) resolvePlanID(ctx context.Context, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", notFound(idOrPrefix)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT id FROM plans WHERE id LIKE ? || '%' LIMIT 2`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve plan id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("resolve plan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve plan id: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", notFound(idOrPrefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple plans", idOrPrefix)
	}
}

func decodePlan(payload string) (*models.Plan, error) {
	var p models.Plan
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &p, nil
}
