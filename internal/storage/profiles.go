// ABOUTME: Profile and injury persistence for SQLite storage.
// ABOUTME: Profiles are upserted whole; injuries are replaced on every save.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// SaveProfile inserts or replaces a profile and its injury history.
func (d *DB) SaveProfile(ctx context.Context, p *models.Profile) error {
	if p.UserID == "" {
		return errors.New("save profile: empty user id")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()

	flagged, err := json.Marshal(p.FlaggedQuestions)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO profiles (user_id, date_of_birth, pelvic_risk, bone_density_risk,
			last_period_date, avg_cycle_length, regularity, equipment_tier,
			flagged_questions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			date_of_birth = excluded.date_of_birth,
			pelvic_risk = excluded.pelvic_risk,
			bone_density_risk = excluded.bone_density_risk,
			last_period_date = excluded.last_period_date,
			avg_cycle_length = excluded.avg_cycle_length,
			regularity = excluded.regularity,
			equipment_tier = excluded.equipment_tier,
			flagged_questions = excluded.flagged_questions,
			updated_at = excluded.updated_at
	`
	_, err = tx.ExecContext(ctx, query,
		p.UserID,
		p.DateOfBirth.Format(models.DateLayout),
		p.PelvicRisk,
		p.BoneDensityRisk,
		formatDate(p.Cycle.LastPeriodDate),
		p.Cycle.AvgCycleLength,
		string(p.Cycle.Regularity),
		string(p.EquipmentTier),
		string(flagged),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM injuries WHERE user_id = ?", p.UserID); err != nil {
		return fmt.Errorf("save injuries: %w", err)
	}
	for _, inj := range p.Injuries {
		var date *time.Time
		if !inj.Date.IsZero() {
			date = &inj.Date
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO injuries (user_id, body_part, injury_type, injury_date, notes) VALUES (?, ?, ?, ?, ?)`,
			p.UserID, inj.BodyPart, inj.Type, formatDate(date), inj.Notes)
		if err != nil {
			return fmt.Errorf("save injuries: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by user ID. Missing profiles return ErrNotFound.
func (d *DB) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, date_of_birth, pelvic_risk, bone_density_risk, last_period_date,
			avg_cycle_length, regularity, equipment_tier, flagged_questions, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`
	p, err := scanProfile(d.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if p.Injuries, err = d.listInjuries(ctx, userID); err != nil {
		return nil, err
	}
	return p, nil
}

// Profile implements the engine's profile provider: a missing profile is
// reported as nil with no error.
func (d *DB) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := d.GetProfile(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// ListProfiles returns every stored profile ordered by creation time.
func (d *DB) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT user_id, date_of_birth, pelvic_risk, bone_density_risk, last_period_date,
			avg_cycle_length, regularity, equipment_tier, flagged_questions, created_at, updated_at
		FROM profiles
		ORDER BY created_at ASC
	`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	for _, p := range profiles {
		if p.Injuries, err = d.listInjuries(ctx, p.UserID); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// DeleteProfile removes a profile, its injuries, and its plan history.
func (d *DB) DeleteProfile(ctx context.Context, userID string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return notFound(userID)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM plans WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete plans: %w", err)
	}
	return tx.Commit()
}

func (d *DB) listInjuries(ctx context.Context, userID string) ([]models.Injury, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT body_part, injury_type, injury_date, notes FROM injuries WHERE user_id = ? ORDER BY id ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list injuries: %w", err)
	}
	defer rows.Close()

	var injuries []models.Injury
	for rows.Next() {
		var inj models.Injury
		var injuryType, date, notes sql.NullString
		if err := rows.Scan(&inj.BodyPart, &injuryType, &date, &notes); err != nil {
			return nil, fmt.Errorf("scan injury: %w", err)
		}
		inj.Type = injuryType.String
		inj.Notes = notes.String
		if date.Valid && date.String != "" {
			if inj.Date, err = time.Parse(models.DateLayout, date.String); err != nil {
				return nil, fmt.Errorf("parse injury date: %w", err)
			}
		}
		injuries = append(injuries, inj)
	}
	return injuries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*models.Profile, error) {
	var (
		p                    models.Profile
		dob, created, update string
		lastPeriod, tier     sql.NullString
		flagged              sql.NullString
		regularity           string
	)
	err := row.Scan(&p.UserID, &dob, &p.PelvicRisk, &p.BoneDensityRisk, &lastPeriod,
		&p.Cycle.AvgCycleLength, &regularity, &tier, &flagged, &created, &update)
	if err != nil {
		return nil, err
	}

	if p.DateOfBirth, err = time.Parse(models.DateLayout, dob); err != nil {
		return nil, fmt.Errorf("parse date of birth: %w", err)
	}
	if lastPeriod.Valid && lastPeriod.String != "" {
		t, err := time.Parse(models.DateLayout, lastPeriod.String)
		if err != nil {
			return nil, fmt.Errorf("parse last period date: %w", err)
		}
		p.Cycle.LastPeriodDate = &t
	}
	p.Cycle.Regularity = models.Regularity(regularity)
	p.EquipmentTier = models.EquipmentTier(tier.String)
	if flagged.Valid && flagged.String != "" && flagged.String != "null" {
		if err := json.Unmarshal([]byte(flagged.String), &p.FlaggedQuestions); err != nil {
			return nil, fmt.Errorf("parse flagged questions: %w", err)
		}
	}
	if p.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(update); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(models.DateLayout)
}
