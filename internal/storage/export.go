// ABOUTME: Export and import functionality for profiles and plan history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// ExportData represents the full export format.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Profiles   []*models.Profile `json:"profiles" yaml:"profiles"`
	Plans      []*models.Plan    `json:"plans" yaml:"plans"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	profiles, err := d.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	plans, err := d.ListPlans(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "femfit",
		Profiles:   profiles,
		Plans:      plans,
	}, nil
}

// ImportData imports data from an export file. Profiles are upserted; plans
// must not already exist.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	for _, p := range data.Profiles {
		if err := d.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	if err := d.SavePlans(ctx, data.Plans); err != nil {
		return fmt.Errorf("import plans: %w", err)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &exportData)
}

// ExportYAML exports all data as YAML with plans grouped by user.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                `yaml:"version"`
		ExportedAt string                `yaml:"exported_at"`
		Tool       string                `yaml:"tool"`
		Profiles   []yamlProfile         `yaml:"profiles"`
		Plans      map[string][]yamlPlan `yaml:"plans"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Profiles:   make([]yamlProfile, 0, len(data.Profiles)),
		Plans:      make(map[string][]yamlPlan),
	}

	for _, p := range data.Profiles {
		yp := yamlProfile{
			UserID:          p.UserID,
			DateOfBirth:     p.DateOfBirth.Format(models.DateLayout),
			PelvicRisk:      p.PelvicRisk,
			BoneDensityRisk: p.BoneDensityRisk,
			CycleLength:     p.Cycle.AvgCycleLength,
			EquipmentTier:   string(p.EquipmentTier),
		}
		if p.Cycle.LastPeriodDate != nil {
			yp.LastPeriodDate = p.Cycle.LastPeriodDate.Format(models.DateLayout)
		}
		for _, inj := range p.Injuries {
			yp.Injuries = append(yp.Injuries, inj.BodyPart)
		}
		yamlData.Profiles = append(yamlData.Profiles, yp)
	}

	for _, p := range data.Plans {
		yp := yamlPlan{
			ID:              p.ID.String()[:8],
			Date:            p.Date,
			Protocol:        string(p.Protocol),
			DurationMinutes: p.EstimatedDurationMinutes,
			Exercises:       p.ExerciseIDs(),
		}
		if p.Phase != nil {
			yp.Phase = string(*p.Phase)
		}
		yamlData.Plans[p.UserID] = append(yamlData.Plans[p.UserID], yp)
	}

	return yaml.Marshal(yamlData)
}

type yamlProfile struct {
	UserID          string   `yaml:"user_id"`
	DateOfBirth     string   `yaml:"date_of_birth"`
	PelvicRisk      bool     `yaml:"pelvic_risk"`
	BoneDensityRisk bool     `yaml:"bone_density_risk"`
	LastPeriodDate  string   `yaml:"last_period_date,omitempty"`
	CycleLength     int      `yaml:"cycle_length"`
	EquipmentTier   string   `yaml:"equipment_tier,omitempty"`
	Injuries        []string `yaml:"injuries,omitempty"`
}

type yamlPlan struct {
	ID              string   `yaml:"id"`
	Date            string   `yaml:"date"`
	Protocol        string   `yaml:"protocol"`
	Phase           string   `yaml:"phase,omitempty"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Exercises       []string `yaml:"exercises"`
}

// ExportMarkdown exports plan history as Markdown tables, one section per
// user. An empty userID includes every user; since filters by plan date.
func (d *DB) ExportMarkdown(ctx context.Context, userID string, since *time.Time) (string, error) {
	plans, err := d.ListPlans(ctx, userID, 0)
	if err != nil {
		return "", err
	}

	if since != nil {
		cutoff := since.Format(models.DateLayout)
		var filtered []*models.Plan
		for _, p := range plans {
			if p.Date >= cutoff {
				filtered = append(filtered, p)
			}
		}
		plans = filtered
	}

	grouped := make(map[string][]*models.Plan)
	for _, p := range plans {
		grouped[p.UserID] = append(grouped[p.UserID], p)
	}
	users := make([]string, 0, len(grouped))
	for u := range grouped {
		users = append(users, u)
	}
	sort.Strings(users)

	var sb strings.Builder
	now := time.Now()
	sb.WriteString(fmt.Sprintf("# Training History - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(users) == 0 {
		sb.WriteString("No plans recorded.\n")
		return sb.String(), nil
	}

	for _, u := range users {
		sb.WriteString(fmt.Sprintf("## %s\n\n", u))
		sb.WriteString("| Date | Protocol | Phase | Exercises | Duration |\n")
		sb.WriteString("|------|----------|-------|-----------|----------|\n")
		for _, p := range grouped[u] {
			phase := "-"
			if p.Phase != nil {
				phase = string(*p.Phase)
			}
			names := make([]string, 0, len(p.MainWorkout))
			for _, b := range p.MainWorkout {
				names = append(names, b.ExerciseName)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d min |\n",
				p.Date, p.Protocol, phase, strings.Join(names, ", "), p.EstimatedDurationMinutes))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
