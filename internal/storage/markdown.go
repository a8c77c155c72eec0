// ABOUTME: Markdown rendering of generated plans and a file-per-plan journal.
// ABOUTME: Journal files carry YAML frontmatter and live under plans/YYYY/MM/.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

// planFrontmatter holds the YAML frontmatter of a plan journal file.
type planFrontmatter struct {
	ID              string   `yaml:"id"`
	UserID          string   `yaml:"user_id"`
	Date            string   `yaml:"date"`
	Protocol        string   `yaml:"protocol"`
	Phase           string   `yaml:"phase,omitempty"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Exercises       []string `yaml:"exercises"`
	ActiveFilters   []string `yaml:"active_filters,omitempty"`
	CreatedAt       string   `yaml:"created_at"`
}

// PlanFilePath returns the journal path for a plan.
// Format: plans/YYYY/MM/YYYY-MM-DD-<protocol>-<id_prefix>.md.
func PlanFilePath(dir string, p *models.Plan) string {
	year, month := "0000", "00"
	if d, err := time.Parse(models.DateLayout, p.Date); err == nil {
		year, month = d.Format("2006"), d.Format("01")
	}
	slug := strings.ReplaceAll(string(p.Protocol), "_", "-")
	return filepath.Join(dir, "plans", year, month,
		fmt.Sprintf("%s-%s-%s.md", p.Date, slug, p.ID.String()[:8]))
}

// WritePlanFiles writes one markdown file per plan under dir and returns the
// paths written.
func WritePlanFiles(dir string, plans []*models.Plan) ([]string, error) {
	paths := make([]string, 0, len(plans))
	for _, p := range plans {
		path := PlanFilePath(dir, p)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("create plan directory: %w", err)
		}

		fm := planFrontmatter{
			ID:              p.ID.String(),
			UserID:          p.UserID,
			Date:            p.Date,
			Protocol:        string(p.Protocol),
			DurationMinutes: p.EstimatedDurationMinutes,
			Exercises:       p.ExerciseIDs(),
			ActiveFilters:   p.ActiveFilters,
			CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		}
		if p.Phase != nil {
			fm.Phase = string(*p.Phase)
		}
		header, err := yaml.Marshal(fm)
		if err != nil {
			return nil, fmt.Errorf("marshal frontmatter: %w", err)
		}

		var sb strings.Builder
		sb.WriteString("---\n")
		sb.Write(header)
		sb.WriteString("---\n\n")
		sb.WriteString(RenderPlan(p))

		if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
			return nil, fmt.Errorf("write plan file: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// RenderPlan formats one plan as Markdown.
func RenderPlan(p *models.Plan) string {
	var sb strings.Builder

	title := "Osteo Strong"
	if p.Protocol == models.ProtocolCycleSync {
		title = "Cycle Sync"
	}
	sb.WriteString(fmt.Sprintf("# %s Workout - %s\n\n", title, p.Date))
	sb.WriteString(fmt.Sprintf("Day %d of %d · about %d minutes\n\n", p.DayNumber, p.TotalDays, p.EstimatedDurationMinutes))
	if p.Phase != nil && p.PhaseDetails != nil {
		sb.WriteString(fmt.Sprintf("Phase: **%s** (day %d of %d, %s intensity, next phase in %d days)\n\n",
			*p.Phase, p.PhaseDetails.DayOfCycle, p.PhaseDetails.CycleLength,
			p.PhaseDetails.Intensity, p.PhaseDetails.DaysUntilNextPhase))
	}

	if len(p.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range p.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
		sb.WriteString("\n")
	}

	writeTimed(&sb, "Warmup", p.Warmup)

	sb.WriteString("## Main Workout\n\n")
	if len(p.MainWorkout) == 0 {
		sb.WriteString("No exercises available for this plan.\n\n")
	} else {
		sb.WriteString("| Exercise | Pattern | Sets | Reps | Rest | RPE |\n")
		sb.WriteString("|----------|---------|------|------|------|-----|\n")
		for _, b := range p.MainWorkout {
			reps := b.RepsText
			if reps == "" {
				reps = fmt.Sprintf("%d", b.Reps)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %ds | %d |\n",
				b.ExerciseName, b.MovementPattern, b.Sets, reps, b.RestSeconds, b.TargetRPE))
		}
		sb.WriteString("\n")
		for _, b := range p.MainWorkout {
			if b.Notes != "" {
				sb.WriteString(fmt.Sprintf("- **%s**: %s\n", b.ExerciseName, b.Notes))
			}
		}
	}

	if p.Cardio != nil {
		sb.WriteString(fmt.Sprintf("\n## Cardio (%s, %d min)\n\n%s\n", p.Cardio.Type, p.Cardio.DurationMinutes, p.Cardio.Instructions))
	}
	sb.WriteString("\n")
	writeTimed(&sb, "Cooldown", p.Cooldown)

	if len(p.Substitutions) > 0 {
		sb.WriteString("## Substitutions\n\n")
		for _, s := range p.Substitutions {
			names := make([]string, 0, len(s.Candidates))
			for _, c := range s.Candidates {
				names = append(names, c.ExerciseName)
			}
			sb.WriteString(fmt.Sprintf("- %s → %s (%s)\n", s.OriginalName, strings.Join(names, ", "), s.Reason))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeTimed(sb *strings.Builder, title string, block models.TimedBlock) {
	sb.WriteString(fmt.Sprintf("## %s (%d min)\n\n", title, block.DurationMinutes))
	for _, m := range block.Exercises {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", m.Name, m.Duration))
	}
	sb.WriteString("\n")
}
