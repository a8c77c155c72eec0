// ABOUTME: CLI command for browsing the exercise catalog.
// ABOUTME: Filters by equipment tier, movement pattern, and the user's safety flags.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/safety"
)

var (
	catalogEquipment string
	catalogPattern   string
	catalogSafe      bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the exercise catalog",
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Long: `List catalog exercises.

OUTPUT FORMAT:

  Each line shows: ID  PATTERN  EQUIPMENT  DIFFICULTY  NAME  [markers]

  Markers: P = pelvic-safe, O = osteo-safe, ★ = priority, B = bone-building

FILTERING:

  --equipment   only exercises your tier can do (bodyweight, home_gym, full_gym)
  --pattern     SQUAT, HINGE, PUSH, PULL, CARRY, CORE, CARDIO
  --safe        apply your profile's safety filters

EXAMPLES:

  femfit catalog list
  femfit catalog list --pattern squat --equipment home_gym
  femfit catalog list --safe`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := cfg.OpenCatalog(logger)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		exercises, err := store.Exercises(ctx)
		if err != nil {
			return err
		}

		if catalogEquipment != "" {
			tier, err := equipment.ParseTier(catalogEquipment)
			if err != nil {
				return err
			}
			exercises = equipment.Filter(exercises, tier)
		}
		if catalogPattern != "" {
			if !models.IsValidMovementPattern(catalogPattern) {
				return fmt.Errorf("unknown movement pattern: %s", catalogPattern)
			}
			exercises = models.ByPattern(exercises, models.MovementPattern(strings.ToUpper(catalogPattern)))
		}
		if catalogSafe {
			p, err := loadProfile(ctx)
			if err != nil {
				return err
			}
			res := safety.Apply(exercises, p, safety.Options{NameAudit: cfg.Safety.NameAudit})
			exercises = res.Exercises
			for _, w := range res.Warnings {
				color.Yellow("! %s", w)
			}
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, ex := range exercises {
			fmt.Printf("%s %s %s %s %s %s\n",
				padRight(ex.ID, 28),
				padRight(string(ex.MovementPattern), 7),
				faint.Sprint(padRight(string(ex.Equipment), 10)),
				faint.Sprint(padRight(string(ex.Difficulty), 12)),
				truncate(ex.Name, 32),
				markers(ex))
		}
		return nil
	},
}

func markers(ex models.Exercise) string {
	var m []string
	if ex.PelvicSafe {
		m = append(m, "P")
	}
	if ex.OsteoSafe {
		m = append(m, "O")
	}
	if ex.Priority {
		m = append(m, "★")
	}
	if safety.IsBoneBuilding(ex.Name) {
		m = append(m, "B")
	}
	if len(m) == 0 {
		return ""
	}
	return color.New(color.Faint).Sprintf("[%s]", strings.Join(m, ""))
}

func init() {
	catalogListCmd.Flags().StringVarP(&catalogEquipment, "equipment", "e", "", "filter by equipment tier")
	catalogListCmd.Flags().StringVarP(&catalogPattern, "pattern", "p", "", "filter by movement pattern")
	catalogListCmd.Flags().BoolVar(&catalogSafe, "safe", false, "apply your profile's safety filters")

	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
