// ABOUTME: CLI command for generating workout plans.
// ABOUTME: Prints plans as Markdown or JSON and records them in history.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/engine"
	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

var (
	genEquipment string
	genFrequency int
	genCardio    bool
	genSeed      uint64
	genWeek      bool
	genJSON      bool
	genNoSave    bool
	genDate      string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate a workout plan",
	Long: `Generate a personalized, safety-filtered workout.

The protocol comes from your age: Cycle Sync under 40, Osteo Strong from 40.
Cycle Sync plans need a last period date on your profile.

OPTIONS:

  --equipment   bodyweight, home_gym, full_gym (default: profile, then config)
  --frequency   training days per week, 2-6 (default: config, 3)
  --cardio      add a cardio finisher
  --week        one plan per training day, spread across the week
  --seed        reproducible exercise selection
  --date        plan date (YYYY-MM-DD), default today
  --json        print JSON instead of Markdown
  --no-save     don't record the plan in history

EXAMPLES:

  femfit generate
  femfit generate --equipment full_gym --cardio
  femfit generate --week --frequency 4
  femfit generate --seed 42 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := loadProfile(ctx)
		if err != nil {
			return err
		}
		service, _, err := newService()
		if err != nil {
			return err
		}

		opts := engine.PlanOptions{
			EquipmentTier:    resolveTier(cmd, p),
			FrequencyPerWeek: cfg.Frequency,
			IncludeCardio:    cfg.IncludeCardio,
			Date:             now(),
			Seed:             cfg.SeedPtr(),
		}
		if cmd.Flags().Changed("frequency") {
			opts.FrequencyPerWeek = genFrequency
		}
		if cmd.Flags().Changed("cardio") {
			opts.IncludeCardio = genCardio
		}
		if cmd.Flags().Changed("seed") {
			seed := genSeed
			opts.Seed = &seed
		}
		if genDate != "" {
			if opts.Date, err = parseDate(genDate); err != nil {
				return err
			}
		}

		var plans []*models.Plan
		if genWeek {
			plans, err = service.GenerateWeek(ctx, p.UserID, opts)
		} else {
			var plan *models.Plan
			plan, err = service.Generate(ctx, p.UserID, opts)
			plans = []*models.Plan{plan}
		}
		if err != nil {
			return fmt.Errorf("failed to generate plan: %w", err)
		}

		if genJSON {
			var out any = plans
			if !genWeek {
				out = plans[0]
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			for _, plan := range plans {
				fmt.Print(storage.RenderPlan(plan))
			}
		}

		if genNoSave {
			return nil
		}
		if err := db.SavePlans(ctx, plans); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		for _, plan := range plans {
			color.Green("✓ Saved plan %s (%s)", plan.ID.String()[:8], plan.Date)
		}
		return nil
	},
}

// resolveTier picks --equipment, then the profile's tier, then the config.
func resolveTier(cmd *cobra.Command, p *models.Profile) models.EquipmentTier {
	if cmd.Flags().Changed("equipment") {
		return models.EquipmentTier(genEquipment)
	}
	if p.EquipmentTier != "" {
		return p.EquipmentTier
	}
	if tier, err := equipment.ParseTier(cfg.Equipment); err == nil {
		return tier
	}
	return models.TierBodyweight
}

func init() {
	generateCmd.Flags().StringVarP(&genEquipment, "equipment", "e", "", "equipment tier")
	generateCmd.Flags().IntVarP(&genFrequency, "frequency", "f", 3, "training days per week (2-6)")
	generateCmd.Flags().BoolVarP(&genCardio, "cardio", "c", false, "include a cardio finisher")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "seed for reproducible plans")
	generateCmd.Flags().BoolVarP(&genWeek, "week", "w", false, "generate the whole week")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "print JSON")
	generateCmd.Flags().BoolVar(&genNoSave, "no-save", false, "don't record the plan in history")
	generateCmd.Flags().StringVar(&genDate, "date", "", "plan date (YYYY-MM-DD)")
	rootCmd.AddCommand(generateCmd)
}
