// ABOUTME: CLI command for swapping an exercise for a safe alternative.
// ABOUTME: Respects the user's safety flags, injuries, and equipment tier.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/models"
)

var (
	swapEquipment string
	swapSeed      uint64
	swapAll       bool
	swapLimit     int
)

var swapCmd = &cobra.Command{
	Use:   "swap <exercise-id>",
	Short: "Find a safe replacement for an exercise",
	Long: `Find a replacement for an exercise in the same movement slot.

Replacements pass the same safety and equipment filters as generated plans.
Core exercises can be swapped for carries and carries for core work.

EXAMPLES:

  femfit swap goblet-squat             # One random safe replacement
  femfit swap goblet-squat --seed 7    # Reproducible pick
  femfit swap barbell-deadlift --all   # Easiest alternatives first`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := loadProfile(ctx)
		if err != nil {
			return err
		}
		service, store, err := newService()
		if err != nil {
			return err
		}
		tier := p.EquipmentTier
		if swapEquipment != "" {
			tier = models.EquipmentTier(swapEquipment)
		}

		original, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		if swapAll {
			alts, err := service.Alternatives(ctx, p.UserID, tier, args[0], swapLimit)
			if err != nil {
				return err
			}
			if len(alts) == 0 {
				color.Yellow("No safe alternatives for %s", original.Name)
				return nil
			}
			fmt.Printf("Alternatives for %s:\n", original.Name)
			faint := color.New(color.Faint)
			for _, a := range alts {
				fmt.Printf("  %s %s %s\n", padRight(a.ID, 28), a.Name, faint.Sprintf("(%s, %s)", a.Equipment, a.Difficulty))
			}
			return nil
		}

		var seed *uint64
		if cmd.Flags().Changed("seed") {
			s := swapSeed
			seed = &s
		} else {
			seed = cfg.SeedPtr()
		}
		alt, found, err := service.Swap(ctx, p.UserID, tier, args[0], seed)
		if err != nil {
			return err
		}
		if !found {
			color.Yellow("No safe alternative for %s", original.Name)
			return nil
		}
		color.Green("✓ %s → %s", original.Name, alt.Name)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(alt.ID), alt.MovementPattern)
		return nil
	},
}

func init() {
	swapCmd.Flags().StringVarP(&swapEquipment, "equipment", "e", "", "equipment tier (default: profile)")
	swapCmd.Flags().Uint64Var(&swapSeed, "seed", 0, "seed for a reproducible pick")
	swapCmd.Flags().BoolVarP(&swapAll, "all", "a", false, "list alternatives instead of picking one")
	swapCmd.Flags().IntVarP(&swapLimit, "limit", "n", 3, "max alternatives with --all")
	rootCmd.AddCommand(swapCmd)
}
