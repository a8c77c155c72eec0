// ABOUTME: CLI command for showing the current training protocol and cycle phase.
// ABOUTME: Works from the stored profile or from explicit cycle flags.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/cycle"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/router"
)

var (
	phaseLastPeriod  string
	phaseCycleLength int
	phaseDate        string
)

var phaseCmd = &cobra.Command{
	Use:   "phase",
	Short: "Show your cycle phase and training focus",
	Long: `Show where you are in your cycle and what that means for training.

PHASES (28-day cycle, scaled to your cycle length):

  menstrual    days 1-5    low intensity, mobility and light strength
  follicular   days 6-14   high intensity, progressive overload
  ovulatory    days 15-17  peak strength, watch joint stability
  luteal       days 18-28  moderate intensity, steady-state work

Users 40 and over follow the Osteo Strong protocol, which is not phase-based.

EXAMPLES:

  femfit phase
  femfit phase --date 2024-07-01
  femfit phase --last-period 2024-06-05 --cycle-length 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := now()
		if phaseDate != "" {
			d, err := parseDate(phaseDate)
			if err != nil {
				return err
			}
			day = d
		}

		var (
			lastPeriod time.Time
			length     = phaseCycleLength
		)
		if phaseLastPeriod != "" {
			lp, err := parseDate(phaseLastPeriod)
			if err != nil {
				return err
			}
			lastPeriod = lp
		} else {
			p, err := loadProfile(cmd.Context())
			if err != nil {
				return err
			}
			if router.ProtocolFor(p.DateOfBirth, day) == models.ProtocolOsteoStrong {
				fmt.Printf("%s Osteo Strong protocol (age %d)\n", color.CyanString("●"), router.Age(p.DateOfBirth, day))
				fmt.Println("  Training is not phase-based: heavy compound lifts plus impact work for bone density.")
				return nil
			}
			if p.Cycle.LastPeriodDate == nil {
				return fmt.Errorf("no last period date recorded: run 'femfit profile set --last-period YYYY-MM-DD'")
			}
			lastPeriod = *p.Cycle.LastPeriodDate
			if !cmd.Flags().Changed("cycle-length") {
				length = p.Cycle.AvgCycleLength
			}
		}

		info := cycle.Calculate(lastPeriod, day, length)
		conf := cycle.ConfigFor(info.Phase)

		fmt.Printf("%s %s phase, day %d of %d\n",
			color.MagentaString("●"), color.New(color.Bold).Sprint(info.Phase), info.DayOfCycle, info.CycleLength)
		fmt.Printf("  Intensity:  %s\n", conf.Intensity)
		fmt.Printf("  Strength:   %d x %d, %ds rest, RPE %d\n", conf.Sets, conf.Reps, conf.RestSeconds, conf.TargetRPE)
		fmt.Printf("  Cardio:     %s\n", conf.CardioType)
		fmt.Printf("  Next phase: in %d days\n", info.DaysUntilNextPhase)
		return nil
	},
}

func init() {
	phaseCmd.Flags().StringVar(&phaseLastPeriod, "last-period", "", "first day of last period (YYYY-MM-DD), instead of the profile")
	phaseCmd.Flags().IntVar(&phaseCycleLength, "cycle-length", cycle.DefaultLength, "average cycle length in days")
	phaseCmd.Flags().StringVar(&phaseDate, "date", "", "date to check (YYYY-MM-DD), default today")
	rootCmd.AddCommand(phaseCmd)
}
