// ABOUTME: CLI commands for creating and editing the health profile.
// ABOUTME: Covers birth date, cycle tracking, equipment, and injury history.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/cycle"
	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/router"
	"github.com/scar96-claude/femtech-fitness-app/internal/safety"
)

var (
	profileDOB         string
	profileLastPeriod  string
	profileCycleLength int
	profileEquipment   string
	profileRegularity  string

	injuryType  string
	injuryDate  string
	injuryNotes string
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Manage your health profile",
	Long: `Manage the health profile used to personalize plans.

The profile stores your birth date (which picks the training protocol),
cycle tracking data, equipment tier, screening flags, and injuries.

EXAMPLES:

  femfit profile init --dob 1994-05-02 --last-period 2024-06-05
  femfit profile show
  femfit profile set --equipment home_gym --cycle-length 30
  femfit profile injury add knee --type "ACL repair" --date 2023-02-01
  femfit profile injury clear`,
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a profile",
	Long: `Create a new health profile.

Without --user a new ID is generated. The first profile created becomes the
default_user in your config so later commands can omit --user.

EXAMPLES:

  femfit profile init --dob 1994-05-02
  femfit profile init --dob 1978-11-20 --equipment full_gym
  femfit --user maya profile init --dob 1994-05-02 --last-period 2024-06-05 --cycle-length 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if profileDOB == "" {
			return fmt.Errorf("--dob is required")
		}
		dob, err := parseDate(profileDOB)
		if err != nil {
			return err
		}

		p := models.NewProfile(dob)
		if userFlag != "" {
			p.UserID = userFlag
		}
		existing, err := db.Profile(ctx, p.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("profile %s already exists (use 'femfit profile set')", p.UserID)
		}

		if err := applyProfileFlags(cmd, p); err != nil {
			return err
		}
		if err := db.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		color.Green("✓ Created profile %s", p.UserID)

		if cfg.DefaultUser == "" {
			cfg.DefaultUser = p.UserID
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("  default user set in %s\n", cfg.Path())
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile(cmd.Context())
		if err != nil {
			return err
		}

		today := now()
		protocol := router.ProtocolFor(p.DateOfBirth, today)
		faint := color.New(color.Faint)

		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint("Profile"), p.UserID)
		fmt.Printf("  Born:       %s (age %d)\n", p.DateOfBirth.Format(models.DateLayout), router.Age(p.DateOfBirth, today))
		fmt.Printf("  Protocol:   %s\n", protocol)
		fmt.Printf("  Equipment:  %s\n", p.EquipmentTier)
		fmt.Printf("  Cycle:      %d days, %s\n", p.Cycle.AvgCycleLength, p.Cycle.Regularity)
		if p.Cycle.LastPeriodDate != nil {
			fmt.Printf("  Last period: %s\n", p.Cycle.LastPeriodDate.Format(models.DateLayout))
			if protocol == models.ProtocolCycleSync {
				info := cycle.Calculate(*p.Cycle.LastPeriodDate, today, p.Cycle.AvgCycleLength)
				fmt.Printf("  Phase:      %s (day %d)\n", info.Phase, info.DayOfCycle)
			}
		}
		fmt.Printf("  Pelvic risk: %t\n", p.PelvicRisk)
		fmt.Printf("  Bone risk:   %t\n", p.BoneDensityRisk)

		if len(p.Injuries) > 0 {
			fmt.Println("  Injuries:")
			for _, inj := range p.Injuries {
				line := "    - " + inj.BodyPart
				if inj.Type != "" {
					line += " (" + inj.Type + ")"
				}
				if !inj.Date.IsZero() {
					line += faint.Sprintf(" %s", inj.Date.Format(models.DateLayout))
				}
				fmt.Println(line)
			}
		}
		for _, f := range safety.ActiveFilters(p) {
			fmt.Printf("  %s %s\n", color.YellowString("!"), f)
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update one or more profile fields. Only the flags you pass change.

EXAMPLES:

  femfit profile set --last-period 2024-06-20
  femfit profile set --equipment full_gym
  femfit profile set --cycle-length 32 --regularity irregular`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := loadProfile(ctx)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dob") {
			dob, err := parseDate(profileDOB)
			if err != nil {
				return err
			}
			p.DateOfBirth = dob
		}
		if err := applyProfileFlags(cmd, p); err != nil {
			return err
		}
		if err := db.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		color.Green("✓ Updated profile %s", p.UserID)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"rm"},
	Short:   "Delete the profile and its plan history",
	Long: `Delete the profile, its injuries, and every generated plan.

CAUTION:

  This permanently deletes your data. There is no undo. Export first with
  'femfit export json -o backup.json' if you want a copy.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := currentUser()
		if err != nil {
			return err
		}
		if err := db.DeleteProfile(cmd.Context(), userID); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		color.Yellow("✗ Deleted profile %s", userID)
		return nil
	},
}

var injuryCmd = &cobra.Command{
	Use:   "injury",
	Short: "Manage injury history",
}

var injuryAddCmd = &cobra.Command{
	Use:   "add <body-part>",
	Short: "Record an injury",
	Long: `Record an injury. Exercises that load the injured area are excluded from
plans and swaps.

BODY PARTS:

  knee, shoulder, lower back, hip, ankle, wrist, elbow, neck

EXAMPLES:

  femfit profile injury add knee
  femfit profile injury add shoulder --type "rotator cuff strain" --date 2024-01-10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := loadProfile(ctx)
		if err != nil {
			return err
		}

		var date time.Time
		if injuryDate != "" {
			if date, err = parseDate(injuryDate); err != nil {
				return err
			}
		}
		p.WithInjury(args[0], injuryType, date)
		p.Injuries[len(p.Injuries)-1].Notes = injuryNotes

		if err := db.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		color.Green("✓ Recorded %s injury", args[0])
		return nil
	},
}

var injuryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all injuries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := loadProfile(ctx)
		if err != nil {
			return err
		}
		n := len(p.Injuries)
		p.Injuries = nil
		if err := db.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		color.Yellow("✗ Cleared %d injuries", n)
		return nil
	},
}

// applyProfileFlags copies the cycle and equipment flags the user passed.
func applyProfileFlags(cmd *cobra.Command, p *models.Profile) error {
	flags := cmd.Flags()
	if flags.Changed("last-period") {
		lp, err := parseDate(profileLastPeriod)
		if err != nil {
			return err
		}
		p.WithLastPeriod(lp)
	}
	if flags.Changed("cycle-length") {
		if profileCycleLength < 1 {
			return fmt.Errorf("cycle length must be positive, got %d", profileCycleLength)
		}
		p.WithCycleLength(profileCycleLength)
	}
	if flags.Changed("equipment") {
		tier, err := equipment.ParseTier(profileEquipment)
		if err != nil {
			return err
		}
		p.EquipmentTier = tier
	}
	if flags.Changed("regularity") {
		switch r := models.Regularity(profileRegularity); r {
		case models.RegularityRegular, models.RegularityIrregular, models.RegularityUnknown:
			p.Cycle.Regularity = r
		default:
			return fmt.Errorf("unknown regularity: %s (use regular, irregular, or unknown)", profileRegularity)
		}
	}
	return nil
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&profileDOB, "dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&profileLastPeriod, "last-period", "", "first day of your last period (YYYY-MM-DD)")
	cmd.Flags().IntVar(&profileCycleLength, "cycle-length", 28, "average cycle length in days")
	cmd.Flags().StringVarP(&profileEquipment, "equipment", "e", "", "equipment tier: bodyweight, home_gym, full_gym")
	cmd.Flags().StringVar(&profileRegularity, "regularity", "", "cycle regularity: regular, irregular, unknown")
}

func init() {
	addProfileFlags(profileInitCmd)
	addProfileFlags(profileSetCmd)

	injuryAddCmd.Flags().StringVarP(&injuryType, "type", "t", "", "injury type or diagnosis")
	injuryAddCmd.Flags().StringVar(&injuryDate, "date", "", "injury date (YYYY-MM-DD)")
	injuryAddCmd.Flags().StringVar(&injuryNotes, "notes", "", "optional notes")

	injuryCmd.AddCommand(injuryAddCmd, injuryClearCmd)
	profileCmd.AddCommand(profileInitCmd, profileShowCmd, profileSetCmd, profileDeleteCmd, injuryCmd)
	rootCmd.AddCommand(profileCmd)
}
