// ABOUTME: CLI commands for browsing generated plan history.
// ABOUTME: List, show, and delete plans by ID or ID prefix.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

var (
	historyLimit int
	historyAll   bool
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Browse generated plans",
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List generated plans",
	Long: `List generated plans, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  PROTOCOL  PHASE  MINUTES  EXERCISES

  The ID is an 8-character prefix you can use with show and delete.

EXAMPLES:

  femfit history list
  femfit history list -n 5
  femfit history list --all      # Every user's plans`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := ""
		if !historyAll {
			var err error
			if userID, err = currentUser(); err != nil {
				return err
			}
		}

		plans, err := db.ListPlans(cmd.Context(), userID, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}
		if len(plans) == 0 {
			fmt.Println("No plans found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range plans {
			phase := "-"
			if p.Phase != nil {
				phase = string(*p.Phase)
			}
			fmt.Printf("%s %s %s %s %s %s\n",
				faint.Sprint(p.ID.String()[:8]),
				p.Date,
				padRight(string(p.Protocol), 12),
				padRight(phase, 10),
				faint.Sprintf("%3d min", p.EstimatedDurationMinutes),
				truncate(strings.Join(p.ExerciseIDs(), ", "), 50))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a generated plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := db.GetPlan(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("plan not found: %w", err)
		}
		if historyJSON {
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		fmt.Print(storage.RenderPlan(p))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a generated plan",
	Long: `Delete a plan by its ID or ID prefix.

CAUTION:

  This permanently deletes the plan. There is no undo.
  If the prefix matches multiple plans, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := db.GetPlan(ctx, args[0])
		if err != nil {
			return fmt.Errorf("plan not found: %w", err)
		}
		if err := db.DeletePlan(ctx, p.ID.String()); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		color.Yellow("✗ Deleted plan %s", p.ID.String()[:8])
		fmt.Printf("  %s %s\n", p.Date, p.Protocol)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	historyListCmd.Flags().BoolVar(&historyAll, "all", false, "list every user's plans")
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "print JSON")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
