// ABOUTME: CLI command for copying data from another femfit database.
// ABOUTME: Moves profiles and plan history between machines or data directories.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/config"
	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

var (
	migrateFrom   string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data from another femfit database",
	Long: `Copy profiles and plans from another femfit database into the current one.

Use this after changing data_dir, or to merge a database copied from another
machine.

IMPORTANT:

  - Profiles with the same user ID are replaced by the source copy
  - Plans that already exist in the current database stop the migration
  - Run with --dry-run first to see what would be migrated

USAGE:

  femfit migrate --from ~/old/femfit.db --dry-run
  femfit migrate --from ~/old/femfit.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if migrateFrom == "" {
			return fmt.Errorf("--from is required")
		}
		from := config.ExpandPath(migrateFrom)
		if from == db.Path() {
			return fmt.Errorf("source and destination are the same database: %s", from)
		}

		src, err := storage.Open(from)
		if err != nil {
			return fmt.Errorf("failed to open source database: %w", err)
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			data, err := src.GetAllData(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("  Would migrate %d profiles and %d plans from %s\n", len(data.Profiles), len(data.Plans), from)
			return nil
		}

		summary, err := storage.MigrateData(ctx, src, db)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		color.Green("✓ Migrated %d profiles and %d plans", summary.Profiles, summary.Plans)
		fmt.Printf("  into %s\n", db.Path())
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source femfit.db path")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
