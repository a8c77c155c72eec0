// ABOUTME: CLI commands for exporting and importing femfit data.
// ABOUTME: Supports JSON, YAML, Markdown, and a file-per-plan journal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/config"
	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

var (
	exportOutput string
	exportSince  string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export profiles and plan history",
	Long: `Export femfit data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Training history tables (for sharing with a coach)
  files      One Markdown file per plan under --dir, with YAML frontmatter

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include plans since this date (markdown only)
  --user         Only this user's plans (markdown and files)
  --dir          Journal directory for 'files' (default: data directory)

EXAMPLES:

  femfit export json                        # Export all data as JSON
  femfit export json -o backup.json         # Save to file
  femfit export yaml                        # Export as YAML
  femfit export markdown --since 2024-01-01 # Training log from 2024 onward
  femfit export files --dir ~/notes/femfit  # Plan journal`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "files"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = db.ExportJSON(ctx)
		case "yaml":
			data, err = db.ExportYAML(ctx)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := parseDate(exportSince)
				if err != nil {
					return err
				}
				since = &t
			}
			md, err := db.ExportMarkdown(ctx, userFlag, since)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(md)
		case "files":
			return exportFiles(cmd)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or files)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

func exportFiles(cmd *cobra.Command) error {
	dir := exportDir
	if dir == "" {
		dir = cfg.GetDataDir()
	}
	dir = config.ExpandPath(dir)

	plans, err := db.ListPlans(cmd.Context(), userFlag, 0)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	paths, err := storage.WritePlanFiles(dir, plans)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	color.Green("✓ Wrote %d plan files under %s", len(paths), dir)
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON export",
	Long: `Import profiles and plans from a JSON backup file.

Profiles with the same user ID are replaced. Plans with an ID that already
exists cause an error and nothing from the file's plans is imported.

EXAMPLES:

  femfit import backup.json               # Import from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := db.ImportJSON(cmd.Context(), data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include plans since date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "journal directory for the files format")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
