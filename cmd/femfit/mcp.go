// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to build plans and read your training history through
a standardized protocol. The server communicates via stdin/stdout; logs go to
stderr. Catalog overlay files in catalog_dir are reloaded when they change.

CONFIGURATION:

  {
    "mcpServers": {
      "femfit": {
        "command": "femfit",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  generate_plan            Generate and save a plan (or a week of plans)
  update_profile           Create or update a health profile
  get_screening_questions  Screening questions for a user's age group
  process_screening        Score answers into risk flags
  current_phase            Protocol and cycle phase for a date
  find_alternatives        Safe replacements for an exercise
  list_plans               Recent plans
  get_plan                 One plan by ID prefix
  delete_plan              Delete a plan

AVAILABLE RESOURCES:

  femfit://profile         Default user's profile and current phase
  femfit://plans/recent    Last 10 plans
  femfit://catalog         The active exercise catalog`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cfg.OpenCatalog(logger)
		if err != nil {
			return err
		}
		tier, err := equipment.ParseTier(cfg.Equipment)
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(db, store, cfg.NewEngine(logger), mcp.Options{
			DefaultUser:   cfg.DefaultUser,
			EquipmentTier: tier,
			Frequency:     cfg.Frequency,
			IncludeCardio: cfg.IncludeCardio,
			Seed:          cfg.SeedPtr(),
			Log:           logger,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Infof("femfit MCP server ready (catalog: %d exercises)", store.Len())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
