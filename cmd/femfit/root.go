// ABOUTME: Root Cobra command for femfit CLI.
// ABOUTME: Loads config, logger, and the SQLite store via PersistentPre/PostRunE.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scar96-claude/femtech-fitness-app/internal/catalog"
	"github.com/scar96-claude/femtech-fitness-app/internal/config"
	"github.com/scar96-claude/femtech-fitness-app/internal/engine"
	"github.com/scar96-claude/femtech-fitness-app/internal/logging"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

var (
	cfgFile  string
	logLevel string
	userFlag string

	cfg    *config.Config
	db     *storage.DB
	logger *logrus.Logger

	// now is replaced in tests.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "femfit",
	Short: "Safety-first workout plans for women",
	Long: `femfit builds strength workouts around your health profile.

HOW IT WORKS:

  Under 40     Cycle Sync protocol: intensity follows your menstrual phase
  40 and over  Osteo Strong protocol: heavy loading plus impact for bone health

  Every plan runs through safety filters driven by your screening answers
  (pelvic floor, bone density) and your injury history, then through an
  equipment filter for what you have at home or at the gym.

QUICK START:

  $ femfit profile init --dob 1994-05-02 --last-period 2024-06-05
  $ femfit screen questions             # See the screening questions
  $ femfit screen answer pelvic-1=yes   # Record answers, set risk flags
  $ femfit generate                     # Today's workout
  $ femfit generate --week --frequency 4
  $ femfit swap goblet-squat            # Safe replacement for one exercise

HISTORY:

  $ femfit history list                 # Generated plans, newest first
  $ femfit export markdown              # Training log as Markdown

MCP INTEGRATION:

  Run 'femfit mcp' to start the Model Context Protocol server for AI
  assistants. Add to your assistant's config:

  {
    "mcpServers": {
      "femfit": { "command": "femfit", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  ~/.config/femfit/config.yaml, overridable with FEMFIT_* environment
  variables (for example FEMFIT_EQUIPMENT=home_gym).

DATA STORAGE:

  Profiles and plans are stored in SQLite at ~/.local/share/femfit/femfit.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		c, err := config.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.LogLevel = logLevel
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", c.Path(), err)
		}

		log, err := logging.New(c.LogLevel)
		if err != nil {
			return err
		}
		cfg, logger = c, log

		db, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debugf("using database %s", db.Path())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			err := db.Close()
			db = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/femfit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user ID (default from config default_user)")
}

// currentUser resolves --user, then the configured default user.
func currentUser() (string, error) {
	if userFlag != "" {
		return userFlag, nil
	}
	if cfg != nil && cfg.DefaultUser != "" {
		return cfg.DefaultUser, nil
	}
	return "", errors.New("no user selected: pass --user or run 'femfit profile init'")
}

// loadProfile fetches the current user's profile with a friendly error.
func loadProfile(ctx context.Context) (*models.Profile, error) {
	userID, err := currentUser()
	if err != nil {
		return nil, err
	}
	p, err := db.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no profile for %s: run 'femfit profile init' first", userID)
	}
	return p, err
}

// newService wires the configured engine to the catalog and database.
func newService() (*engine.Service, *catalog.Store, error) {
	store, err := cfg.OpenCatalog(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return engine.NewService(cfg.NewEngine(logger), store, db), store, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
