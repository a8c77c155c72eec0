// ABOUTME: femfit configuration management backed by viper.
// ABOUTME: Merges a YAML config file, FEMFIT_* environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/scar96-claude/femtech-fitness-app/internal/catalog"
	"github.com/scar96-claude/femtech-fitness-app/internal/engine"
	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/logging"
	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

// EnvPrefix prefixes environment overrides, e.g. FEMFIT_LOG_LEVEL.
const EnvPrefix = "FEMFIT"

// Safety holds opt-in safety behaviour.
type Safety struct {
	// NameAudit adds advisory warnings when catalog flags disagree with
	// exercise names.
	NameAudit bool `mapstructure:"name_audit"`
}

// Config stores femfit configuration.
type Config struct {
	// DataDir holds femfit.db. Supports ~ expansion. Defaults to
	// ~/.local/share/femfit.
	DataDir string `mapstructure:"data_dir"`

	// CatalogDir holds exercise overlay files merged over the built-in
	// catalog. Empty means the built-in catalog only.
	CatalogDir string `mapstructure:"catalog_dir"`

	// DefaultUser is used when a command gets no --user.
	DefaultUser string `mapstructure:"default_user"`

	Equipment     string `mapstructure:"equipment"`
	Frequency     int    `mapstructure:"frequency"`
	IncludeCardio bool   `mapstructure:"include_cardio"`
	LogLevel      string `mapstructure:"log_level"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`

	Safety Safety `mapstructure:"safety"`

	path string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("catalog_dir", "")
	v.SetDefault("default_user", "")
	v.SetDefault("equipment", "bodyweight")
	v.SetDefault("frequency", 3)
	v.SetDefault("include_cardio", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 0)
	v.SetDefault("safety.name_audit", false)
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := homedir.Dir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "femfit", "config.yaml")
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads the config from path, or the default path when empty. A
// missing file yields defaults plus environment overrides.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.path = path
	return &cfg, nil
}

// Path returns the file this config was loaded from.
func (c *Config) Path() string {
	if c.path == "" {
		return GetConfigPath()
	}
	return c.path
}

// Save writes the config back to its file.
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.Set("data_dir", c.DataDir)
	v.Set("catalog_dir", c.CatalogDir)
	v.Set("default_user", c.DefaultUser)
	v.Set("equipment", c.Equipment)
	v.Set("frequency", c.Frequency)
	v.Set("include_cardio", c.IncludeCardio)
	v.Set("log_level", c.LogLevel)
	v.Set("seed", c.Seed)
	v.Set("safety.name_audit", c.Safety.NameAudit)
	v.SetConfigType("yaml")

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0600)
}

// Validate checks values that would otherwise fail later at generation time.
func (c *Config) Validate() error {
	if _, err := equipment.ParseTier(c.Equipment); err != nil {
		return fmt.Errorf("equipment: %w", err)
	}
	if c.Frequency < engine.MinFrequency || c.Frequency > engine.MaxFrequency {
		return fmt.Errorf("frequency: %d is outside %d-%d", c.Frequency, engine.MinFrequency, engine.MaxFrequency)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// GetDataDir returns the data directory with ~ expanded, defaulting to the
// XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCatalogDir returns the overlay directory with ~ expanded.
func (c *Config) GetCatalogDir() string {
	return ExpandPath(c.CatalogDir)
}

// SeedPtr returns the configured seed, or nil when generation is random.
func (c *Config) SeedPtr() *uint64 {
	if c.Seed == 0 {
		return nil
	}
	s := c.Seed
	return &s
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// OpenStorage opens the SQLite database in the data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), "femfit.db"))
}

// OpenCatalog loads the exercise catalog with the configured overlays.
func (c *Config) OpenCatalog(log logrus.FieldLogger) (*catalog.Store, error) {
	return catalog.NewStore(c.GetCatalogDir(), log)
}

// NewEngine builds an engine honoring the configured safety options.
func (c *Config) NewEngine(log engine.Logger) *engine.Engine {
	return engine.New(engine.WithLogger(log), engine.WithNameAudit(c.Safety.NameAudit))
}
