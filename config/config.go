package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/SkouffyBates/BatesTrading-Vision/migrate"
	"github.com/SkouffyBates/BatesTrading-Vision/pkg/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvDBPath      = "BATES_DB_PATH"
	EnvLegacyDir   = "BATES_LEGACY_DIR"
	EnvMacroCutoff = "BATES_MACRO_CUTOFF"
	EnvTradeCutoff = "BATES_TRADE_CUTOFF"
	EnvLogLevel    = "BATES_LOG_LEVEL"
	EnvLogFormat   = "BATES_LOG_FORMAT"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Legacy    LegacyConfig    `json:"legacy" yaml:"legacy"`
	Migration MigrationConfig `json:"migration" yaml:"migration"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// DatabaseConfig locates the SQLite journal
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// LegacyConfig locates the folder of the file-based version of the app.
// Empty means migrate.DefaultLegacyDir.
type LegacyConfig struct {
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// MigrationConfig contains the age filters, as YYYY-MM-DD dates. An empty
// cutoff disables the filter.
type MigrationConfig struct {
	MacroCutoff string `json:"macro_cutoff" yaml:"macro_cutoff"`
	TradeCutoff string `json:"trade_cutoff,omitempty" yaml:"trade_cutoff,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads the given dotenv files (".env" when none are given), then
// overrides every setting whose environment variable is set. Missing dotenv
// files are ignored.
func (c *Config) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	override := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	override(EnvDBPath, &c.Database.Path)
	override(EnvLegacyDir, &c.Legacy.Dir)
	override(EnvMacroCutoff, &c.Migration.MacroCutoff)
	override(EnvTradeCutoff, &c.Migration.TradeCutoff)
	override(EnvLogLevel, &c.Log.Level)
	override(EnvLogFormat, &c.Log.Format)
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if _, err := migrate.ParseCutoff(c.Migration.MacroCutoff); err != nil {
		return fmt.Errorf("migration.macro_cutoff: %w", err)
	}
	if _, err := migrate.ParseCutoff(c.Migration.TradeCutoff); err != nil {
		return fmt.Errorf("migration.trade_cutoff: %w", err)
	}
	if _, err := logging.New(c.Log.Level, c.Log.Format, nil); err != nil {
		return err
	}
	return nil
}

// MacroCutoff returns the validated macro event cutoff.
func (c *Config) MacroCutoff() migrate.Cutoff {
	cut, _ := migrate.ParseCutoff(c.Migration.MacroCutoff)
	return cut
}

// TradeCutoff returns the validated trade cutoff.
func (c *Config) TradeCutoff() migrate.Cutoff {
	cut, _ := migrate.ParseCutoff(c.Migration.TradeCutoff)
	return cut
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./journal.db",
		},
		Migration: MigrationConfig{
			MacroCutoff: migrate.DefaultMacroCutoff,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}
