// Package config loads tasker settings from XDG paths, a YAML file and the
// environment.
//
// Precedence, highest first: command-line flags (applied by the CLI),
// TASKER_DB, the config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tasker/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "tasker"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.yaml"

	// DatabaseFile is the default database filename inside the data directory.
	DatabaseFile = "tasks.db"

	// EnvDatabase overrides the database path.
	EnvDatabase = "TASKER_DB"
)

// Config holds user settings. The json tags are used for schema validation.
type Config struct {
	// Database is the SQLite file path.
	Database string `yaml:"database" json:"database"`

	// Format is the default output format ("text" or "json").
	Format string `yaml:"format" json:"format"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Priorities is the set offered by the interactive shell.
	Priorities []string `yaml:"priorities" json:"priorities"`

	// StrictPriorities rejects priorities outside Priorities when adding.
	StrictPriorities bool `yaml:"strict_priorities" json:"strict_priorities"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database:   DefaultDatabasePath(),
		Format:     "text",
		LogLevel:   "info",
		Priorities: append([]string(nil), task.DefaultPriorities...),
	}
}

// Load reads the config file at the default location.
// A missing file is not an error; defaults are returned.
func Load() (*Config, error) {
	cfg, err := load(DefaultPath())
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		applyEnv(cfg)
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// LoadFile reads the config file at path. The file must exist.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	if db := os.Getenv(EnvDatabase); db != "" {
		cfg.Database = db
	}
}

// SlogLevel converts LogLevel to a slog.Level. Unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFile)
}

// DefaultDatabasePath returns the default database file path.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultDataDir(), DatabaseFile)
}

// EnsureDataDir creates the directory holding the database if it doesn't
// exist. Directory is created with mode 0700.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(filepath.Dir(c.Database), 0700)
}
