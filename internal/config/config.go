// Package config loads settings from defaults, a YAML file, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/conorfennell/smartlearner/internal/schedule"
)

// EnvPrefix prefixes environment overrides, e.g. SMARTLEARNER_FOLDER.
const EnvPrefix = "SMARTLEARNER_"

// Config holds the settings of a run.
type Config struct {
	// Folder holds the database and the audio folder.
	Folder    string `koanf:"folder" validate:"required"`
	DB        string `koanf:"db" validate:"required"`
	LogLevel  string `koanf:"loglevel" validate:"oneof=debug info warn error"`
	Intervals []int  `koanf:"intervals" validate:"required,min=1,dive,gte=0"`

	// Set from flags only.
	ConfigFile string `koanf:"config"`
	Import     string `koanf:"import"`
	Deck       string `koanf:"deck"`
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	f := pflag.NewFlagSet("smartlearner", pflag.ContinueOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("folder", "", "Folder holding decks and audio")
	f.String("db", "", "Path to the SQLite database file (default <folder>/smartlearner.db)")
	f.String("loglevel", "info", "Log level: debug, info, warn or error")
	f.String("import", "", "Folder of markdown cards to import")
	f.String("deck", "", "Deck to import into (created when missing)")
	return f
}

// DefaultFolder returns $XDG_DATA_HOME/smartlearner, falling back to
// ~/.local/share/smartlearner.
func DefaultFolder() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "smartlearner")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "smartlearner"
	}
	return filepath.Join(home, ".local", "share", "smartlearner")
}

// Load builds the configuration. flags must already be parsed; only flags
// set explicitly override the file and environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"folder":    DefaultFolder(),
		"loglevel":  "info",
		"intervals": []int(schedule.DefaultIntervals()),
	}
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	path, _ := flags.GetString("config")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.DB == "" && cfg.Folder != "" {
		cfg.DB = filepath.Join(cfg.Folder, "smartlearner.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the interval table.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := schedule.Intervals(c.Intervals).Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Scheduler builds the review scheduler from the interval table.
func (c *Config) Scheduler() (*schedule.Scheduler, error) {
	return schedule.NewScheduler(schedule.Intervals(c.Intervals))
}
