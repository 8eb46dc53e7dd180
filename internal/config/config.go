// Package config resolves planboard settings: built-in defaults, then an
// optional YAML file, then PLANBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/planboard/internal/export"
	"github.com/alexanderramin/planboard/internal/history"
	"gopkg.in/yaml.v3"
)

// Config holds every user-tunable setting.
type Config struct {
	// DBPath is the SQLite file holding the plan, categories and history.
	DBPath string `yaml:"db"`
	// Locale selects export headers and labels: "en" or "ja".
	Locale string `yaml:"locale"`
	// SnapMinutes is the gesture granularity; FineSnapMinutes applies
	// while the fine modifier is held.
	SnapMinutes     int `yaml:"snap_minutes"`
	FineSnapMinutes int `yaml:"fine_snap_minutes"`
	HistoryCapacity int `yaml:"history_capacity"`
	// BoardRows is the number of terminal rows one board day spans.
	BoardRows int    `yaml:"board_rows"`
	Log       bool   `yaml:"log"`
	LogFile   string `yaml:"log_file"`
}

// Default returns the built-in settings rooted at dir, normally
// ~/.planboard.
func Default(dir string) Config {
	return Config{
		DBPath:          filepath.Join(dir, "planboard.db"),
		Locale:          string(export.LocaleEN),
		SnapMinutes:     15,
		FineSnapMinutes: 1,
		HistoryCapacity: history.DefaultCapacity,
		BoardRows:       48,
	}
}

// Dir returns ~/.planboard.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".planboard"), nil
}

// Path returns the config file location: PLANBOARD_CONFIG or
// <dir>/config.yaml.
func Path(dir string) string {
	if v := os.Getenv("PLANBOARD_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(dir, "config.yaml")
}

// Load resolves the configuration rooted at dir. A missing config file is
// not an error; an unreadable or invalid one is.
func Load(dir string) (Config, error) {
	cfg := Default(dir)
	path := Path(dir)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PLANBOARD_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("PLANBOARD_LOG"); v != "" {
		cfg.Log, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLANBOARD_HISTORY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryCapacity = n
		}
	}
	if v := os.Getenv("PLANBOARD_SNAP_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SnapMinutes = n
		}
	}
}

// Validate rejects settings the editor cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is empty"))
	}
	if _, err := export.ParseLocale(c.Locale); err != nil {
		errs = append(errs, err)
	}
	for name, g := range map[string]int{"snap_minutes": c.SnapMinutes, "fine_snap_minutes": c.FineSnapMinutes} {
		if g < 1 || g > 60 || 60%g != 0 {
			errs = append(errs, fmt.Errorf("%s: %d must divide an hour", name, g))
		}
	}
	if c.HistoryCapacity < 1 {
		errs = append(errs, fmt.Errorf("history_capacity: %d must be positive", c.HistoryCapacity))
	}
	if c.BoardRows < 24 {
		errs = append(errs, fmt.Errorf("board_rows: %d is below 24", c.BoardRows))
	}
	return errors.Join(errs...)
}

// ExportLocale returns the validated locale.
func (c Config) ExportLocale() export.Locale {
	l, err := export.ParseLocale(c.Locale)
	if err != nil {
		return export.LocaleEN
	}
	return l
}
