// Package config loads run parameters for the market simulation.
//
// Parameters come from built-in defaults, optionally overlaid by a single
// YAML file. Command-line flags are applied on top by the binary.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/mini-market/internal/agents"
	"github.com/talgya/mini-market/internal/engine"
)

// Config is the full set of run parameters.
type Config struct {
	// Width and Height size the toroidal grid.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Clients and Shops are the agent counts. Together they may not exceed
	// the number of grid cells.
	Clients int `yaml:"clients"`
	Shops   int `yaml:"shops"`

	// Days is how many days to simulate. Zero runs until interrupted.
	Days int `yaml:"days"`

	// Seed drives every random draw; the same seed replays the same run.
	Seed int64 `yaml:"seed"`

	ClientMoney     float64 `yaml:"client_money"`
	ShopMoney       float64 `yaml:"shop_money"`
	ScamProbability float64 `yaml:"scam_probability"`

	// Interval paces the day loop for watching a run live. Zero runs flat out.
	Interval time.Duration `yaml:"interval"`

	// Database is the SQLite file results are archived to. Empty disables
	// archiving.
	Database string `yaml:"database"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// Default returns the reference run: 30 clients and 5 shops on a 6×6 grid
// for 100 days.
func Default() Config {
	m := engine.DefaultModelConfig()
	return Config{
		Width:           m.Width,
		Height:          m.Height,
		Clients:         m.Clients,
		Shops:           m.Shops,
		Days:            100,
		Seed:            m.Seed,
		ClientMoney:     agents.DefaultClientMoney,
		ShopMoney:       agents.DefaultShopMoney,
		ScamProbability: agents.DefaultScamProbability,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the parameters describe a runnable simulation.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Width, c.Height))
	}
	if c.Clients < 0 || c.Shops < 0 {
		errs = append(errs, fmt.Errorf("agent counts cannot be negative (clients=%d, shops=%d)", c.Clients, c.Shops))
	}
	if cells := c.Width * c.Height; c.Width > 0 && c.Height > 0 && c.Clients+c.Shops > cells {
		errs = append(errs, fmt.Errorf("%d agents do not fit on %d cells", c.Clients+c.Shops, cells))
	}
	if c.Days < 0 {
		errs = append(errs, fmt.Errorf("days cannot be negative, got %d", c.Days))
	}
	if c.ScamProbability < 0 || c.ScamProbability > 1 {
		errs = append(errs, fmt.Errorf("scam_probability must be in [0, 1], got %g", c.ScamProbability))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Model returns the model parameters of this configuration.
func (c Config) Model() engine.ModelConfig {
	return engine.ModelConfig{
		Width:           c.Width,
		Height:          c.Height,
		Clients:         c.Clients,
		Shops:           c.Shops,
		Seed:            c.Seed,
		ClientMoney:     c.ClientMoney,
		ShopMoney:       c.ShopMoney,
		ScamProbability: c.ScamProbability,
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
