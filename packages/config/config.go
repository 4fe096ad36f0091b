// Package config handles configuration loading for domspec.
//
// Settings come from three layers: a .domspec.yaml file, DOMSPEC_*
// environment variables on top of it, and CLI flags on top of both
// (the CLI applies its own flags; this package resolves the first
// two).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the domspec configuration.
type Config struct {
	Driver       string  `yaml:"driver,omitempty" env:"DOMSPEC_DRIVER"`
	Output       string  `yaml:"output,omitempty" env:"DOMSPEC_OUTPUT"`
	Rate         float64 `yaml:"rate,omitempty" env:"DOMSPEC_RATE"`
	History      string  `yaml:"history,omitempty" env:"DOMSPEC_HISTORY"`
	SettleMillis int     `yaml:"settleMillis,omitempty" env:"DOMSPEC_SETTLE_MILLIS"`
	NoColor      *bool   `yaml:"noColor,omitempty" env:"DOMSPEC_NO_COLOR"`
	Verbose      *bool   `yaml:"verbose,omitempty" env:"DOMSPEC_VERBOSE"`
	StrictOrder  *bool   `yaml:"strictOrder,omitempty" env:"DOMSPEC_STRICT_ORDER"`
	Stats        *bool   `yaml:"stats,omitempty" env:"DOMSPEC_STATS"`
}

// Filenames contains the config file names searched in order.
var Filenames = []string{
	".domspec.yaml",
	".domspec.yml",
	"domspec.yaml",
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Driver:       "replay",
		Output:       "console",
		SettleMillis: 30000,
	}
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool { return getBool(c.NoColor, false) }

// GetVerbose returns the verbose setting, defaulting to false.
func (c *Config) GetVerbose() bool { return getBool(c.Verbose, false) }

// GetStrictOrder returns the strict ordering setting, defaulting to
// false.
func (c *Config) GetStrictOrder() bool { return getBool(c.StrictOrder, false) }

// GetStats returns the stats setting, defaulting to false.
func (c *Config) GetStats() bool { return getBool(c.Stats, false) }

// Settle returns the settle timeout as a duration.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.SettleMillis) * time.Millisecond
}

// Load reads the config file at path (or searches dir when path is
// empty), then applies DOMSPEC_* environment overrides.
func Load(path, dir string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findIn(dir)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func findIn(dir string) string {
	if dir == "" {
		dir = "."
	}
	for _, name := range Filenames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
