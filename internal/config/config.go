// Package config loads the optional YAML settings file for the scraper.
// Every field has a sensible default; a missing file path means pure
// defaults, so the CLI works with no configuration at all.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/nfl-spreads/internal/fetch"
	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

type Config struct {
	Scrape ScrapeConfig `yaml:"scrape"`
}

type ScrapeConfig struct {
	// UserAgent identifies the scraper to the source sites.
	UserAgent string `yaml:"user_agent"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout"`
	// Concurrency is the per-season worker-pool width.
	Concurrency int `yaml:"concurrency"`
	// BatchTimeout bounds one season's whole fetch batch; zero means no
	// deadline.
	BatchTimeout time.Duration `yaml:"batch_timeout"`
	// EarliestSeason is the first season fetched when no year filter is
	// given.
	EarliestSeason int `yaml:"earliest_season"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scrape: ScrapeConfig{
			UserAgent:      fetch.UserAgent,
			Timeout:        fetch.Timeout,
			Concurrency:    runtime.NumCPU(),
			EarliestSeason: nfl.EarliestDataSeason,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Scrape.Concurrency < 1 {
		return fmt.Errorf("scrape.concurrency must be positive, got %d", c.Scrape.Concurrency)
	}
	if c.Scrape.EarliestSeason < nfl.EarliestDataSeason {
		return fmt.Errorf("scrape.earliest_season must be %d or later, got %d",
			nfl.EarliestDataSeason, c.Scrape.EarliestSeason)
	}
	return nil
}
