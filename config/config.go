// Package config holds the numeric house rules and diagnostics settings
// read once at game start.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/nathoo/tuberoulette/types"
)

// Config is read-only once a game starts.
type Config struct {
	MinShells   int    `env:"TUBE_ROULETTE_MIN_SHELLS"`
	MaxShells   int    `env:"TUBE_ROULETTE_MAX_SHELLS"`
	PlayerMaxHP int    `env:"TUBE_ROULETTE_PLAYER_HP"`
	DealerMaxHP int    `env:"TUBE_ROULETTE_DEALER_HP"`
	MinItems    int    `env:"TUBE_ROULETTE_MIN_ITEMS"`
	MaxItems    int    `env:"TUBE_ROULETTE_MAX_ITEMS"`
	Seed        *int64 `env:"TUBE_ROULETTE_SEED"`
	LogLevel    string `env:"TUBE_ROULETTE_LOG_LEVEL"`
	LogFormat   string `env:"TUBE_ROULETTE_LOG_FORMAT"`
}

// Default returns the standard rules: 2-8 shells, 4 HP each, 2-4 items per round.
func Default() Config {
	return Config{
		MinShells:   2,
		MaxShells:   8,
		PlayerMaxHP: 4,
		DealerMaxHP: 4,
		MinItems:    2,
		MaxItems:    4,
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}

// FromEnv overlays TUBE_ROULETTE_* environment variables onto cfg.
// Unset variables leave the existing values untouched.
func FromEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// WithSeed returns a copy of c with the seed fixed.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

// ValidationError collects every problem found in a Config.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config, %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Validate checks that the rules can produce a playable game.
func (c Config) Validate() error {
	ve := &ValidationError{}

	// At least one live and one blank must fit in every load.
	if c.MinShells < 2 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("min shells must be at least 2, got %d", c.MinShells))
	}
	if c.MaxShells < c.MinShells {
		ve.Errors = append(ve.Errors, fmt.Sprintf("max shells (%d) is below min shells (%d)", c.MaxShells, c.MinShells))
	}
	if c.PlayerMaxHP < 1 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("player HP must be positive, got %d", c.PlayerMaxHP))
	}
	if c.DealerMaxHP < 1 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("dealer HP must be positive, got %d", c.DealerMaxHP))
	}
	if c.MinItems < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("min items must not be negative, got %d", c.MinItems))
	}
	if c.MaxItems < c.MinItems {
		ve.Errors = append(ve.Errors, fmt.Sprintf("max items (%d) is below min items (%d)", c.MaxItems, c.MinItems))
	}
	// Hands are drawn without replacement from the catalog.
	if n := len(types.AllItems); c.MaxItems > n {
		ve.Errors = append(ve.Errors, fmt.Sprintf("max items (%d) exceeds the %d-item catalog", c.MaxItems, n))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		ve.Errors = append(ve.Errors, fmt.Sprintf("unknown log format %q (want text or json)", c.LogFormat))
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
