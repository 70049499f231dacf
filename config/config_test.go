package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{
		MinShells:   1,
		MaxShells:   0,
		PlayerMaxHP: 0,
		DealerMaxHP: -1,
		MinItems:    3,
		MaxItems:    2,
		LogFormat:   "xml",
	}

	err := cfg.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if len(ve.Errors) != 6 {
		t.Errorf("expected 6 errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
	if !strings.Contains(err.Error(), "6 error(s)") {
		t.Errorf("error text should count errors: %q", err.Error())
	}
}

func TestValidate_ItemsWithinCatalog(t *testing.T) {
	tests := []struct {
		min, max int
		ok       bool
	}{
		{0, 8, true},
		{8, 8, true},
		{2, 9, false},
		{10, 10, false},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.MinItems, cfg.MaxItems = tt.min, tt.max
		err := cfg.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("items %d..%d: err = %v, want ok=%v", tt.min, tt.max, err, tt.ok)
		}
	}
}

func TestValidate_SingleShellRangeAllowed(t *testing.T) {
	cfg := Default()
	cfg.MinShells, cfg.MaxShells = 2, 2
	cfg.MinItems, cfg.MaxItems = 0, 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestFromEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("TUBE_ROULETTE_MAX_SHELLS", "6")
	t.Setenv("TUBE_ROULETTE_SEED", "42")

	cfg := Default()
	if err := FromEnv(&cfg); err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.MaxShells != 6 {
		t.Errorf("MaxShells = %d, want 6", cfg.MaxShells)
	}
	if cfg.MinShells != 2 {
		t.Errorf("unset MinShells should keep default, got %d", cfg.MinShells)
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("Seed = %v, want 42", cfg.Seed)
	}
}

func TestFromEnv_Error(t *testing.T) {
	t.Setenv("TUBE_ROULETTE_PLAYER_HP", "lots")

	cfg := Default()
	err := FromEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestWithSeed_DoesNotAliasOriginal(t *testing.T) {
	base := Default()
	a := base.WithSeed(1)
	b := base.WithSeed(2)

	if base.Seed != nil {
		t.Error("WithSeed should not modify the receiver")
	}
	if *a.Seed != 1 || *b.Seed != 2 {
		t.Errorf("seeds = %d, %d; want 1, 2", *a.Seed, *b.Seed)
	}
}
