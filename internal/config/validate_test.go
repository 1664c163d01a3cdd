package config

import (
	"errors"
	"testing"
	"time"
)

func TestValidateSuccess(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateAllowsZeroInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tracker.MinInterval = 0
	cfg.Tracker.Max = 0
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateFailure(t *testing.T) {
	cfg := Config{
		Version: 2,
		Tracker: Tracker{
			Max:         -1,
			SMAWindow:   0,
			MinInterval: -time.Second,
			Fields:      map[string]any{"_hidden": true},
		},
		Output: Output{Interactive: "sometimes"},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Problems) != 6 {
		t.Fatalf("expected six problems, got %v", validationErr.Problems)
	}
}
