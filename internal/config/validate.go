package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func Validate(cfg Config) error {
	problems := []string{}

	if cfg.Version != 1 {
		problems = append(problems, "version must be 1")
	}
	if cfg.Tracker.Max < 0 {
		problems = append(problems, "tracker.max must be >= 0")
	}
	if cfg.Tracker.SMAWindow < 1 {
		problems = append(problems, "tracker.sma_window must be >= 1")
	}
	if cfg.Tracker.MinInterval < 0 {
		problems = append(problems, "tracker.min_interval must be >= 0")
	}
	for key := range cfg.Tracker.Fields {
		if strings.HasPrefix(key, "_") {
			problems = append(problems, fmt.Sprintf("tracker field %q is internal and would never be displayed", key))
		}
	}

	switch cfg.Output.Interactive {
	case InteractiveAuto, InteractiveAlways, InteractiveNever:
	default:
		problems = append(problems, fmt.Sprintf("output.interactive %q must be auto, always, or never", cfg.Output.Interactive))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
