package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type LoadOptions struct {
	ExplicitPath string
	WorkingDir   string
	Env          map[string]string
}

type fileConfig struct {
	Version *int        `yaml:"version"`
	Tracker fileTracker `yaml:"tracker"`
	Output  fileOutput  `yaml:"output"`
}

type fileTracker struct {
	Max         *int64         `yaml:"max"`
	SMAWindow   *int           `yaml:"sma_window"`
	MinInterval *Interval      `yaml:"min_interval"`
	Extra       map[string]any `yaml:",inline"`
}

type fileOutput struct {
	Format          *string          `yaml:"format"`
	UnboundedFormat *string          `yaml:"unbounded_format"`
	Interactive     *InteractiveMode `yaml:"interactive"`
}

// Interval decodes either a Go duration string ("250ms") or a bare number
// of seconds ("0.25").
type Interval time.Duration

func (i *Interval) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: interval must be a scalar", node.Line)
	}
	parsed, err := ParseInterval(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*i = Interval(parsed)
	return nil
}

func ParseInterval(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed, nil
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", raw)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	cwd := opts.WorkingDir
	if strings.TrimSpace(cwd) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		path, err := ExpandPath(explicit)
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, path, true); err != nil {
			return Config{}, err
		}
	} else {
		userPath, err := UserConfigPath()
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return Config{}, err
		}

		if err := mergeFile(&cfg, ProjectConfigPath(cwd), false); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}

	normalize(&cfg)
	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file does not exist: %s", path)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Version != nil {
		cfg.Version = *fc.Version
	}
	if fc.Tracker.Max != nil {
		cfg.Tracker.Max = *fc.Tracker.Max
	}
	if fc.Tracker.SMAWindow != nil {
		cfg.Tracker.SMAWindow = *fc.Tracker.SMAWindow
	}
	if fc.Tracker.MinInterval != nil {
		cfg.Tracker.MinInterval = time.Duration(*fc.Tracker.MinInterval)
	}
	if len(fc.Tracker.Extra) > 0 {
		if cfg.Tracker.Fields == nil {
			cfg.Tracker.Fields = map[string]any{}
		}
		for key, value := range fc.Tracker.Extra {
			cfg.Tracker.Fields[key] = value
		}
	}

	if fc.Output.Format != nil {
		cfg.Output.Format = *fc.Output.Format
	}
	if fc.Output.UnboundedFormat != nil {
		cfg.Output.UnboundedFormat = *fc.Output.UnboundedFormat
	}
	if fc.Output.Interactive != nil {
		cfg.Output.Interactive = *fc.Output.Interactive
	}

	return nil
}

func applyEnvOverrides(cfg *Config, env map[string]string) error {
	if value := strings.TrimSpace(env["PROGRESS_MAX"]); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PROGRESS_MAX value %q: %w", value, err)
		}
		cfg.Tracker.Max = parsed
	}
	if value := strings.TrimSpace(env["PROGRESS_SMA_WINDOW"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid PROGRESS_SMA_WINDOW value %q: %w", value, err)
		}
		cfg.Tracker.SMAWindow = parsed
	}
	if value := strings.TrimSpace(env["PROGRESS_MIN_INTERVAL"]); value != "" {
		parsed, err := ParseInterval(value)
		if err != nil {
			return fmt.Errorf("invalid PROGRESS_MIN_INTERVAL value: %w", err)
		}
		cfg.Tracker.MinInterval = parsed
	}
	if value := strings.TrimSpace(env["PROGRESS_FORMAT"]); value != "" {
		cfg.Output.Format = value
	}
	if value := strings.TrimSpace(env["PROGRESS_INTERACTIVE"]); value != "" {
		cfg.Output.Interactive = InteractiveMode(strings.ToLower(value))
	}
	return nil
}

func normalize(cfg *Config) {
	if cfg.Tracker.Fields == nil {
		cfg.Tracker.Fields = map[string]any{}
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = DefaultFormat
	}
	if strings.TrimSpace(cfg.Output.UnboundedFormat) == "" {
		cfg.Output.UnboundedFormat = DefaultUnboundedFormat
	}
	cfg.Output.Interactive = InteractiveMode(strings.ToLower(strings.TrimSpace(string(cfg.Output.Interactive))))
	if cfg.Output.Interactive == "" {
		cfg.Output.Interactive = InteractiveAuto
	}
}

func osEnvMap() map[string]string {
	result := map[string]string{}
	for _, pair := range os.Environ() {
		pieces := strings.SplitN(pair, "=", 2)
		if len(pieces) == 2 {
			result[pieces[0]] = pieces[1]
		}
	}
	return result
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", dir, err)
	}
	return nil
}
