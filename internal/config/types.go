package config

import "time"

type InteractiveMode string

const (
	InteractiveAuto   InteractiveMode = "auto"
	InteractiveAlways InteractiveMode = "always"
	InteractiveNever  InteractiveMode = "never"
)

type Config struct {
	Version int     `yaml:"version"`
	Tracker Tracker `yaml:"tracker"`
	Output  Output  `yaml:"output"`
}

// Tracker holds the tracker settings. Keys the schema does not name are
// kept in Fields as opaque display values.
type Tracker struct {
	Max         int64          `yaml:"max"`
	SMAWindow   int            `yaml:"sma_window"`
	MinInterval time.Duration  `yaml:"min_interval"`
	Fields      map[string]any `yaml:",inline"`
}

type Output struct {
	Format          string          `yaml:"format"`
	UnboundedFormat string          `yaml:"unbounded_format"`
	Interactive     InteractiveMode `yaml:"interactive"`
}

const (
	DefaultFormat          = "{message} {index}/{max} {percent:.1f}% | elapsed {elapsed_td} | eta {eta_td} | {rate:.1f}/s"
	DefaultUnboundedFormat = "{message} {index} | elapsed {elapsed_td} | {rate:.1f}/s"
)

func DefaultConfig() Config {
	return Config{
		Version: 1,
		Tracker: Tracker{
			Max:         100,
			SMAWindow:   10,
			MinInterval: 100 * time.Millisecond,
			Fields:      map[string]any{},
		},
		Output: Output{
			Format:          DefaultFormat,
			UnboundedFormat: DefaultUnboundedFormat,
			Interactive:     InteractiveAuto,
		},
	}
}
