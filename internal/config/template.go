package config

import "fmt"

func DefaultTemplate() string {
	cfg := DefaultConfig()
	return fmt.Sprintf(`version: 1
tracker:
  max: %d
  sma_window: %d
  min_interval: %s
  # Any other key becomes a display field, e.g. {message} in output.format.
  message: "Working"
output:
  format: %q
  unbounded_format: %q
  interactive: %q
`, cfg.Tracker.Max, cfg.Tracker.SMAWindow, cfg.Tracker.MinInterval, cfg.Output.Format, cfg.Output.UnboundedFormat, cfg.Output.Interactive)
}
