package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danchr/progress/internal/config"
	"golang.org/x/term"
)

// loadConfig loads the layered config and applies the global flag
// overrides. Callers validate the result.
func loadConfig(app *AppContext) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		ExplicitPath: strings.TrimSpace(app.Opts.ConfigPath),
		WorkingDir:   wd,
	})
	if err != nil {
		return config.Config{}, err
	}

	if mode := strings.ToLower(strings.TrimSpace(app.Opts.Progress)); mode != "" {
		cfg.Output.Interactive = config.InteractiveMode(mode)
	}
	if format := strings.TrimSpace(app.Opts.Format); format != "" {
		cfg.Output.Format = format
		cfg.Output.UnboundedFormat = format
	}
	return cfg, nil
}

func isTTY(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
