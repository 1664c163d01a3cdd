package cli

import (
	"encoding/json"
	"fmt"

	"github.com/danchr/progress/internal/config"
	"github.com/danchr/progress/internal/exitcode"
	"github.com/spf13/cobra"
)

func newValidateCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate tracker and output settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			if err := config.Validate(cfg); err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			if app.Opts.JSON {
				payload := map[string]any{
					"valid":        true,
					"max":          cfg.Tracker.Max,
					"sma_window":   cfg.Tracker.SMAWindow,
					"min_interval": cfg.Tracker.MinInterval.String(),
				}
				return json.NewEncoder(app.IO.Out).Encode(payload)
			}
			_, err = fmt.Fprintln(app.IO.Out, "Config is valid.")
			return err
		},
	}
}
