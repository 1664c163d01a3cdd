package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"github.com/danchr/progress/internal/exitcode"
	"github.com/danchr/progress/internal/progress"
	"github.com/spf13/cobra"
)

func newDemoCommand(app *AppContext) *cobra.Command {
	var count int
	var delay time.Duration
	var unbounded bool
	var failAt int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Drive a tracker through a simulated workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return withExitCode(exitcode.InvalidUsage, fmt.Errorf("--count must be >= 0"))
			}
			if failAt < 0 {
				return withExitCode(exitcode.InvalidUsage, fmt.Errorf("--fail-at must be >= 0"))
			}

			sess, err := newSession(app)
			if err != nil {
				return err
			}
			defer sess.Close()
			if !cmd.Flags().Changed("count") {
				count = int(sess.cfg.Tracker.Max)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), interruptSignals()...)
			defer stop()

			items := make([]int, count)
			for i := range items {
				items[i] = i + 1
			}

			work := sess.newTracker(!unbounded, int64(count))
			runErr := sess.observe(work, func() error {
				for item := range progress.IterSlice(work, items) {
					if err := sleepContext(ctx, delay); err != nil {
						return fmt.Errorf("demo stopped at item %d: %w", item, ErrInterrupted)
					}
					if failAt > 0 && item == failAt {
						return fmt.Errorf("simulated failure at item %d", item)
					}
				}
				return nil
			})

			switch {
			case runErr == nil:
				return nil
			case errors.Is(runErr, ErrInterrupted):
				return withExitCode(exitcode.Interrupted, runErr)
			default:
				return withExitCode(exitcode.RuntimeFailure, runErr)
			}
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of simulated work items (default: tracker.max)")
	cmd.Flags().DurationVar(&delay, "delay", 25*time.Millisecond, "Simulated time per item")
	cmd.Flags().BoolVar(&unbounded, "unbounded", false, "Track without a known total")
	cmd.Flags().IntVar(&failAt, "fail-at", 0, "Fail while processing this item (1-based, 0 disables)")
	return cmd
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
