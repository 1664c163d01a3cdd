package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/danchr/progress/internal/exitcode"
	"github.com/spf13/cobra"
)

type countInput struct {
	name   string
	reader io.Reader
	size   int64
	closer io.Closer
}

type countResult struct {
	Lines int64 `json:"lines"`
	Bytes int64 `json:"bytes"`
}

func newCountCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count [file...]",
		Short: "Count lines while reporting byte throughput",
		Long:  "count reads files, or stdin when none are given, and reports progress in bytes. The total is known when every input is a regular file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(app)
			if err != nil {
				return err
			}
			defer sess.Close()

			inputs, err := openCountInputs(app.IO.In, args)
			if err != nil {
				return withExitCode(exitcode.InputFailure, err)
			}
			defer closeCountInputs(inputs)

			for _, in := range inputs {
				if in.size < 0 && in.closer != nil {
					sess.reporter.Warn(in.name+" has no known size; tracking without a total", map[string]any{"input": in.name})
				}
			}

			total, known := totalSize(inputs)
			work := sess.newTracker(known, total)

			ctx, stop := signal.NotifyContext(cmd.Context(), interruptSignals()...)
			defer stop()

			var result countResult
			runErr := sess.track(work, func() error {
				for _, in := range inputs {
					lines, n, err := countLines(ctx, in.reader, work.Next)
					result.Lines += lines
					result.Bytes += n
					if err != nil {
						return fmt.Errorf("read %s: %w", in.name, err)
					}
				}
				return nil
			})
			if runErr != nil {
				if errors.Is(runErr, context.Canceled) {
					return withExitCode(exitcode.Interrupted, runErr)
				}
				return withExitCode(exitcode.InputFailure, runErr)
			}

			if app.Opts.JSON {
				return json.NewEncoder(app.IO.Out).Encode(result)
			}
			_, err = fmt.Fprintf(app.IO.Out, "%d lines, %d bytes\n", result.Lines, result.Bytes)
			return err
		},
	}
}

func openCountInputs(stdin io.Reader, paths []string) ([]countInput, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	inputs := make([]countInput, 0, len(paths))
	for _, path := range paths {
		if path == "-" {
			inputs = append(inputs, countInput{name: "stdin", reader: stdin, size: regularFileSize(stdin)})
			continue
		}
		file, err := os.Open(path)
		if err != nil {
			closeCountInputs(inputs)
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		inputs = append(inputs, countInput{name: path, reader: file, size: regularFileSize(file), closer: file})
	}
	return inputs, nil
}

func closeCountInputs(inputs []countInput) {
	for _, in := range inputs {
		if in.closer != nil {
			_ = in.closer.Close()
		}
	}
}

// regularFileSize returns the size of r when it is a regular file, or -1.
func regularFileSize(r io.Reader) int64 {
	file, ok := r.(*os.File)
	if !ok {
		return -1
	}
	info, err := file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return -1
	}
	return info.Size()
}

func totalSize(inputs []countInput) (int64, bool) {
	var total int64
	for _, in := range inputs {
		if in.size < 0 {
			return 0, false
		}
		total += in.size
	}
	return total, true
}

// countLines reads r to the end, calling step with the size of every chunk
// read. A final line without a trailing newline still counts.
func countLines(ctx context.Context, r io.Reader, step func(n int64)) (lines int64, total int64, err error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	pending := false
	for {
		if err := ctx.Err(); err != nil {
			return lines, total, err
		}

		chunk, readErr := reader.ReadSlice('\n')
		if len(chunk) > 0 {
			total += int64(len(chunk))
			pending = chunk[len(chunk)-1] != '\n'
			if !pending {
				lines++
			}
			step(int64(len(chunk)))
		}

		switch {
		case readErr == nil, errors.Is(readErr, bufio.ErrBufferFull):
			continue
		case errors.Is(readErr, io.EOF):
			if pending {
				lines++
			}
			return lines, total, nil
		default:
			return lines, total, readErr
		}
	}
}
