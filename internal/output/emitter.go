package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

type EventEmitter interface {
	Emit(event Event) error
}

type JSONEmitter struct {
	enc *json.Encoder
	mu  sync.Mutex
}

func NewJSONEmitter(w io.Writer) *JSONEmitter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONEmitter{enc: enc}
}

func (e *JSONEmitter) Emit(event Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(event)
}

// HumanEmitter writes updates to a status line and everything else as
// plain lines.
type HumanEmitter struct {
	status  *StatusLine
	stderr  io.Writer
	quiet   bool
	verbose bool
}

func NewHumanEmitter(status *StatusLine, stderr io.Writer, quiet, verbose bool) *HumanEmitter {
	return &HumanEmitter{status: status, stderr: stderr, quiet: quiet, verbose: verbose}
}

func (e *HumanEmitter) Emit(event Event) error {
	line := event.Message
	if line == "" {
		line = string(event.Event)
	}

	switch event.Level {
	case LevelError:
		if err := e.status.Clear(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(e.stderr, "ERROR:", line)
		return err
	case LevelWarn:
		if e.quiet {
			return nil
		}
		if err := e.status.Clear(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(e.stderr, "WARN:", line)
		return err
	}

	switch event.Event {
	case EventTrackerStarted:
		if !e.verbose || e.quiet {
			return nil
		}
		return e.status.Print(line)
	case EventTrackerUpdated:
		if e.quiet {
			return nil
		}
		return e.status.Show(line)
	default:
		return e.status.Print(line)
	}
}

type MultiEmitter struct {
	emitters []EventEmitter
}

func NewMultiEmitter(emitters ...EventEmitter) *MultiEmitter {
	return &MultiEmitter{emitters: emitters}
}

func (e *MultiEmitter) Emit(event Event) error {
	for _, emitter := range e.emitters {
		if err := emitter.Emit(event); err != nil {
			return err
		}
	}
	return nil
}
