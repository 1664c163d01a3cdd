package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// StatusLine keeps one rewritable line at the bottom of a terminal. When
// the destination is not interactive, every status is printed on its own
// line instead.
type StatusLine struct {
	dst         io.Writer
	interactive bool

	mu         sync.Mutex
	activeLine string
}

func NewStatusLine(dst io.Writer, interactive bool) *StatusLine {
	return &StatusLine{dst: dst, interactive: interactive}
}

func SupportsInPlaceUpdates(dst io.Writer) bool {
	file, ok := dst.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func (s *StatusLine) Interactive() bool {
	return s.interactive
}

// Show replaces the active line with status.
func (s *StatusLine) Show(status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.interactive {
		_, err := fmt.Fprintln(s.dst, status)
		return err
	}
	if status == s.activeLine {
		return nil
	}
	s.activeLine = status
	_, err := fmt.Fprintf(s.dst, "\r\033[2K%s", status)
	return err
}

// Print clears the active line and writes line permanently.
func (s *StatusLine) Print(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.clearLocked(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.dst, line)
	return err
}

func (s *StatusLine) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *StatusLine) clearLocked() error {
	if !s.interactive || s.activeLine == "" {
		return nil
	}
	s.activeLine = ""
	_, err := fmt.Fprint(s.dst, "\r\033[2K")
	return err
}
