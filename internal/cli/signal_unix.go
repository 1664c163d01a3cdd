//go:build !windows

package cli

import (
	"os"
	"syscall"
)

// interruptSignals stop tracked work early.
func interruptSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}
}
