package cli

import (
	"github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// newLogger logs to stderr. --verbose enables debug output, which includes
// every throughput sample the tracker records.
func newLogger(app *AppContext) logr.Logger {
	logger := logrus.New()
	logger.SetOutput(app.IO.ErrOut)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if app.Opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if app.Opts.Quiet {
		logger.SetLevel(logrus.ErrorLevel)
	}
	return logrusr.New(logger)
}
