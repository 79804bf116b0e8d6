// Package logging builds the CLI logger. Library packages do not log; they
// return errors and results for the command layer to report.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w, at debug level when verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "gasbox",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.InfoLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
