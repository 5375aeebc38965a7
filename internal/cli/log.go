// Package cli implements the bg-waves command-line interface.
//
// The root command opens the wave background in a window; "presets" lists
// the built-in parameter sets. Logging goes through charmbracelet/log and
// --verbose (-v) switches it to debug level.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// Log levels accepted by New and SetLogLevel.
const (
	LogInfo  = log.InfoLevel
	LogDebug = log.DebugLevel
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "bg-waves",
	})
}
