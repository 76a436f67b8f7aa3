// Package logging builds the leveled console logger used for diagnostics.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "todo"

// New creates a logger writing to w at the given level.
// Timestamps are off; log lines go to stderr next to command output.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}

// ParseLevel parses a level name from config.
// Unknown or empty names fall back to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// Level picks the effective level from the common flags and config value.
// --debug wins over --quiet, which wins over the configured level.
func Level(debug, quiet bool, configured string) log.Level {
	if debug {
		return log.DebugLevel
	}
	if quiet {
		return log.ErrorLevel
	}
	return ParseLevel(configured)
}
