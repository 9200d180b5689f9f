// Package logging builds the zerolog loggers used across tradejournal.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console logger on stderr at the given level.
func New(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return NewWithOutput(level, output)
}

// NewWithOutput returns a logger writing to w.
func NewWithOutput(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Silent discards everything.
func Silent() zerolog.Logger {
	return zerolog.Nop()
}
