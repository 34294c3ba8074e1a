// Package logging holds the process logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = New(os.Stderr).Level(zerolog.InfoLevel)
}

// New returns a console logger writing to w with RFC3339 timestamps.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

// SetVerbose switches the package logger between info and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
		return
	}
	logger = logger.Level(zerolog.InfoLevel)
}

// SetOutput redirects the package logger, keeping its level.
func SetOutput(w io.Writer) {
	level := logger.GetLevel()
	logger = New(w).Level(level)
}
