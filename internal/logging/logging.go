// Package logging configures the zerolog logger shared by the CLI commands.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console logger writing to stderr. Verbose lowers the level to
// Debug so extraction boundaries and file discovery details show up.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
