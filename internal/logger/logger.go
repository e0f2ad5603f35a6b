// Package logger builds the zerolog loggers used across pitboard.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var pid = os.Getpid()

// New returns a logger writing to w. Debug lowers the level from info to
// debug. Console switches from JSON lines to human readable output.
func New(w io.Writer, debug, console bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05.0000",
			NoColor:    !isTerminal(w),
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", pid).
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// Since adds the elapsed time since start to an event, in milliseconds.
func Since(e *zerolog.Event, start time.Time) *zerolog.Event {
	return e.Dur("elapsed", time.Since(start))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
