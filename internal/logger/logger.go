// Package logger configures the shared zerolog logger used by the mock
// reader server and the CLIs. Tests log through testing.T instead.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Init sets up the global logger. Level is a zerolog level name ("debug",
// "info", ...); unknown levels fall back to info. Pretty enables the console
// writer for local development.
func Init(level string, pretty bool) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)
		zerolog.TimeFieldFormat = time.RFC3339

		var out io.Writer = os.Stderr
		if pretty {
			out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		}
		log = zerolog.New(out).With().Timestamp().Logger()
	})
}

// Get returns the configured logger. Calling it before Init yields a
// default stderr logger.
func Get() *zerolog.Logger {
	once.Do(func() {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return &log
}
