// Package logging provides zerolog-based logging for sesh-tools.
//
// The aggregation pipeline logs per-event and per-batch degradation at warn
// level; nothing in the pipeline logs at fatal. Commands call Init once from
// cobra's OnInitialize hook.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string

	// Format is the output format: console or json.
	Format string

	// Output is the writer for log output. Defaults to os.Stderr.
	Output io.Writer
}

var log zerolog.Logger

func init() {
	// Usable defaults before Init runs, so package tests get output too.
	initLogger(Config{})
}

// Init configures the global logger. Safe to call more than once.
func Init(cfg Config) {
	initLogger(cfg)
}

func initLogger(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "console"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.Kitchen}
	}

	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Debug starts a debug-level log event.
func Debug() *zerolog.Event { return log.Debug() }

// Info starts an info-level log event.
func Info() *zerolog.Event { return log.Info() }

// Warn starts a warn-level log event.
func Warn() *zerolog.Event { return log.Warn() }

// Error starts an error-level log event.
func Error() *zerolog.Event { return log.Error() }
