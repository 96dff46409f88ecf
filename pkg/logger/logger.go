// Package logger builds the zerolog logger used across the portal API.
//
// cmd/api calls Init once at startup and hands the result to every
// constructor. Get exists for the rare caller that runs outside that wiring.
package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how New builds a logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else means info.
	Level string
	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service and Version become fields on every event when non-empty.
	Service string
	Version string
}

var process atomic.Pointer[zerolog.Logger]

// New builds a logger from opts without touching the process logger.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	fields := zerolog.New(out).Level(parseLevel(opts.Level)).With().Timestamp().Caller()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	if opts.Version != "" {
		fields = fields.Str("version", opts.Version)
	}
	return fields.Logger()
}

// Init installs the process logger on first use and returns whichever logger
// is installed. Later calls keep the first configuration, so an error path
// can call Init(Options{}) without clobbering the configured logger.
func Init(opts Options) zerolog.Logger {
	if l := process.Load(); l != nil {
		return *l
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := New(opts)
	if process.CompareAndSwap(nil, &l) {
		zerolog.SetGlobalLevel(l.GetLevel())
	}
	return *process.Load()
}

// Get returns the process logger, or a disabled logger before Init.
func Get() zerolog.Logger {
	if l := process.Load(); l != nil {
		return *l
	}
	return zerolog.Nop()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	switch lvl, err := zerolog.ParseLevel(s); {
	case err != nil, s == "", lvl < zerolog.TraceLevel, lvl > zerolog.ErrorLevel:
		return zerolog.InfoLevel
	default:
		return lvl
	}
}
