// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel keeps parser warnings visible while hiding progress chatter.
const DefaultLevel = "warn"

// Options configure Init.
type Options struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string

	// Format is FormatConsole or FormatJSON.
	Format string

	// Out receives log lines. Defaults to os.Stderr.
	Out io.Writer
}

// Init installs the global logger. Component loggers created afterwards inherit it.
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var writer io.Writer
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatConsole:
		writer = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !isTerminal(out),
			TimeFormat: time.Kitchen,
		}
	case FormatJSON:
		writer = out
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	return nil
}

// SetLevel changes the global level after Init.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// ParseLevel accepts zerolog level names; an empty value yields DefaultLevel.
func ParseLevel(value string) (zerolog.Level, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		value = DefaultLevel
	}
	if value == "warning" {
		value = "warn"
	}
	level, err := zerolog.ParseLevel(value)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", value)
	}
	return level, nil
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
