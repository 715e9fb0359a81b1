// Package logging configures the loggers used by the merge tools. It
// follows the module convention of a package-level default logger with a
// settable level, plus constructors for loggers writing to a chosen
// destination.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Stdout is the sentinel log destination meaning standard output.
const Stdout = "-"

var (
	defaultLevel   slog.LevelVar
	defaultHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: &defaultLevel,
	})
	defaultLogger  = slog.New(defaultHandler)
	disabledLogger = slog.New(&disabledHandler{})
)

// disabledHandler is a slog.Handler that is disabled for all levels
type disabledHandler struct{}

func (d *disabledHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (d *disabledHandler) Handle(context.Context, slog.Record) error { return nil }
func (d *disabledHandler) WithAttrs([]slog.Attr) slog.Handler        { return d }
func (d *disabledHandler) WithGroup(string) slog.Handler             { return d }

// DefaultLogger returns the default (module-specific) logger, which writes
// to stderr.
func DefaultLogger() *slog.Logger {
	return defaultLogger
}

// SetDefaultLevel sets the logging level for the module's default logger.
func SetDefaultLevel(l slog.Level) {
	defaultLevel.Set(l)
}

// DisabledLogger returns a logger that is disabled for all logging levels.
func DisabledLogger() *slog.Logger {
	return disabledLogger
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open returns a logger writing to the named file at the given level, plus
// a close function for the underlying file. The file is opened for
// appending and created if absent.
func Open(dest string, level slog.Level) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log destination %q: %w", dest, err)
	}
	return New(f, level), f.Close, nil
}
