// Package logging sets up zerolog for supportchat.
//
// The chat TUI owns the terminal, so interactive sessions log to a file.
// One-shot commands may log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls logger construction
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means info.
	Level string
	// File is the log file path. Ignored when Writer is set.
	File string
	// Writer overrides File, e.g. os.Stderr for one-shot commands.
	Writer io.Writer
	// Console renders human-readable lines instead of JSON.
	Console bool
}

// Setup builds a logger, installs it as the global zerolog logger and returns
// it together with a close function for the underlying file (if any).
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), noopClose, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}

	w := opts.Writer
	closeFn := noopClose
	if w == nil {
		if opts.File == "" {
			return zerolog.Nop(), noopClose, fmt.Errorf("no log destination configured")
		}
		f, err := openLogFile(opts.File)
		if err != nil {
			return zerolog.Nop(), noopClose, err
		}
		w = f
		closeFn = f.Close
	}

	if opts.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: opts.Writer == nil}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	return logger, closeFn, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func noopClose() error { return nil }

// Discard returns a logger that drops everything
func Discard() zerolog.Logger {
	return zerolog.Nop()
}
