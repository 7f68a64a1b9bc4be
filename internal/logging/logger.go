// Package logging builds the slog loggers used across the module.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger on stderr, keeping stdout clean for
// dialogue output.
func New(level slog.Level) *slog.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a text logger on an arbitrary writer. The conventional
// "error" attribute is shortened to "err".
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	opts := slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: shortenErrKey,
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func shortenErrKey(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == "error" {
		a.Key = "err"
	}
	return a
}
