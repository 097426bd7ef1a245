// Package logging builds the application's slog loggers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a logger writing to w (os.Stderr when nil), so stdout stays
// free for results. format is "text" or "json". The "error" key is
// normalized to "err".
func New(level slog.Level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug|info|warn|error (any case) to a slog.Level.
// The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}

	return l, nil
}
