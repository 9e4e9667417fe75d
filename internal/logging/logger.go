// SPDX-License-Identifier: MIT

// Package logging builds the slog loggers of the dequad command.
//
// Diagnostics go to the command's stderr writer. Result tables, bench
// reports and node dumps own stdout, so they can be piped or diffed while
// per-level debug traces of the integrator stay out of the way.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// renames shortens attribute keys that appear on nearly every integrator
// line.
var renames = map[string]string{
	"error": "err",
}

func shortenKey(_ []string, a slog.Attr) slog.Attr {
	if k, ok := renames[a.Key]; ok {
		a.Key = k
	}

	return a
}

// New returns a text logger on w that drops records below level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: shortenKey,
	}))
}

// NewNop discards everything; it stands in until flags and config resolve.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps the log_level setting (debug, info, warn or warning,
// error; any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}

	return l, nil
}
