package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. Tests pass it to
// services that require a logger.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
