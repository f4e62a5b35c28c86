// Package logx builds the structured logger used by the CLI and the scan
// daemon. The deterministic backtest core does not log.
package logx

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON slog logger at the given level string. Supported:
// "debug", "info", "warn", "error"; anything else falls back to "info".
func New(level string) *slog.Logger {
	var slevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slevel = slog.LevelDebug
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slevel})
	return slog.New(handler)
}
