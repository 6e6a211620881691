package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger: human-readable text in
// development, JSON elsewhere.
func New(env string) *slog.Logger {
	if env == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
