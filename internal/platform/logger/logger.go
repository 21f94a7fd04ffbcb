package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON output so log aggregation stays
// trivial; level comes from LOG_LEVEL (default info).
func New() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
