package util

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// GetLogger builds the process logger and installs it as the slog default.
// Release mode logs JSON for collectors; every other mode logs through tint.
func GetLogger(level slog.Leveler, ginMode string) *slog.Logger {
	logger := NewLogger(os.Stdout, level, ginMode)
	slog.SetDefault(logger)
	return logger
}

func NewLogger(w io.Writer, level slog.Leveler, ginMode string) *slog.Logger {
	if ginMode == "release" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    w != os.Stdout,
	}))
}
