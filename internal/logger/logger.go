package logger

import (
	"io"
	"log/slog"

	"github.com/alkime/quill/internal/config"
)

// Format selects the slog handler.
type Format int

const (
	// JSON is used by the HTTP service.
	JSON Format = iota
	// Text is used by the CLI.
	Text
)

// SetupLogger configures structured logging based on environment.
func SetupLogger(cfg *config.Config, format Format, w io.Writer) *slog.Logger {
	logLevel := Level(cfg)

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == Text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

// Level resolves the slog level for the given config.
func Level(cfg *config.Config) slog.Level {
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if cfg.Env == "development" && cfg.LogLevel == "" {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}
