package logger

import (
	"log/slog"
	"os"

	"slider-button/internal/config"
)

// Setup configures structured logging based on environment and makes it the default.
func Setup(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Env == config.EnvDevelopment || cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	switch cfg.LogLevel {
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
