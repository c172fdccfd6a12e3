package logger

import (
	"log/slog"
	"os"
	"strings"
)

var instance = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Init replaces the default logger with one at the configured level.
// Call once from server startup; safe to skip in tests.
func Init(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	instance = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func Debug(msg string, args ...any) {
	instance.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	instance.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	instance.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	instance.Error(msg, args...)
}
