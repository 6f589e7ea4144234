package logging

import (
	"log/slog"
	"os"
	"strings"
)

var logLevelMapping = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Init installs the default JSON logger. An empty level falls back to the
// LOG_LEVEL environment variable, then to info.
func Init(level string) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}

	logLevel, ok := logLevelMapping[strings.ToLower(level)]
	if !ok {
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}
