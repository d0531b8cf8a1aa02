package internal

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// InitLogging installs the process-wide logger. LOG_LEVEL selects
// debug|info|warn|error and LOG_FORMAT selects text|json.
func InitLogging() *slog.Logger {
	return InitLoggingTo(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// InitLoggingTo is InitLogging with explicit output and settings
func InitLoggingTo(w io.Writer, level, format string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
