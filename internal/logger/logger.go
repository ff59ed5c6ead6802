package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"repo-analyzer-agent/internal/config"
)

// Setup installs the process-wide logger on stderr.
// The analyze command prints its report on stdout, so the two streams never mix.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter installs a text or JSON logger writing to w and returns it
func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLogLevel(cfg.LogLevel),
		ReplaceAttr: secondsDuration,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// secondsDuration renders duration attributes like the timing line shown to users ("3.21s")
func secondsDuration(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindDuration {
		return slog.String(a.Key, fmt.Sprintf("%.2fs", a.Value.Duration().Seconds()))
	}
	return a
}

// parseLogLevel maps RAA_LOG_LEVEL to a slog level; empty or unknown means info
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
