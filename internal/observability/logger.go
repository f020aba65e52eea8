package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/danger-zones/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the service logger from LOG_LEVEL and LOG_FORMAT and sets
// it as the slog default. Output goes to w; the snapshot command passes
// stderr so that stdout carries only the JSON payload.
func NewLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	base := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if w == os.Stdout {
		return base
	}

	opts := &slog.HandlerOptions{Level: enabledLevel(base.Handler())}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// enabledLevel reports the lowest level h accepts.
func enabledLevel(h slog.Handler) slog.Level {
	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if h.Enabled(context.Background(), lvl) {
			return lvl
		}
	}
	return slog.LevelError
}
