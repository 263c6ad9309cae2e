// Package logger holds the process-wide slog logger of the lvfit command.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Config selects the level and encoding of the global logger.
type Config struct {
	Debug  bool
	Format string    // "text" (default) or "json"
	Output io.Writer // defaults to os.Stderr
}

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Setup replaces the global logger.
func Setup(cfg Config) error {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var h slog.Handler
	switch cfg.Format {
	case "", "text":
		h = slog.NewTextHandler(out, opts)
	case "json":
		h = slog.NewJSONHandler(out, opts)
	default:
		return fmt.Errorf("logger: unsupported format %q (expected text|json)", cfg.Format)
	}

	mu.Lock()
	global = slog.New(h)
	mu.Unlock()

	return nil
}

// L returns the global logger. It discards everything until Setup.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Reset restores the discarding logger.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	global = slog.New(slog.NewTextHandler(io.Discard, nil))
}
