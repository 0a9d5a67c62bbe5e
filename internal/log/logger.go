package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty disables logging.
	Level string

	// JSON selects the JSON handler instead of text.
	JSON bool

	// File, when set, sends output to a rotating file instead of Output.
	File string

	// MaxSizeMB is the size at which File is rotated (default 20).
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept (default 2).
	MaxBackups int

	// MaxAgeDays is how long rotated files are kept (default 10).
	MaxAgeDays int

	// Output is used when File is empty (default os.Stderr).
	Output io.Writer
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds a redacting logger. The returned closer releases the log file
// and is a no-op when logging goes to Output.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.Level == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = opts.Output
		closer io.Closer = nopCloser{}
	)
	if w == nil {
		w = os.Stderr
	}
	if opts.File != "" {
		rotate := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 20), // megabytes
			MaxBackups: orDefault(opts.MaxBackups, 2),
			MaxAge:     orDefault(opts.MaxAgeDays, 10), // days
		}
		w, closer = rotate, rotate
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(NewRedactingHandler(h)), closer, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
