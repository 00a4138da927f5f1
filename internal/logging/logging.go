// Package logging builds the diagnostic logger. The dashboard owns the
// terminal, so logs go to a rotating file by default.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/five82/dashtrash/internal/config"
)

const (
	EnvLogLevel  = "DASHTRASH_LOG_LEVEL"
	EnvLogFormat = "DASHTRASH_LOG_FORMAT"
	EnvLogSink   = "DASHTRASH_LOG_SINK"
	EnvLogFile   = "DASHTRASH_LOG_FILE"
)

const (
	SinkFile   = "file"
	SinkStderr = "stderr"
	SinkNone   = "none"

	FormatText = "text"
	FormatJSON = "json"
)

// Options identify the process in every record.
type Options struct {
	App     string
	Version string
}

// WithEnv overlays DASHTRASH_LOG_* variables on cfg.
func WithEnv(cfg config.Logging) config.Logging {
	apply := func(dst *string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	apply(&cfg.Level, EnvLogLevel)
	apply(&cfg.Format, EnvLogFormat)
	apply(&cfg.Sink, EnvLogSink)
	apply(&cfg.File, EnvLogFile)
	return cfg
}

// New builds a logger from cfg after applying environment overrides. The
// returned close func releases the file sink.
func New(cfg config.Logging, opts Options) (*slog.Logger, func() error, error) {
	cfg = WithEnv(cfg)
	if opts.App == "" {
		opts.App = "dashtrash"
	}

	writer, closeFn, err := resolveWriter(cfg)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
	)
	return logger, closeFn, nil
}

// Init builds the logger with New and installs it as the slog default.
func Init(cfg config.Logging, opts Options) (*slog.Logger, func() error, error) {
	logger, closeFn, err := New(cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a slog level; unknown names are info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(cfg config.Logging) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(cfg.Sink)) {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		return os.Stderr, noop, nil
	case "", SinkFile:
		path := strings.TrimSpace(cfg.File)
		if path == "" {
			return nil, nil, fmt.Errorf("logging: file sink needs a path")
		}
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(expanded), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   expanded,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", cfg.Sink)
	}
}
