// Package logging provides the CLI's configured slog logger:
//   - LOG_FORMAT env var (text/json), else text on a terminal and JSON otherwise
//   - LOG_LEVEL env var (debug/info/warn/error, default: warn)
//   - output to stderr so command output on stdout stays machine-readable
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Environment variables read by FromEnv.
const (
	EnvFormat = "LOG_FORMAT"
	EnvLevel  = "LOG_LEVEL"
)

// Config selects the logger's format, level and destination.
type Config struct {
	// Format is "text" or "json". Empty picks text for terminals.
	Format string

	// Level is the minimum level logged.
	Level slog.Level

	// Output receives log records. Default: os.Stderr.
	Output io.Writer
}

// FromEnv builds a Config from LOG_FORMAT and LOG_LEVEL.
func FromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	return Config{
		Format: strings.ToLower(strings.TrimSpace(getenv(EnvFormat))),
		Level:  ParseLevel(getenv(EnvLevel)),
	}
}

// New creates a logger from cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if useText(cfg.Format, out) {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return slog.New(handler)
}

// SetDefault creates a logger from cfg and installs it as the slog default.
// Returns the created logger for additional use.
func SetDefault(cfg Config) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string log level to slog.Level.
// Unknown or empty values yield warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func useText(format string, out io.Writer) bool {
	switch format {
	case "text":
		return true
	case "json":
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
