package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents a log level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format represents the log output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "CAPMATCH_LOG_LEVEL"
	EnvFormat = "CAPMATCH_LOG_FORMAT"
	EnvFile   = "CAPMATCH_LOG_FILE"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Format is the output format (text or json).
	Format Format

	// Output is the writer to send logs to. Defaults to os.Stderr.
	Output io.Writer

	// File, when set, receives a JSON copy of every record at Level.
	File string

	// AddSource adds source file and line to log entries.
	AddSource bool
}

// DefaultConfig logs warnings and errors as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// FromEnv returns cfg with the CAPMATCH_LOG_* overrides applied.
func FromEnv(cfg Config) Config {
	if v, ok := os.LookupEnv(EnvLevel); ok {
		cfg.Level = ParseLevel(v)
	}
	if v, ok := os.LookupEnv(EnvFormat); ok {
		cfg.Format = ParseFormat(v)
	}
	if v, ok := os.LookupEnv(EnvFile); ok {
		cfg.File = v
	}
	return cfg
}

// New creates a logger for cfg. The returned function closes the log file,
// if any, and is safe to call when there is none.
func New(cfg Config) (*slog.Logger, func() error, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	handler := newHandler(cfg.Output, cfg.Format, opts)
	if cfg.File == "" {
		return slog.New(handler), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	tee := NewTeeHandler(handler, slog.NewJSONHandler(f, opts))
	return slog.New(tee), f.Close, nil
}

func newHandler(w io.Writer, format Format, opts *slog.HandlerOptions) slog.Handler {
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Nop returns a logger that discards all output.
// Use this when a logger is required but logging is disabled.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses a log level name, case-insensitively.
// Valid values: "debug", "info", "warn"/"warning", "error".
// Unrecognized values yield LevelWarn, the CLI default.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

// ParseFormat parses a log format name, case-insensitively.
// Returns FormatText if the string is not "json".
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}
