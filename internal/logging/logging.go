package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// DefaultDir returns ~/.tock/logs
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tock", "logs"), nil
}

// Init initializes the logging system, writing logs to dir/tock.log.
// An empty dir uses DefaultDir. Uses text format for human readability.
func Init(dir, level string) (*slog.Logger, io.Closer, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "tock.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	Logger = New(writer, lvl)
	slog.SetDefault(Logger)

	// Redirect standard log package output (used by goose) to the same file
	log.SetOutput(writer)
	log.SetFlags(log.LstdFlags)

	return Logger, writer, nil
}

// New returns a text logger writing to w
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
