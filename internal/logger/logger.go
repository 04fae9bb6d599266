// Package logger provides the process-wide structured logger.
//
// Records are written as JSON through a rotating file. Warnings and errors
// are also kept in a small in-memory tail so the editor can show the most
// recent one on its debug status line.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured warning or error.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Format renders the entry for a one-line display.
func (e Entry) Format() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level, e.Message)
}

// tail is a fixed-size circular buffer of recent entries.
type tail struct {
	mu      sync.RWMutex
	entries []Entry
	head    int
	count   int

	warnCount  int
	errorCount int
}

func newTail(size int) *tail {
	return &tail{entries: make([]Entry, size)}
}

func (t *tail) add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[t.head] = e
	t.head = (t.head + 1) % len(t.entries)
	if t.count < len(t.entries) {
		t.count++
	}

	if e.Level >= slog.LevelError {
		t.errorCount++
	} else {
		t.warnCount++
	}
}

func (t *tail) latest() (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.count == 0 {
		return Entry{}, false
	}
	return t.entries[(t.head-1+len(t.entries))%len(t.entries)], true
}

func (t *tail) counts() (warn, err int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.warnCount, t.errorCount
}

// tailHandler copies WARN and ERROR records into a tail before passing them
// on.
type tailHandler struct {
	inner slog.Handler
	tail  *tail
}

func (h *tailHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *tailHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.tail.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *tailHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tailHandler{inner: h.inner.WithAttrs(attrs), tail: h.tail}
}

func (h *tailHandler) WithGroup(name string) slog.Handler {
	return &tailHandler{inner: h.inner.WithGroup(name), tail: h.tail}
}

var (
	// Log is the global structured logger.
	Log *slog.Logger
	// LogPath is the path of the current log file.
	LogPath string

	logWriter *lumberjack.Logger
	recent    *tail
)

// LogLevel is the minimum level written to the log file.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a configuration value to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultPath returns ~/.config/simplevi/simplevi.log, falling back to the
// temp directory when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "simplevi", "simplevi.log")
}

// InitLogger installs the global logger. An empty logPath selects
// DefaultPath.
func InitLogger(level LogLevel, logPath string) error {
	if logPath == "" {
		logPath = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	LogPath = logPath

	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	recent = newTail(50)

	jsonHandler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})
	Log = slog.New(&tailHandler{inner: jsonHandler, tail: recent})
	slog.SetDefault(Log)
	return nil
}

// Close flushes and closes the log file.
func Close() {
	if logWriter != nil {
		_ = logWriter.Close()
	}
}

func getLogger() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	getLogger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	getLogger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	getLogger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	getLogger().Error(msg, args...)
}

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger {
	return getLogger().With(args...)
}

// Counts returns how many warnings and errors have been logged.
func Counts() (warn, err int) {
	if recent == nil {
		return 0, 0
	}
	return recent.counts()
}

// Latest returns the most recent warning or error.
func Latest() (Entry, bool) {
	if recent == nil {
		return Entry{}, false
	}
	return recent.latest()
}
