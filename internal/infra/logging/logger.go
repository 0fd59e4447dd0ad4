// Package logging provides file-based logging for planforge.
// It outputs logs to both a global log file (plan/logs/forge.log)
// and per-work-item log files (plan/logs/run-<id>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"planforge/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog levels with file-based output.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile *os.File
	runFiles   map[string]*os.File
	planDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes to the plan log directory.
// If planDir is empty, logging is disabled (returns a no-op logger).
func New(planDir string, level slog.Level) *Logger {
	return &Logger{
		planDir:  planDir,
		level:    level,
		runFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureLogsDir creates the logs directory if it doesn't exist.
func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(filepath.Join(l.planDir, "logs"), 0o750)
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GlobalLogPath(l.planDir)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// ensureRunFile opens or returns the per-work-item log file.
func (l *Logger) ensureRunFile(workItemID string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.runFiles[workItemID]; ok {
		return f, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.RunLogPath(l.planDir, workItemID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open run log file: %w", err)
	}
	l.runFiles[workItemID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.runFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.runFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry in the specified format.
// Format: [2025-12-30 09:32:51] [INFO] [run-1234] [category] message
func formatLog(t time.Time, level slog.Level, workItemID, category, msg string) string {
	scope := "global"
	if workItemID != "" {
		scope = "run-" + workItemID
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to the appropriate files.
// With an empty workItemID the entry goes only to the global log; otherwise
// it goes to both the global and the per-work-item log.
func (l *Logger) log(level slog.Level, workItemID, category, msg string) {
	if l.planDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	entry := formatLog(time.Now(), level, workItemID, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if workItemID != "" {
		if rf, err := l.ensureRunFile(workItemID); err == nil {
			_, _ = io.WriteString(rf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(workItemID, category, msg string) {
	l.log(slog.LevelInfo, workItemID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(workItemID, category, msg string) {
	l.log(slog.LevelDebug, workItemID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(workItemID, category, msg string) {
	l.log(slog.LevelWarn, workItemID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(workItemID, category, msg string) {
	l.log(slog.LevelError, workItemID, category, msg)
}
