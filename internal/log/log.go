// Package log provides structured logging for commands, errors and informational
// messages. Records are written as JSON lines through log/slog.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"nestquiz/local-app/internal/model"
)

// Fields carries structured key/value pairs attached to a log record.
type Fields map[string]interface{}

// Logger writes command records to the command log and every other record to the
// info log, dropping records more verbose than its level.
type Logger struct {
	commandLogger *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
	level         LogLevel
	mu            sync.RWMutex
}

// NewLogger creates a Logger writing into the configured log folder.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	if err := os.MkdirAll(cfg.Log.Folder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	commandFile, err := os.OpenFile(filepath.Join(cfg.Log.Folder, cfg.Log.CommandLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}

	infoFile, err := os.OpenFile(filepath.Join(cfg.Log.Folder, cfg.Log.InfoLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	l := newLogger(commandFile, infoFile, level)
	l.files = []*os.File{commandFile, infoFile}
	return l, nil
}

// NewWriterLogger creates a Logger sending every record to w.
func NewWriterLogger(w io.Writer, level LogLevel) *Logger {
	return newLogger(w, w, level)
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return NewWriterLogger(io.Discard, LevelCommand)
}

func newLogger(commandOut, infoOut io.Writer, level LogLevel) *Logger {
	return &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandOut, &slog.HandlerOptions{Level: slog.LevelInfo})),
		infoLogger:    slog.New(slog.NewJSONHandler(infoOut, &slog.HandlerOptions{Level: slog.LevelDebug})),
		level:         level,
	}
}

func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelError, msg, fields)
}

// LogCommand records a user command in the command log regardless of level.
func (l *Logger) LogCommand(ctx context.Context, command string) {
	l.commandLogger.InfoContext(ctx, "command", slog.String("command", command))
}

// SetLevel changes the verbosity threshold.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the verbosity threshold.
func (l *Logger) Level() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) log(ctx context.Context, level LogLevel, msg string, fields Fields) {
	if level > l.Level() {
		return
	}
	l.infoLogger.LogAttrs(ctx, level.toSlogLevel(), msg, fieldAttrs(fields)...)
}

// fieldAttrs converts fields to attributes in key order so records are stable.
func fieldAttrs(fields Fields) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

// Close closes the log files, if any.
func (l *Logger) Close() error {
	for _, f := range l.files {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close log file %s: %w", f.Name(), err)
		}
	}
	l.files = nil
	return nil
}
