package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultFilePath is where console lines and diagnostics go when no file is configured,
// relative to the working directory (project root when run via go run ./cmd/walker).
const DefaultFilePath = "logs/walker.log"

// maxLines caps the in-memory history shown by the in-game console.
const maxLines = 512

// Config selects level, encoding and destination. Empty File means stderr only.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // "console" or "json"
	File   string
}

// Logger keeps the lines typed into (or printed to) the in-game console in memory and forwards
// every entry to a zap logger, which writes structured records to stderr and the log file.
type Logger struct {
	z     *zap.Logger
	mu    sync.Mutex
	lines []string
}

// New builds a zap-backed Logger from cfg. The log file's directory is created if needed.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" || cfg.Format == "" {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zcfg.Encoding = "console"
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Sampling = nil
	zcfg.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		zcfg.OutputPaths = append(zcfg.OutputPaths, cfg.File)
	}
	z, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return &Logger{z: z}, nil
}

// NewWithCore wraps an existing zap core (e.g. zaptest/observer in tests).
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{z: zap.New(core)}
}

// Nop returns a Logger that remembers console lines but discards records.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Log appends a line to the console history, prefixed with [timestamp], and records it at info level.
func (l *Logger) Log(line string) {
	ts := time.Now().Format("15:04:05")
	l.remember("[" + ts + "] " + line)
	l.z.Info(line, zap.String("source", "console"))
}

// Logf is Log with fmt formatting.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }

// Error records msg at error level and also surfaces it on the console, since there is no
// other user-facing error channel while the window is up.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.remember("[" + time.Now().Format("15:04:05") + "] error: " + msg + fieldSuffix(fields))
	l.z.Error(msg, fields...)
}

// Zap exposes the underlying zap logger.
func (l *Logger) Zap() *zap.Logger {
	return l.z
}

// Sync flushes buffered records. Errors from syncing stderr are ignored.
func (l *Logger) Sync() {
	_ = l.z.Sync()
}

// Lines returns a copy of the console history, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Logger) remember(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()
}

func fieldSuffix(fields []zap.Field) string {
	if len(fields) == 0 {
		return ""
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, enc.Fields[f.Key])
	}
	return b.String()
}
