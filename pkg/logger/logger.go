package logger

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output encodings.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// Init builds the process wide logger. Unknown levels fall back to info; format is either
// FormatJSON (the default) or FormatConsole.
func Init(level, format string) error {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("logger: unsupported format %q", format)
	}

	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logger: build: %w", err)
	}
	global.Store(built)
	return nil
}

// Logger returns the process wide logger. It is a no-op logger until Init runs.
func Logger() *zap.Logger {
	return global.Load()
}

// Replace installs l and returns a func restoring the previous logger. Tests use it to
// capture output with an observer core.
func Replace(l *zap.Logger) func() {
	if l == nil {
		l = zap.NewNop()
	}
	previous := global.Swap(l)
	return func() { global.Store(previous) }
}

// WithModule returns a child logger tagged with the emitting component.
func WithModule(module string) *zap.Logger {
	return Logger().With(zap.String("module", module))
}

// Sync flushes buffered entries.
func Sync() error {
	return Logger().Sync()
}
