package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates a production JSON logger on stderr at the given level
// ("debug", "info", "warn", "error"); an empty level means info.
func NewLogger(level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

// New wraps an existing zap logger
func New(z *zap.Logger) *Logger {
	return &Logger{SugaredLogger: z.Sugar()}
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return New(zap.NewNop())
}

// ParseLevel maps a level name to a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
}

// With returns a child logger carrying the given key/value pairs
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}

// Sync flushes buffered entries; errors from syncing stderr are ignored
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
