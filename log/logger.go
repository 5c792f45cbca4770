package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field
type Field = zap.Field

// Field constructors re-exported so callers do not import zap directly
var (
	String  = zap.String
	Int     = zap.Int
	Uint64  = zap.Uint64
	Float64 = zap.Float64
	Bool    = zap.Bool
	Any     = zap.Any
	Err     = zap.Error
)

// Logger is a thin wrapper over zap used across the engine
type Logger struct {
	zl *zap.Logger
}

// New builds a JSON logger writing to the given paths (stderr when empty)
func New(level Level, paths ...string) (*Logger, error) {
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level.zap()),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      paths,
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	zl, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zl: zl}, nil
}

// NewWithCore wraps an existing zap core, used by tests with zaptest/observer
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{zl: zap.New(core)}
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.zl.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.zl.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.zl.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.zl.Error(msg, fields...) }

// With returns a child logger carrying the fields on every entry
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{zl: l.zl.With(fields...)}
}

// Named returns a child logger with a dotted name segment appended
func (l *Logger) Named(name string) *Logger {
	return &Logger{zl: l.zl.Named(name)}
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level Level) bool {
	return l.zl.Core().Enabled(level.zap())
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// OrNop returns l, or a discarding logger when l is nil
func OrNop(l *Logger) *Logger {
	if l == nil {
		return NewNop()
	}
	return l
}
