package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	fallback     *zap.Logger
	once         sync.Once
	fallbackOnce sync.Once
)

// New builds a logger without touching the global one.
// Debug uses a console encoder at debug level, otherwise JSON at info level.
func New(debug bool) (*zap.Logger, error) {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	// stderr keeps stdout free for command output and the MCP stdio transport
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build()
}

// Init initializes the global logger. Only the first call has any effect.
func Init(debug bool) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(debug)
	})
	return err
}

// Get returns the global logger, or a production logger if Init has not
// been called.
func Get() *zap.Logger {
	if globalLogger != nil {
		return globalLogger
	}
	fallbackOnce.Do(func() {
		l, err := New(false)
		if err != nil {
			l = zap.NewNop()
		}
		fallback = l
	})
	return fallback
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

// Named returns a logger with a specific name.
func Named(name string) *zap.Logger {
	return Get().Named(name)
}

// Info logs a message at InfoLevel.
func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}
