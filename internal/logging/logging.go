// Package logging provides structured logging with zap.
//
// All output goes to stderr: stdout is reserved for the MCP protocol
// stream, so nothing in this process may ever log there.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// Init initializes the global logger.
//
// level is one of "debug", "info", "warn", "error" (unknown values fall
// back to info). format is "json" or "console".
func Init(level, format string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// L returns the global logger, initializing a default one if needed.
func L() *zap.Logger {
	if globalLogger == nil {
		logger, _ := zap.NewDevelopment()
		globalLogger = logger
	}
	return globalLogger
}

// Nop returns a no-op logger, useful in tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}
