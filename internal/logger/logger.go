// Package logger holds the process-wide structured logger. Commands
// write user-facing output through internal/ui; this logger carries the
// diagnostic trail behind it.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init builds the global logger. Verbose switches to a colored console
// encoder at debug level; the default stays quiet below warn so the
// styled CLI output is not interleaved with log lines.
func Init(verbose bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	built, err := cfg.Build()
	if err != nil {
		return
	}
	log = built
}

// L returns the global logger.
func L() *zap.Logger { return log }

// Sync flushes buffered log entries; call on exit.
func Sync() { _ = log.Sync() }

// Re-exported field constructors so callers need not import zap.
func String(key, val string) zap.Field  { return zap.String(key, val) }
func Int(key string, val int) zap.Field { return zap.Int(key, val) }
func Err(err error) zap.Field           { return zap.Error(err) }
