// Package observability holds the process-wide zap loggers.
//
// CLILogger is console-friendly output for interactive commands;
// ServerLogger is structured JSON for the serve path. Both default to
// usable no-config instances so early startup code can log before the
// config layer has run.
package observability

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// CLILogger writes human-oriented console output.
	CLILogger = newConsoleLogger(zapcore.InfoLevel)

	// ServerLogger writes structured JSON.
	ServerLogger = newJSONLogger(zapcore.InfoLevel)
)

// Init reconfigures both loggers from the effective config. format is
// "console" or "json"; it only affects ServerLogger, CLILogger always
// stays console.
func Init(level, format string) {
	lvl := parseLevel(level)
	CLILogger = newConsoleLogger(lvl)
	if strings.EqualFold(format, "console") {
		ServerLogger = newConsoleLogger(lvl)
	} else {
		ServerLogger = newJSONLogger(lvl)
	}
}

// Sync flushes both loggers; call on shutdown.
func Sync() {
	_ = CLILogger.Sync()
	_ = ServerLogger.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newConsoleLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newJSONLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
