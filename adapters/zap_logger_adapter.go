package adapters

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerAdapter implements LoggerAdapter on top of a zap SugaredLogger.
type ZapLoggerAdapter struct {
	level  LogLevel
	logger *zap.SugaredLogger
}

var _ LoggerAdapter = (*ZapLoggerAdapter)(nil)

// NewZapLoggerAdapter builds a JSON production logger writing at or above level.
// LogLevelNone yields a logger that discards everything.
func NewZapLoggerAdapter(level LogLevel) *ZapLoggerAdapter {
	if level == LogLevelNone {
		return &ZapLoggerAdapter{level: level, logger: zap.NewNop().Sugar()}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(level))
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	return &ZapLoggerAdapter{
		level:  level,
		logger: logger.Named("beacon").Sugar(),
	}
}

// NewZapLoggerAdapterFrom wraps an existing zap logger. Level filtering is
// left to the logger's core.
func NewZapLoggerAdapterFrom(logger *zap.Logger) *ZapLoggerAdapter {
	return &ZapLoggerAdapter{
		level:  LogLevelDebug,
		logger: logger.Named("beacon").Sugar(),
	}
}

func toZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (z *ZapLoggerAdapter) Debug(message string, args ...any) {
	z.logger.Debugf(message, args...)
}

func (z *ZapLoggerAdapter) Info(message string, args ...any) {
	z.logger.Infof(message, args...)
}

func (z *ZapLoggerAdapter) Warn(message string, args ...any) {
	z.logger.Warnf(message, args...)
}

func (z *ZapLoggerAdapter) Error(message string, args ...any) {
	z.logger.Errorf(message, args...)
}

// Sync flushes buffered log entries.
func (z *ZapLoggerAdapter) Sync() error {
	return z.logger.Sync()
}
