package adapters

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAdapter(t *testing.T) {
	t.Run("should create logger with the requested level", func(t *testing.T) {
		logger := NewZapLoggerAdapter(LogLevelDebug)
		assert.Equal(t, LogLevelDebug, logger.level)
	})

	t.Run("should format messages", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := NewZapLoggerAdapterFrom(zap.New(core))

		logger.Debug("debug %s", "message")
		logger.Info("info %d", 1)
		logger.Warn("warn %v", true)
		logger.Error("error %s", "boom")

		require.Equal(t, 4, logs.Len())
		assert.Equal(t, 1, logs.FilterMessage("warn true").Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.FilterMessage("error boom").All()[0].Level)
		assert.Equal(t, "beacon", logs.All()[0].LoggerName)
	})

	t.Run("should respect the core level", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		logger := NewZapLoggerAdapterFrom(zap.New(core))

		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")

		assert.Equal(t, 1, logs.Len())
	})

	t.Run("should handle none level", func(t *testing.T) {
		logger := NewZapLoggerAdapter(LogLevelNone)

		logger.Error("error message")
		assert.NoError(t, logger.Sync())
	})

	t.Run("should map levels", func(t *testing.T) {
		assert.Equal(t, zapcore.DebugLevel, toZapLevel(LogLevelDebug))
		assert.Equal(t, zapcore.InfoLevel, toZapLevel(LogLevelInfo))
		assert.Equal(t, zapcore.WarnLevel, toZapLevel(LogLevelWarn))
		assert.Equal(t, zapcore.ErrorLevel, toZapLevel(LogLevelError))
	})
}

func TestZerologLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLoggerAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("dropped %d events", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "dropped 3 events", entry["message"])
	assert.Equal(t, "beacon", entry["component"])
}
