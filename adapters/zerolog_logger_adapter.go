package adapters

import "github.com/rs/zerolog"

// ZerologLoggerAdapter implements LoggerAdapter using a zerolog.Logger.
type ZerologLoggerAdapter struct {
	logger zerolog.Logger
}

var _ LoggerAdapter = (*ZerologLoggerAdapter)(nil)

// NewZerologLoggerAdapter wraps logger, tagging every entry with component=beacon.
func NewZerologLoggerAdapter(logger zerolog.Logger) *ZerologLoggerAdapter {
	return &ZerologLoggerAdapter{
		logger: logger.With().Str("component", "beacon").Logger(),
	}
}

func (z *ZerologLoggerAdapter) Debug(message string, args ...any) {
	z.logger.Debug().Msgf(message, args...)
}

func (z *ZerologLoggerAdapter) Info(message string, args ...any) {
	z.logger.Info().Msgf(message, args...)
}

func (z *ZerologLoggerAdapter) Warn(message string, args ...any) {
	z.logger.Warn().Msgf(message, args...)
}

func (z *ZerologLoggerAdapter) Error(message string, args ...any) {
	z.logger.Error().Msgf(message, args...)
}
