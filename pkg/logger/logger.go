// Package logger определяет интерфейс логирования приложения и его
// реализацию поверх zerolog.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger - общий интерфейс логирования для всех слоёв приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// ZerologLogger реализует Logger поверх zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger создаёт логгер с выводом в stderr.
// Уровень задаётся переменной окружения LOG_LEVEL (debug/info/warn/error), по умолчанию info.
func NewZerologLogger() *ZerologLogger {
	level := zerolog.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	log := zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologLogger{log: log}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(err error, format string, args ...any) {
	l.log.Error().Err(err).Msgf(format, args...)
}
