package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	blog "github.com/projectblog/go-blog"
)

// zeroLogger adapts zerolog to the Logger interface the library uses
type zeroLogger struct {
	l zerolog.Logger
}

var _ blog.Logger = (*zeroLogger)(nil)

func newLogger(cfg LoggingConfig, component string) zeroLogger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(cfg.Format, "json") {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logger = logger.Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()

	return zeroLogger{l: logger}
}

func (z zeroLogger) Debug(format string, args ...any) {
	z.l.Debug().Msgf(format, args...)
}

func (z zeroLogger) Info(format string, args ...any) {
	z.l.Info().Msgf(format, args...)
}

func (z zeroLogger) Warn(format string, args ...any) {
	z.l.Warn().Msgf(format, args...)
}

func (z zeroLogger) Error(format string, args ...any) {
	z.l.Error().Msgf(format, args...)
}
