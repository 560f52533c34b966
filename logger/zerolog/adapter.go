// Package zerolog adapts github.com/rs/zerolog to the core.Logger contract.
package zerolog

import (
	"fmt"
	"os"
	"time"

	"github.com/raykavin/signalert/core"

	"github.com/rs/zerolog"
)

type Adapter struct {
	*zerolog.Logger
}

// NewAdapter wraps an existing zerolog logger
func NewAdapter(logger *zerolog.Logger) *Adapter {
	return &Adapter{logger}
}

// NewDefault builds a console logger writing to stderr
func NewDefault() *Adapter {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(writer).With().Timestamp().Logger()
	return &Adapter{&logger}
}

// GetLevel implements core.Logger.
func (a *Adapter) GetLevel() core.Level {
	return toLevel(a.Logger.GetLevel())
}

// SetLevel implements core.Logger.
func (a *Adapter) SetLevel(level core.Level) {
	zerolog.SetGlobalLevel(toZerologLevel(level))
}

// Print implements core.Logger.
func (a *Adapter) Print(args ...any) {
	a.Logger.Print(args...)
}

// Trace implements core.Logger.
func (a *Adapter) Trace(args ...any) {
	a.Logger.Trace().Msg(fmt.Sprint(args...))
}

// Debug implements core.Logger.
func (a *Adapter) Debug(args ...any) {
	a.Logger.Debug().Msg(fmt.Sprint(args...))
}

// Info implements core.Logger.
func (a *Adapter) Info(args ...any) {
	a.Logger.Info().Msg(fmt.Sprint(args...))
}

// Warn implements core.Logger.
func (a *Adapter) Warn(args ...any) {
	a.Logger.Warn().Msg(fmt.Sprint(args...))
}

// Error implements core.Logger.
func (a *Adapter) Error(args ...any) {
	a.Logger.Error().Msg(fmt.Sprint(args...))
}

// Fatal implements core.Logger.
func (a *Adapter) Fatal(args ...any) {
	a.Logger.Fatal().Msg(fmt.Sprint(args...))
}

// Panic implements core.Logger.
func (a *Adapter) Panic(args ...any) {
	a.Logger.Panic().Msg(fmt.Sprint(args...))
}

// Printf implements core.Logger.
func (a *Adapter) Printf(format string, args ...any) {
	a.Logger.Printf(format, args...)
}

// Tracef implements core.Logger.
func (a *Adapter) Tracef(format string, args ...any) {
	a.Logger.Trace().Msgf(format, args...)
}

// Debugf implements core.Logger.
func (a *Adapter) Debugf(format string, args ...any) {
	a.Logger.Debug().Msgf(format, args...)
}

// Infof implements core.Logger.
func (a *Adapter) Infof(format string, args ...any) {
	a.Logger.Info().Msgf(format, args...)
}

// Warnf implements core.Logger.
func (a *Adapter) Warnf(format string, args ...any) {
	a.Logger.Warn().Msgf(format, args...)
}

// Errorf implements core.Logger.
func (a *Adapter) Errorf(format string, args ...any) {
	a.Logger.Error().Msgf(format, args...)
}

// Fatalf implements core.Logger.
func (a *Adapter) Fatalf(format string, args ...any) {
	a.Logger.Fatal().Msgf(format, args...)
}

// Panicf implements core.Logger.
func (a *Adapter) Panicf(format string, args ...any) {
	a.Logger.Panic().Msgf(format, args...)
}

// WithError implements core.Logger.
func (a *Adapter) WithError(err error) core.Logger {
	newLogger := a.With().Err(err).Logger()
	return &Adapter{&newLogger}
}

// WithField implements core.Logger.
func (a *Adapter) WithField(key string, value any) core.Logger {
	newLogger := a.With().Interface(key, value).Logger()
	return &Adapter{&newLogger}
}

// WithFields implements core.Logger.
func (a *Adapter) WithFields(fields map[string]any) core.Logger {
	newLogger := a.With().Fields(fields).Logger()
	return &Adapter{&newLogger}
}

// toLevel converts zerolog.Level to core.Level.
func toLevel(level zerolog.Level) core.Level {
	switch level {
	case zerolog.Disabled:
		return core.Disabled
	case zerolog.TraceLevel:
		return core.TraceLevel
	case zerolog.DebugLevel:
		return core.DebugLevel
	case zerolog.InfoLevel:
		return core.InfoLevel
	case zerolog.WarnLevel:
		return core.WarnLevel
	case zerolog.ErrorLevel:
		return core.ErrorLevel
	case zerolog.FatalLevel:
		return core.FatalLevel
	case zerolog.PanicLevel:
		return core.PanicLevel
	default:
		return core.NoLevel
	}
}

// toZerologLevel converts core.Level to zerolog.Level.
func toZerologLevel(level core.Level) zerolog.Level {
	switch level {
	case core.Disabled:
		return zerolog.Disabled
	case core.TraceLevel:
		return zerolog.TraceLevel
	case core.DebugLevel:
		return zerolog.DebugLevel
	case core.InfoLevel:
		return zerolog.InfoLevel
	case core.WarnLevel:
		return zerolog.WarnLevel
	case core.ErrorLevel:
		return zerolog.ErrorLevel
	case core.FatalLevel:
		return zerolog.FatalLevel
	case core.PanicLevel:
		return zerolog.PanicLevel
	default:
		return zerolog.NoLevel
	}
}
