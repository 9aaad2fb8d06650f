// Package log provides structured logging for bayesgo, backed by
// github.com/rs/zerolog.
//
// Library code obtains a Logger through a LoggerProvider (usually the
// package default) and emits key-value structured records. Programs
// call SetupLogger once to pick the level and a human-readable console
// format, or leave the default JSON output in place.
package log

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Semantic field keys shared across the library so log output stays
// queryable.
const (
	ModelNameKey  = "model"
	ComponentKey  = "component"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	ClassesKey    = "classes"
	DurationMsKey = "duration_ms"
	PredsKey      = "predictions"
)

// Values for OperationKey and PhaseKey.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	PhaseTraining      = "training"
	PhaseInference     = "inference"
)

// Logger is the structured logging interface used by estimators and
// transformers. keysAndValues are alternating key-value pairs; a
// dangling key is dropped.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	// With returns a child Logger that includes the given key-value
	// pairs in every record.
	With(keysAndValues ...interface{}) Logger
}

// LoggerProvider hands out Logger instances. Packages hold one
// provider and derive named loggers from it.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
}

var (
	mu              sync.RWMutex
	defaultProvider LoggerProvider
	globalLogger    = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
)

// SetupLogger configures the process-wide logger with the given level
// ("debug", "info", "warn", "error", ...) and console-friendly output.
// Intended for program entry points; libraries should not call it.
func SetupLogger(level string) {
	lvl := ToLogLevel(level)
	writer := zerolog.ConsoleWriter{Out: os.Stderr}

	mu.Lock()
	defer mu.Unlock()
	globalLogger = zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
	defaultProvider = newZerologProviderFrom(globalLogger)
}

// GetLogger returns the process-wide raw zerolog logger for callers
// that want the full zerolog API.
func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// GetLoggerWithName returns a named structured Logger from the default
// provider, creating the provider on first use.
func GetLoggerWithName(name string) Logger {
	return getDefaultProvider().GetLoggerWithName(name)
}

// LogError logs err at error level with the given message.
func LogError(err error, msg string) {
	logger := GetLogger()
	logger.Error().Err(err).Msg(msg)
}

func getDefaultProvider() LoggerProvider {
	mu.Lock()
	defer mu.Unlock()
	if defaultProvider == nil {
		defaultProvider = newZerologProviderFrom(globalLogger)
	}
	return defaultProvider
}
