package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ToLogLevel parses a level name into a zerolog level, defaulting to
// info for unknown input.
func ToLogLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewZerologProvider returns a LoggerProvider writing JSON records to
// stderr at the given level.
func NewZerologProvider(level zerolog.Level) LoggerProvider {
	root := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return newZerologProviderFrom(root)
}

func newZerologProviderFrom(root zerolog.Logger) LoggerProvider {
	return &zerologProvider{root: root}
}

type zerologProvider struct {
	root zerolog.Logger
}

func (p *zerologProvider) GetLogger() Logger {
	return &zerologLogger{l: p.root}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{l: p.root.With().Str("logger", name).Logger()}
}

// zerologLogger adapts zerolog to the Logger interface.
type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, keysAndValues ...interface{}) {
	emit(z.l.Debug(), msg, keysAndValues)
}

func (z *zerologLogger) Info(msg string, keysAndValues ...interface{}) {
	emit(z.l.Info(), msg, keysAndValues)
}

func (z *zerologLogger) Warn(msg string, keysAndValues ...interface{}) {
	emit(z.l.Warn(), msg, keysAndValues)
}

func (z *zerologLogger) Error(msg string, keysAndValues ...interface{}) {
	emit(z.l.Error(), msg, keysAndValues)
}

func (z *zerologLogger) With(keysAndValues ...interface{}) Logger {
	ctx := z.l.With()
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		ctx = ctx.Interface(fieldKey(keysAndValues[i]), keysAndValues[i+1])
	}
	return &zerologLogger{l: ctx.Logger()}
}

func emit(ev *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		ev = ev.Interface(fieldKey(keysAndValues[i]), keysAndValues[i+1])
	}
	ev.Msg(msg)
}

func fieldKey(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
