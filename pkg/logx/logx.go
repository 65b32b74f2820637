package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors zerolog levels under the names used across the codebase
type Level int8

const (
	LevelDebug Level = Level(zerolog.DebugLevel)
	LevelInfo  Level = Level(zerolog.InfoLevel)
	LevelWarn  Level = Level(zerolog.WarnLevel)
	LevelError Level = Level(zerolog.ErrorLevel)
)

// Fields are structured key/value pairs attached to a log line
type Fields map[string]any

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout, false)
)

func newLogger(w io.Writer, jsonOutput bool) zerolog.Logger {
	if !jsonOutput {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetLevel sets the minimum level that is written
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(zerolog.Level(level))
}

// ParseLevel converts "debug", "info", "warn" or "error" into a Level, defaulting to info
func ParseLevel(s string) Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return LevelInfo
	}
	return Level(lvl)
}

// SetOutput redirects the logger. JSON output is used in production.
func SetOutput(w io.Writer, jsonOutput bool) {
	mu.Lock()
	defer mu.Unlock()
	level := logger.GetLevel()
	logger = newLogger(w, jsonOutput).Level(level)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debug(msg string) { current().Debug().Msg(msg) }
func Info(msg string)  { current().Info().Msg(msg) }
func Warn(msg string)  { current().Warn().Msg(msg) }
func Error(msg string) { current().Error().Msg(msg) }

func Debugf(format string, args ...any) { current().Debug().Msgf(format, args...) }
func Infof(format string, args ...any)  { current().Info().Msgf(format, args...) }
func Warnf(format string, args ...any)  { current().Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { current().Error().Msgf(format, args...) }

// Fatalf logs at fatal level and exits the process
func Fatalf(format string, args ...any) {
	current().Fatal().Msg(fmt.Sprintf(format, args...))
}

// Entry is a logger bound to a set of fields
type Entry struct {
	fields Fields
}

// WithFields returns an Entry that adds fields to every line it writes
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

func (e *Entry) Info(msg string)  { current().Info().Fields(map[string]any(e.fields)).Msg(msg) }
func (e *Entry) Warn(msg string)  { current().Warn().Fields(map[string]any(e.fields)).Msg(msg) }
func (e *Entry) Error(msg string) { current().Error().Fields(map[string]any(e.fields)).Msg(msg) }
func (e *Entry) Debug(msg string) { current().Debug().Fields(map[string]any(e.fields)).Msg(msg) }
