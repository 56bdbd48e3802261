// Package logger provides the structured logger used by the dataset
// preparation pipeline.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type Logger struct {
	logger *zerolog.Logger
}

// consoleTimeFormat is the timestamp layout of the human readable output.
const consoleTimeFormat = "15:04:05.000"

// New creates a logger writing to w. A terminal gets the human readable
// console output, anything else gets JSON lines.
func New(w io.Writer, isDebug, noColor bool) *Logger {
	if isTerminal(w) {
		return NewConsole(w, isDebug, noColor)
	}
	return newLogger(w, isDebug)
}

// NewConsole creates a console logger regardless of the output type,
// e.g. to keep a readable log when stderr is redirected to a file.
func NewConsole(w io.Writer, isDebug, noColor bool) *Logger {
	return newLogger(zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: noColor}, isDebug)
}

func newLogger(w io.Writer, isDebug bool) *Logger {
	logLevel := zerolog.InfoLevel
	if isDebug {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(w).Level(logLevel).With().Timestamp().Logger()
	return &Logger{logger: &logger}
}

// Nop returns a logger discarding every event.
func Nop() *Logger {
	logger := zerolog.Nop()
	return &Logger{logger: &logger}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// With creates a child logger with the field added to its context.
func (l *Logger) With() zerolog.Context { return l.logger.With() }

// Extend adds some additional context to the existing logger.
func (l *Logger) Extend(ctx zerolog.Context) *Logger {
	logger := ctx.Logger()
	return &Logger{logger: &logger}
}

// Debug starts a new message with debug level.
// You must call Msg on the returned event in order to send the event.
func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }

// Info starts a new message with info level.
// You must call Msg on the returned event in order to send the event.
func (l *Logger) Info() *zerolog.Event { return l.logger.Info() }

// Warn starts a new message with warn level.
// You must call Msg on the returned event in order to send the event.
func (l *Logger) Warn() *zerolog.Event { return l.logger.Warn() }

// Error starts a new message with error level.
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }

// Fatal starts a new message with fatal level. The os.Exit(1) function
// is called by the Msg method.
func (l *Logger) Fatal() *zerolog.Event { return l.logger.Fatal() }
