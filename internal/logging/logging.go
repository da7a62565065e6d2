package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Provides a leveled key/value logger interface for the application.
// Arguments after the message alternate between keys and values:
//
//	log.Info("artifact created", "source", src, "recovery", rec)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LogrusLogger writes through a logrus.Logger.
type LogrusLogger struct {
	l *logrus.Logger
}

// New builds a logger for the given level name ("debug", "info",
// "warning", ...) and format ("text" or "json").
func New(level, format string, w io.Writer) (*LogrusLogger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)

	switch format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return &LogrusLogger{l: l}, nil
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return &LogrusLogger{l: l}
}

func (g *LogrusLogger) Debug(msg string, args ...any) { g.entry(args).Debug(msg) }
func (g *LogrusLogger) Info(msg string, args ...any)  { g.entry(args).Info(msg) }
func (g *LogrusLogger) Warn(msg string, args ...any)  { g.entry(args).Warn(msg) }
func (g *LogrusLogger) Error(msg string, args ...any) { g.entry(args).Error(msg) }

func (g *LogrusLogger) entry(args []any) *logrus.Entry {
	return g.l.WithFields(fields(args))
}

// fields pairs up key/value arguments. A trailing key without a value is
// kept under "extra" so nothing is silently lost.
func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			f["extra"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		f[key] = args[i+1]
	}
	return f
}
