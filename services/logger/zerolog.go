package logsvc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/gradebook/core"
)

// ZeroLogger is a core.Logger writing structured logs with zerolog.
type ZeroLogger struct {
	log zerolog.Logger
}

var _ core.Logger = (*ZeroLogger)(nil)

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewZeroLogger returns a logger writing to w. Every entry is tagged with component.
func NewZeroLogger(w io.Writer, conf core.LogConfig, component string) *ZeroLogger {
	if conf.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log := zerolog.New(w).
		Level(parseLevel(conf.Level)).
		With().
		Timestamp().
		Str("component", component).
		Logger()
	return &ZeroLogger{log: log}
}

// expected args: error, map[string]interface{} (fields) or anything printable
func (l ZeroLogger) write(evt *zerolog.Event, msg string, args []interface{}) {
	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			evt = evt.Err(a).Str("stack", fmt.Sprintf("%+v", a))
		case map[string]interface{}:
			evt = evt.Fields(a)
		default:
			evt = evt.Interface(fmt.Sprintf("arg%d", i), a)
		}
	}
	evt.Msg(msg)
}

func (l ZeroLogger) Debug(msg string, args ...interface{}) {
	l.write(l.log.Debug(), msg, args)
}

func (l ZeroLogger) Info(msg string, args ...interface{}) {
	l.write(l.log.Info(), msg, args)
}

func (l ZeroLogger) Warn(msg string, args ...interface{}) {
	l.write(l.log.Warn(), msg, args)
}

func (l ZeroLogger) Error(msg string, args ...interface{}) {
	l.write(l.log.Error(), msg, args)
}

func (l ZeroLogger) Fatal(msg string, args ...interface{}) {
	l.write(l.log.Fatal(), msg, args)
}
