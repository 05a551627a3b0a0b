package logsvc

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/user"
)

type ZeroLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*ZeroLogger)(nil)

// New returns the application logger writing to w, forwarding to rollbar when a token is configured.
func New(w io.Writer, conf *core.Config) core.Logger {
	zl := NewZeroLogger(w, conf)
	if conf.RollbarToken == "" {
		return zl
	}
	return NewRollbarLogger(zl, conf)
}

func NewZeroLogger(w io.Writer, conf *core.Config) *ZeroLogger {
	var zl zerolog.Logger
	if conf.Log.Pretty {
		output := zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    conf.Log.NoColor,
		}
		zl = zerolog.New(output).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(w).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(conf.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}
	zl = zl.Level(level).With().Str("app", conf.AppName).Str("env", conf.Env).Logger()

	return &ZeroLogger{zl: zl}
}

// expected fmt: msg | error, map[string]interface{}, user.Account
func (l ZeroLogger) send(e *zerolog.Event, msg string, args []interface{}) {
	for i, arg := range args {
		switch v := arg.(type) {
		case error:
			e = e.Err(v)
		case map[string]interface{}:
			e = e.Fields(v)
		case user.Account:
			e = e.Int("user_id", v.ID).Str("username", v.Username).Str("role", v.Role.String())
		default:
			e = e.Interface(fmt.Sprintf("arg%d", i), v)
		}
	}
	e.Msg(msg)
}

func (l ZeroLogger) Debug(msg string, args ...interface{}) { l.send(l.zl.Debug(), msg, args) }
func (l ZeroLogger) Info(msg string, args ...interface{})  { l.send(l.zl.Info(), msg, args) }
func (l ZeroLogger) Warn(msg string, args ...interface{})  { l.send(l.zl.Warn(), msg, args) }
func (l ZeroLogger) Error(msg string, args ...interface{}) { l.send(l.zl.Error(), msg, args) }
func (l ZeroLogger) Fatal(msg string, args ...interface{}) { l.send(l.zl.Fatal(), msg, args) }
