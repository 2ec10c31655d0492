package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"
)

// RollbarHook forwards error-and-above log events to Rollbar.
type RollbarHook struct{}

func configureRollbar(token, env string) {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetServerRoot("github.com/educonnect/educonnect-backend")
}

// Run implements zerolog.Hook.
func (RollbarHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	switch level {
	case zerolog.ErrorLevel:
		rollbar.Error(msg)
	case zerolog.FatalLevel, zerolog.PanicLevel:
		rollbar.Critical(msg)
		rollbar.Wait()
	}
}

// Flush blocks until queued Rollbar items are sent.
func Flush() {
	rollbar.Wait()
}
