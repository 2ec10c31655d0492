package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/config"
)

// Setup builds the process logger from configuration. LOG_FORMAT=pretty
// writes human-readable lines; anything else writes JSON. Every event carries
// the app environment. Error-level events are also sent to Rollbar when
// ROLLBAR_TOKEN is set.
func Setup(cfg *config.Config) zerolog.Logger {
	return build(os.Stdout, cfg)
}

func build(out io.Writer, cfg *config.Config) zerolog.Logger {
	writer := out
	if cfg.LogFormat == "pretty" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log := zerolog.New(writer).
		With().
		Timestamp().
		Str("env", cfg.AppEnv).
		Caller().
		Logger()

	if cfg.RollbarToken != "" {
		configureRollbar(cfg.RollbarToken, cfg.AppEnv)
		log = log.Hook(RollbarHook{})
	}
	return log
}
