package logger

import (
	"courtbook/config"
	"courtbook/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// InitLogger installs a human readable logger that prints everything. It is
// meant for the bootstrap phase, before the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(consoleWriter(os.Stdout))
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and switches to JSON lines outside
// of development so log collectors can parse them.
func Configure(cfg *config.Config) {
	Setup(cfg, os.Stdout)
}

// Setup is Configure with an explicit destination.
func Setup(cfg *config.Config, out io.Writer) {
	level := parseLevel(cfg.Server.LogLevel)
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer = out
	if cfg.Server.Env == "" || cfg.Server.Env == constant.ServerEnvDevelopment {
		writer = consoleWriter(out)
	}

	ctx := zerolog.New(writer).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()
	zerolog.SetGlobalLevel(level)

	log.Debug().Str("loglevel", level.String()).Str("env", cfg.Server.Env).Msg("Logger configured.")
}

// ErrorWithStack logs err together with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Msg("unexpected error")
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		log.Warn().Str("loglevel", raw).Msg("Unknown log level, using info.")

		return zerolog.InfoLevel
	}

	return level
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
