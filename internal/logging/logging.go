package logging

import (
	"io"
	"os"
	"time"

	"github.com/jrsteele09/go-docadmin/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. DEV gets a human readable
// console writer on stderr; every other environment logs JSON.
func Setup(cfg config.EnvConfig) {
	SetupWriter(cfg, os.Stderr)
}

func SetupWriter(cfg config.EnvConfig, w io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(cfg.GetLogLevel()))
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if cfg.GetEnv() == "DEV" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.GetAppName()).Logger()
}

// ParseLevel maps LOG_LEVEL values onto zerolog levels, defaulting to info
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
