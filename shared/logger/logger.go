package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the process-wide logger. In the dev environment output is
// pretty-printed for humans, otherwise structured JSON goes to stdout.
func New(service, environment string) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	if environment == "dev" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		l = zerolog.New(os.Stdout)
	}

	l = l.With().Timestamp().Str("service", service).Logger()

	return &l
}
