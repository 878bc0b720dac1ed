package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func initLogger(app, runID string, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Str("run", runID).Logger()
}
