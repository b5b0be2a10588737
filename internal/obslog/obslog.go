// Package obslog wires the engine's zerolog logger the way
// cmd/cryptorun/main.go configures CryptoRun's: RFC3339 timestamps, a
// console writer on a TTY, plain JSON lines otherwise.
package obslog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Init configures the global zerolog logger for the process. Call once
// from main before touching any other package.
func Init(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Stage returns a sub-logger tagged with the pipeline stage name plus
// symbol/date, used for the per-stage Debug entry/exit lines.
func Stage(stage, symbol, date string) zerolog.Logger {
	return log.Logger.With().
		Str("stage", stage).
		Str("symbol", symbol).
		Str("date", date).
		Logger()
}
