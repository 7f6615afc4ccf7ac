// Package logging builds the single, explicitly-passed *log.Logger every
// command and package in this module uses, instead of a global logger:
// the Background filter (through NewBest) and the synthesizer's Session
// take a logger by reference, so tests can supply their own and production code can wire one logger
// per command invocation.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Level is one of "debug", "info", "warn", "error"; empty means info.
	Level string
	// Output defaults to os.Stderr.
	Output io.Writer
	// ReportTimestamp matches charmbracelet/log's option of the same
	// name; false by default, useful when piping AU data to stdout and
	// logs to stderr without timestamp noise cluttering a terminal.
	ReportTimestamp bool
}

// New builds a logger per opts.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(opts.Level))
	return logger
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
