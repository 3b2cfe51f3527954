package commands

import (
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
)

// newLogger returns a CLI logger writing to w. verbose enables debug output.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &log.Logger{
		Handler: cli.New(w),
		Level:   level,
	}
}

// quietLogger drops everything; the full screen app owns the terminal
func quietLogger() *log.Logger {
	return &log.Logger{
		Handler: discard.Default,
		Level:   log.FatalLevel,
	}
}
