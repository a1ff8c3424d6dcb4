// Package logging builds the charmbracelet/log logger shared by the CLI and
// the front ends.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const Prefix = "slopefield"

type Options struct {
	Debug bool
	// File redirects output to a file. The terminal front end owns the
	// screen, so it logs to a file or not at all.
	File string
	// Quiet discards output when no file is set.
	Quiet bool
}

// New returns a logger and a close func for any file it opened. Without
// Debug the level is Warn.
func New(opts Options) (*log.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = f.Close
	case opts.Quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           log.WarnLevel,
		ReportTimestamp: opts.File != "",
	})
	if opts.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
