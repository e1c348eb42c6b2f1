// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction.
type Options struct {
	// Level is a logrus level name ("debug", "info", ...). Empty means info.
	Level string
	// Format selects the formatter: "json" for machine collection,
	// anything else for human-readable text.
	Format string
	// Output overrides the log destination. Nil means stdout.
	Output io.Writer
}

// New builds a configured logrus logger.
func New(opts Options) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stdout)
	}
	return logger
}
