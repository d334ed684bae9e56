// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// Verbose switches the level to debug.
	Verbose bool
	// DisableColor turns off colored level names even on a terminal.
	DisableColor bool
	HideTime     bool
	// Output defaults to stderr.
	Output io.Writer
	// Level overrides Verbose when set, e.g. "warn".
	Level string
}

func Init(options Options) error {
	level := logrus.InfoLevel
	if options.Verbose {
		level = logrus.DebugLevel
	}

	if options.Level != "" {
		parsed, err := logrus.ParseLevel(options.Level)
		if err != nil {
			return errors.Errorf("failed to init logger: %v", err)
		}

		level = parsed
	}

	logrus.SetLevel(level)

	out := options.Output
	if out == nil {
		out = os.Stderr
	}

	logrus.SetOutput(out)

	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    options.DisableColor,
		ForceColors:      !options.DisableColor && out == os.Stderr,
		DisableTimestamp: options.HideTime,
		FullTimestamp:    !options.HideTime,
		TimestampFormat:  "2006-01-02 15:04:05",
	})

	return nil
}
