// SPDX-License-Identifier: MIT

// Package logger builds the logrus logger shared by the stepper and player.
package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fwstep/config"
)

// Options configures New.
type Options struct {
	// Level is any level logrus.ParseLevel accepts; empty means info.
	Level string
	// JSON selects logrus.JSONFormatter instead of the compact text Formatter.
	JSON bool
	// DisableColor disables ANSI colours in text output.
	DisableColor bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a dedicated logger configured by opts.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()
	if err := apply(l, opts); err != nil {
		return nil, err
	}
	return l, nil
}

// Init configures the logrus standard logger in place.
func Init(opts Options) error {
	return apply(logrus.StandardLogger(), opts)
}

// FromConfig maps the log fields of c onto Options.
func FromConfig(c config.Config) Options {
	return Options{Level: c.LogLevel, JSON: c.LogJSON}
}

func apply(l *logrus.Logger, opts Options) error {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return errors.Wrapf(err, "failed to init logger")
		}
		level = parsed
	}
	l.SetLevel(level)

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&Formatter{DisableColor: opts.DisableColor})
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)
	return nil
}

// Discard returns a logger that drops everything, for tests and embedding.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
