// SPDX-License-Identifier: MIT

package stepper

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fwstep/config"
	"github.com/katalvlaran/fwstep/fwstate"
)

// Options holds the resolved settings of a Stepper.
type Options struct {
	MaxCheckpoints int
	Worker         bool
	Logger         logrus.FieldLogger
	Observer       func(fwstate.State)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions mirrors config.Default and logs to the logrus standard logger.
func DefaultOptions() Options {
	return Options{
		MaxCheckpoints: config.DefaultMaxCheckpoints,
		Worker:         config.DefaultWorker,
		Logger:         logrus.StandardLogger(),
	}
}

// WithMaxCheckpoints bounds the number of checkpoints per run (values < 1 mean 1).
func WithMaxCheckpoints(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.MaxCheckpoints = n
	}
}

// WithWorker enables or disables background precomputation.
func WithWorker(on bool) Option { return func(o *Options) { o.Worker = on } }

// WithLogger sets the logger; nil keeps the current one.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers fn to receive every published state.
func WithObserver(fn func(fwstate.State)) Option { return func(o *Options) { o.Observer = fn } }

// FromConfig applies the stepper fields of c.
func FromConfig(c config.Config) Option {
	return func(o *Options) {
		WithMaxCheckpoints(c.MaxCheckpoints)(o)
		o.Worker = c.Worker
	}
}
