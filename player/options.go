// SPDX-License-Identifier: MIT

package player

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fwstep/config"
)

// Options holds the resolved settings of a Player.
type Options struct {
	Speed    int
	Logger   logrus.FieldLogger
	Observer func(from, to Status)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions plays at full speed and logs to the logrus standard logger.
func DefaultOptions() Options {
	return Options{Speed: config.DefaultSpeed, Logger: logrus.StandardLogger()}
}

// WithSpeed sets the initial speed, clamped to [0, 100].
func WithSpeed(n int) Option { return func(o *Options) { o.Speed = clampSpeed(n) } }

// WithLogger sets the logger; nil keeps the current one.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers fn to receive every status change. fn runs while
// the player is locked and must not call back into it.
func WithObserver(fn func(from, to Status)) Option {
	return func(o *Options) { o.Observer = fn }
}

// FromConfig applies the player fields of c.
func FromConfig(c config.Config) Option { return WithSpeed(c.Speed) }

func clampSpeed(n int) int {
	switch {
	case n < 0:
		return 0
	case n > config.MaxSpeed:
		return config.MaxSpeed
	}
	return n
}
