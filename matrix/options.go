// SPDX-License-Identifier: MIT
// Package matrix: numeric policy options.
//
// Purpose:
//   - Single source of truth for the numeric policy applied by Dense.Set/Fill.
//   - Functional options (Option) resolved once at construction time.
//
// Policy:
//   - By default NaN and ±Inf are rejected.
//   - WithAllowInfDistances permits +Inf ("no path") for APSP distance matrices;
//     NaN and -Inf stay rejected.

package matrix

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set and Fill.
	DefaultValidateNaNInf = true

	// DefaultAllowInfDistances permits +Inf values to represent “no path”.
	DefaultAllowInfDistances = false

	// DefaultEpsilon is the tolerance used by ValidateSymmetric when none is given.
	DefaultEpsilon = 1e-9
)

// Option mutates Options during construction.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	validateNaNInf    bool // DefaultValidateNaNInf
	allowInfDistances bool // DefaultAllowInfDistances
}

// gatherOptions resolves opts over the package defaults.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := Options{
		validateNaNInf:    DefaultValidateNaNInf,
		allowInfDistances: DefaultAllowInfDistances,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithAllowInfDistances lets +Inf through the numeric guard.
func WithAllowInfDistances() Option {
	return func(o *Options) { o.allowInfDistances = true }
}

// WithNoValidateNaNInf disables the numeric guard entirely.
// Use only for controlled ingestion in tests.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}
