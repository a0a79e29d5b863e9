// SPDX-License-Identifier: MIT

// Package config loads the tunables shared by the stepper, the player, the
// tile-map parser and the logger.
//
// Sources, lowest precedence first: built-in defaults, an optional config
// file (any format viper reads: JSON, YAML, TOML, ...), then FWSTEP_*
// environment variables (e.g. FWSTEP_MAX_CHECKPOINTS=500).
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FWSTEP"

// Keys understood by Load.
const (
	KeyMaxCheckpoints = "max_checkpoints"
	KeyWorker         = "worker"
	KeyOpenTile       = "open_tile"
	KeyWallTile       = "wall_tile"
	KeyStrictTiles    = "strict_tiles"
	KeySpeed          = "speed"
	KeyLogLevel       = "log_level"
	KeyLogJSON        = "log_json"
)

// Defaults.
const (
	DefaultMaxCheckpoints = 1000
	DefaultWorker         = true
	DefaultOpenTile       = "."
	DefaultWallTile       = "#"
	DefaultSpeed          = 100
	DefaultLogLevel       = "info"

	// MaxSpeed is the fastest play speed (no delay between ticks).
	MaxSpeed = 100
)

// Config is the resolved configuration.
type Config struct {
	// MaxCheckpoints bounds the number of checkpoints per run; it also fixes
	// the checkpoint interval and the ring capacity.
	MaxCheckpoints int `mapstructure:"max_checkpoints"`
	// Worker enables background checkpoint precomputation.
	Worker bool `mapstructure:"worker"`
	// OpenTile and WallTile are single-rune tile symbols.
	OpenTile string `mapstructure:"open_tile"`
	WallTile string `mapstructure:"wall_tile"`
	// StrictTiles rejects unknown tile symbols instead of treating them as walls.
	StrictTiles bool `mapstructure:"strict_tiles"`
	// Speed is the play speed in [0, MaxSpeed].
	Speed int `mapstructure:"speed"`
	// LogLevel is any level logrus.ParseLevel accepts.
	LogLevel string `mapstructure:"log_level"`
	// LogJSON switches the log formatter to JSON.
	LogJSON bool `mapstructure:"log_json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxCheckpoints: DefaultMaxCheckpoints,
		Worker:         DefaultWorker,
		OpenTile:       DefaultOpenTile,
		WallTile:       DefaultWallTile,
		Speed:          DefaultSpeed,
		LogLevel:       DefaultLogLevel,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyMaxCheckpoints, d.MaxCheckpoints)
	v.SetDefault(KeyWorker, d.Worker)
	v.SetDefault(KeyOpenTile, d.OpenTile)
	v.SetDefault(KeyWallTile, d.WallTile)
	v.SetDefault(KeyStrictTiles, d.StrictTiles)
	v.SetDefault(KeySpeed, d.Speed)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogJSON, d.LogJSON)
}

// Load resolves defaults, the file at path (skipped when path is empty) and
// the environment, then validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.MaxCheckpoints < 1 {
		result = multierror.Append(result, fmt.Errorf("%s must be >= 1, got %d", KeyMaxCheckpoints, c.MaxCheckpoints))
	}
	if utf8.RuneCountInString(c.OpenTile) != 1 {
		result = multierror.Append(result, fmt.Errorf("%s must be a single character, got %q", KeyOpenTile, c.OpenTile))
	}
	if utf8.RuneCountInString(c.WallTile) != 1 {
		result = multierror.Append(result, fmt.Errorf("%s must be a single character, got %q", KeyWallTile, c.WallTile))
	}
	if c.OpenTile == c.WallTile {
		result = multierror.Append(result, fmt.Errorf("%s and %s must differ", KeyOpenTile, KeyWallTile))
	}
	if c.Speed < 0 || c.Speed > MaxSpeed {
		result = multierror.Append(result, fmt.Errorf("%s must be in [0,%d], got %d", KeySpeed, MaxSpeed, c.Speed))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}
	return result.ErrorOrNil()
}

// OpenRune returns the open tile symbol (DefaultOpenTile when unset).
func (c Config) OpenRune() rune { return firstRune(c.OpenTile, DefaultOpenTile) }

// WallRune returns the wall tile symbol (DefaultWallTile when unset).
func (c Config) WallRune() rune { return firstRune(c.WallTile, DefaultWallTile) }

func firstRune(s, fallback string) rune {
	if s == "" {
		s = fallback
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
