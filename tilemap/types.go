// SPDX-License-Identifier: MIT

package tilemap

import "github.com/katalvlaran/fwstep/config"

// Tile is the two-valued cell alphabet.
type Tile uint8

const (
	// Wall blocks movement.
	Wall Tile = iota
	// Open is walkable floor.
	Open
)

// String implements fmt.Stringer.
func (t Tile) String() string {
	if t == Open {
		return "open"
	}
	return "wall"
}

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

const (
	// DefaultOpen is the default floor symbol.
	DefaultOpen = '.'
	// DefaultWall is the default wall symbol.
	DefaultWall = '#'
)

// Options contains tunable parameters for parsing and adjacency building.
type Options struct {
	// Open is the rune for walkable tiles.
	Open rune
	// Wall is the rune for blocked tiles.
	Wall rune
	// Strict rejects runes that are neither Open nor Wall.
	Strict bool
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns '.'/'#' symbols, lenient parsing and Conn4.
func DefaultOptions() Options {
	return Options{Open: DefaultOpen, Wall: DefaultWall, Conn: Conn4}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithOpen sets the floor symbol.
func WithOpen(r rune) Option { return func(o *Options) { o.Open = r } }

// WithWall sets the wall symbol.
func WithWall(r rune) Option { return func(o *Options) { o.Wall = r } }

// WithStrictSymbols rejects unknown runes with ErrUnknownSymbol.
func WithStrictSymbols() Option { return func(o *Options) { o.Strict = true } }

// WithConnectivity selects Conn4 or Conn8.
func WithConnectivity(c Connectivity) Option { return func(o *Options) { o.Conn = c } }

// FromConfig applies the tile symbols and strictness of c.
func FromConfig(c config.Config) Option {
	return func(o *Options) {
		o.Open = c.OpenRune()
		o.Wall = c.WallRune()
		o.Strict = c.StrictTiles
	}
}

// Grid is a parsed tile map. It is immutable once built.
// Rows and Cols define dimensions; cells[row][col] holds the tile.
type Grid struct {
	Rows, Cols int
	cells      [][]Tile
	opts       Options
	offsets    [][2]int
}
