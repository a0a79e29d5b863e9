// SPDX-License-Identifier: MIT

package tilemap

import (
	"regexp"
	"strings"

	"github.com/katalvlaran/fwstep/matrix"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Parse reads a tile map: rows separated by "\n" or "\r\n", all of equal
// rune length. Trailing line breaks are ignored.
// Returns ErrMalformedGrid (wrapping ErrEmptyGrid, ErrNonRectangular or
// ErrUnknownSymbol) on rejection. The input is never modified.
// Complexity: O(R×C) time and memory.
func Parse(text string, opts ...Option) (*Grid, error) {
	o := gatherOptions(opts...)
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return nil, malformed(ErrEmptyGrid, "no rows")
	}
	lines := lineBreak.Split(text, -1)
	h, w := len(lines), len([]rune(lines[0]))
	if w == 0 {
		return nil, malformed(ErrEmptyGrid, "row 0 is empty")
	}

	cells := make([][]Tile, h)
	for y, line := range lines {
		runes := []rune(line)
		if len(runes) != w {
			return nil, malformed(ErrNonRectangular, "row %d has %d tiles, want %d", y, len(runes), w)
		}
		cells[y] = make([]Tile, w)
		for x, r := range runes {
			switch {
			case r == o.Open:
				cells[y][x] = Open
			case r == o.Wall || !o.Strict:
				cells[y][x] = Wall
			default:
				return nil, malformed(ErrUnknownSymbol, "%q at row %d col %d", r, y, x)
			}
		}
	}

	// Precompute neighbour offsets (dRow, dCol) based on connectivity.
	var offsets [][2]int
	if o.Conn == Conn8 {
		offsets = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	}

	return &Grid{Rows: h, Cols: w, cells: cells, opts: o, offsets: offsets}, nil
}

// Build parses text and returns its adjacency matrix in one call.
func Build(text string, opts ...Option) (*matrix.Dense, error) {
	g, err := Parse(text, opts...)
	if err != nil {
		return nil, err
	}
	return g.Adjacency()
}

// InBounds reports whether (row,col) lies within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the tile at (row,col).
func (g *Grid) At(row, col int) (Tile, error) {
	if !g.InBounds(row, col) {
		return Wall, ErrOutOfBounds
	}
	return g.cells[row][col], nil
}

// IsOpen reports whether (row,col) is an in-bounds open tile.
func (g *Grid) IsOpen(row, col int) bool {
	return g.InBounds(row, col) && g.cells[row][col] == Open
}

// Index maps (row,col) to its row-major vertex number.
func (g *Grid) Index(row, col int) int {
	return row*g.Cols + col
}

// Coordinate converts a vertex number back to (row,col).
func (g *Grid) Coordinate(idx int) (row, col int) {
	return idx / g.Cols, idx % g.Cols
}

// Vertices is the adjacency dimension R×C (walls included).
func (g *Grid) Vertices() int {
	return g.Rows * g.Cols
}

// OpenCount returns the number of open tiles.
func (g *Grid) OpenCount() int {
	n := 0
	for _, row := range g.cells {
		for _, t := range row {
			if t == Open {
				n++
			}
		}
	}
	return n
}

// Adjacency builds the R·C × R·C 0/1 matrix: entry (a,b) is 1 iff a and b are
// open and neighbours under the grid connectivity. Symmetric, zero diagonal.
// Complexity: O((R×C)²) memory, O(R×C×d) writes.
func (g *Grid) Adjacency() (*matrix.Dense, error) {
	n := g.Vertices()
	adj, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.cells[y][x] != Open {
				continue
			}
			a := g.Index(y, x)
			for _, d := range g.offsets {
				ny, nx := y+d[0], x+d[1]
				if !g.IsOpen(ny, nx) {
					continue
				}
				if err = adj.Set(a, g.Index(ny, nx), 1); err != nil {
					return nil, err
				}
			}
		}
	}
	return adj, nil
}

// Regions finds all connected open regions by BFS, in row-major discovery
// order. Each region lists vertex numbers in BFS order.
// Time: O(R·C·d). Memory: O(R·C).
func (g *Grid) Regions() [][]int {
	seen := make([]bool, g.Vertices())
	var regions [][]int

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			i0 := g.Index(y, x)
			if g.cells[y][x] != Open || seen[i0] {
				continue
			}
			queue := []int{i0}
			seen[i0] = true
			for qi := 0; qi < len(queue); qi++ {
				uy, ux := g.Coordinate(queue[qi])
				for _, d := range g.offsets {
					vy, vx := uy+d[0], ux+d[1]
					if !g.IsOpen(vy, vx) {
						continue
					}
					if vi := g.Index(vy, vx); !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			regions = append(regions, queue)
		}
	}
	return regions
}

// String renders the grid back with its configured symbols.
func (g *Grid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, t := range row {
			if t == Open {
				b.WriteRune(g.opts.Open)
			} else {
				b.WriteRune(g.opts.Wall)
			}
		}
	}
	return b.String()
}
