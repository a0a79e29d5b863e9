// SPDX-License-Identifier: MIT

// Package tilemap turns a textual tile map into the adjacency matrix consumed
// by the Floyd–Warshall stepper.
//
// What:
//
//   - Parse reads rows of equal length; each rune is an open floor tile or a wall.
//   - Grid.Adjacency links every open tile to its open neighbours (Conn4 by
//     default, Conn8 on request) with unit weight.
//   - Grid.Regions lists the connected open regions, which is exactly the
//     reachability relation the all-pairs closure will discover.
//
// Vertex numbering is row-major: vertex = row*Cols + col. Walls keep their
// vertex number and simply have no edges.
//
// Symbols:
//
//   - Defaults are '.' (open) and '#' (wall); both are options, not rules.
//   - Unknown runes count as walls unless WithStrictSymbols is given.
//
// Errors:
//
//   - ErrMalformedGrid: umbrella for every rejected map; wraps
//     ErrEmptyGrid, ErrNonRectangular or ErrUnknownSymbol.
//
// Complexity:
//
//   - Parse: O(R×C). Adjacency: O((R×C)²) memory for the dense matrix.
package tilemap
