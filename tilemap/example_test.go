package tilemap_test

import (
	"fmt"

	"github.com/katalvlaran/fwstep/tilemap"
)

// ExampleParse shows the row-major vertex numbering and the adjacency row of
// the centre tile of a small room with one pillar.
func ExampleParse() {
	g, _ := tilemap.Parse("...\n.#.\n...")
	adj, _ := g.Adjacency()

	fmt.Println("vertices:", g.Vertices(), "open:", g.OpenCount())
	for j := 0; j < g.Vertices(); j++ {
		if v, _ := adj.At(g.Index(0, 1), j); v != 0 {
			r, c := g.Coordinate(j)
			fmt.Printf("(0,1) -> (%d,%d)\n", r, c)
		}
	}

	// Output:
	// vertices: 9 open: 8
	// (0,1) -> (0,0)
	// (0,1) -> (0,2)
}
