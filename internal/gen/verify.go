package gen

import (
	"fmt"

	"github.com/spakin/disjoint"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// Verify checks that a grid is a perfect maze: exactly W*H-1 passages and
// every cell in one connected component. Passages are folded into a
// disjoint-set forest; a passage that connects two already-joined cells is
// a cycle, and any leftover set is an unreachable region.
func Verify(g *maze.Grid) error {
	total := g.W * g.H
	if total == 0 {
		return fmt.Errorf("gen: empty grid")
	}

	elems := make([]*disjoint.Element, total)
	for i := range elems {
		elems[i] = disjoint.NewElement()
	}

	passages := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := maze.C(x, y)
			// Symmetry makes checking East and South sufficient.
			for _, d := range []maze.Dir{maze.East, maze.South} {
				if !g.Open(c, d) {
					continue
				}
				passages++
				next := c.Step(d)
				a := elems[y*g.W+x]
				b := elems[next.Y*g.W+next.X]
				if a.Find() == b.Find() {
					return fmt.Errorf("gen: cycle through %v and %v", c, next)
				}
				disjoint.Union(a, b)
			}
		}
	}

	if passages != total-1 {
		return fmt.Errorf("gen: %d passages for %d cells, expected %d", passages, total, total-1)
	}
	root := elems[0].Find()
	for i, e := range elems {
		if e.Find() != root {
			return fmt.Errorf("gen: cell %v unreachable from start", maze.C(i%g.W, i/g.W))
		}
	}
	return nil
}
