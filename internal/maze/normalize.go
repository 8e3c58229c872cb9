package maze

// Normalize repairs a freshly decoded grid so that the passage-mask
// invariants hold:
//
//  1. bits pointing outside the grid are cleared,
//  2. every open passage is mirrored on the neighboring cell,
//  3. a start cell with no openings gets one forced open (East, then South),
//  4. a goal cell with no openings gets one forced open (West, then North).
//
// Forced openings are mirrored too, so the grid stays symmetric.
func Normalize(g *Grid) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			for _, d := range Dirs {
				if g.At(c).Has(d) && !g.InBounds(c.Step(d)) {
					g.Cells[g.index(c)] = g.Cells[g.index(c)].Without(d)
				}
			}
		}
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			for _, d := range Dirs {
				if g.At(c).Has(d) {
					g.OpenWall(c, d)
				}
			}
		}
	}
	forceOpening(g, g.Start(), East, South)
	forceOpening(g, g.Goal(), West, North)
}

// forceOpening opens the first in-bounds preferred direction when the cell
// has no openings at all. A 1x1 grid has no in-bounds direction and is left
// untouched.
func forceOpening(g *Grid, c Coord, prefer ...Dir) {
	if g.At(c) != MaskNone {
		return
	}
	for _, d := range prefer {
		if g.InBounds(c.Step(d)) {
			g.OpenWall(c, d)
			return
		}
	}
}
