package maze

import "fmt"

// Grid represents a maze as a rectangular grid of passage masks.
// Cells are stored in row-major order: index = y*W + x.
// The start cell is (0,0), the goal cell is (W-1,H-1).
type Grid struct {
	W     int    // Width of the grid in cells
	H     int    // Height of the grid in cells
	Cells []Mask // Flat array of passage masks, length W*H
}

// NewGrid creates a new grid with the given dimensions and all passages closed.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Mask, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the passage mask at the given coordinate.
// Returns MaskNone if out of bounds.
func (g *Grid) At(c Coord) Mask {
	if !g.InBounds(c) {
		return MaskNone
	}
	return g.Cells[g.index(c)]
}

// Open returns true if the passage from c toward d is open and leads to a
// cell inside the grid.
func (g *Grid) Open(c Coord, d Dir) bool {
	return g.InBounds(c) && g.InBounds(c.Step(d)) && g.At(c).Has(d)
}

// OpenWall opens the passage from c toward d on both sides. Passages that
// would lead outside the grid are ignored.
func (g *Grid) OpenWall(c Coord, d Dir) {
	next := c.Step(d)
	if !g.InBounds(c) || !g.InBounds(next) {
		return
	}
	g.Cells[g.index(c)] = g.Cells[g.index(c)].With(d)
	g.Cells[g.index(next)] = g.Cells[g.index(next)].With(d.Opposite())
}

// Start returns the fixed entry cell.
func (g *Grid) Start() Coord {
	return C(0, 0)
}

// Goal returns the fixed exit cell.
func (g *Grid) Goal() Coord {
	return C(g.W-1, g.H-1)
}

// PassageCount returns the number of open passages, counting each shared
// wall once. A perfect maze over W*H cells has exactly W*H-1 passages.
func (g *Grid) PassageCount() int {
	bits := 0
	for _, m := range g.Cells {
		bits += m.Count()
	}
	return bits / 2
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Mask, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{W: g.W, H: g.H, Cells: cells}
}

// Equal returns true if two grids have the same dimensions and masks.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, m := range g.Cells {
		if m != other.Cells[i] {
			return false
		}
	}
	return true
}

// DimensionMismatchError reports a decoded grid payload whose dimensions do
// not match the puzzle header.
type DimensionMismatchError struct {
	WantW, WantH int
	GotW, GotH   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("maze: grid payload is %dx%d, header says %dx%d",
		e.GotW, e.GotH, e.WantW, e.WantH)
}
