package maze

// The expanded form stores a W x H maze as a (2H+1) x (2W+1) matrix of
// passable flags. Odd row/column indices are cell centers, even indices are
// wall slots between them. The outer ring is the boundary wall, with an
// entrance gap above the start cell and an exit gap below the goal cell.

// FromExpanded converts an expanded passability matrix into a grid of
// passage masks. The matrix must be exactly (2h+1) x (2w+1) or a
// DimensionMismatchError is returned. A passage is open only when both the
// wall slot and the cell center beyond it are passable, so gaps in the
// boundary ring never produce openings that point outside the grid.
// The result is normalized.
func FromExpanded(cells [][]bool, w, h int) (*Grid, error) {
	eh, ew := 2*h+1, 2*w+1
	if len(cells) != eh {
		return nil, &DimensionMismatchError{WantW: ew, WantH: eh, GotW: rowWidth(cells), GotH: len(cells)}
	}
	for _, row := range cells {
		if len(row) != ew {
			return nil, &DimensionMismatchError{WantW: ew, WantH: eh, GotW: len(row), GotH: len(cells)}
		}
	}
	g := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cy, cx := 2*y+1, 2*x+1
			for _, d := range Dirs {
				dx, dy := d.Delta()
				wallY, wallX := cy+dy, cx+dx
				farY, farX := cy+2*dy, cx+2*dx
				if farY < 0 || farY >= eh || farX < 0 || farX >= ew {
					continue
				}
				if cells[wallY][wallX] && cells[farY][farX] {
					g.Cells[y*w+x] = g.Cells[y*w+x].With(d)
				}
			}
		}
	}
	Normalize(g)
	return g, nil
}

// Expanded converts the grid to its expanded passability matrix. Cell
// centers are always passable; wall slots are passable where the passage is
// open. The boundary ring is solid except for the entrance and exit gaps.
func (g *Grid) Expanded() [][]bool {
	eh, ew := 2*g.H+1, 2*g.W+1
	cells := make([][]bool, eh)
	for i := range cells {
		cells[i] = make([]bool, ew)
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			cy, cx := 2*y+1, 2*x+1
			cells[cy][cx] = true
			m := g.At(C(x, y))
			if m.Has(East) && x+1 < g.W {
				cells[cy][cx+1] = true
			}
			if m.Has(South) && y+1 < g.H {
				cells[cy+1][cx] = true
			}
		}
	}
	// Entrance above the start cell, exit below the goal cell.
	cells[0][1] = true
	cells[eh-1][ew-2] = true
	return cells
}

func rowWidth(cells [][]bool) int {
	if len(cells) == 0 {
		return 0
	}
	return len(cells[0])
}
