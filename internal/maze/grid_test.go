package maze

import (
	"errors"
	"testing"
)

func TestDirHelpers(t *testing.T) {
	tests := []struct {
		d        Dir
		opposite Dir
		bit      Mask
		dx, dy   int
	}{
		{North, South, 1, 0, -1},
		{East, West, 2, 1, 0},
		{South, North, 4, 0, 1},
		{West, East, 8, -1, 0},
	}

	for _, tc := range tests {
		if tc.d.Opposite() != tc.opposite {
			t.Errorf("%v.Opposite() = %v, expected %v", tc.d, tc.d.Opposite(), tc.opposite)
		}
		if tc.d.Bit() != tc.bit {
			t.Errorf("%v.Bit() = %d, expected %d", tc.d, tc.d.Bit(), tc.bit)
		}
		dx, dy := tc.d.Delta()
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%v.Delta() = (%d,%d), expected (%d,%d)", tc.d, dx, dy, tc.dx, tc.dy)
		}
	}
}

func TestCoordToward(t *testing.T) {
	if d, ok := C(3, 3).Toward(C(3, 2)); !ok || d != North {
		t.Errorf("Toward north = (%v, %v), expected (North, true)", d, ok)
	}
	if d, ok := C(3, 3).Toward(C(2, 3)); !ok || d != West {
		t.Errorf("Toward west = (%v, %v), expected (West, true)", d, ok)
	}
	if _, ok := C(3, 3).Toward(C(4, 4)); ok {
		t.Error("diagonal step should not be adjacent")
	}
	if _, ok := C(3, 3).Toward(C(3, 3)); ok {
		t.Error("zero step should not be adjacent")
	}
}

// checkSymmetry fails the test unless every open passage is mirrored by the
// neighboring cell and no passage points outside the grid.
func checkSymmetry(t *testing.T, g *Grid) {
	t.Helper()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			for _, d := range Dirs {
				if !g.At(c).Has(d) {
					continue
				}
				next := c.Step(d)
				if !g.InBounds(next) {
					t.Errorf("cell %v has out-of-bounds passage %v", c, d)
					continue
				}
				if !g.At(next).Has(d.Opposite()) {
					t.Errorf("passage %v from %v is not mirrored at %v", d, c, next)
				}
			}
		}
	}
}

func TestNormalizeSymmetry(t *testing.T) {
	g := NewGrid(3, 3)
	// One-sided openings plus a bit pointing off the grid.
	g.Cells[g.index(C(0, 0))] = OpenNorth | OpenEast
	g.Cells[g.index(C(1, 1))] = OpenSouth
	g.Cells[g.index(C(2, 2))] = OpenWest

	Normalize(g)
	checkSymmetry(t, g)

	if g.At(C(0, 0)).Has(North) {
		t.Error("out-of-bounds opening at start survived normalization")
	}
	if !g.At(C(1, 0)).Has(West) {
		t.Error("East opening of (0,0) was not mirrored")
	}
	if !g.At(C(1, 2)).Has(North) {
		t.Error("South opening of (1,1) was not mirrored")
	}
}

func TestNormalizeForcesStartAndGoal(t *testing.T) {
	g := NewGrid(3, 3)
	Normalize(g)

	if !g.At(g.Start()).Has(East) {
		t.Errorf("start mask = %d, expected forced East opening", g.At(g.Start()))
	}
	if !g.At(C(1, 0)).Has(West) {
		t.Error("forced start opening was not mirrored")
	}
	if !g.At(g.Goal()).Has(West) {
		t.Errorf("goal mask = %d, expected forced West opening", g.At(g.Goal()))
	}
	checkSymmetry(t, g)
}

func TestNormalizeForceFallsBackToSecondChoice(t *testing.T) {
	g := NewGrid(1, 3)
	Normalize(g)
	if !g.At(g.Start()).Has(South) {
		t.Errorf("start mask = %d, expected South on a single-column grid", g.At(g.Start()))
	}
	if !g.At(g.Goal()).Has(North) {
		t.Errorf("goal mask = %d, expected North on a single-column grid", g.At(g.Goal()))
	}

	// A 1x1 grid has nowhere to open to.
	tiny := NewGrid(1, 1)
	Normalize(tiny)
	if tiny.At(C(0, 0)) != MaskNone {
		t.Errorf("1x1 mask = %d, expected none", tiny.At(C(0, 0)))
	}
}

// corridor builds a 3x2 maze by hand:
//
//	S-x-x
//	    |
//	x-x-G   (S=start, G=goal, all six cells on one path)
func corridor() *Grid {
	g := NewGrid(3, 2)
	g.OpenWall(C(0, 0), East)
	g.OpenWall(C(1, 0), East)
	g.OpenWall(C(2, 0), South)
	g.OpenWall(C(2, 1), West)
	g.OpenWall(C(1, 1), West)
	return g
}

func TestExpandedRoundTrip(t *testing.T) {
	g := corridor()

	cells := g.Expanded()
	if len(cells) != 2*g.H+1 || len(cells[0]) != 2*g.W+1 {
		t.Fatalf("expanded dims = %dx%d, expected %dx%d", len(cells[0]), len(cells), 2*g.W+1, 2*g.H+1)
	}
	if !cells[0][1] {
		t.Error("expanded grid is missing the entrance gap")
	}
	if !cells[2*g.H][2*g.W-1] {
		t.Error("expanded grid is missing the exit gap")
	}

	back, err := FromExpanded(cells, g.W, g.H)
	if err != nil {
		t.Fatalf("FromExpanded() error: %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("round-tripped grid = %v, expected %v", back.Cells, g.Cells)
	}
	checkSymmetry(t, back)
}

func TestFromExpandedDimensionMismatch(t *testing.T) {
	cells := make([][]bool, 5)
	for i := range cells {
		cells[i] = make([]bool, 5)
	}

	_, err := FromExpanded(cells, 3, 2)
	if err == nil {
		t.Fatal("FromExpanded() accepted wrong dimensions")
	}
	var dim *DimensionMismatchError
	if !errors.As(err, &dim) {
		t.Fatalf("error = %T, expected *DimensionMismatchError", err)
	}
	if dim.WantW != 7 || dim.WantH != 5 {
		t.Errorf("wanted dims = %dx%d, expected 7x5", dim.WantW, dim.WantH)
	}
}

func TestPassageCount(t *testing.T) {
	g := corridor()
	if got := g.PassageCount(); got != 5 {
		t.Errorf("PassageCount() = %d, expected 5", got)
	}
}

func TestDistances(t *testing.T) {
	g := corridor()
	dist := Distances(g, g.Start())

	expected := []int{0, 1, 2, 5, 4, 3}
	for i, want := range expected {
		if dist[i] != want {
			t.Errorf("dist[%d] = %d, expected %d", i, dist[i], want)
		}
	}
}

func TestDistancesUnreachable(t *testing.T) {
	g := NewGrid(2, 2)
	g.OpenWall(C(0, 0), East)

	dist := Distances(g, C(0, 0))
	if dist[g.index(C(1, 0))] != 1 {
		t.Errorf("dist to (1,0) = %d, expected 1", dist[g.index(C(1, 0))])
	}
	if dist[g.index(C(0, 1))] != -1 || dist[g.index(C(1, 1))] != -1 {
		t.Error("cells behind closed walls should be unreachable")
	}
}
