// Package gen generates perfect mazes. Five carving algorithms register
// themselves under their wire tags; all of them run as steppers so a caller
// can drive generation one atomic mutation at a time and render every
// intermediate state.
package gen

import (
	"math/rand"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// Maze is the carving arena: a grid with every wall up, mutated in place by
// a Builder. Cell state lives in flat parallel slices indexed row-major.
type Maze struct {
	W, H int

	passages []maze.Mask // open passages carved so far
	visited  []bool
	order    []int // carve-order counter per cell, -1 until visited

	visitedCount int
	carvedCount  int
	orderCounter int

	entrance bool // boundary gap above the start cell
	exit     bool // boundary gap below the goal cell

	rng *rand.Rand
}

// NewMaze creates an arena with all walls up and a deterministic RNG.
func NewMaze(w, h int, seed int64) *Maze {
	m := &Maze{
		W:        w,
		H:        h,
		passages: make([]maze.Mask, w*h),
		visited:  make([]bool, w*h),
		order:    make([]int, w*h),
		rng:      rand.New(rand.NewSource(seed)),
	}
	for i := range m.order {
		m.order[i] = -1
	}
	return m
}

func (m *Maze) index(c maze.Coord) int {
	return c.Y*m.W + c.X
}

// InBounds returns true if the coordinate is inside the arena.
func (m *Maze) InBounds(c maze.Coord) bool {
	return c.X >= 0 && c.X < m.W && c.Y >= 0 && c.Y < m.H
}

// Visited returns true once a cell has been reached by the builder.
func (m *Maze) Visited(c maze.Coord) bool {
	return m.InBounds(c) && m.visited[m.index(c)]
}

// Order returns the visit-order counter of a cell, or -1 if unvisited.
func (m *Maze) Order(c maze.Coord) int {
	if !m.InBounds(c) {
		return -1
	}
	return m.order[m.index(c)]
}

// Passage returns true if the wall between c and its neighbor toward d has
// been carved through.
func (m *Maze) Passage(c maze.Coord, d maze.Dir) bool {
	return m.InBounds(c) && m.passages[m.index(c)].Has(d)
}

// Visit marks a cell reached without carving. Carve does this implicitly;
// builders call it for their seed cell.
func (m *Maze) Visit(c maze.Coord) {
	if !m.InBounds(c) {
		return
	}
	i := m.index(c)
	if m.visited[i] {
		return
	}
	m.visited[i] = true
	m.order[i] = m.orderCounter
	m.orderCounter++
	m.visitedCount++
}

// Carve opens the passage from c toward d on both sides and marks both
// cells visited. Out-of-bounds carves are ignored.
func (m *Maze) Carve(c maze.Coord, d maze.Dir) {
	next := c.Step(d)
	if !m.InBounds(c) || !m.InBounds(next) {
		return
	}
	if m.passages[m.index(c)].Has(d) {
		return
	}
	m.passages[m.index(c)] = m.passages[m.index(c)].With(d)
	m.passages[m.index(next)] = m.passages[m.index(next)].With(d.Opposite())
	m.carvedCount++
	m.Visit(c)
	m.Visit(next)
}

// UnvisitedNeighbors returns the directions from c that lead to in-bounds
// unvisited cells, in wire order.
func (m *Maze) UnvisitedNeighbors(c maze.Coord) []maze.Dir {
	var dirs []maze.Dir
	for _, d := range maze.Dirs {
		next := c.Step(d)
		if m.InBounds(next) && !m.Visited(next) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// VisitedNeighbors returns the directions from c that lead to in-bounds
// visited cells, in wire order.
func (m *Maze) VisitedNeighbors(c maze.Coord) []maze.Dir {
	var dirs []maze.Dir
	for _, d := range maze.Dirs {
		next := c.Step(d)
		if m.InBounds(next) && m.Visited(next) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Neighbors returns the in-bounds directions from c, in wire order.
func (m *Maze) Neighbors(c maze.Coord) []maze.Dir {
	var dirs []maze.Dir
	for _, d := range maze.Dirs {
		if m.InBounds(c.Step(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// RandomCell returns a uniformly random cell.
func (m *Maze) RandomCell() maze.Coord {
	i := m.rng.Intn(m.W * m.H)
	return maze.C(i%m.W, i/m.W)
}

// RandomUnvisited returns a uniformly random unvisited cell. The second
// return is false when every cell has been visited.
func (m *Maze) RandomUnvisited() (maze.Coord, bool) {
	left := m.W*m.H - m.visitedCount
	if left == 0 {
		return maze.Coord{}, false
	}
	nth := m.rng.Intn(left)
	for i, v := range m.visited {
		if v {
			continue
		}
		if nth == 0 {
			return maze.C(i%m.W, i/m.W), true
		}
		nth--
	}
	return maze.Coord{}, false
}

// Rand exposes the arena RNG so builders draw from one deterministic stream.
func (m *Maze) Rand() *rand.Rand {
	return m.rng
}

// CellCount returns the total number of cells.
func (m *Maze) CellCount() int {
	return m.W * m.H
}

// VisitedCount returns the number of visited cells.
func (m *Maze) VisitedCount() int {
	return m.visitedCount
}

// CarvedCount returns the number of carved passages.
func (m *Maze) CarvedCount() int {
	return m.carvedCount
}

// Complete returns true once every cell has been visited.
func (m *Maze) Complete() bool {
	return m.visitedCount == m.W*m.H
}

// OpenEntrance and OpenExit punch the boundary gaps of a finished maze:
// one above the start cell, one below the goal cell. The gaps live on the
// boundary ring only; cell masks never point outside the grid.
func (m *Maze) OpenEntrance() { m.entrance = true }
func (m *Maze) OpenExit()     { m.exit = true }

// EntranceOpen reports whether the boundary gap above the start cell is open.
func (m *Maze) EntranceOpen() bool { return m.entrance }

// ExitOpen reports whether the boundary gap below the goal cell is open.
func (m *Maze) ExitOpen() bool { return m.exit }

// Grid converts the carved passages into the playable grid model.
func (m *Maze) Grid() *maze.Grid {
	g := maze.NewGrid(m.W, m.H)
	copy(g.Cells, m.passages)
	maze.Normalize(g)
	return g
}
