// Package solve finds shortest paths through mazes and places the hint
// checkpoints along them. The solver is A* with unit step cost and a
// Manhattan heuristic, runnable to completion or one expansion at a time.
package solve

import (
	"container/heap"
	"errors"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// ErrNoPath means the open set ran dry before the goal was reached. On a
// generated maze this indicates a generator bug; it is never retried
// silently.
var ErrNoPath = errors.New("solve: no path found")

// Solver searches one grid from its start to its goal. Search state lives
// in flat parallel slices indexed row-major, like the generator arena.
type Solver struct {
	g    *maze.Grid
	goal maze.Coord

	dist   []int // best g-score found so far, -1 unknown
	prev   []int // predecessor cell index along the best path, -1 none
	closed []bool
	inOpen []bool

	open openSet
	seq  int // insertion counter; equal f-scores pop first-in first-out

	finished bool
	path     []maze.Dir
	err      error
}

// New prepares a solver over the grid. Nothing is expanded yet.
func New(g *maze.Grid) *Solver {
	n := g.W * g.H
	s := &Solver{
		g:      g,
		goal:   g.Goal(),
		dist:   make([]int, n),
		prev:   make([]int, n),
		closed: make([]bool, n),
		inOpen: make([]bool, n),
	}
	for i := range s.dist {
		s.dist[i] = -1
		s.prev[i] = -1
	}
	heap.Init(&s.open)
	start := g.Start()
	s.dist[s.index(start)] = 0
	s.push(start, start.Manhattan(s.goal))
	return s
}

func (s *Solver) index(c maze.Coord) int {
	return c.Y*s.g.W + c.X
}

func (s *Solver) coord(i int) maze.Coord {
	return maze.C(i%s.g.W, i/s.g.W)
}

func (s *Solver) push(c maze.Coord, f int) {
	heap.Push(&s.open, &openItem{cell: s.index(c), f: f, seq: s.seq})
	s.seq++
	s.inOpen[s.index(c)] = true
}

// Step expands the best open node. It returns false once the search has
// finished, either by reaching the goal or by exhausting the open set.
func (s *Solver) Step() bool {
	if s.finished {
		return false
	}
	for s.open.Len() > 0 {
		item := heap.Pop(&s.open).(*openItem)
		if s.closed[item.cell] {
			continue // stale duplicate left behind by a cheaper re-push
		}
		s.closed[item.cell] = true
		s.inOpen[item.cell] = false

		cur := s.coord(item.cell)
		if cur.Equal(s.goal) {
			s.path = s.reconstruct()
			s.finished = true
			return false
		}
		s.expand(cur)
		return true
	}
	s.err = ErrNoPath
	s.finished = true
	return false
}

func (s *Solver) expand(cur maze.Coord) {
	di := s.dist[s.index(cur)]
	for _, d := range maze.Dirs {
		if !s.g.Open(cur, d) {
			continue
		}
		next := cur.Step(d)
		ni := s.index(next)
		if s.closed[ni] {
			continue
		}
		tentative := di + 1
		if s.dist[ni] != -1 && s.dist[ni] <= tentative {
			continue
		}
		s.dist[ni] = tentative
		s.prev[ni] = s.index(cur)
		s.push(next, tentative+next.Manhattan(s.goal))
	}
}

// reconstruct walks the predecessor chain back from the goal and flips it
// into a move sequence.
func (s *Solver) reconstruct() []maze.Dir {
	cells := []int{s.index(s.goal)}
	for i := s.index(s.goal); s.prev[i] != -1; i = s.prev[i] {
		cells = append(cells, s.prev[i])
	}
	moves := make([]maze.Dir, 0, len(cells)-1)
	for i := len(cells) - 1; i > 0; i-- {
		d, ok := s.coord(cells[i]).Toward(s.coord(cells[i-1]))
		if !ok {
			// Cannot happen: predecessors are always adjacent.
			continue
		}
		moves = append(moves, d)
	}
	return moves
}

// Done returns true once the search has finished.
func (s *Solver) Done() bool {
	return s.finished
}

// Result returns the shortest move sequence from start to goal, or
// ErrNoPath. Calling it before the search finished runs the remaining
// steps.
func (s *Solver) Result() ([]maze.Dir, error) {
	for s.Step() {
	}
	return s.path, s.err
}

// Expanded returns true if the cell has been expanded, for rendering.
func (s *Solver) Expanded(c maze.Coord) bool {
	return s.g.InBounds(c) && s.closed[s.index(c)]
}

// Frontier returns the cells currently waiting in the open set.
func (s *Solver) Frontier() []maze.Coord {
	var cells []maze.Coord
	for i, in := range s.inOpen {
		if in {
			cells = append(cells, s.coord(i))
		}
	}
	return cells
}

// Solve runs a full search over the grid.
func Solve(g *maze.Grid) ([]maze.Dir, error) {
	return New(g).Result()
}

// openItem is one entry of the open set.
type openItem struct {
	cell int
	f    int // g + h
	seq  int
	idx  int
}

// openSet is a min-heap on f-score. Ties pop in insertion order, so equally
// promising cells are explored in the order they were discovered.
type openSet []*openItem

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].idx = i
	o[j].idx = j
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.idx = len(*o)
	*o = append(*o, item)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.idx = -1
	*o = old[:n-1]
	return item
}
