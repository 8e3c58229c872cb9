package gen

import "github.com/vovakirdan/mazetrace/internal/maze"

func init() {
	Register("rb", "Recursive Backtracker", newBacktracker)
}

// backtracker is a depth-first carver with an explicit stack: carve toward a
// random unvisited neighbor, push; pop when the top of the stack has no
// unvisited neighbor left. Long winding corridors, few but deep branches.
type backtracker struct {
	m     *Maze
	stack []maze.Coord
}

func newBacktracker(m *Maze) Builder {
	b := &backtracker{m: m}
	start := maze.C(0, 0)
	m.Visit(start)
	b.stack = append(b.stack, start)
	return b
}

func (b *backtracker) Step() bool {
	if b.Done() {
		return false
	}
	cur := b.stack[len(b.stack)-1]
	dirs := b.m.UnvisitedNeighbors(cur)
	if len(dirs) == 0 {
		b.stack = b.stack[:len(b.stack)-1]
		return !b.Done()
	}
	d := dirs[b.m.Rand().Intn(len(dirs))]
	b.m.Carve(cur, d)
	b.stack = append(b.stack, cur.Step(d))
	return true
}

func (b *backtracker) Done() bool {
	return len(b.stack) == 0
}

func (b *backtracker) Active() []maze.Coord {
	if len(b.stack) == 0 {
		return nil
	}
	return []maze.Coord{b.stack[len(b.stack)-1]}
}
