package gen

import "github.com/vovakirdan/mazetrace/internal/maze"

func init() {
	Register("gtR", "Growing Tree (east drift)", newGrowingTree)
}

// Probability of expanding from the newest candidate instead of a uniform
// one. High values make the result backtracker-like; the East preference
// below drifts corridors toward the goal column.
const growingTreeNewest = 0.75

// growingTree keeps a candidate list of frontier cells. Each step picks a
// candidate (newest-biased), carves toward an unvisited neighbor preferring
// East, and drops candidates with nowhere left to go.
type growingTree struct {
	m     *Maze
	cells []maze.Coord
}

func newGrowingTree(m *Maze) Builder {
	g := &growingTree{m: m}
	seed := m.RandomCell()
	m.Visit(seed)
	g.cells = append(g.cells, seed)
	return g
}

func (g *growingTree) Step() bool {
	if g.Done() {
		return false
	}
	idx := len(g.cells) - 1
	if g.m.Rand().Float64() >= growingTreeNewest {
		idx = g.m.Rand().Intn(len(g.cells))
	}
	cur := g.cells[idx]

	dirs := g.m.UnvisitedNeighbors(cur)
	if len(dirs) == 0 {
		g.cells = append(g.cells[:idx], g.cells[idx+1:]...)
		return !g.Done()
	}
	d := g.pickDir(dirs)
	g.m.Carve(cur, d)
	g.cells = append(g.cells, cur.Step(d))
	return true
}

// pickDir prefers East whenever the eastern neighbor is unvisited,
// otherwise picks uniformly.
func (g *growingTree) pickDir(dirs []maze.Dir) maze.Dir {
	for _, d := range dirs {
		if d == maze.East {
			return d
		}
	}
	return dirs[g.m.Rand().Intn(len(dirs))]
}

func (g *growingTree) Done() bool {
	return len(g.cells) == 0
}

func (g *growingTree) Active() []maze.Coord {
	return g.cells
}
