package gen

import "github.com/vovakirdan/mazetrace/internal/maze"

func init() {
	Register("hk", "Hunt and Kill", newHuntAndKill)
}

// huntAndKill random-walks through unvisited cells, carving as it goes.
// When the walk corners itself it hunts: scan row-major for the first
// unvisited cell adjacent to the carved region, connect it, and walk on
// from there. The maze is done when the hunt comes up empty.
type huntAndKill struct {
	m        *Maze
	cur      maze.Coord
	walking  bool
	done     bool
	scanFrom int // cells below this index are known visited
}

func newHuntAndKill(m *Maze) Builder {
	h := &huntAndKill{m: m}
	h.cur = m.RandomCell()
	m.Visit(h.cur)
	h.walking = true
	return h
}

func (h *huntAndKill) Step() bool {
	if h.done {
		return false
	}
	if h.walking {
		dirs := h.m.UnvisitedNeighbors(h.cur)
		if len(dirs) > 0 {
			d := dirs[h.m.Rand().Intn(len(dirs))]
			h.m.Carve(h.cur, d)
			h.cur = h.cur.Step(d)
			return true
		}
		h.walking = false
		return true
	}
	return h.hunt()
}

// hunt finds the first unvisited cell (row-major) with a visited neighbor,
// carves the connection and resumes walking there. The scan start skips the
// fully visited prefix; unvisited cells beyond it are rescanned on every
// hunt because they may gain visited neighbors later.
func (h *huntAndKill) hunt() bool {
	total := h.m.CellCount()
	for h.scanFrom < total && h.m.visited[h.scanFrom] {
		h.scanFrom++
	}
	for i := h.scanFrom; i < total; i++ {
		c := maze.C(i%h.m.W, i/h.m.W)
		if h.m.Visited(c) {
			continue
		}
		dirs := h.m.VisitedNeighbors(c)
		if len(dirs) == 0 {
			continue
		}
		d := dirs[h.m.Rand().Intn(len(dirs))]
		h.m.Carve(c, d)
		h.cur = c
		h.walking = true
		return true
	}
	h.done = true
	return false
}

func (h *huntAndKill) Done() bool {
	return h.done
}

func (h *huntAndKill) Active() []maze.Coord {
	if h.done {
		return nil
	}
	return []maze.Coord{h.cur}
}
