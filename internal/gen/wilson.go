package gen

import "github.com/vovakirdan/mazetrace/internal/maze"

func init() {
	Register("wil", "Wilson's walk", newWilson)
}

// wilson carves with loop-erased random walks. A walk starts at a random
// unvisited cell and wanders until it touches the carved region; loops made
// along the way are erased as they form. The finished walk is then
// committed one carve per step. Produces an unbiased sample of all
// spanning trees, at the cost of a slow start.
type wilson struct {
	m      *Maze
	path   []maze.Coord
	inPath map[int]int // arena index -> position in path
	commit int         // next path segment to carve, -1 while walking
}

func newWilson(m *Maze) Builder {
	w := &wilson{m: m, inPath: make(map[int]int), commit: -1}
	root := m.RandomCell()
	m.Visit(root)
	return w
}

func (w *wilson) Step() bool {
	if w.Done() {
		return false
	}
	if w.commit >= 0 {
		return w.commitStep()
	}
	if len(w.path) == 0 {
		return w.startWalk()
	}
	return w.walkStep()
}

// startWalk begins a fresh walk at a random unvisited cell.
func (w *wilson) startWalk() bool {
	c, ok := w.m.RandomUnvisited()
	if !ok {
		return false
	}
	w.path = append(w.path, c)
	w.inPath[w.m.index(c)] = 0
	return true
}

// walkStep wanders one cell. Stepping onto the carved region finishes the
// walk and switches to committing; stepping onto the walk itself erases the
// loop back to that cell.
func (w *wilson) walkStep() bool {
	cur := w.path[len(w.path)-1]
	dirs := w.m.Neighbors(cur)
	d := dirs[w.m.Rand().Intn(len(dirs))]
	next := cur.Step(d)

	if w.m.Visited(next) {
		w.path = append(w.path, next)
		w.commit = 0
		return true
	}
	if pos, looped := w.inPath[w.m.index(next)]; looped {
		for _, c := range w.path[pos+1:] {
			delete(w.inPath, w.m.index(c))
		}
		w.path = w.path[:pos+1]
		return true
	}
	w.inPath[w.m.index(next)] = len(w.path)
	w.path = append(w.path, next)
	return true
}

// commitStep carves one segment of the finished walk into the maze.
func (w *wilson) commitStep() bool {
	from := w.path[w.commit]
	d, _ := from.Toward(w.path[w.commit+1])
	w.m.Carve(from, d)
	w.commit++
	if w.commit == len(w.path)-1 {
		for _, c := range w.path[:len(w.path)-1] {
			delete(w.inPath, w.m.index(c))
		}
		w.path = w.path[:0]
		w.commit = -1
		return !w.Done()
	}
	return true
}

func (w *wilson) Done() bool {
	return w.m.Complete() && len(w.path) == 0
}

func (w *wilson) Active() []maze.Coord {
	return w.path
}
