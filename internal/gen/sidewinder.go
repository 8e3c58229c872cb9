package gen

import "github.com/vovakirdan/mazetrace/internal/maze"

func init() {
	Register("swB", "Sidewinder (boustrophedon)", newSidewinder)
}

// Probability of closing the current run at each cell. Runs also close at
// the row boundary no matter what.
const sidewinderClose = 3 // 1 in 3

// sidewinder carves row by row. The top row is one unbroken corridor.
// Every later row is traversed in alternating direction (east on even rows,
// west on odd ones), growing a run of cells; when the run closes, a random
// member of the run carves North into the previous row.
type sidewinder struct {
	m    *Maze
	x, y int
	run  []maze.Coord
	done bool
}

func newSidewinder(m *Maze) Builder {
	s := &sidewinder{m: m}
	m.Visit(maze.C(0, 0))
	return s
}

func (s *sidewinder) forward() maze.Dir {
	if s.y%2 == 1 {
		return maze.West
	}
	return maze.East
}

func (s *sidewinder) Step() bool {
	if s.done {
		return false
	}
	cur := maze.C(s.x, s.y)
	s.m.Visit(cur)

	if s.y == 0 {
		// Unbroken top corridor.
		if s.x == s.m.W-1 {
			s.nextRow()
			return !s.done
		}
		s.m.Carve(cur, maze.East)
		s.x++
		return true
	}

	s.run = append(s.run, cur)
	fd := s.forward()
	last := s.x == s.m.W-1
	if fd == maze.West {
		last = s.x == 0
	}

	if last || s.m.Rand().Intn(sidewinderClose) == 0 {
		pick := s.run[s.m.Rand().Intn(len(s.run))]
		s.m.Carve(pick, maze.North)
		s.run = s.run[:0]
		if last {
			s.nextRow()
			return !s.done
		}
	} else {
		s.m.Carve(cur, fd)
	}
	s.advance(fd)
	return true
}

func (s *sidewinder) advance(fd maze.Dir) {
	if fd == maze.West {
		s.x--
	} else {
		s.x++
	}
}

func (s *sidewinder) nextRow() {
	s.y++
	if s.y == s.m.H {
		s.done = true
		return
	}
	if s.y%2 == 1 {
		s.x = s.m.W - 1
	} else {
		s.x = 0
	}
	s.run = s.run[:0]
}

func (s *sidewinder) Done() bool {
	return s.done
}

func (s *sidewinder) Active() []maze.Coord {
	if s.done {
		return nil
	}
	if len(s.run) > 0 {
		return s.run
	}
	return []maze.Coord{{X: s.x, Y: s.y}}
}
