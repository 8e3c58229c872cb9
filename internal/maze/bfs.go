package maze

// Distances returns the breadth-first distance from the given cell to every
// cell in the grid, in row-major order. Unreachable cells get -1.
func Distances(g *Grid, from Coord) []int {
	dist := make([]int, g.W*g.H)
	for i := range dist {
		dist[i] = -1
	}
	if !g.InBounds(from) {
		return dist
	}
	dist[g.index(from)] = 0
	queue := []Coord{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range Dirs {
			if !g.Open(c, d) {
				continue
			}
			next := c.Step(d)
			if dist[g.index(next)] == -1 {
				dist[g.index(next)] = dist[g.index(c)] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}
