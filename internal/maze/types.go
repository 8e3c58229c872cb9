// Package maze provides the maze grid model shared by the puzzle codec,
// the playable engine, the generators and the solver.
// This package is UI-agnostic and deterministic.
package maze

// Dir represents a cardinal direction. The numeric values are part of the
// puzzle wire format: packed move sequences store one Dir per 2-bit slot.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// North decreases Y, South increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Bit returns the passage-mask bit for this direction.
func (d Dir) Bit() Mask {
	return 1 << d
}

// Dirs lists all four directions in wire order.
var Dirs = [4]Dir{North, East, South, West}

// Mask is a 4-bit per-cell passage mask. A set bit means the passage toward
// that neighbor is open. Adjacent cells always agree: if a cell has its East
// bit set, its East neighbor has its West bit set.
type Mask uint8

const (
	OpenNorth Mask = 1 << North
	OpenEast  Mask = 1 << East
	OpenSouth Mask = 1 << South
	OpenWest  Mask = 1 << West

	// MaskAll has every passage open, MaskNone every passage closed.
	MaskAll  Mask = OpenNorth | OpenEast | OpenSouth | OpenWest
	MaskNone Mask = 0
)

// Has returns true if the passage toward d is open.
func (m Mask) Has(d Dir) bool {
	return m&d.Bit() != 0
}

// With returns a copy of the mask with the passage toward d open.
func (m Mask) With(d Dir) Mask {
	return m | d.Bit()
}

// Without returns a copy of the mask with the passage toward d closed.
func (m Mask) Without(d Dir) Mask {
	return m &^ d.Bit()
}

// Count returns the number of open passages.
func (m Mask) Count() int {
	n := 0
	for _, d := range Dirs {
		if m.Has(d) {
			n++
		}
	}
	return n
}
