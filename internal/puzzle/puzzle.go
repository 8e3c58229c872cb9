// Package puzzle compiles wire records into playable puzzles and manages
// the puzzle pool. This package depends on wire and maze but never on the
// game engine or the UI.
package puzzle

import (
	"fmt"

	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

// Puzzle is a fully decoded, validated maze challenge ready to play.
type Puzzle struct {
	// ID is the stable fingerprint of the wire record. Run results are
	// keyed by it.
	ID          string
	Algorithm   string
	Grid        *maze.Grid
	Solution    []maze.Dir
	Checkpoints []int
	SkillTier   string
	Difficulty  string
}

// Optimal returns the length of the reference solution.
func (p *Puzzle) Optimal() int {
	return len(p.Solution)
}

// Compile decodes one wire record into a playable puzzle. The solution
// payload must decode to exactly the advertised number of moves, walk
// through open passages only and end on the goal cell.
func Compile(dec *wire.Decoder, rec wire.Record) (*Puzzle, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	g, err := wire.DecodeGrid(dec, rec.Grid, rec.W, rec.H)
	if err != nil {
		return nil, err
	}

	moves, err := wire.DecodeMoves(dec, rec.Path, rec.Len)
	if err != nil {
		return nil, err
	}
	if len(moves) != rec.Len {
		return nil, fmt.Errorf("puzzle: solution decodes to %d moves, record says %d", len(moves), rec.Len)
	}
	if err := checkWalk(g, moves); err != nil {
		return nil, err
	}

	return &Puzzle{
		ID:          rec.Fingerprint(),
		Algorithm:   rec.Alg,
		Grid:        g,
		Solution:    moves,
		Checkpoints: rec.CleanHints(),
		SkillTier:   rec.SkillTier,
		Difficulty:  rec.Difficulty,
	}, nil
}

// checkWalk replays the solution against the grid.
func checkWalk(g *maze.Grid, moves []maze.Dir) error {
	at := g.Start()
	for i, d := range moves {
		if !g.Open(at, d) {
			return fmt.Errorf("puzzle: solution move %d (%s from %d,%d) walks through a wall", i, d, at.X, at.Y)
		}
		at = at.Step(d)
	}
	if !at.Equal(g.Goal()) {
		return fmt.Errorf("puzzle: solution ends at %d,%d instead of the goal", at.X, at.Y)
	}
	return nil
}
