package puzzle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/mazetrace/internal/gen"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

// tinyGrid is a 2x2 maze with the single corridor (0,0)-(1,0)-(1,1).
func tinyGrid() *maze.Grid {
	g := maze.NewGrid(2, 2)
	g.Cells[0] = maze.OpenEast
	g.Cells[1] = maze.OpenWest | maze.OpenSouth
	g.Cells[3] = maze.OpenNorth
	return g
}

func tinyRecord() wire.Record {
	g := tinyGrid()
	return wire.Record{
		V:          wire.FormatVersion,
		Alg:        "rb",
		W:          2,
		H:          2,
		Grid:       wire.EncodeGridPacked(g),
		Path:       wire.EncodeMovesPacked([]maze.Dir{maze.East, maze.South}),
		Len:        2,
		Hints:      []int{2},
		SkillTier:  "beginner",
		Difficulty: "easy",
	}
}

func TestCompileRoundTrip(t *testing.T) {
	dec := wire.NewDecoder()
	rec := tinyRecord()

	pz, err := Compile(dec, rec)
	assert.NoError(t, err)
	assert.Equal(t, rec.Fingerprint(), pz.ID)
	assert.Equal(t, "rb", pz.Algorithm)
	assert.True(t, pz.Grid.Equal(tinyGrid()))
	assert.Equal(t, []maze.Dir{maze.East, maze.South}, pz.Solution)
	assert.Equal(t, []int{2}, pz.Checkpoints)
	assert.Equal(t, 2, pz.Optimal())
}

func TestCompileRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*wire.Record)
	}{
		{"wrong version", func(r *wire.Record) { r.V = 9 }},
		{"solution shorter than advertised", func(r *wire.Record) { r.Len = 6 }},
		{"solution walks through a wall", func(r *wire.Record) {
			r.Path = wire.EncodeMovesPacked([]maze.Dir{maze.South, maze.East})
		}},
		{"solution misses the goal", func(r *wire.Record) {
			r.Path = wire.EncodeMovesPacked([]maze.Dir{maze.East})
			r.Len = 1
		}},
		{"corrupt grid payload", func(r *wire.Record) { r.Grid = "%%%" }},
	}

	dec := wire.NewDecoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := tinyRecord()
			tc.mutate(&rec)
			_, err := Compile(dec, rec)
			assert.Error(t, err)
		})
	}
}

func TestBundledFeed(t *testing.T) {
	pool := Bundled(wire.NewDecoder())
	assert.Equal(t, 3, pool.Len())

	var algs, tiers []string
	for _, pz := range pool.All() {
		algs = append(algs, pz.Algorithm)
		tiers = append(tiers, pz.SkillTier)

		assert.NoError(t, gen.Verify(pz.Grid), "bundled %s grid must be a perfect maze", pz.Algorithm)
		assert.NotEmpty(t, pz.Solution)
		assert.Equal(t, pz.Optimal(), pz.Checkpoints[len(pz.Checkpoints)-1])
		assert.NotEmpty(t, pz.Difficulty)
	}
	assert.Equal(t, []string{"rb", "swB", "wil"}, algs)
	assert.Equal(t, []string{"beginner", "intermediate", "expert"}, tiers)
}

func TestPoolFilterAndLookup(t *testing.T) {
	pool := Bundled(wire.NewDecoder())

	assert.Len(t, pool.Filter("beginner", ""), 1)
	assert.Len(t, pool.Filter("", "hard"), 1)
	assert.Len(t, pool.Filter("", ""), 3)
	assert.Empty(t, pool.Filter("beginner", "hard"))

	want := pool.At(1)
	got, ok := pool.ByID(want.ID)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = pool.ByID("nope")
	assert.False(t, ok)
}

func TestReadPoolSkipsBadRecords(t *testing.T) {
	good := tinyRecord()
	goodLine, err := good.MarshalLine()
	assert.NoError(t, err)

	wallWalk := tinyRecord()
	wallWalk.Path = wire.EncodeMovesPacked([]maze.Dir{maze.South, maze.East})
	wallWalkLine, err := wallWalk.MarshalLine()
	assert.NoError(t, err)

	feed := strings.Join([]string{
		string(goodLine),
		"{broken",
		string(wallWalkLine),
		string(goodLine), // duplicate fingerprint
	}, "\n")

	pool, skipped, err := ReadPool(wire.NewDecoder(), strings.NewReader(feed))
	assert.NoError(t, err)
	assert.Equal(t, 1, pool.Len())
	assert.Len(t, skipped, 3)
}

func TestLoadCustomPath(t *testing.T) {
	line, err := tinyRecord().MarshalLine()
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "feed.jsonl")
	assert.NoError(t, os.WriteFile(path, append(line, '\n'), 0o644))

	pool, skipped, err := Load(wire.NewDecoder(), path)
	assert.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, 1, pool.Len())

	_, _, err = Load(wire.NewDecoder(), filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestLoadFallsBackToBundled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	pool, skipped, err := Load(wire.NewDecoder(), "")
	assert.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, 3, pool.Len())
}
