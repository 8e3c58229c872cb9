package forge

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/mazetrace/internal/gen"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

func TestAuthorEveryAlgorithm(t *testing.T) {
	for _, info := range gen.List() {
		t.Run(info.Tag, func(t *testing.T) {
			rec, pz, err := Author(Params{
				Alg:        info.Tag,
				Width:      8,
				Height:     6,
				Tier:       "beginner",
				Difficulty: "easy",
				Seed:       42,
			})
			assert.NoError(t, err)

			assert.Equal(t, wire.FormatVersion, rec.V)
			assert.Equal(t, info.Tag, rec.Alg)
			assert.Equal(t, rec.Len, pz.Optimal())
			assert.Equal(t, rec.Fingerprint(), pz.ID)
			assert.Equal(t, "beginner", pz.SkillTier)

			assert.NoError(t, gen.Verify(pz.Grid))
			assert.NotEmpty(t, rec.Hints)
			assert.Equal(t, rec.Len, rec.Hints[len(rec.Hints)-1])
		})
	}
}

func TestAuthorDeterministic(t *testing.T) {
	p := Params{Alg: "hk", Width: 10, Height: 8, Seed: 7}

	first, _, err := Author(p)
	assert.NoError(t, err)
	second, _, err := Author(p)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAuthorLegacyPayloads(t *testing.T) {
	p := Params{Alg: "gtR", Width: 9, Height: 7, Seed: 13}

	preferred, prefPz, err := Author(p)
	assert.NoError(t, err)

	p.Legacy = true
	legacy, legacyPz, err := Author(p)
	assert.NoError(t, err)

	// Same maze, different encoding.
	assert.True(t, prefPz.Grid.Equal(legacyPz.Grid))
	assert.Equal(t, prefPz.Solution, legacyPz.Solution)
	assert.NotEqual(t, preferred.Grid, legacy.Grid)
}

func TestAuthorEmptyAlgPicksFromRegistry(t *testing.T) {
	rec, _, err := Author(Params{Width: 6, Height: 5, Seed: 3})
	assert.NoError(t, err)
	assert.True(t, gen.Exists(rec.Alg))
}

func TestAuthorRejects(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"unknown algorithm", Params{Alg: "zzz", Width: 6, Height: 5}},
		{"too small", Params{Alg: "rb", Width: 1, Height: 5}},
		{"too large", Params{Alg: "rb", Width: wire.MaxDim + 1, Height: 5}},
		{"unknown tier", Params{Alg: "rb", Width: 6, Height: 5, Tier: "pro"}},
		{"unknown difficulty", Params{Alg: "rb", Width: 6, Height: 5, Difficulty: "nightmare"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Author(tc.p)
			assert.Error(t, err)
		})
	}
}

func TestAuthorBatchRoundRobin(t *testing.T) {
	records, err := AuthorBatch(Params{Width: 6, Height: 5, Seed: 100}, 5)
	assert.NoError(t, err)
	assert.Len(t, records, 5)

	algs := map[string]bool{}
	ids := map[string]bool{}
	for _, rec := range records {
		algs[rec.Alg] = true
		ids[rec.Fingerprint()] = true
	}
	assert.Len(t, algs, len(gen.List()))
	assert.Len(t, ids, 5)

	fixed, err := AuthorBatch(Params{Alg: "wil", Width: 6, Height: 5, Seed: 100}, 3)
	assert.NoError(t, err)
	for _, rec := range fixed {
		assert.Equal(t, "wil", rec.Alg)
	}

	_, err = AuthorBatch(Params{Width: 6, Height: 5}, 0)
	assert.Error(t, err)
}

func TestVerifyRecordAcceptsAuthored(t *testing.T) {
	rec, _, err := Author(Params{Alg: "swB", Width: 8, Height: 6, Seed: 21})
	assert.NoError(t, err)
	assert.NoError(t, VerifyRecord(wire.NewDecoder(), rec))
}

func TestVerifyRecordCatchesTampering(t *testing.T) {
	rec, _, err := Author(Params{Alg: "rb", Width: 8, Height: 6, Seed: 5})
	assert.NoError(t, err)

	short := rec
	short.Len--
	assert.Error(t, VerifyRecord(wire.NewDecoder(), short))

	messy := rec
	messy.Hints = []int{rec.Len, 1}
	assert.ErrorContains(t, VerifyRecord(wire.NewDecoder(), messy), "not normalized")
}

// A record whose reference path is legal but longer than the shortest path
// must be flagged. That takes a grid with a cycle, which no generator
// produces, so the record is assembled by hand.
func TestVerifyRecordFlagsLongReference(t *testing.T) {
	g := maze.NewGrid(2, 2)
	g.Cells[0] = maze.OpenEast | maze.OpenSouth
	g.Cells[1] = maze.OpenWest | maze.OpenSouth
	g.Cells[2] = maze.OpenNorth | maze.OpenEast
	g.Cells[3] = maze.OpenNorth | maze.OpenWest

	detour := []maze.Dir{maze.East, maze.West, maze.East, maze.South}
	rec := wire.Record{
		V:    wire.FormatVersion,
		Alg:  "rb",
		W:    2,
		H:    2,
		Grid: wire.EncodeGridPacked(g),
		Path: wire.EncodeMovesPacked(detour),
		Len:  len(detour),
	}

	assert.ErrorContains(t, VerifyRecord(wire.NewDecoder(), rec), "shortest")
}

func TestWritePNG(t *testing.T) {
	_, pz, err := Author(Params{Alg: "rb", Width: 6, Height: 4, Seed: 9})
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "maze.png")
	assert.NoError(t, WritePNG(pz, path))

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, (2*6+1)*pngCell, img.Bounds().Dx())
	assert.Equal(t, (2*4+1)*pngCell+pngTitle, img.Bounds().Dy())
}
