package wire

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// scrambledGrid builds a normalized grid with a pseudo-random wall layout.
// Not necessarily a perfect maze; the codec does not care.
func scrambledGrid(w, h int, seed int64) *maze.Grid {
	rng := rand.New(rand.NewSource(seed))
	g := maze.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := maze.C(x, y)
			if rng.Intn(2) == 0 {
				g.OpenWall(c, maze.East)
			}
			if rng.Intn(2) == 0 {
				g.OpenWall(c, maze.South)
			}
		}
	}
	maze.Normalize(g)
	return g
}

func TestGridCodec(t *testing.T) {
	dec := NewDecoder()

	t.Run("expanded payload round trips", func(t *testing.T) {
		g := scrambledGrid(7, 5, 11)
		payload, err := EncodeGridExpanded(g)
		assert.NoError(t, err)

		back, err := DecodeGrid(dec, payload, g.W, g.H)
		assert.NoError(t, err)
		assert.True(t, back.Equal(g), "decoded grid differs from encoded grid")
	})

	t.Run("packed payload round trips across sizes", func(t *testing.T) {
		for _, size := range [][2]int{{1, 1}, {2, 3}, {16, 16}, {50, 50}} {
			w, h := size[0], size[1]
			t.Run(fmt.Sprintf("%dx%d", w, h), func(t *testing.T) {
				g := scrambledGrid(w, h, int64(w*100+h))
				back, err := DecodeGrid(dec, EncodeGridPacked(g), w, h)
				assert.NoError(t, err)
				assert.True(t, back.Equal(g), "decoded grid differs from encoded grid")
			})
		}
	})

	t.Run("dimension mismatch falls back to the packed reading", func(t *testing.T) {
		small := scrambledGrid(1, 1, 1)
		payload, err := EncodeGridExpanded(small)
		assert.NoError(t, err)

		// Header says 10x10; the JSON matrix is 3x3 and the compressed bytes
		// are far too short to hold 100 packed masks.
		_, err = DecodeGrid(dec, payload, 10, 10)
		assert.Error(t, err)
	})

	t.Run("unreadable payload reports a format error", func(t *testing.T) {
		_, err := DecodeGrid(dec, "%%%", 2, 2)
		assert.Error(t, err)

		var ferr *FormatError
		assert.ErrorAs(t, err, &ferr)
	})
}

func TestMoveCodec(t *testing.T) {
	dec := NewDecoder()
	moves := []maze.Dir{maze.East, maze.South, maze.East, maze.East, maze.South, maze.West, maze.South}

	t.Run("packed moves round trip", func(t *testing.T) {
		back, err := DecodeMoves(dec, EncodeMovesPacked(moves), len(moves))
		assert.NoError(t, err)
		assert.Equal(t, moves, back)
	})

	t.Run("packed layout uses ascending shifts", func(t *testing.T) {
		packed := packMoves([]maze.Dir{maze.North, maze.East, maze.South, maze.West})
		// 0 | 1<<2 | 2<<4 | 3<<6
		assert.Equal(t, []byte{0xE4}, packed)
	})

	t.Run("maxLen truncates packed moves", func(t *testing.T) {
		back, err := DecodeMoves(dec, EncodeMovesPacked(moves), 3)
		assert.NoError(t, err)
		assert.Equal(t, moves[:3], back)
	})

	t.Run("coordinate path round trips", func(t *testing.T) {
		payload, err := EncodePathCoords(maze.C(0, 0), moves)
		assert.NoError(t, err)

		back, err := DecodeMoves(dec, payload, len(moves))
		assert.NoError(t, err)
		assert.Equal(t, moves, back)
	})

	t.Run("expanded-unit coordinates are remapped", func(t *testing.T) {
		// Centers of (0,0) -> (1,0) -> (1,1) in expanded units, with an even
		// wall-slot pair in the middle that must be dropped. A magnitude
		// above maxLen switches the interpretation.
		payload := EncodeBase64([]byte(`[[1,1],[1,2],[1,3],[3,3]]`))
		back, err := DecodeMoves(dec, payload, 2)
		assert.NoError(t, err)
		assert.Equal(t, []maze.Dir{maze.East, maze.South}, back)
	})

	t.Run("non-adjacent coordinate pairs are skipped", func(t *testing.T) {
		payload := EncodeBase64([]byte(`[[0,0],[0,1],[5,5],[1,1]]`))
		back, err := DecodeMoves(dec, payload, 8)
		assert.NoError(t, err)
		assert.Equal(t, []maze.Dir{maze.East, maze.South}, back)
	})

	t.Run("unreadable payload reports a format error", func(t *testing.T) {
		_, err := DecodeMoves(dec, "ab", 4)
		assert.Error(t, err)
	})
}
