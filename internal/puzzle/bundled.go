package puzzle

import (
	"bytes"

	_ "embed"

	"github.com/vovakirdan/mazetrace/internal/wire"
)

//go:embed bundled.jsonl
var bundledFeed []byte

// Bundled returns the built-in starter puzzles, one per skill tier. They
// ship in the binary so the game is playable before any feed exists.
func Bundled(dec *wire.Decoder) *Pool {
	pool, _, err := ReadPool(dec, bytes.NewReader(bundledFeed))
	if err != nil {
		return NewPool(nil)
	}
	return pool
}
