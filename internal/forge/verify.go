package forge

import (
	"fmt"

	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/solve"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

// VerifyRecord re-checks a feed record from scratch: the payloads must
// decode, the reference path must be a legal walk of the advertised length,
// that length must match an independent re-solve, and the checkpoints must
// already be in normalized form. Compile covers the first two; the rest
// guards against feeds authored by older or buggy tooling.
func VerifyRecord(dec *wire.Decoder, rec wire.Record) error {
	pz, err := puzzle.Compile(dec, rec)
	if err != nil {
		return err
	}

	shortest, err := solve.Solve(pz.Grid)
	if err != nil {
		return fmt.Errorf("re-solve: %w", err)
	}
	if len(shortest) != pz.Optimal() {
		return fmt.Errorf("reference path has %d moves, shortest is %d", pz.Optimal(), len(shortest))
	}

	clean := rec.CleanHints()
	if len(clean) != len(rec.Hints) {
		return fmt.Errorf("checkpoints not normalized: %v", rec.Hints)
	}
	for i, h := range clean {
		if rec.Hints[i] != h {
			return fmt.Errorf("checkpoints not normalized: %v", rec.Hints)
		}
	}
	return nil
}
