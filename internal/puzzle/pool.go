package puzzle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vovakirdan/mazetrace/internal/wire"
)

// Pool is an ordered collection of compiled puzzles. Feed order is
// preserved; duplicate fingerprints keep the first occurrence.
type Pool struct {
	puzzles []*Puzzle
	byID    map[string]*Puzzle
}

// NewPool builds a pool from already compiled puzzles.
func NewPool(puzzles []*Puzzle) *Pool {
	p := &Pool{byID: make(map[string]*Puzzle, len(puzzles))}
	for _, pz := range puzzles {
		if _, dup := p.byID[pz.ID]; dup {
			continue
		}
		p.puzzles = append(p.puzzles, pz)
		p.byID[pz.ID] = pz
	}
	return p
}

// Len returns the number of puzzles in the pool.
func (p *Pool) Len() int {
	return len(p.puzzles)
}

// All returns the puzzles in feed order.
func (p *Pool) All() []*Puzzle {
	return p.puzzles
}

// At returns the puzzle at index i.
func (p *Pool) At(i int) *Puzzle {
	return p.puzzles[i]
}

// ByID looks a puzzle up by its fingerprint.
func (p *Pool) ByID(id string) (*Puzzle, bool) {
	pz, ok := p.byID[id]
	return pz, ok
}

// Filter returns puzzles matching the given skill tier and difficulty.
// Empty strings match everything.
func (p *Pool) Filter(tier, difficulty string) []*Puzzle {
	var out []*Puzzle
	for _, pz := range p.puzzles {
		if tier != "" && pz.SkillTier != tier {
			continue
		}
		if difficulty != "" && pz.Difficulty != difficulty {
			continue
		}
		out = append(out, pz)
	}
	return out
}

// ReadPool reads a JSONL feed and compiles every record it can. Records
// that fail to parse or compile are skipped and reported so one bad line
// never hides the rest of the feed. The error return covers the scan
// itself.
func ReadPool(dec *wire.Decoder, r io.Reader) (*Pool, []error, error) {
	records, bad, err := wire.ReadFeed(r)

	var skipped []error
	for _, le := range bad {
		skipped = append(skipped, le)
	}

	pool := &Pool{byID: make(map[string]*Puzzle, len(records))}
	for _, rec := range records {
		pz, cerr := Compile(dec, rec)
		if cerr != nil {
			skipped = append(skipped, fmt.Errorf("record %s: %w", rec.Fingerprint(), cerr))
			continue
		}
		if _, dup := pool.byID[pz.ID]; dup {
			skipped = append(skipped, fmt.Errorf("record %s: duplicate puzzle", pz.ID))
			continue
		}
		pool.puzzles = append(pool.puzzles, pz)
		pool.byID[pz.ID] = pz
	}
	return pool, skipped, err
}

// LoadFile reads and compiles a feed from disk.
func LoadFile(dec *wire.Decoder, path string) (*Pool, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("puzzle: open feed %s: %w", path, err)
	}
	defer f.Close()

	pool, skipped, err := ReadPool(dec, f)
	if err != nil {
		return nil, skipped, fmt.Errorf("puzzle: feed %s: %w", path, err)
	}
	return pool, skipped, nil
}

// Load resolves the puzzle feed.
// Search order: customPath -> ~/.mazetrace/puzzles.jsonl -> ./puzzles.jsonl -> bundled feed
func Load(dec *wire.Decoder, customPath string) (*Pool, []error, error) {
	// An explicit path must work; failures there are the caller's problem.
	if customPath != "" {
		return LoadFile(dec, customPath)
	}

	if userPath := userFeedPath("puzzles.jsonl"); userPath != "" {
		if pool, skipped, err := LoadFile(dec, userPath); err == nil && pool.Len() > 0 {
			return pool, skipped, nil
		}
	}

	if pool, skipped, err := LoadFile(dec, "puzzles.jsonl"); err == nil && pool.Len() > 0 {
		return pool, skipped, nil
	}

	return Bundled(dec), nil, nil
}

// userFeedPath returns the path to the user feed file, or empty if home is
// unavailable.
func userFeedPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mazetrace", filename)
}
