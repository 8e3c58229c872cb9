// Package forge authors puzzle records: generate a maze, verify the
// spanning tree, solve it, place the hint checkpoints and encode the feed
// payloads. Everything here runs offline; the player-facing engine only
// ever consumes what the forge wrote.
package forge

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/gen"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/solve"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

// Params configures one authoring run.
type Params struct {
	Alg        string // algorithm wire tag; empty picks one from the registry
	Width      int
	Height     int
	Tier       string // optional skill tier stamped on the record
	Difficulty string // optional difficulty stamped on the record
	Seed       int64
	Legacy     bool // emit nibble-mask and 2-bit-move payloads instead of the compressed forms
}

// Author builds one puzzle record. The returned puzzle is the result of
// compiling the record back, so a non-nil return means the record is
// playable exactly as encoded.
func Author(p Params) (wire.Record, *puzzle.Puzzle, error) {
	tag := p.Alg
	if tag == "" {
		algs := gen.List()
		if len(algs) == 0 {
			return wire.Record{}, nil, errors.New("forge: no algorithms registered")
		}
		idx := int(p.Seed % int64(len(algs)))
		if idx < 0 {
			idx += len(algs)
		}
		tag = algs[idx].Tag
	} else if !gen.Exists(tag) {
		return wire.Record{}, nil, fmt.Errorf("forge: unknown algorithm %q", tag)
	}

	if p.Width < 2 || p.Height < 2 || p.Width > wire.MaxDim || p.Height > wire.MaxDim {
		return wire.Record{}, nil, fmt.Errorf("forge: dimensions %dx%d out of range", p.Width, p.Height)
	}
	if p.Tier != "" && !config.ValidTier(p.Tier) {
		return wire.Record{}, nil, fmt.Errorf("forge: unknown skill tier %q", p.Tier)
	}
	if p.Difficulty != "" && !config.ValidDifficulty(p.Difficulty) {
		return wire.Record{}, nil, fmt.Errorf("forge: unknown difficulty %q", p.Difficulty)
	}

	m, err := gen.Build(tag, p.Width, p.Height, p.Seed)
	if err != nil {
		return wire.Record{}, nil, err
	}
	g := m.Grid()
	if err := gen.Verify(g); err != nil {
		return wire.Record{}, nil, fmt.Errorf("forge: %s maze failed verification: %w", tag, err)
	}

	moves, err := solve.Solve(g)
	if err != nil {
		return wire.Record{}, nil, fmt.Errorf("forge: %s maze: %w", tag, err)
	}

	var gridPayload, pathPayload string
	if p.Legacy {
		gridPayload = wire.EncodeGridPacked(g)
		pathPayload = wire.EncodeMovesPacked(moves)
	} else {
		gridPayload, err = wire.EncodeGridExpanded(g)
		if err != nil {
			return wire.Record{}, nil, fmt.Errorf("forge: encode grid: %w", err)
		}
		pathPayload, err = wire.EncodePathCoords(g.Start(), moves)
		if err != nil {
			return wire.Record{}, nil, fmt.Errorf("forge: encode path: %w", err)
		}
	}

	rec := wire.Record{
		V:          wire.FormatVersion,
		Alg:        tag,
		W:          p.Width,
		H:          p.Height,
		Grid:       gridPayload,
		Path:       pathPayload,
		Len:        len(moves),
		Hints:      solve.Checkpoints(len(moves)),
		SkillTier:  p.Tier,
		Difficulty: p.Difficulty,
	}

	// Self-check: the record must compile back into the maze we authored.
	pz, err := puzzle.Compile(wire.NewDecoder(), rec)
	if err != nil {
		return wire.Record{}, nil, fmt.Errorf("forge: self-check failed: %w", err)
	}
	if !pz.Grid.Equal(g) {
		return wire.Record{}, nil, errors.New("forge: self-check failed: grid does not round-trip")
	}

	return rec, pz, nil
}

// AuthorBatch builds count records. An explicit algorithm is used for every
// record; an empty one rotates round-robin through the registry. Seeds
// advance by one per record so a batch is reproducible from its base seed.
func AuthorBatch(p Params, count int) ([]wire.Record, error) {
	if count < 1 {
		return nil, fmt.Errorf("forge: record count %d out of range", count)
	}

	var tags []string
	if p.Alg != "" {
		tags = []string{p.Alg}
	} else {
		for _, info := range gen.List() {
			tags = append(tags, info.Tag)
		}
		if len(tags) == 0 {
			return nil, errors.New("forge: no algorithms registered")
		}
	}

	records := make([]wire.Record, 0, count)
	for i := 0; i < count; i++ {
		pi := p
		pi.Alg = tags[i%len(tags)]
		pi.Seed = p.Seed + int64(i)
		rec, _, err := Author(pi)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
