package wire

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// DecodeMoves decodes a reference path payload into at most maxLen moves.
// The strategy chain is tried first: a JSON array of [row,col] pairs is
// walked into unit moves. When the chain fails the payload is re-read as
// 2-bit packed moves.
func DecodeMoves(dec *Decoder, payload string, maxLen int) ([]maze.Dir, error) {
	if maxLen <= 0 {
		return nil, nil
	}
	if v, _, ok := dec.Decode(payload); ok {
		if pairs, ok := coordPairs(v); ok {
			return movesFromPairs(pairs, maxLen), nil
		}
	}

	raw, err := DecodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("wire: path payload: %w", err)
	}
	return unpackMoves(raw, maxLen), nil
}

// EncodeMovesPacked encodes moves in the binary form: four moves per byte at
// bit shifts 0, 2, 4 and 6, base64 wrapped.
func EncodeMovesPacked(moves []maze.Dir) string {
	return EncodeBase64(packMoves(moves))
}

// EncodePathCoords encodes the reference path in the preferred form: the
// visited cells as a JSON array of [row,col] pairs starting at the start
// cell, zlib-compressed and base64 wrapped.
func EncodePathCoords(start maze.Coord, moves []maze.Dir) (string, error) {
	pairs := make([][2]int, 0, len(moves)+1)
	cur := start
	pairs = append(pairs, [2]int{cur.Y, cur.X})
	for _, d := range moves {
		cur = cur.Step(d)
		pairs = append(pairs, [2]int{cur.Y, cur.X})
	}
	data, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("wire: encode path: %w", err)
	}
	comp, err := deflate(data)
	if err != nil {
		return "", err
	}
	return EncodeBase64(comp), nil
}

func packMoves(moves []maze.Dir) []byte {
	out := make([]byte, (len(moves)+3)/4)
	for i, m := range moves {
		out[i/4] |= byte(m&3) << ((i % 4) * 2)
	}
	return out
}

// unpackMoves reads 2-bit moves until maxLen. A short payload simply yields
// fewer moves.
func unpackMoves(data []byte, maxLen int) []maze.Dir {
	moves := make([]maze.Dir, 0, maxLen)
	for _, b := range data {
		for shift := 0; shift < 8; shift += 2 {
			if len(moves) == maxLen {
				return moves
			}
			moves = append(moves, maze.Dir(b>>shift&3))
		}
	}
	return moves
}

// coordPairs interprets a decoded JSON value as an array of [row,col]
// pairs. Extra elements beyond the first two of a pair are ignored.
func coordPairs(v any) ([][2]int, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	pairs := make([][2]int, len(items))
	for i, item := range items {
		pair, ok := item.([]any)
		if !ok || len(pair) < 2 {
			return nil, false
		}
		r, ok := jsonInt(pair[0])
		if !ok {
			return nil, false
		}
		c, ok := jsonInt(pair[1])
		if !ok {
			return nil, false
		}
		pairs[i] = [2]int{r, c}
	}
	return pairs, true
}

func jsonInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// movesFromPairs converts a coordinate path into unit moves. Coordinates
// larger than maxLen signal expanded-grid units: pairs with both components
// odd map back to cell units, the rest are dropped. Consecutive pairs that
// are not orthogonally adjacent produce no move and the earlier pair stays
// the anchor for the next comparison.
func movesFromPairs(pairs [][2]int, maxLen int) []maze.Dir {
	if expandedUnits(pairs, maxLen) {
		mapped := make([][2]int, 0, len(pairs))
		for _, p := range pairs {
			if p[0]%2 != 0 && p[1]%2 != 0 {
				mapped = append(mapped, [2]int{(p[0] - 1) / 2, (p[1] - 1) / 2})
			}
		}
		pairs = mapped
	}
	if len(pairs) == 0 {
		return nil
	}

	moves := make([]maze.Dir, 0, len(pairs)-1)
	prev := maze.C(pairs[0][1], pairs[0][0])
	for _, p := range pairs[1:] {
		if len(moves) == maxLen {
			break
		}
		next := maze.C(p[1], p[0])
		d, adjacent := prev.Toward(next)
		if !adjacent {
			continue
		}
		moves = append(moves, d)
		prev = next
	}
	return moves
}

func expandedUnits(pairs [][2]int, maxLen int) bool {
	for _, p := range pairs {
		if abs(p[0]) > maxLen || abs(p[1]) > maxLen {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
