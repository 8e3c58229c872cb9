package wire

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// DecodeGrid decodes a grid payload against the dimensions from the puzzle
// header. The strategy chain is tried first: a JSON matrix is read as the
// expanded passability form. When the chain fails, or the matrix has the
// wrong dimensions, the payload is re-read as packed nibble masks. The
// returned grid is normalized on either path.
func DecodeGrid(dec *Decoder, payload string, w, h int) (*maze.Grid, error) {
	if v, _, ok := dec.Decode(payload); ok {
		if cells, ok := boolMatrix(v); ok {
			g, err := maze.FromExpanded(cells, w, h)
			if err == nil {
				return g, nil
			}
		}
	}

	raw, err := DecodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("wire: grid payload: %w", err)
	}
	masks, err := maze.UnpackMasks(raw, w*h)
	if err != nil {
		return nil, fmt.Errorf("wire: grid payload: %w", err)
	}
	g := &maze.Grid{W: w, H: h, Cells: masks}
	maze.Normalize(g)
	return g, nil
}

// EncodeGridExpanded encodes the grid in the preferred form: the expanded
// 0/1 matrix as zlib-compressed JSON, base64 wrapped.
func EncodeGridExpanded(g *maze.Grid) (string, error) {
	cells := g.Expanded()
	rows := make([][]int, len(cells))
	for y, row := range cells {
		rows[y] = make([]int, len(row))
		for x, passable := range row {
			if passable {
				rows[y][x] = 1
			}
		}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("wire: encode grid: %w", err)
	}
	comp, err := deflate(data)
	if err != nil {
		return "", err
	}
	return EncodeBase64(comp), nil
}

// EncodeGridPacked encodes the grid in the binary form: nibble-packed masks,
// base64 wrapped.
func EncodeGridPacked(g *maze.Grid) string {
	return EncodeBase64(maze.PackMasks(g.Cells))
}

// boolMatrix interprets a decoded JSON value as a passability matrix.
// Entries may be numbers (nonzero is passable) or booleans.
func boolMatrix(v any) ([][]bool, bool) {
	rows, ok := v.([]any)
	if !ok || len(rows) == 0 {
		return nil, false
	}
	cells := make([][]bool, len(rows))
	for y, r := range rows {
		row, ok := r.([]any)
		if !ok {
			return nil, false
		}
		cells[y] = make([]bool, len(row))
		for x, e := range row {
			switch val := e.(type) {
			case float64:
				cells[y][x] = val != 0
			case bool:
				cells[y][x] = val
			default:
				return nil, false
			}
		}
	}
	return cells, true
}
