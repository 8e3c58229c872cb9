package maze

import "fmt"

// PackMasks packs passage masks two per byte, low nibble first. This is the
// payload layout of the binary grid format: cell 2i occupies the low nibble
// of byte i and cell 2i+1 the high nibble. A trailing odd cell leaves the
// high nibble zero.
func PackMasks(masks []Mask) []byte {
	out := make([]byte, (len(masks)+1)/2)
	for i, m := range masks {
		if i%2 == 0 {
			out[i/2] = byte(m) & 0x0F
		} else {
			out[i/2] |= byte(m) << 4
		}
	}
	return out
}

// UnpackMasks reverses PackMasks, reading n masks from data.
// Returns an error if data is too short to hold n masks.
func UnpackMasks(data []byte, n int) ([]Mask, error) {
	if need := (n + 1) / 2; len(data) < need {
		return nil, fmt.Errorf("maze: mask payload holds %d cells, need %d", len(data)*2, n)
	}
	masks := make([]Mask, n)
	for i := range masks {
		b := data[i/2]
		if i%2 == 0 {
			masks[i] = Mask(b & 0x0F)
		} else {
			masks[i] = Mask(b >> 4)
		}
	}
	return masks, nil
}
