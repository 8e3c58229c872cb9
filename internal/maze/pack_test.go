package maze

import (
	"bytes"
	"testing"
)

func TestPackMasksLowNibbleFirst(t *testing.T) {
	masks := []Mask{0x3, 0xA, 0x7}
	packed := PackMasks(masks)

	expected := []byte{0xA3, 0x07}
	if !bytes.Equal(packed, expected) {
		t.Errorf("PackMasks() = %x, expected %x", packed, expected)
	}
}

func TestUnpackMasks(t *testing.T) {
	masks, err := UnpackMasks([]byte{0xA3, 0x07}, 3)
	if err != nil {
		t.Fatalf("UnpackMasks() error: %v", err)
	}
	expected := []Mask{0x3, 0xA, 0x7}
	for i, m := range expected {
		if masks[i] != m {
			t.Errorf("masks[%d] = %x, expected %x", i, masks[i], m)
		}
	}
}

func TestUnpackMasksShortPayload(t *testing.T) {
	if _, err := UnpackMasks([]byte{0xA3}, 3); err == nil {
		t.Error("UnpackMasks() accepted a payload shorter than the cell count")
	}
}

func TestPackRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		masks []Mask
	}{
		{"empty", nil},
		{"single", []Mask{0xF}},
		{"even count", []Mask{0x1, 0x2, 0x4, 0x8}},
		{"odd count", []Mask{0x6, 0xC, 0x9, 0x3, 0x5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			back, err := UnpackMasks(PackMasks(tc.masks), len(tc.masks))
			if err != nil {
				t.Fatalf("UnpackMasks() error: %v", err)
			}
			if len(back) != len(tc.masks) {
				t.Fatalf("round trip length = %d, expected %d", len(back), len(tc.masks))
			}
			for i := range tc.masks {
				if back[i] != tc.masks[i] {
					t.Errorf("masks[%d] = %x, expected %x", i, back[i], tc.masks[i])
				}
			}
		})
	}
}

func TestGridRoundTripThroughPacking(t *testing.T) {
	g := corridor()

	back, err := UnpackMasks(PackMasks(g.Cells), g.W*g.H)
	if err != nil {
		t.Fatalf("UnpackMasks() error: %v", err)
	}
	restored := &Grid{W: g.W, H: g.H, Cells: back}
	Normalize(restored)
	if !restored.Equal(g) {
		t.Errorf("packed round trip = %v, expected %v", restored.Cells, g.Cells)
	}
}
