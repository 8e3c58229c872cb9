package wire

import (
	"encoding/base64"
	"fmt"
)

// FormatError reports payload text that cannot be decoded at all.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "wire: " + e.Reason
}

// base64Alphabet is the standard alphabet; '=' pads the final group.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// base64Table maps a byte to its 6-bit value, or -1 for bytes outside the
// alphabet (including '=').
var base64Table = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		t[base64Alphabet[i]] = int8(i)
	}
	return t
}()

// DecodeBase64 decodes legacy payload text. It keeps the quirks old feeds
// rely on: ASCII whitespace is stripped before length checking, and bytes
// outside the alphabet decode as value zero instead of failing, which
// silently corrupts the affected group. The only hard failure is a cleaned
// length that is not a multiple of four, reported as a FormatError with no
// partial output.
func DecodeBase64(text string) ([]byte, error) {
	clean := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if !isASCIISpace(text[i]) {
			clean = append(clean, text[i])
		}
	}
	if len(clean)%4 != 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("base64 length %d is not a multiple of 4", len(clean))}
	}
	if len(clean) == 0 {
		return []byte{}, nil
	}

	pad := 0
	if clean[len(clean)-1] == '=' {
		pad++
		if clean[len(clean)-2] == '=' {
			pad++
		}
	}

	out := make([]byte, 0, len(clean)/4*3)
	for i := 0; i < len(clean); i += 4 {
		var group uint32
		for j := 0; j < 4; j++ {
			v := base64Table[clean[i+j]]
			if v < 0 {
				v = 0
			}
			group = group<<6 | uint32(v)
		}
		out = append(out, byte(group>>16), byte(group>>8), byte(group))
	}
	return out[:len(out)-pad], nil
}

// EncodeBase64 encodes freshly produced payload bytes. Producers emit clean
// standard base64, so this side is the stock encoder.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
