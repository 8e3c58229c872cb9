// Package wire implements the puzzle wire format: base64 transport encoding,
// the compressed JSON payload pipeline, the packed binary fallback layouts,
// and the JSONL puzzle feed.
//
// Payloads travel as base64 text. The preferred form is zlib-compressed JSON;
// older feeds carry raw JSON or the packed binary layouts. Decoding walks an
// ordered chain of strategies and reports which one succeeded, so callers can
// fall back to the binary form only when the whole chain fails.
package wire

import (
	"encoding/json"
	"unicode/utf8"
)

// Strategy identifies which decoding strategy produced a payload value.
type Strategy uint8

const (
	// StrategyNone means no strategy succeeded.
	StrategyNone Strategy = iota
	// StrategyInflateJSON is base64 -> inflate -> UTF-8 -> JSON.
	StrategyInflateJSON
	// StrategyRawJSON is base64 -> UTF-8 -> JSON.
	StrategyRawJSON
)

// String returns the strategy name used in logs and reports.
func (s Strategy) String() string {
	switch s {
	case StrategyInflateJSON:
		return "inflate+json"
	case StrategyRawJSON:
		return "raw-json"
	default:
		return "none"
	}
}

// Decoder turns base64 payload text into JSON values. The zero value is not
// usable; construct one with NewDecoder or NewDecoderWith.
//
// The inflator is an explicit dependency. A decoder built with a nil
// inflator is degraded: it skips the compressed strategy and still reads
// uncompressed payloads.
type Decoder struct {
	inflator Inflator
}

// NewDecoder returns a decoder using the zlib inflator.
func NewDecoder() *Decoder {
	return &Decoder{inflator: ZlibInflator{}}
}

// NewDecoderWith returns a decoder using the given inflator.
// A nil inflator disables the compressed strategy.
func NewDecoderWith(inf Inflator) *Decoder {
	return &Decoder{inflator: inf}
}

// strategyFn attempts one decoding strategy on the raw base64-decoded bytes.
type strategyFn func(d *Decoder, raw []byte) (any, bool)

// strategyChain is tried in order; the first success wins.
var strategyChain = []struct {
	tag Strategy
	fn  strategyFn
}{
	{StrategyInflateJSON, decodeInflateJSON},
	{StrategyRawJSON, decodeRawJSON},
}

// Decode runs the strategy chain over the payload text. It reports the
// decoded JSON value, the strategy that produced it, and whether any
// strategy succeeded. Failures inside the chain never surface as errors;
// exhaustion returns ok=false and the caller decides on a fallback.
func (d *Decoder) Decode(text string) (value any, via Strategy, ok bool) {
	raw, err := DecodeBase64(text)
	if err != nil {
		return nil, StrategyNone, false
	}
	for _, s := range strategyChain {
		if v, ok := s.fn(d, raw); ok {
			return v, s.tag, true
		}
	}
	return nil, StrategyNone, false
}

func decodeInflateJSON(d *Decoder, raw []byte) (any, bool) {
	if d.inflator == nil {
		return nil, false
	}
	plain, err := d.inflator.Inflate(raw)
	if err != nil {
		return nil, false
	}
	return parseJSON(plain)
}

func decodeRawJSON(_ *Decoder, raw []byte) (any, bool) {
	return parseJSON(raw)
}

func parseJSON(data []byte) (any, bool) {
	if !utf8.Valid(data) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return v, true
}
