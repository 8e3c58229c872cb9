package wire

import (
	"bytes"
	"compress/flate"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// compress produces the preferred payload encoding of a JSON document.
func compress(t *testing.T, doc string) string {
	t.Helper()
	comp, err := deflate([]byte(doc))
	assert.NoError(t, err)
	return EncodeBase64(comp)
}

func TestDecoderStrategies(t *testing.T) {
	dec := NewDecoder()

	t.Run("compressed payload uses the inflate strategy", func(t *testing.T) {
		payload := compress(t, `[1,2,3]`)
		// zlib magic in base64; old feeds were recognizable by this prefix.
		assert.True(t, strings.HasPrefix(payload, "eJ"))

		v, via, ok := dec.Decode(payload)
		assert.True(t, ok)
		assert.Equal(t, StrategyInflateJSON, via)
		assert.Equal(t, []any{1.0, 2.0, 3.0}, v)
	})

	t.Run("plain payload falls back to the raw strategy", func(t *testing.T) {
		v, via, ok := dec.Decode(EncodeBase64([]byte(`{"a":true}`)))
		assert.True(t, ok)
		assert.Equal(t, StrategyRawJSON, via)
		assert.Equal(t, map[string]any{"a": true}, v)
	})

	t.Run("binary garbage exhausts the chain", func(t *testing.T) {
		_, via, ok := dec.Decode(EncodeBase64([]byte{0x00, 0x11, 0x22, 0x33}))
		assert.False(t, ok)
		assert.Equal(t, StrategyNone, via)
	})

	t.Run("unreadable base64 exhausts the chain", func(t *testing.T) {
		_, _, ok := dec.Decode("abc")
		assert.False(t, ok)
	})

	t.Run("compressed non-JSON exhausts the chain", func(t *testing.T) {
		_, _, ok := dec.Decode(compress(t, "not json at all"))
		assert.False(t, ok)
	})
}

func TestDegradedDecoder(t *testing.T) {
	dec := NewDecoderWith(nil)

	t.Run("still reads raw payloads", func(t *testing.T) {
		v, via, ok := dec.Decode(EncodeBase64([]byte(`[0]`)))
		assert.True(t, ok)
		assert.Equal(t, StrategyRawJSON, via)
		assert.Equal(t, []any{0.0}, v)
	})

	t.Run("cannot read compressed payloads", func(t *testing.T) {
		_, _, ok := dec.Decode(compress(t, `[0]`))
		assert.False(t, ok)
	})
}

func TestZlibInflatorAcceptsBareDeflate(t *testing.T) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	assert.NoError(t, err)
	_, err = fw.Write([]byte("headerless"))
	assert.NoError(t, err)
	assert.NoError(t, fw.Close())

	plain, err := ZlibInflator{}.Inflate(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, []byte("headerless"), plain)
}
