package wire

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
)

// Inflator decompresses a payload. It is the one injectable primitive of the
// decoder: the chain asks for inflation and never cares how it happens.
type Inflator interface {
	Inflate(data []byte) ([]byte, error)
}

// ZlibInflator inflates zlib streams and, for compatibility with feeds whose
// producers stripped the two-byte header, bare DEFLATE streams.
type ZlibInflator struct{}

// Inflate implements Inflator.
func (ZlibInflator) Inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err == nil {
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("wire: inflate: %w", err)
		}
		return plain, nil
	}

	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	plain, ferr := io.ReadAll(fr)
	if ferr != nil {
		return nil, fmt.Errorf("wire: inflate: %w", ferr)
	}
	return plain, nil
}

// deflate compresses data as a zlib stream, the inverse of the preferred
// decode strategy.
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("wire: deflate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("wire: deflate: %w", err)
	}
	return buf.Bytes(), nil
}
