// Package deflate compresses canonical payloads as zlib streams.
package deflate

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// MaxDecompressedSize bounds the output of Decompress. Canonical payloads
// are well under 100 bytes.
const MaxDecompressedSize = 1 << 10

// ErrCorrupt is returned when a payload is not a single well-formed zlib
// stream within the size bound.
var ErrCorrupt = errors.New("deflate: corrupt payload")

// Compress returns the zlib stream of b at best compression.
func Compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("deflate: create writer: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return nil, fmt.Errorf("deflate: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("deflate: close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream. Checksum failures, truncation, bytes
// after the stream and output larger than MaxDecompressedSize are errors.
func Decompress(b []byte) ([]byte, error) {
	src := bytes.NewReader(b)
	r, err := zlib.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(out) > MaxDecompressedSize {
		return nil, fmt.Errorf("%w: output exceeds %d bytes", ErrCorrupt, MaxDecompressedSize)
	}
	if src.Len() > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, src.Len())
	}
	return out, nil
}
