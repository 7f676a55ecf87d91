package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/flightlog/blackbox/internal/pool"
)

// GzipCompressor compresses with the gzip format klauspost/compress
// implements as a drop-in, faster replacement for compress/gzip. It also
// backs blackbox.Open's transparent input decompression (a merged dump
// shipped gzip-compressed by ground tooling begins with gzip's magic
// header, 0x1f 0x8b).
type GzipCompressor struct{}

var _ Codec = GzipCompressor{}

func NewGzipCompressor() GzipCompressor { return GzipCompressor{} }

func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}

	return buf.Bytes(), nil
}

func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer r.Close()

	buf := pool.GetInflateBuffer()
	defer pool.PutInflateBuffer(buf)

	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

// HasGzipMagic reports whether data begins with gzip's two-byte magic
// header, used by blackbox.Open to detect a gzip-wrapped merged dump before
// the product-signature scan runs.
func HasGzipMagic(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}
