package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/flightlog/blackbox/internal/pool"
)

// lz4FrameMagic is the four-byte magic header every LZ4 frame begins with,
// used by blackbox.Open to detect an LZ4-wrapped merged dump.
var lz4FrameMagic = []byte{0x04, 0x22, 0x4d, 0x18}

// LZ4Compressor compresses with the LZ4 frame format (as opposed to the
// bare block format), so a compressed session carries its own magic header
// and decompressed-size hint and can be streamed without a separate
// length-prefix convention.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

func NewLZ4Compressor() LZ4Compressor { return LZ4Compressor{} }

func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	return buf.Bytes(), nil
}

func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))

	buf := pool.GetInflateBuffer()
	defer pool.PutInflateBuffer(buf)

	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

// HasLZ4Magic reports whether data begins with the LZ4 frame format's magic
// header, used by blackbox.Open to detect an LZ4-wrapped merged dump before
// the product-signature scan runs.
func HasLZ4Magic(data []byte) bool {
	return len(data) >= len(lz4FrameMagic) && bytes.Equal(data[:len(lz4FrameMagic)], lz4FrameMagic)
}
