package compress

import (
	"fmt"

	"github.com/flightlog/blackbox/format"
)

// Compressor compresses a byte slice, typically a session's raw payload
// bytes (see blackbox.Reader.ExportSession).
type Compressor interface {
	// Compress compresses data and returns the compressed result. The
	// returned slice is newly allocated; data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously produced by the
// matching Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns the original bytes. Returns
	// an error if data is corrupted or was compressed by a different codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor. blackbox.Reader.ExportSession
// accepts a Codec so callers can archive a session under whichever
// compression trade-off suits their storage, without the frame decoder ever
// needing to know about compression at all.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression operation, useful for reporting the
// space saved by a session export.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns CompressedSize/OriginalSize; values below 1.0 indicate the
// export shrank.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// CreateCodec builds a Codec for the given compression type.
func CreateCodec(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	default:
		return nil, fmt.Errorf("compress: unsupported compression type %s", t)
	}
}
