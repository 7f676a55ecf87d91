//go:build cgo

package compress

import "github.com/valyala/gozstd"

// Compress uses valyala/gozstd's cgo binding to the reference libzstd,
// which reaches higher ratios than the pure-Go decoder at the cost of a
// cgo build. Level 3 matches zstd's own "fast" default.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return gozstd.Decompress(nil, data)
}
