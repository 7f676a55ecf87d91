package compress

// ZstdCompressor compresses with Zstandard, the high-ratio option for
// long-term session archival. Its Compress/Decompress methods live in
// zstd_pure.go (pure-Go, klauspost/compress) or zstd_cgo.go
// (cgo, valyala/gozstd) depending on the cgo build tag, so callers never
// need to know which is linked in.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a Zstd compressor using whichever
// implementation this build was linked with.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
