package compress

import "github.com/klauspost/compress/s2"

// S2Compressor compresses with S2, Snappy's faster, better-ratio successor.
// It trades the higher ratios of Zstd/gzip for much faster compression,
// useful for archiving a session as it's captured rather than after the
// fact.
type S2Compressor struct{}

var _ Codec = S2Compressor{}

func NewS2Compressor() S2Compressor { return S2Compressor{} }

func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	return s2.Decode(nil, data)
}
