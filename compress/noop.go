package compress

// NoOpCompressor passes data through unchanged. It satisfies Codec for
// callers that want ExportSession to write a session's raw bytes as they
// are, without spending CPU on a session that is about to be re-compressed
// by the storage layer anyway.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

func NewNoOpCompressor() NoOpCompressor { return NoOpCompressor{} }

func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
