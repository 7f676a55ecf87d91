// Package compress implements the Codec abstraction blackbox uses for two
// unrelated jobs that happen to need the same codecs:
//
//   - blackbox.Open transparently decompresses a merged dump that ground
//     tooling shipped gzip- or LZ4-wrapped, detected by magic header before
//     the product-signature scan runs (see HasGzipMagic, HasLZ4Magic).
//   - blackbox.Reader.ExportSession compresses one session's raw byte range
//     for archival, with the caller choosing the trade-off: NoOpCompressor
//     (no compression), S2Compressor (fastest), LZ4Compressor (balanced,
//     frame format) or ZstdCompressor (highest ratio, pure-Go or cgo
//     depending on build tags).
//
// # Choosing a codec
//
//	NoOp  - already compressed upstream, or archiving for immediate reuse
//	S2    - capture-time archival where CPU budget is tight
//	LZ4   - general-purpose default; fast decompression
//	Zstd  - cold storage; best ratio, slower to compress
package compress
