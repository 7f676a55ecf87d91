// Package blackbox decodes Cleanflight/Betaflight blackbox flight-data-
// recorder log files into structured, predicted, delta-decoded frames.
//
// # Basic usage
//
//	p, err := blackbox.Open(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for item := range p.All() {
//	    if item.Frame != nil {
//	        fmt.Println(item.Frame.Type, item.Frame.Data)
//	    }
//	}
//
// A file may contain several concatenated sessions (a "merged" flash-chip
// dump); Reader.LogCount and Parser.SetLogIndex expose and select among
// them. Package header, predictor, frame, encoding and internal/bitstream
// implement the decoder's components; this package is the façade (spec
// component C7) that wires them together per selected session.
package blackbox

import (
	"fmt"
	"io"
	"iter"

	"github.com/flightlog/blackbox/compress"
	"github.com/flightlog/blackbox/errs"
	"github.com/flightlog/blackbox/frame"
	"github.com/flightlog/blackbox/header"
	"github.com/flightlog/blackbox/internal/bitstream"
	"github.com/flightlog/blackbox/internal/collision"
	"github.com/flightlog/blackbox/internal/options"
)

// Config holds Open's functional options.
type Config struct {
	LogIndex           int
	AllowInvalidHeader bool
}

// Option configures Open.
type Option = options.Option[*Config]

// WithLogIndex selects the 1-based session index to decode first. Defaults
// to 1.
func WithLogIndex(i int) Option {
	return options.NoError(func(c *Config) { c.LogIndex = i })
}

// WithAllowInvalidHeader tolerates a missing or garbled product signature at
// the chosen session offset, per spec §4.2.
func WithAllowInvalidHeader(allow bool) Option {
	return options.NoError(func(c *Config) { c.AllowInvalidHeader = allow })
}

// Reader owns the raw bytes of a (possibly merged) log file and the byte
// offsets of each session's signature within it (spec §3's LogPointers).
type Reader struct {
	data        []byte
	logPointers []int
	drift       *collision.Tracker
}

// LogCount returns the number of sessions found in the file.
func (r *Reader) LogCount() int {
	return len(r.logPointers)
}

// LogPointers returns the byte offsets of each session's signature, in
// ascending order.
func (r *Reader) LogPointers() []int {
	out := make([]int, len(r.logPointers))
	copy(out, r.logPointers)

	return out
}

// SchemaDrift reports whether the sessions decoded so far via Parser.
// SetLogIndex have disagreeing field schemas (see header.SchemaHash), which
// usually means the merged dump spans more than one firmware build.
func (r *Reader) SchemaDrift() bool {
	return r.drift.HasDrift()
}

// ExportSession writes session i's raw byte range, compressed with codec,
// to w. Passing compress.NewNoOpCompressor() exports the bytes unchanged.
func (r *Reader) ExportSession(i int, w io.Writer, codec compress.Codec) error {
	if i < 1 || i > len(r.logPointers) {
		return errs.ErrNoSuchLog
	}

	start := r.logPointers[i-1]
	end := len(r.data)
	if i < len(r.logPointers) {
		end = r.logPointers[i]
	}

	out, err := codec.Compress(r.data[start:end])
	if err != nil {
		return fmt.Errorf("export session %d: %w", i, err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("export session %d: %w", i, err)
	}

	return nil
}

// decompressIfWrapped transparently inflates a gzip- or LZ4-wrapped merged
// dump before the product-signature scan runs (spec §6b). Data with neither
// magic header is returned unchanged.
func decompressIfWrapped(data []byte) ([]byte, error) {
	switch {
	case compress.HasGzipMagic(data):
		out, err := compress.NewGzipCompressor().Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress gzip-wrapped dump: %w", err)
		}

		return out, nil
	case compress.HasLZ4Magic(data):
		out, err := compress.NewLZ4Compressor().Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress lz4-wrapped dump: %w", err)
		}

		return out, nil
	default:
		return data, nil
	}
}

// Parser streams frames and events for one selected session (spec §4.7).
type Parser struct {
	reader             *Reader
	allowInvalidHeader bool

	logIndex    int
	header      *header.Header
	table       *header.FieldTable
	decoder     *frame.Decoder
	payloadBase int
}

// Open reads data, locates its session signatures, and parses the headers
// of the selected session (log index 1 by default).
func Open(data []byte, opts ...Option) (*Parser, error) {
	if len(data) == 0 {
		return nil, errs.ErrEmptyFile
	}

	cfg := &Config{LogIndex: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	data, err := decompressIfWrapped(data)
	if err != nil {
		return nil, err
	}

	offsets := header.FindSessionOffsets(data)
	if len(offsets) == 0 {
		// No product signature anywhere in the file. In strict mode this is
		// reported as errs.ErrInvalidHeader once header.Parse validates the
		// (sole, implicit) session at offset 0; in permissive mode that same
		// call tolerates the absence and scans header lines regardless.
		offsets = []int{0}
	}

	r := &Reader{data: data, logPointers: offsets, drift: collision.NewTracker()}

	p := &Parser{reader: r, allowInvalidHeader: cfg.AllowInvalidHeader}
	if err := p.SetLogIndex(cfg.LogIndex); err != nil {
		return nil, err
	}

	return p, nil
}

// Reader exposes the owning Reader (log_count, log_pointers, ExportSession).
func (p *Parser) Reader() *Reader {
	return p.reader
}

// Headers returns the selected session's raw header key/value map.
func (p *Parser) Headers() map[string]string {
	return p.header.Raw
}

// FieldNames returns the I-frame field name order.
func (p *Parser) FieldNames() []string {
	names := make([]string, len(p.table.I))
	for i, f := range p.table.I {
		names[i] = f.Name
	}

	return names
}

// LogIndex returns the currently selected 1-based session index.
func (p *Parser) LogIndex() int {
	return p.logIndex
}

// SetLogIndex selects session i (1-based), discards history, re-parses its
// header, and repositions the decoder at that session's payload start
// (spec §4.7). i outside [1, log_count] fails with errs.ErrNoSuchLog.
func (p *Parser) SetLogIndex(i int) error {
	if i < 1 || i > len(p.reader.logPointers) {
		return errs.ErrNoSuchLog
	}

	sessionStart := p.reader.logPointers[i-1]
	sessionEnd := len(p.reader.data)
	if i < len(p.reader.logPointers) {
		sessionEnd = p.reader.logPointers[i]
	}
	sessionData := p.reader.data[sessionStart:sessionEnd]

	h, payloadStart, err := header.Parse(sessionData, 0, p.allowInvalidHeader)
	if err != nil {
		return err
	}

	table, err := header.BuildFieldTable(h)
	if err != nil {
		return err
	}

	p.logIndex = i
	p.header = h
	p.table = table
	p.payloadBase = payloadStart
	p.decoder = frame.NewDecoder(seekedReader(sessionData, payloadStart), h, table)

	p.reader.drift.Track(i, table.SchemaHash())

	return nil
}

// seekedReader wraps a session's byte slice in a bitstream.Reader positioned
// at its payload start. Bounding the slice to [sessionStart, nextSessionStart)
// keeps a session's frame decoder from wandering into the next session's
// ASCII header text, whose bytes can coincidentally equal a valid frame-type
// token.
func seekedReader(sessionData []byte, payloadStart int) *bitstream.Reader {
	r := bitstream.New(sessionData)
	r.Seek(payloadStart)

	return r
}

// All returns the single-pass sequence of frames and events for the
// currently selected session. Ranging over it twice without an intervening
// SetLogIndex yields nothing the second time, since the underlying cursor
// has already been consumed (spec §4.7: "not restartable").
func (p *Parser) All() iter.Seq[*frame.Item] {
	return p.decoder.All()
}

// Frames returns the subsequence of All's items that are frames.
func (p *Parser) Frames() iter.Seq[*frame.Frame] {
	return func(yield func(*frame.Frame) bool) {
		for item := range p.All() {
			if item.Frame != nil && !yield(item.Frame) {
				return
			}
		}
	}
}

// Events returns the subsequence of All's items that are events.
func (p *Parser) Events() iter.Seq[*frame.Event] {
	return func(yield func(*frame.Event) bool) {
		for item := range p.All() {
			if item.Event != nil && !yield(item.Event) {
				return
			}
		}
	}
}

// ResyncCount is the number of frame-decode resynchronizations performed so
// far in the current session (spec §9).
func (p *Parser) ResyncCount() int {
	return p.decoder.ResyncCount()
}
