package frame

import (
	"iter"

	"github.com/flightlog/blackbox/encoding"
	"github.com/flightlog/blackbox/format"
	"github.com/flightlog/blackbox/header"
	"github.com/flightlog/blackbox/internal/bitstream"
	"github.com/flightlog/blackbox/internal/pool"
	"github.com/flightlog/blackbox/predictor"
)

// Decoder drives the frame state machine of spec §4.6 over one session's
// payload. A Decoder is single-pass and not safe for concurrent use (spec
// §5): exactly one goroutine should range over its All sequence.
type Decoder struct {
	r       *bitstream.Reader
	headers *header.Header
	table   *header.FieldTable
	hist    History

	resyncCount int
	done        bool

	iMotorZero int
	pMotorZero int
	iTimeIndex int
}

// NewDecoder creates a Decoder reading from r using the field layout in
// table and the header values predictors consult (minthrottle, vbatref,
// motorOutput).
func NewDecoder(r *bitstream.Reader, h *header.Header, table *header.FieldTable) *Decoder {
	return &Decoder{
		r:          r,
		headers:    h,
		table:      table,
		iMotorZero: fieldIndexByName(table.I, "motor[0]"),
		pMotorZero: fieldIndexByName(table.P, "motor[0]"),
		iTimeIndex: fieldIndexByName(table.I, "time"),
	}
}

func fieldIndexByName(fields []header.FieldDef, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

// ResyncCount is the number of times the decoder has skipped bytes to
// recover from an invalid frame-type token or a P-frame with no prior
// I-frame (spec §9's public read-only field design note).
func (d *Decoder) ResyncCount() int {
	return d.resyncCount
}

// All returns the single-pass sequence of frames and events remaining in
// the session, in payload order. Obtaining a fresh sequence after this one
// is exhausted requires a new Decoder over a re-seeked Reader (spec §4.7's
// set_log_index semantics, implemented by the blackbox package).
func (d *Decoder) All() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for !d.done {
			item := d.step()
			if item == nil {
				continue
			}
			if !yield(item) {
				return
			}
			if item.Event != nil && item.Event.Type == format.EventEndOfLog {
				d.done = true
				return
			}
		}
	}
}

// step performs one iteration of the §4.6 state machine: read one
// frame-type byte and dispatch. It returns nil when the byte triggered a
// resync, when a frame was discarded due to a local decode error, or when
// the stream reached a hard EOF (in which case done is also set).
func (d *Decoder) step() *Item {
	if d.r.EOF() {
		d.done = true
		return nil
	}

	start := d.r.Tell()
	t, err := d.r.ReadU8()
	if err != nil {
		d.done = true
		return nil
	}

	ft := format.FrameType(t)
	if !ft.IsValid() {
		d.resync()
		return nil
	}

	switch ft {
	case format.FrameIntra:
		return d.decodeMain(start, format.FrameIntra, d.table.I)
	case format.FrameInter:
		if d.hist.Last == nil {
			// Open question resolved: discard and surface a resync event
			// rather than silently producing a zero-initialized frame.
			d.resync()
			return nil
		}

		return d.decodeMain(start, format.FrameInter, d.table.P)
	case format.FrameSlow:
		return d.decodeSlow(start)
	case format.FrameGPSHome:
		return d.decodeGPSHome(start)
	case format.FrameGPS:
		return d.decodeGPS(start)
	case format.FrameEvent:
		return d.decodeEvent(start)
	default:
		return nil
	}
}

// resync increments the resync counter and advances the cursor, already
// positioned one byte past the offending token, until a recognized
// frame-type byte is next or the stream is exhausted.
func (d *Decoder) resync() {
	d.resyncCount++

	for {
		b, err := d.r.PeekU8()
		if err != nil {
			d.done = true
			return
		}
		if format.FrameType(b).IsValid() {
			return
		}
		_, _ = d.r.ReadU8()
	}
}

// decodeRawGroup decodes the raw (pre-predictor) tokens for fields into dst
// (which must have length len(fields)), honoring group-emitting encodings
// that produce several consecutive fields' values from a single read (spec
// §4.4). dst is normally a pool.GetInt64Slice buffer the caller releases
// once it has copied the values it needs out.
func (d *Decoder) decodeRawGroup(fields []header.FieldDef, dst []int64) bool {
	for i := 0; i < len(fields); {
		switch fields[i].Encoding {
		case format.EncodingSignedVB:
			v, err := encoding.ReadSignedVB(d.r)
			if err != nil {
				return false
			}
			dst[i] = int64(v)
			i++

		case format.EncodingUnsignedVB:
			v, err := encoding.ReadUnsignedVB(d.r)
			if err != nil {
				return false
			}
			dst[i] = int64(v)
			i++

		case format.EncodingNeg14Bit:
			v, err := encoding.ReadNeg14Bit(d.r)
			if err != nil {
				return false
			}
			dst[i] = int64(v)
			i++

		case format.EncodingTag8_8SVB:
			vals, err := encoding.ReadTag8_8SVB(d.r)
			if err != nil {
				return false
			}
			for j, v := range vals {
				dst[i+j] = int64(v)
			}
			i += len(vals)

		case format.EncodingTag2_3S32:
			vals, err := encoding.ReadTag2_3S32(d.r)
			if err != nil {
				return false
			}
			for j, v := range vals {
				dst[i+j] = int64(v)
			}
			i += len(vals)

		case format.EncodingTag8_4S16:
			vals, err := encoding.ReadTag8_4S16(d.r)
			if err != nil {
				return false
			}
			for j, v := range vals {
				dst[i+j] = int64(v)
			}
			i += len(vals)

		case format.EncodingNull:
			dst[i] = 0
			i++

		default:
			return false
		}
	}

	return true
}

// decodeMain decodes an I or P frame: the two differ only in which field
// table and motor[0] index apply, since P's PREVIOUS-predictor baselines
// already fold "last + decoded" into predictor.Apply.
func (d *Decoder) decodeMain(start int, ft format.FrameType, fields []header.FieldDef) *Item {
	raws, release := pool.GetInt64Slice(len(fields))
	defer release()

	if !d.decodeRawGroup(fields, raws) {
		d.r.Seek(start + 1)
		return nil
	}

	motorZero := d.iMotorZero
	if ft == format.FrameInter {
		motorZero = d.pMotorZero
	}

	data := make([]int64, len(fields))
	for i, f := range fields {
		ctx := predictor.Context{
			Last:           d.hist.Last,
			Last2:          d.hist.Last2,
			GPSHome:        d.hist.GPSHome,
			Current:        data,
			MotorZeroIndex: motorZero,
			TimeIndex:      d.iTimeIndex,
			Header:         d.headers,
		}

		v, err := predictor.Apply(f.Predictor, raws[i], i, f.Signed, ctx)
		if err != nil {
			d.r.Seek(start + 1)
			return nil
		}
		data[i] = v
	}

	if ft == format.FrameIntra {
		// An I-frame resets prediction history: both last and last2 become
		// the intra frame itself, so the next P-frame's STRAIGHT_LINE/
		// AVERAGE_2 predictors see two identical "prior" frames instead of
		// carrying over whatever preceded this I-frame.
		d.hist.Last2 = data
	} else {
		d.hist.Last2 = d.hist.Last
	}
	d.hist.Last = data

	return &Item{Frame: &Frame{Type: ft, Data: data, StartOffset: start, EndOffset: d.r.Tell()}}
}

func (d *Decoder) decodeSlow(start int) *Item {
	fields := d.table.S
	raws, release := pool.GetInt64Slice(len(fields))
	defer release()

	if !d.decodeRawGroup(fields, raws) {
		d.r.Seek(start + 1)
		return nil
	}

	data := make([]int64, len(fields))
	for i, f := range fields {
		ctx := predictor.Context{
			LastSlow:    d.hist.LastSlow,
			Current:     data,
			IsSlowFrame: true,
			Header:      d.headers,
		}

		v, err := predictor.Apply(f.Predictor, raws[i], i, f.Signed, ctx)
		if err != nil {
			d.r.Seek(start + 1)
			return nil
		}
		data[i] = v
	}

	d.hist.LastSlow = data

	return &Item{Frame: &Frame{Type: format.FrameSlow, Data: data, StartOffset: start, EndOffset: d.r.Tell()}}
}

// decodeGPSHome decodes an H frame and, per spec §3's two-i32 gps_home
// slot, updates history from the frame's first two decoded values.
func (d *Decoder) decodeGPSHome(start int) *Item {
	fields := d.table.H
	raws, release := pool.GetInt64Slice(len(fields))
	defer release()

	if !d.decodeRawGroup(fields, raws) {
		d.r.Seek(start + 1)
		return nil
	}

	data := make([]int64, len(fields))
	for i, f := range fields {
		ctx := predictor.Context{
			Last:    d.hist.Last,
			GPSHome: d.hist.GPSHome,
			Current: data,
			Header:  d.headers,
		}

		v, err := predictor.Apply(f.Predictor, raws[i], i, f.Signed, ctx)
		if err != nil {
			d.r.Seek(start + 1)
			return nil
		}
		data[i] = v
	}

	if len(data) >= 2 {
		d.hist.GPSHome[0] = data[0]
		d.hist.GPSHome[1] = data[1]
	}

	return &Item{Frame: &Frame{Type: format.FrameGPSHome, Data: data, StartOffset: start, EndOffset: d.r.Tell()}}
}

// decodeGPS decodes a G frame. HOME_COORD/HOME_LAT fields are assigned
// gps_home[0] for the first such field encountered in the frame and
// gps_home[1] for the second, matching the real format's GPS_coord[0]/[1]
// convention (see DESIGN.md).
func (d *Decoder) decodeGPS(start int) *Item {
	fields := d.table.G
	raws, release := pool.GetInt64Slice(len(fields))
	defer release()

	if !d.decodeRawGroup(fields, raws) {
		d.r.Seek(start + 1)
		return nil
	}

	data := make([]int64, len(fields))
	coordOccurrence := 0
	for i, f := range fields {
		ctx := predictor.Context{
			Last:      d.hist.Last,
			GPSHome:   d.hist.GPSHome,
			Current:   data,
			TimeIndex: d.iTimeIndex,
			Header:    d.headers,
		}

		if f.Predictor == format.PredictorHomeCoord || f.Predictor == format.PredictorHomeLat {
			ctx.HomeCoordIndex = coordOccurrence
			coordOccurrence++
		}

		v, err := predictor.Apply(f.Predictor, raws[i], i, f.Signed, ctx)
		if err != nil {
			d.r.Seek(start + 1)
			return nil
		}
		data[i] = v
	}

	return &Item{Frame: &Frame{Type: format.FrameGPS, Data: data, StartOffset: start, EndOffset: d.r.Tell()}}
}
