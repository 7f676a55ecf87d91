// Package frame implements the frame decoder (spec component C6): the state
// machine that reads a one-byte frame-type token, dispatches to the numeric
// codec and predictor engine for that type's field table, maintains the
// sliding I/P/S/GPS-home history predictors read from, and emits frames and
// events as a single pull-based sequence.
package frame

import "github.com/flightlog/blackbox/format"

// Frame is one decoded record: a frame type, its logical field values in
// field-table order, and the byte range it occupied in the payload (spec
// §3). Frame.Data[k] is the logical value of field_names[k] for I/P frames.
type Frame struct {
	Type        format.FrameType
	Data        []int64
	StartOffset int
	EndOffset   int
}

// Event is a side-channel record emitted by an 'E' frame-type token; it
// never participates in I/P/S/GPS history.
type Event struct {
	Type format.EventType
	Data map[string]int64
}

// Item is exactly one of Frame or Event, never both. Decoder.All yields a
// single interleaved sequence of Items in payload order, satisfying spec
// §4.7's "frames and events may be returned through one joined stream"
// allowance.
type Item struct {
	Frame *Frame
	Event *Event
}

// History is the frame decoder's sliding state (spec §3): the two most
// recently accepted I/P frames, the most recently accepted S frame, and the
// GPS-home coordinate pair. A nil Last/Last2/LastSlow means "no frame of
// that kind decoded yet in this session."
type History struct {
	Last     []int64
	Last2    []int64
	LastSlow []int64
	GPSHome  [2]int64
}
