package frame

import (
	"github.com/flightlog/blackbox/encoding"
	"github.com/flightlog/blackbox/format"
)

// decodeEvent reads the subtype byte following an 'E' frame-type token and
// its subtype-specific payload (spec §4.6). Event integer fields are read
// with the same unsigned-VB codec the rest of the payload uses, since the
// reference format does not introduce a second integer representation just
// for events.
func (d *Decoder) decodeEvent(start int) *Item {
	subtypeByte, err := d.r.ReadU8()
	if err != nil {
		d.done = true
		return nil
	}

	subtype := format.EventType(subtypeByte)
	data := make(map[string]int64)

	ok := true
	switch subtype {
	case format.EventSyncBeep:
		data["time"], ok = d.readU32Field()

	case format.EventLoggingResume:
		var logIteration, currentTime int64
		logIteration, ok = d.readU32Field()
		if ok {
			currentTime, ok = d.readU32Field()
		}
		data["logIteration"] = logIteration
		data["currentTime"] = currentTime

	case format.EventFlightMode:
		var flags, lastFlags int64
		flags, ok = d.readU32Field()
		if ok {
			lastFlags, ok = d.readU32Field()
		}
		data["flags"] = flags
		data["lastFlags"] = lastFlags

	case format.EventEndOfLog:
		// no payload

	case format.EventAutotuneCycleStart, format.EventAutotuneCycleResult,
		format.EventAutotuneTargets, format.EventInflightAdjustment:
		// Variable-length payloads the reference format does not fully
		// document; skip to the next recognized frame-type byte per §4.6's
		// "unknown subtypes are logged and skipped" rule.
		ok = d.skipToNextKnownByte()

	default:
		ok = d.skipToNextKnownByte()
	}

	if !ok {
		d.r.Seek(start + 1)
		return nil
	}

	return &Item{Event: &Event{Type: subtype, Data: data}}
}

func (d *Decoder) readU32Field() (int64, bool) {
	v, err := encoding.ReadUnsignedVB(d.r)
	if err != nil {
		return 0, false
	}

	return int64(v), true
}

// skipToNextKnownByte advances the cursor until the next byte is a valid
// frame-type token or the stream is exhausted. Unlike resync, it does not
// increment the resync counter: an unrecognized event subtype is not a
// stream corruption, just an undecoded payload.
func (d *Decoder) skipToNextKnownByte() bool {
	for {
		b, err := d.r.PeekU8()
		if err != nil {
			d.done = true
			return false
		}
		if format.FrameType(b).IsValid() {
			return true
		}
		_, _ = d.r.ReadU8()
	}
}
