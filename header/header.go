package header

import (
	"strconv"
	"strings"

	"github.com/flightlog/blackbox/errs"
)

// Header is the raw key→value store for one session's "H " lines (spec §3),
// plus lazily-parsed accessors for the keys the decoder consults directly.
// Unknown keys are retained verbatim in Raw for pass-through to consumers,
// per the "duck-typed header map" design note.
type Header struct {
	Raw map[string]string
}

// Parse reads the header block starting at offset and returns the parsed
// Header along with the byte offset of the first payload frame-type token.
//
// When allowInvalidHeader is false, the product signature must be present at
// offset exactly; its absence fails with errs.ErrInvalidHeader. When true,
// the signature is not required and header-line scanning simply starts at
// offset and runs until the first non-header-line byte.
func Parse(data []byte, offset int, allowInvalidHeader bool) (*Header, int, error) {
	if !allowInvalidHeader && !hasSignatureAt(data, offset) {
		return nil, 0, errs.ErrInvalidHeader
	}

	lines, payloadStart := scanHeaderLines(data, offset)

	raw := make(map[string]string, len(lines))
	for _, line := range lines {
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		raw[line[:idx]] = line[idx+1:]
	}

	return &Header{Raw: raw}, payloadStart, nil
}

// Get returns the raw string value for key and whether it was present.
func (h *Header) Get(key string) (string, bool) {
	v, ok := h.Raw[key]
	return v, ok
}

// getAny returns the value of the first present key in keys.
func (h *Header) getAny(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := h.Raw[k]; ok {
			return v, true
		}
	}

	return "", false
}

func parseUint(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, errs.ErrMalformedHeader
	}

	return uint32(v), nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errs.ErrMalformedHeader
	}

	return v, nil
}

// IInterval returns the "I interval" header value (falling back to the
// frameIntervalI alternate key used by some firmware revisions), per §4.2.
func (h *Header) IInterval() (uint32, error) {
	v, ok := h.getAny("I interval", "frameIntervalI")
	if !ok {
		return 0, errs.ErrMissingHeaderKey
	}

	return parseUint(v)
}

// PInterval returns the "P interval" header value as its N/M parts (falling
// back to the frameIntervalPNum/frameIntervalPDenom alternate keys).
func (h *Header) PInterval() (num, denom uint32, err error) {
	if v, ok := h.getAny("P interval"); ok {
		parts := strings.SplitN(v, "/", 2)
		if len(parts) != 2 {
			return 0, 0, errs.ErrMalformedHeader
		}

		num, err = parseUint(parts[0])
		if err != nil {
			return 0, 0, err
		}
		denom, err = parseUint(parts[1])
		if err != nil {
			return 0, 0, err
		}

		return num, denom, nil
	}

	numStr, numOK := h.getAny("frameIntervalPNum")
	denomStr, denomOK := h.getAny("frameIntervalPDenom")
	if !numOK || !denomOK {
		return 0, 0, errs.ErrMissingHeaderKey
	}

	num, err = parseUint(numStr)
	if err != nil {
		return 0, 0, err
	}
	denom, err = parseUint(denomStr)
	if err != nil {
		return 0, 0, err
	}

	return num, denom, nil
}

// DataVersion returns the "Data version" header value. The decoder does not
// consult it: HOME_COORD and HOME_LAT decode identically whatever the data
// version (see DESIGN.md).
func (h *Header) DataVersion() (uint32, error) {
	v, ok := h.getAny("Data version")
	if !ok {
		return 0, errs.ErrMissingHeaderKey
	}

	return parseUint(v)
}

// FirmwareRevision returns the "Firmware revision" header value verbatim, or
// the empty string if absent. It is retained for pass-through only; nothing
// in the decoder core branches on it.
func (h *Header) FirmwareRevision() string {
	v, _ := h.getAny("Firmware revision")
	return v
}

// MotorOutput returns the "motorOutput" header's two comma-separated
// integers (min, max), used by the MIN_MOTOR predictor (§4.5 id 11).
func (h *Header) MotorOutput() (min, max int64, err error) {
	v, ok := h.getAny("motorOutput")
	if !ok {
		return 0, 0, errs.ErrMissingHeaderKey
	}

	parts := strings.SplitN(v, ",", 2)
	if len(parts) != 2 {
		return 0, 0, errs.ErrMalformedHeader
	}

	min, err = parseInt(parts[0])
	if err != nil {
		return 0, 0, err
	}
	max, err = parseInt(parts[1])
	if err != nil {
		return 0, 0, err
	}

	return min, max, nil
}

// VbatRef returns the "vbatref" header value, used by the VBATREF predictor
// (§4.5 id 9).
func (h *Header) VbatRef() (int64, error) {
	v, ok := h.getAny("vbatref")
	if !ok {
		return 0, errs.ErrMissingHeaderKey
	}

	return parseInt(v)
}

// MinThrottle returns the "minthrottle" header value, used by the
// MINTHROTTLE predictor (§4.5 id 4).
func (h *Header) MinThrottle() (int64, error) {
	v, ok := h.getAny("minthrottle")
	if !ok {
		return 0, errs.ErrMissingHeaderKey
	}

	return parseInt(v)
}

// splitCSV splits a header's "Field T name" style comma list.
func splitCSV(v string) []string {
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
