// Package errs defines the sentinel errors returned by the decoder packages.
// Callers use errors.Is against these values; wrapping with fmt.Errorf("%w")
// is used throughout the decoder to attach positional context.
package errs

import (
	"errors"
	"fmt"
)

// Header errors (§7: propagate to the caller, never recovered locally).
var (
	// ErrInvalidHeader is returned when the product signature is absent at
	// the chosen session offset and strict (non-permissive) mode is active.
	ErrInvalidHeader = errors.New("blackbox: product signature not found")

	// ErrMalformedHeader is returned when a header's field-definition lists
	// have mismatched lengths, contain an unparseable integer, or a
	// required key is missing.
	ErrMalformedHeader = errors.New("blackbox: malformed header")

	// ErrMissingHeaderKey is returned when a required header key is absent.
	// It wraps ErrMalformedHeader, so errors.Is matches either value.
	ErrMissingHeaderKey = fmt.Errorf("%w: missing required header key", ErrMalformedHeader)
)

// Payload errors.
var (
	// ErrMalformedEncoding is returned when a variable-byte run exceeds the
	// maximum length, or an encoding/predictor id is unrecognized.
	ErrMalformedEncoding = errors.New("blackbox: malformed encoding")

	// ErrUnexpectedEOF is returned when the bit-stream is exhausted in the
	// middle of decoding a token.
	ErrUnexpectedEOF = errors.New("blackbox: unexpected end of stream")

	// ErrNoHistory is returned by the MOTOR_0 predictor when the frame being
	// decoded has no "motor[0]" field to take its baseline from.
	ErrNoHistory = errors.New("blackbox: predictor requires history not yet available")
)

// Session errors.
var (
	// ErrNoSuchLog is returned when a requested session index is outside
	// [1, log_count].
	ErrNoSuchLog = errors.New("blackbox: no such log session")

	// ErrEmptyFile is returned by blackbox.Open when the input is empty. An
	// input with no session signature is instead treated as one session at
	// offset 0 (see ErrInvalidHeader).
	ErrEmptyFile = errors.New("blackbox: no sessions found in input")
)

// ErrResyncSkip names the soft resync condition. No public API returns it
// and the decoder does not record it anywhere: resynchronizations are only
// counted, by frame.Decoder.ResyncCount.
var ErrResyncSkip = errors.New("blackbox: resynchronized after invalid frame-type byte")
