// Package encoding implements the numeric codec (spec component C2): the
// byte-level representations that decode one or more signed/unsigned
// integer tokens from a bitstream.Reader, per spec §4.4.
package encoding

import (
	"github.com/flightlog/blackbox/errs"
	"github.com/flightlog/blackbox/internal/bitstream"
)

// maxVarByteLen is the longest a 32-bit unsigned-VB run is ever allowed to
// be; a 5th continuation byte means the stream is corrupt (spec §4.4).
const maxVarByteLen = 5

// ReadUnsignedVB reads a 7-bit-per-byte, LSB-first variable-byte unsigned
// integer: value = Σ (b_i & 0x7F) << (7·i), stopping at the first byte with
// its high bit clear. Runs longer than maxVarByteLen bytes are rejected.
func ReadUnsignedVB(r *bitstream.Reader) (uint32, error) {
	var result uint32

	for i := range maxVarByteLen {
		b, err := r.ReadU8()
		if err != nil {
			return 0, err
		}

		result |= uint32(b&0x7F) << (7 * i)

		if b&0x80 == 0 {
			return result, nil
		}
	}

	return 0, errs.ErrMalformedEncoding
}

// ReadSignedVB reads a SIGNED_VB token (encoding id 0): an unsigned VB value
// that is then zig-zag decoded: (u>>1) ^ -(u&1).
func ReadSignedVB(r *bitstream.Reader) (int32, error) {
	u, err := ReadUnsignedVB(r)
	if err != nil {
		return 0, err
	}

	return zigZagDecode(u), nil
}

// ReadNeg14Bit reads a NEG_14BIT token (encoding id 3): an unsigned VB value
// truncated to its low 14 bits, sign-extended as if negative, then negated.
// Spec §9 leaves values >= 2^14 unspecified; this implementation truncates
// before sign-extending, as directed.
func ReadNeg14Bit(r *bitstream.Reader) (int32, error) {
	u, err := ReadUnsignedVB(r)
	if err != nil {
		return 0, err
	}

	const bits = 14
	u &= (1 << bits) - 1

	return -signExtend(u, bits), nil
}

func zigZagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// signExtend sign-extends the low `bits` bits of u, treating bit (bits-1) as
// the sign bit.
func signExtend(u uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(u<<shift) >> shift
}

// VarByteLen returns the number of bytes ReadUnsignedVB would consume to
// decode the unsigned-VB encoding of v.
func VarByteLen(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
