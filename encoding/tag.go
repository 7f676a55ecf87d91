package encoding

import (
	"github.com/flightlog/blackbox/internal/bitstream"
)

// ReadTag8_8SVB reads a TAG8_8SVB group (encoding id 6, group size 8): one
// tag byte whose bit i selects whether field i was emitted as a SIGNED_VB
// token (1) or is implicitly zero (0).
func ReadTag8_8SVB(r *bitstream.Reader) ([]int32, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	out := make([]int32, 8)
	for i := range 8 {
		if tag&(1<<uint(i)) == 0 {
			continue
		}

		v, err := ReadSignedVB(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// tag2Widths maps the 2-bit per-value selector of TAG2_3S32 to a bit width.
var tag2Widths = [4]uint8{2, 4, 6, 8}

// ReadTag2_3S32 reads a TAG2_3S32 group (encoding id 7, group size 3): one
// header byte carrying three 2-bit width selectors (00->2, 01->4, 10->6,
// 11->8 bits), each followed immediately by that many signed bits. The three
// widths rarely sum to a byte multiple, so the cursor is realigned to the
// next byte boundary afterward, matching ReadTag8_4S16's byte-aligned exit.
func ReadTag2_3S32(r *bitstream.Reader) ([]int32, error) {
	header, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	out := make([]int32, 3)
	for i := range 3 {
		sel := (header >> uint(6-2*i)) & 0x3
		width := tag2Widths[sel]

		bits, err := r.ReadBits(width)
		if err != nil {
			return nil, err
		}
		out[i] = signExtend(bits, uint(width))
	}

	r.AlignToByte()

	return out, nil
}

// tag8Widths maps the 2-bit per-value selector of TAG8_4S16 to a bit width.
var tag8Widths = [4]uint8{0, 4, 8, 16}

// ReadTag8_4S16 reads a TAG8_4S16 group (encoding id 8, group size 4): one
// header byte split into four 2-bit selectors choosing a per-value width of
// 0, 4, 8 or 16 signed bits, followed by the values in that order. 4-bit
// values are read from the shared bit cursor; 8/16-bit values are
// byte-aligned first since the reference format packs them as whole bytes.
func ReadTag8_4S16(r *bitstream.Reader) ([]int32, error) {
	header, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	out := make([]int32, 4)
	for i := range 4 {
		sel := (header >> uint(6-2*i)) & 0x3
		width := tag8Widths[sel]

		switch width {
		case 0:
			continue
		case 4:
			v, err := r.ReadBits(4)
			if err != nil {
				return nil, err
			}
			out[i] = signExtend(v, 4)
		case 8:
			r.AlignToByte()
			b, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			out[i] = int32(int8(b))
		case 16:
			r.AlignToByte()
			lo, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			hi, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			out[i] = int32(int16(uint16(lo) | uint16(hi)<<8))
		}
	}

	r.AlignToByte()

	return out, nil
}
