// Package encoding implements the numeric codec described in spec §4.4: the
// byte/bit-level representations that decode one or more signed or unsigned
// integer tokens out of a bitstream.Reader.
//
// # Overview
//
// Every FieldDef (see package header) names an EncodingKind (format
// package). A field's raw token is produced by exactly one of the decode
// functions in this package:
//
//	SIGNED_VB    (0) - ReadSignedVB(r)   -> 1 value
//	UNSIGNED_VB  (1) - ReadUnsignedVB(r) -> 1 value
//	NEG_14BIT    (3) - ReadNeg14Bit(r)   -> 1 value
//	TAG8_8SVB    (6) - ReadTag8_8SVB(r)  -> 8 values
//	TAG2_3S32    (7) - ReadTag2_3S32(r)  -> 3 values
//	TAG8_4S16    (8) - ReadTag8_4S16(r)  -> 4 values
//	NULL         (9) - no read           -> 0 values
//
// Group-emitting encodings (TAG8_8SVB, TAG2_3S32, TAG8_4S16) produce all of
// their outputs from a single read; the field-definition builder in package
// header assigns each of the group's fields a group_index so the frame
// decoder knows which slot of the returned slice belongs to which field.
//
// This package has no dispatch function of its own: frame.Decoder's
// decodeRawGroup selects the Read function per EncodingKind with a plain
// switch (per spec §9's "jump table is sufficient" design note — no
// per-field virtual dispatch).
package encoding
