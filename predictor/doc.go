// Package predictor implements the predictor engine (spec component C5): a
// pure function per predictor kind that combines a field's raw decoded
// token with current and prior frame state to yield the field's logical
// value, per spec §4.5. Predictors never read the bitstream; they only see
// already-decoded integers, matching the "polymorphic predictor... jump
// table is sufficient" design note.
package predictor
