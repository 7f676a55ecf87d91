// Package header implements the header scanner and field-definition builder
// (spec components C3 and C4): locating session start offsets inside a
// possibly-merged log file, parsing the `H key:value` header lines of one
// session into a raw string map, and merging the per-frame-type name/signed/
// predictor/encoding lists into FieldTable, the per-type field layout the
// frame decoder drives off of.
package header
