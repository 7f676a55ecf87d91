// Package hash provides the hashing primitive used to fingerprint a
// session's field schema (header.SchemaHash).
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
