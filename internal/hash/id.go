// Package hash provides a fast 64-bit hash for short identifiers, used by
// the EnSight writer's set ↔ partID index as its map key.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
