// Package hash turns palette category names into stable 64-bit keys.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given category name. The result is
// stable across processes, so keys may be precomputed and stored.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
