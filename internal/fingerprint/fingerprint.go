// Package fingerprint hashes record names into the 64-bit keys the
// aggregate table is built on.
package fingerprint

import "github.com/zeebo/xxh3"

// FNV-1a 64-bit parameters, http://www.isthe.com/chongo/tech/comp/fnv/
const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Func produces the 64-bit fingerprint of a name. Implementations must be
// deterministic and order-sensitive. Distinct names that hash to the same
// fingerprint end up sharing an aggregate, so collision quality matters.
type Func func(name []byte) uint64

// FNV64a is the default fingerprint: FNV-1a over each name byte in order,
// then over the name length as one extra pseudo-byte so names sharing a
// prefix diverge further.
func FNV64a(name []byte) uint64 {
	h := offset64
	for _, c := range name {
		h ^= uint64(c)
		h *= prime64
	}
	h ^= uint64(uint8(len(name)))
	h *= prime64
	return h
}

// XXH3 is an alternative fingerprint for inputs where FNV clusters.
func XXH3(name []byte) uint64 { return xxh3.Hash(name) }

// ByName resolves the -hash flag value to a fingerprint function.
func ByName(name string) (Func, bool) {
	switch name {
	case "", "fnv":
		return FNV64a, true
	case "xxh3":
		return XXH3, true
	}
	return nil, false
}
