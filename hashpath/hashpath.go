// Package hashpath implements HashPath, a (hash, shift) pair that slices
// a 64-bit hash value into 5-bit buckets per HAMT level, and Hasher, the
// process-wide-seeded hash function §6 of the spec requires ("two trees
// built in the same process see consistent hashes").
package hashpath

import (
	"github.com/dolthub/maphash"

	"github.com/pcollections/pcollections/pcollectionerrors"
)

// BucketBits is the number of hash bits consumed per HAMT level; with
// 32-way bitmap-indexed fan-out each level needs log2(32) = 5 bits.
const BucketBits = 5

const bucketMask = uint64(1)<<BucketBits - 1

// wordBits is the width of the hash value HashPath slices.
const wordBits = 64

// processSeed is computed once per process so that every Hasher built
// during this process's lifetime hashes equal keys to equal values,
// regardless of which Dict instance is asking.
var processSeed = maphash.MakeSeed()

// Hasher computes the process-seeded hash for keys of type K. Construct
// one per key type with NewHasher and reuse it; maphash.Hasher carries
// the (reflection-derived) hash strategy for K, so building a fresh one
// per call would be wasteful.
type Hasher[K comparable] struct {
	h maphash.Hasher[K]
}

// NewHasher returns a Hasher sharing this process's seed.
func NewHasher[K comparable]() Hasher[K] {
	return Hasher[K]{h: maphash.NewHasher[K]().WithSeed(processSeed)}
}

// PathFor returns the root HashPath (shift = 0) for key.
func (hr Hasher[K]) PathFor(key K) HashPath {
	return HashPath{hash: hr.h.Hash(key), shift: 0}
}

// HashPath pairs a hash value with the shift (bit offset) a HAMT
// traversal has reached.
type HashPath struct {
	hash  uint64
	shift uint
}

// FromHash builds a root HashPath directly from a precomputed hash,
// used by hash-collision nodes which already know their shared hash.
func FromHash(hash uint64) HashPath {
	return HashPath{hash: hash}
}

// AtShift builds a HashPath from a precomputed hash at a specific shift,
// used when merging an already-hashed entry (an existing collision node,
// or a stored item whose hash was recomputed) with a path that has
// already descended to that shift.
func AtShift(hash uint64, shift uint) HashPath {
	return HashPath{hash: hash, shift: shift}
}

// Hash returns the full hash value this path was built from.
func (p HashPath) Hash() uint64 {
	return p.hash
}

// Shift returns the current bit offset.
func (p HashPath) Shift() uint {
	return p.shift
}

// CurrentBucket extracts the 5-bit bucket at the current shift.
// Precondition: shift < wordBits; violating it indicates the trie
// descended past the hash width (excessive collisions, or a broken
// hash function) and panics with ErrOutOfHashBits.
func (p HashPath) CurrentBucket() uint {
	if p.shift >= wordBits {
		panic(pcollectionerrors.ErrOutOfHashBits)
	}
	return uint((p.hash >> p.shift) & bucketMask)
}

// Descend returns a new path with shift advanced by BucketBits.
func (p HashPath) Descend() HashPath {
	return HashPath{hash: p.hash, shift: p.shift + BucketBits}
}

// IsAtRoot reports whether shift is 0.
func (p HashPath) IsAtRoot() bool {
	return p.shift == 0
}

// Top resets shift to 0, used when re-building a single-item node at the
// bucket implied by the full hash rather than the bucket at the current
// depth.
func (p HashPath) Top() HashPath {
	return HashPath{hash: p.hash, shift: 0}
}

// SameHash reports whether two paths were built from the same hash
// value, the test a collision node uses to decide whether a key belongs
// to it.
func SameHash(a, b HashPath) bool {
	return a.hash == b.hash
}
