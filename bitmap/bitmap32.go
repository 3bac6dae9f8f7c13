// Package bitmap implements Bitmap32, a 32-bit set-of-buckets with
// rank/select, used to index the inline items and children of a HAMT
// node. It plays the role the teacher's bitfield256/PresenceBitmap play
// for a node's 256-way fan-out, narrowed to the 32-way fan-out a 5-bit
// hash partition needs.
package bitmap

import "math/bits"

// Bitmap32 is a set of bucket numbers in [0, 32).
type Bitmap32 uint32

// Contains reports whether bucket b is a member.
func (bm Bitmap32) Contains(b uint) bool {
	return bm&(1<<b) != 0
}

// With returns the bitmap with bucket b added.
func (bm Bitmap32) With(b uint) Bitmap32 {
	return bm | (1 << b)
}

// Without returns the bitmap with bucket b removed.
func (bm Bitmap32) Without(b uint) Bitmap32 {
	return bm &^ (1 << b)
}

// Count returns the number of members (popcount).
func (bm Bitmap32) Count() int {
	return bits.OnesCount32(uint32(bm))
}

// IsEmpty reports whether the bitmap has no members.
func (bm Bitmap32) IsEmpty() bool {
	return bm == 0
}

// Offset returns the dense index a member at bucket b would occupy: the
// popcount of bits strictly below b. This is "rank". The caller is
// expected to have already established b ∈ bm when the result is meant
// to address an existing slot; Offset is also well defined for a b not
// in bm, giving the insertion point.
func (bm Bitmap32) Offset(b uint) int {
	return bits.OnesCount32(uint32(bm) & ((1 << b) - 1))
}

// BucketAt returns the bucket number of the nth set bit (0-based),
// i.e. the inverse of Offset ("select"). Panics if n >= bm.Count().
func (bm Bitmap32) BucketAt(n int) uint {
	v := uint32(bm)
	for i := 0; i < n; i++ {
		v &= v - 1 // clear lowest set bit
	}
	if v == 0 {
		panic("bitmap: BucketAt index out of range")
	}
	return uint(bits.TrailingZeros32(v))
}

// Union returns the set union of bm and other.
func (bm Bitmap32) Union(other Bitmap32) Bitmap32 {
	return bm | other
}

// Intersect returns the set intersection of bm and other.
func (bm Bitmap32) Intersect(other Bitmap32) Bitmap32 {
	return bm & other
}

// Difference returns the members of bm that are not in other.
func (bm Bitmap32) Difference(other Bitmap32) Bitmap32 {
	return bm &^ other
}

// First returns the lowest-numbered member and true, or (0, false) if
// the bitmap is empty.
func (bm Bitmap32) First() (uint, bool) {
	if bm == 0 {
		return 0, false
	}
	return uint(bits.TrailingZeros32(uint32(bm))), true
}

// Buckets returns the members in ascending order. It is the
// trailing-zero-count-and-clear iteration primitive, materialized into a
// slice for callers that want to range over it directly.
func (bm Bitmap32) Buckets() []uint {
	out := make([]uint, 0, bm.Count())
	v := uint32(bm)
	for v != 0 {
		b := bits.TrailingZeros32(v)
		out = append(out, uint(b))
		v &= v - 1
	}
	return out
}
