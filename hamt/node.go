// Package hamt implements HAMT-Dict: a persistent, immutable,
// structurally-shared unordered key→value map built as a Hash Array
// Mapped Trie with 32-way bitmap-indexed branching and hash-collision
// nodes. It generalizes the teacher's 256-way byte-keyed trie
// (art.Node/Node64/.../FullNode tagged-variant family) to a 32-way,
// full-hash-keyed trie as the spec requires, and replaces the teacher's
// unsafe.Pointer reinterpretation between node "kinds" with an explicit
// discriminant field, Go's idiomatic realization of a tagged union.
package hamt

import (
	"github.com/pcollections/pcollections/bitmap"
	"github.com/pcollections/pcollections/effect"
	"github.com/pcollections/pcollections/hashpath"
)

// entry is one stored key/value pair.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// node is a HAMT trie node. It is one of two variants, distinguished by
// isCollision:
//
//   - bitmap-indexed (isCollision == false): itemMap and childMap are
//     disjoint 32-bit bitmaps; items holds len(itemMap) entries addressed
//     by rank(itemMap, bucket), children holds len(childMap) sub-nodes
//     addressed by rank(childMap, bucket).
//   - hash-collision (isCollision == true): every entry in items shares
//     the hash value stored in hash; there are no children.
//
// refCount approximates "how many parent slots point at this exact node
// object" (the Go stand-in for Swift's isKnownUniquelyReferenced): it is
// incremented every time this pointer is stored into a new parent slot
// (a children[] cell or a Dict's root field) and is never decremented.
// That makes it a conservative, monotonically safe approximation: it
// never under-reports sharing (which would risk mutating a node another
// tree still reads through), it can only over-report it, which merely
// costs an extra copy-on-write. A precise refcount would require
// tracking drops, which Go's GC gives us no hook for.
type node[K comparable, V any] struct {
	isCollision bool
	itemMap     bitmap.Bitmap32
	childMap    bitmap.Bitmap32
	hash        uint64 // valid when isCollision
	items       []entry[K, V]
	children    []*node[K, V]
	count       int
	refCount    int
}

func (n *node[K, V]) retain() *node[K, V] {
	if n != nil {
		n.refCount++
	}
	return n
}

func (n *node[K, V]) isUnique() bool {
	return n != nil && n.refCount <= 1
}

// emptyNode returns a fresh, empty bitmap-indexed node.
func emptyNode[K comparable, V any]() *node[K, V] {
	return &node[K, V]{refCount: 1}
}

// singleItemNode returns a bitmap-indexed node holding one item at
// bucket b.
func singleItemNode[K comparable, V any](b uint, e entry[K, V]) *node[K, V] {
	return &node[K, V]{
		itemMap:  bitmap.Bitmap32(0).With(b),
		items:    []entry[K, V]{e},
		count:    1,
		refCount: 1,
	}
}

// oneChildNode returns a bitmap-indexed node holding one child at bucket
// b and no inline items (the "candidate-for-compaction" shape when it is
// not the root).
func oneChildNode[K comparable, V any](b uint, child *node[K, V]) *node[K, V] {
	return &node[K, V]{
		childMap: bitmap.Bitmap32(0).With(b),
		children: []*node[K, V]{child.retain()},
		count:    child.count,
		refCount: 1,
	}
}

// collisionNode returns a hash-collision node over the given entries,
// all of which must share hash.
func collisionNode[K comparable, V any](hash uint64, items []entry[K, V]) *node[K, V] {
	return &node[K, V]{
		isCollision: true,
		hash:        hash,
		items:       items,
		count:       len(items),
		refCount:    1,
	}
}

// twoItemEntriesNode builds the subtree needed to hold two items whose
// hash paths diverge somewhere at or below the given path, placing them
// as siblings (or recursing one more level, or collapsing into a
// collision node if the hashes are equal).
func twoItemEntriesNode[K comparable, V any](pa, pb hashpath.HashPath, a, b entry[K, V]) *node[K, V] {
	if hashpath.SameHash(pa, pb) {
		return collisionNode(pa.Hash(), []entry[K, V]{a, b})
	}
	ba, bb := pa.CurrentBucket(), pb.CurrentBucket()
	if ba != bb {
		n := emptyNode[K, V]()
		n.itemMap = bitmap.Bitmap32(0).With(ba).With(bb)
		n.items = make([]entry[K, V], 2)
		n.items[n.itemMap.Offset(ba)] = a
		n.items[n.itemMap.Offset(bb)] = b
		n.count = 2
		return n
	}
	// Same bucket at this level: recurse one level deeper and wrap the
	// result as this level's single child.
	child := twoItemEntriesNode(pa.Descend(), pb.Descend(), a, b)
	return oneChildNode[K, V](ba, child)
}

// cloneShallow returns an independent copy of n: the items/children
// backing arrays are freshly allocated (via append growth, the same
// doubling behavior the spec asks an explicit grow-by-2 routine for),
// but the entries and child pointers themselves are shared with the
// original — any shared child is retained, since it now has one more
// parent slot pointing at it. The returned node always has refCount 1.
func (n *node[K, V]) cloneShallow() *node[K, V] {
	var items []entry[K, V]
	if n.items != nil {
		items = append(items, n.items...)
	}
	var children []*node[K, V]
	if n.children != nil {
		children = append(children, n.children...)
	}
	for _, c := range children {
		c.retain()
	}
	return &node[K, V]{
		isCollision: n.isCollision,
		itemMap:     n.itemMap,
		childMap:    n.childMap,
		hash:        n.hash,
		items:       items,
		children:    children,
		count:       n.count,
		refCount:    1,
	}
}

// forMutation returns a node safe to mutate in place: n itself when the
// caller has proven unique ownership of the chain down to n and no other
// parent slot references n, otherwise a shallow clone.
func (n *node[K, V]) forMutation(callerUnique bool) *node[K, V] {
	if callerUnique && n.isUnique() {
		return n
	}
	return n.cloneShallow()
}

// insertEntryAt shifts items[idx:] right by one and writes e at idx,
// growing the slice by one element. Uses append so the backing array
// doubles in capacity exactly as Go's allocator would for any other
// growing slice.
func insertEntryAt[K comparable, V any](items []entry[K, V], idx int, e entry[K, V]) []entry[K, V] {
	var zero entry[K, V]
	items = append(items, zero)
	copy(items[idx+1:], items[idx:len(items)-1])
	items[idx] = e
	return items
}

// removeEntryAt shifts items[idx+1:] left by one, shrinking the slice
// length by one.
func removeEntryAt[K comparable, V any](items []entry[K, V], idx int) []entry[K, V] {
	copy(items[idx:], items[idx+1:])
	var zero entry[K, V]
	items[len(items)-1] = zero
	return items[:len(items)-1]
}

func insertChildAt[K comparable, V any](children []*node[K, V], idx int, c *node[K, V]) []*node[K, V] {
	children = append(children, nil)
	copy(children[idx+1:], children[idx:len(children)-1])
	children[idx] = c
	return children
}

func removeChildAt[K comparable, V any](children []*node[K, V], idx int) []*node[K, V] {
	copy(children[idx:], children[idx+1:])
	children[len(children)-1] = nil
	return children[:len(children)-1]
}
