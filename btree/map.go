package btree

import (
	"iter"

	"github.com/pcollections/pcollections/effect"
	"github.com/pcollections/pcollections/pcollectionerrors"
)

// Map is a mutable, copy-on-write sorted key→value map: the BTree-Map
// public surface of the spec. The zero value is not ready to use;
// construct one with New, WithCapacity, or WithLeafAndInternalCapacities.
//
// Map is a reference type, like hamt.Dict: share it by passing the *Map
// pointer. Clone gives an independent handle that shares storage until
// one side writes, at which point that side copies the nodes it touches.
type Map[K Ordered, V any] struct {
	root             *node[K, V]
	size             int
	leafCapacity     int
	internalCapacity int
	version          uint64
}

// New returns an empty Map with default node capacities.
func New[K Ordered, V any]() *Map[K, V] {
	return WithLeafAndInternalCapacities[K, V](DefaultLeafCapacity, DefaultInternalCapacity)
}

// WithCapacity returns an empty Map using capacity for both leaf and
// internal nodes.
func WithCapacity[K Ordered, V any](capacity int) *Map[K, V] {
	return WithLeafAndInternalCapacities[K, V](capacity, capacity)
}

// WithLeafAndInternalCapacities returns an empty Map with distinct leaf
// and internal node capacities, each floored at MinCapacity.
func WithLeafAndInternalCapacities[K Ordered, V any](leafCapacity, internalCapacity int) *Map[K, V] {
	if leafCapacity < MinCapacity {
		leafCapacity = MinCapacity
	}
	if internalCapacity < MinCapacity {
		internalCapacity = MinCapacity
	}
	return &Map[K, V]{
		root:             newLeaf[K, V](leafCapacity),
		leafCapacity:     leafCapacity,
		internalCapacity: internalCapacity,
	}
}

// Len returns the number of entries. O(1).
func (m *Map[K, V]) Len() int {
	return m.size
}

// IsEmpty reports whether the Map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) bool {
	return m.root.containsKey(key)
}

// Get returns the value for key and true, or the zero value and false.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.root.get(key)
}

// UpdateValue inserts or replaces the value for key, returning the
// previous value and true if key was already present.
func (m *Map[K, V]) UpdateValue(key K, value V) (V, bool) {
	var eff effect.Record[V]
	newRoot, sp := m.root.updateAnyValue(true, key, value, &eff)
	if sp != nil {
		wrapped := newInternal[K, V](m.internalCapacity, newRoot.depth+1)
		wrapped.keys = append(wrapped.keys, sp.key)
		wrapped.values = append(wrapped.values, sp.value)
		wrapped.children = append(wrapped.children, newRoot, sp.right)
		wrapped.elementCount = 1
		wrapped.recomputeSubtreeCount()
		newRoot = wrapped
	}
	m.root = newRoot
	if eff.Modified {
		m.size++
	}
	m.version++
	if eff.PreviousValue != nil {
		return *eff.PreviousValue, true
	}
	var zero V
	return zero, false
}

// Remove deletes key if present, returning the removed value and true, or
// the zero value and false.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	var eff effect.Record[V]
	newRoot := m.root.removeAny(true, key, &eff)
	var zero V
	if !eff.Modified {
		return zero, false
	}
	m.root = demoteRoot(newRoot)
	m.size--
	m.version++
	if eff.PreviousValue != nil {
		return *eff.PreviousValue, true
	}
	return zero, false
}

// demoteRoot unwraps a root that became an empty internal node with a
// single child after a removal, shrinking the tree's depth by one — the
// "_balance_root" step of spec §4.7.
func demoteRoot[K Ordered, V any](root *node[K, V]) *node[K, V] {
	for !root.isLeaf() && root.elementCount == 0 && len(root.children) == 1 {
		root = root.children[0]
	}
	return root
}

// IndexAtOffset returns a validated Index at ascending-order position
// offset. offset == Len() denotes the end index. Panics with
// ErrOutOfBounds outside [0, Len()].
func (m *Map[K, V]) IndexAtOffset(offset int) Index[K, V] {
	if offset < 0 || offset > m.size {
		panic(pcollectionerrors.ErrOutOfBounds)
	}
	return Index[K, V]{root: m.root, offset: offset, version: m.version}
}

// StartIndexFor returns the first position where key would live.
func (m *Map[K, V]) StartIndexFor(key K) Index[K, V] {
	return m.IndexAtOffset(m.root.startOffsetFor(key))
}

// LastIndexFor returns key's last insertion point: the position just past
// any entry equal to key.
func (m *Map[K, V]) LastIndexFor(key K) Index[K, V] {
	return m.IndexAtOffset(m.root.lastOffsetFor(key))
}

// IndexAfter returns the position one after idx.
func (m *Map[K, V]) IndexAfter(idx Index[K, V]) Index[K, V] {
	idx.validate(m)
	if idx.offset >= m.size {
		panic(pcollectionerrors.ErrOutOfBounds)
	}
	return m.IndexAtOffset(idx.offset + 1)
}

// IndexBefore returns the position one before idx.
func (m *Map[K, V]) IndexBefore(idx Index[K, V]) Index[K, V] {
	idx.validate(m)
	if idx.offset <= 0 {
		panic(pcollectionerrors.ErrOutOfBounds)
	}
	return m.IndexAtOffset(idx.offset - 1)
}

// OffsetBy returns the position d steps from idx (may be negative).
func (m *Map[K, V]) OffsetBy(idx Index[K, V], d int) Index[K, V] {
	idx.validate(m)
	return m.IndexAtOffset(idx.offset + d)
}

// OffsetByLimitedBy returns the position d steps from idx, or false if
// that would cross limit before covering the full distance.
func (m *Map[K, V]) OffsetByLimitedBy(idx Index[K, V], d int, limit Index[K, V]) (Index[K, V], bool) {
	idx.validate(m)
	limit.validate(m)
	target := idx.offset + d
	if d >= 0 {
		if limit.offset < idx.offset || target > limit.offset {
			return Index[K, V]{}, false
		}
	} else {
		if limit.offset > idx.offset || target < limit.offset {
			return Index[K, V]{}, false
		}
	}
	return m.IndexAtOffset(target), true
}

// Distance returns b's offset minus a's offset. O(1).
func (m *Map[K, V]) Distance(a, b Index[K, V]) int {
	a.validate(m)
	b.validate(m)
	return b.offset - a.offset
}

// PopFirst removes and returns the smallest entry, or false if empty.
func (m *Map[K, V]) PopFirst() (K, V, bool) {
	if m.size == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	newRoot, k, v := popFirstInto(m.root, true)
	m.root = demoteRoot(newRoot)
	m.size--
	m.version++
	return k, v, true
}

// PopLast removes and returns the largest entry, or false if empty.
func (m *Map[K, V]) PopLast() (K, V, bool) {
	if m.size == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	newRoot, k, v := popLastInto(m.root, true)
	m.root = demoteRoot(newRoot)
	m.size--
	m.version++
	return k, v, true
}

// RemoveAtIndex removes and returns the entry at idx.
func (m *Map[K, V]) RemoveAtIndex(idx Index[K, V]) (K, V) {
	idx.validate(m)
	if idx.offset >= m.size {
		panic(pcollectionerrors.ErrOutOfBounds)
	}
	newRoot, k, v := m.root.removeAtOffset(true, idx.offset)
	m.root = demoteRoot(newRoot)
	m.size--
	m.version++
	return k, v
}

// RemoveSubrange removes every entry in [lo, hi).
func (m *Map[K, V]) RemoveSubrange(lo, hi Index[K, V]) {
	lo.validate(m)
	hi.validate(m)
	count := hi.offset - lo.offset
	for i := 0; i < count; i++ {
		m.RemoveAtIndex(m.IndexAtOffset(lo.offset))
	}
}

// RemoveAll empties the Map.
func (m *Map[K, V]) RemoveAll() {
	m.root = newLeaf[K, V](m.leafCapacity)
	m.size = 0
	m.version++
}

// Clone returns an independent Map sharing the receiver's current
// storage until one side mutates.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		root:             m.root.retain(),
		size:             m.size,
		leafCapacity:     m.leafCapacity,
		internalCapacity: m.internalCapacity,
		version:          m.version,
	}
}

// Iterator returns a fresh ascending-order iterator over the Map.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(m.root)
}

// All returns a range-over-func iterator in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Iterator()
		for {
			k, v, ok := it.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}
