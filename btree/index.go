package btree

import "github.com/pcollections/pcollections/pcollectionerrors"

// Index is a validated random-access position into a Map, per spec §3.4.
// It captures the root it was derived from and the Map's mutation
// version; using a stale Index (one from before a mutation, or from a
// different Map) panics with ErrInvalidIndex. offset is the position's
// ascending-order rank; offset == the Map's Len() denotes the end index.
type Index[K Ordered, V any] struct {
	root    *node[K, V]
	offset  int
	version uint64
}

// IsEnd reports whether idx names the position one past the last element.
func (idx Index[K, V]) IsEnd(m *Map[K, V]) bool {
	idx.validate(m)
	return idx.offset == m.size
}

func (idx Index[K, V]) validate(m *Map[K, V]) {
	if idx.root != m.root || idx.version != m.version {
		panic(pcollectionerrors.ErrInvalidIndex)
	}
}

// Get dereferences idx, returning its key/value pair. Panics with
// ErrInvalidIndex if idx is stale, or ErrOutOfBounds if idx is the end
// index.
func (idx Index[K, V]) Get(m *Map[K, V]) (K, V) {
	idx.validate(m)
	if idx.offset >= m.size {
		panic(pcollectionerrors.ErrOutOfBounds)
	}
	return m.root.elementAt(idx.offset)
}

// Offset returns idx's ascending-order rank, validated against m.
func (idx Index[K, V]) Offset(m *Map[K, V]) int {
	idx.validate(m)
	return idx.offset
}
