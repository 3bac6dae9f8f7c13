package hamt

import (
	"iter"

	"github.com/pcollections/pcollections/effect"
	"github.com/pcollections/pcollections/hashpath"
	"github.com/pcollections/pcollections/pcollectionerrors"
)

// Dict is a persistent, immutable, structurally-shared key→value map
// (the HAMT-Dict core of the spec). The zero value is not ready to use;
// construct one with New, FromPairs, or FromKeysValues.
//
// Dict is a reference type: share it by passing the *Dict pointer, the
// way the teacher shares *MultiMap. Update and Remove mutate the
// receiver in place when they can prove they own the only reference to
// the affected nodes; if you need an independent snapshot to keep
// mutating the original, branch with Updating/Removing (or Clone)
// first — do not dereference-copy a *Dict and expect the copy to be
// independent of further Update/Remove calls on the original.
type Dict[K comparable, V any] struct {
	root   *node[K, V]
	size   int
	hasher hashpath.Hasher[K]
}

// New returns an empty Dict.
func New[K comparable, V any]() *Dict[K, V] {
	return &Dict[K, V]{hasher: hashpath.NewHasher[K]()}
}

// Pair is one key/value pair, used by FromPairs.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// FromPairs builds a Dict from pairs, which must have no duplicate
// keys. Panics with ErrDuplicateKey if a duplicate is found.
func FromPairs[K comparable, V any](pairs []Pair[K, V]) *Dict[K, V] {
	d := New[K, V]()
	for _, p := range pairs {
		if _, existed := d.Update(p.Key, p.Value); existed {
			panic(pcollectionerrors.ErrDuplicateKey)
		}
	}
	return d
}

// FromKeysValues builds a Dict by zipping parallel keys/values slices,
// which must have no duplicate keys and equal length. Panics with
// ErrDuplicateKey on a repeated key.
func FromKeysValues[K comparable, V any](keys []K, values []V) *Dict[K, V] {
	if len(keys) != len(values) {
		panic("hamt: FromKeysValues requires equal-length slices")
	}
	d := New[K, V]()
	for i, k := range keys {
		if _, existed := d.Update(k, values[i]); existed {
			panic(pcollectionerrors.ErrDuplicateKey)
		}
	}
	return d
}

// Len returns the number of entries. O(1).
func (d *Dict[K, V]) Len() int {
	return d.size
}

// IsEmpty reports whether the Dict has no entries.
func (d *Dict[K, V]) IsEmpty() bool {
	return d.size == 0
}

// Contains reports whether key is present.
func (d *Dict[K, V]) Contains(key K) bool {
	if d.root == nil {
		return false
	}
	return d.root.contains(key, d.hasher.PathFor(key))
}

// Get returns the value for key and true, or the zero value and false.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	if d.root == nil {
		var zero V
		return zero, false
	}
	return d.root.get(key, d.hasher.PathFor(key))
}

// IndexOf returns the position of key and true, or (0, false) if key is
// absent. Positions follow ascending bucket order at every node, with a
// child's entries counted at its bucket; this is the order AtIndex uses,
// and it is not in general the order Iterator yields (Iterator emits a
// node's items before any of its children).
func (d *Dict[K, V]) IndexOf(key K) (int, bool) {
	if d.root == nil {
		return 0, false
	}
	return d.root.indexOf(key, d.hasher.PathFor(key), 0)
}

// AtIndex returns the key/value pair at position i, in the same
// bucket-ordered numbering IndexOf uses.
// Panics with ErrOutOfBounds if i is outside [0, Len()).
func (d *Dict[K, V]) AtIndex(i int) (K, V) {
	if i < 0 || i >= d.size {
		panic(pcollectionerrors.ErrOutOfBounds)
	}
	return d.root.itemAt(i)
}

// Update inserts or replaces the value for key, mutating the receiver.
// It returns the previous value and true if key was already present.
// When the receiver's root is uniquely owned (no Updating/Removing
// snapshot of it is still alive), the affected nodes are mutated in
// place rather than copied.
func (d *Dict[K, V]) Update(key K, value V) (V, bool) {
	var eff effect.Record[V]
	if d.root == nil {
		d.root = singleItemNode[K, V](d.hasher.PathFor(key).CurrentBucket(), entry[K, V]{key: key, value: value})
		d.size = 1
		var zero V
		return zero, false
	}
	newRoot := d.root.updateOrUpdating(d.hasher, true, d.hasher.PathFor(key), key, value, &eff)
	d.root = newRoot
	if eff.Modified {
		d.size++
	}
	if eff.PreviousValue != nil {
		return *eff.PreviousValue, true
	}
	var zero V
	return zero, false
}

// Remove deletes key if present, mutating the receiver, and returns the
// removed value and true, or the zero value and false.
func (d *Dict[K, V]) Remove(key K) (V, bool) {
	var zero V
	if d.root == nil {
		return zero, false
	}
	var eff effect.Record[V]
	newRoot := d.root.removeOrRemoving(true, d.hasher.PathFor(key), key, &eff)
	if !eff.Modified {
		return zero, false
	}
	d.size--
	if d.size == 0 {
		d.root = nil
	} else {
		d.root = newRoot
	}
	if eff.PreviousValue != nil {
		return *eff.PreviousValue, true
	}
	return zero, false
}

// Updating returns a new Dict with key set to value, leaving the
// receiver (and every snapshot derived from it) observably unchanged.
func (d *Dict[K, V]) Updating(key K, value V) *Dict[K, V] {
	var eff effect.Record[V]
	out := &Dict[K, V]{hasher: d.hasher, size: d.size}
	if d.root == nil {
		out.root = singleItemNode[K, V](d.hasher.PathFor(key).CurrentBucket(), entry[K, V]{key: key, value: value})
		out.size = 1
		return out
	}
	out.root = d.root.updateOrUpdating(d.hasher, false, d.hasher.PathFor(key), key, value, &eff)
	if eff.Modified {
		out.size++
	}
	return out
}

// Removing returns a new Dict with key absent, leaving the receiver (and
// every snapshot derived from it) observably unchanged.
func (d *Dict[K, V]) Removing(key K) *Dict[K, V] {
	if d.root == nil {
		return &Dict[K, V]{hasher: d.hasher}
	}
	var eff effect.Record[V]
	newRoot := d.root.removeOrRemoving(false, d.hasher.PathFor(key), key, &eff)
	if !eff.Modified {
		return &Dict[K, V]{hasher: d.hasher, root: d.root.retain(), size: d.size}
	}
	out := &Dict[K, V]{hasher: d.hasher, size: d.size - 1}
	if out.size > 0 {
		out.root = newRoot
	}
	return out
}

// Clone returns an independent Dict sharing the receiver's current
// structure; it is equivalent to Updating/Removing a key that turns out
// to be a no-op, offered as a named branch point.
func (d *Dict[K, V]) Clone() *Dict[K, V] {
	return &Dict[K, V]{hasher: d.hasher, root: d.root.retain(), size: d.size}
}

// Iterator returns a fresh DFS pre-order iterator over the Dict.
func (d *Dict[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(d.root)
}

// All returns a range-over-func iterator in DFS pre-order, for use with
// Go's `for k, v := range d.All()`.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := d.Iterator()
		for {
			k, v, ok := it.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}
