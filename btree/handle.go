package btree

import "github.com/pcollections/pcollections/pcollectionerrors"

// handle is the non-unsafe.Pointer realization of the spec's
// BTree-UnsafeHandle: a scoped lens over one node's key/value/child
// buffers. Where the original addresses a tail-allocated buffer directly,
// handle addresses a Go slice — bounds-checked, GC-tracked, and already
// exactly the "scoped, capacity-bounded buffer access" the original uses
// unsafe.Pointer for. handle itself never clones and tracks no ownership:
// callers apply forMutation to the node before taking a handle that
// writes to it.
type handle[K Ordered, V any] struct {
	n *node[K, V]
}

func handleOf[K Ordered, V any](n *node[K, V]) handle[K, V] {
	return handle[K, V]{n: n}
}

func (h handle[K, V]) keyAt(slot int) K   { return h.n.keys[slot] }
func (h handle[K, V]) valueAt(slot int) V { return h.n.values[slot] }
func (h handle[K, V]) childAt(slot int) *node[K, V] {
	return h.n.children[slot]
}

func (h handle[K, V]) setKeyAt(slot int, k K)     { h.n.keys[slot] = k }
func (h handle[K, V]) setValueAt(slot int, v V)   { h.n.values[slot] = v }
func (h handle[K, V]) setChildAt(slot int, c *node[K, V]) {
	h.n.children[slot] = c
}

// insertElementAt shifts keys/values[slot:] right by one and writes k/v at
// slot, growing elementCount by one. Precondition: capacity headroom;
// callers check against n.capacity before calling (a full node splits
// instead of calling this).
func (h handle[K, V]) insertElementAt(slot int, k K, v V) {
	n := h.n
	n.keys = append(n.keys, k)
	copy(n.keys[slot+1:], n.keys[slot:len(n.keys)-1])
	n.keys[slot] = k
	n.values = append(n.values, v)
	copy(n.values[slot+1:], n.values[slot:len(n.values)-1])
	n.values[slot] = v
	n.elementCount++
}

// insertChildAt shifts children[slot:] right by one and writes c at slot.
func (h handle[K, V]) insertChildAt(slot int, c *node[K, V]) {
	n := h.n
	n.children = append(n.children, nil)
	copy(n.children[slot+1:], n.children[slot:len(n.children)-1])
	n.children[slot] = c
}

// removeElementAt shifts keys/values[slot+1:] left by one, shrinking
// elementCount by one, and returns the removed pair.
func (h handle[K, V]) removeElementAt(slot int) (K, V) {
	n := h.n
	k, v := n.keys[slot], n.values[slot]
	copy(n.keys[slot:], n.keys[slot+1:])
	copy(n.values[slot:], n.values[slot+1:])
	var zeroK K
	var zeroV V
	n.keys[len(n.keys)-1] = zeroK
	n.values[len(n.values)-1] = zeroV
	n.keys = n.keys[:len(n.keys)-1]
	n.values = n.values[:len(n.values)-1]
	n.elementCount--
	return k, v
}

// removeChildAt shifts children[slot+1:] left by one and returns the
// removed child.
func (h handle[K, V]) removeChildAt(slot int) *node[K, V] {
	n := h.n
	c := n.children[slot]
	copy(n.children[slot:], n.children[slot+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return c
}

// appendElement appends to the end; precondition: k is greater than every
// existing key (order preserved).
func (h handle[K, V]) appendElement(k K, v V) {
	n := h.n
	n.keys = append(n.keys, k)
	n.values = append(n.values, v)
	n.elementCount++
}

func (h handle[K, V]) appendChild(c *node[K, V]) {
	h.n.children = append(h.n.children, c)
}

// requireSlot bounds-checks slot against [0, limit), panicking with
// ErrOutOfBounds — the handle-level guard the original's pointer
// arithmetic has no equivalent for.
func requireSlot(slot, limit int) {
	if slot < 0 || slot >= limit {
		panic(pcollectionerrors.ErrOutOfBounds)
	}
}
