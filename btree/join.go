package btree

import "github.com/pcollections/pcollections/pcollectionerrors"

// concatenateWith merges right into n, pulling (sepKey, sepValue) down as
// the separator between them — spec §4.6 "Concatenation". n and right must
// be the same depth. If the combined element count fits in n's capacity,
// the merge happens in place (the same shape as remove.go's collapse, but
// between two standalone same-depth nodes rather than two children of a
// shared parent); otherwise a single-level split at the midpoint produces
// a splinter, the same virtual-array technique insert.go's splitLeaf/
// splitInternal use.
func (n *node[K, V]) concatenateWith(callerUnique bool, right *node[K, V], sepKey K, sepValue V) (*node[K, V], *splinter[K, V]) {
	combined := n.elementCount + 1 + right.elementCount
	out := n.forMutation(callerUnique)

	if combined <= out.capacity {
		handleOf(out).appendElement(sepKey, sepValue)
		out.keys = append(out.keys, right.keys...)
		out.values = append(out.values, right.values...)
		out.elementCount += right.elementCount
		if !out.isLeaf() {
			// right's children move into out; they may still be reachable
			// through right elsewhere (right is not assumed uniquely owned,
			// only read from), so they need the same retain-on-copy
			// treatment collapse gives an absorbed sibling's children.
			for _, c := range right.children {
				c.retain()
			}
			out.children = append(out.children, right.children...)
		}
		out.recomputeSubtreeCount()
		return out, nil
	}

	keys := make([]K, 0, combined)
	keys = append(keys, out.keys...)
	keys = append(keys, sepKey)
	keys = append(keys, right.keys...)
	values := make([]V, 0, combined)
	values = append(values, out.values...)
	values = append(values, sepValue)
	values = append(values, right.values...)

	var children []*node[K, V]
	if !out.isLeaf() {
		for _, c := range right.children {
			c.retain()
		}
		children = make([]*node[K, V], 0, combined+1)
		children = append(children, out.children...)
		children = append(children, right.children...)
	}

	mid := combined / 2

	out.keys = append(out.keys[:0], keys[:mid]...)
	out.values = append(out.values[:0], values[:mid]...)
	out.elementCount = mid

	var newRight *node[K, V]
	if out.isLeaf() {
		out.subtreeCount = out.elementCount
		newRight = newLeaf[K, V](out.capacity)
		newRight.keys = append(newRight.keys, keys[mid+1:]...)
		newRight.values = append(newRight.values, values[mid+1:]...)
		newRight.elementCount = len(newRight.keys)
		newRight.subtreeCount = newRight.elementCount
	} else {
		out.children = append(out.children[:0], children[:mid+1]...)
		out.recomputeSubtreeCount()
		newRight = newInternal[K, V](out.capacity, out.depth)
		newRight.keys = append(newRight.keys, keys[mid+1:]...)
		newRight.values = append(newRight.values, values[mid+1:]...)
		newRight.children = append(newRight.children, children[mid+1:]...)
		newRight.elementCount = len(newRight.keys)
		newRight.recomputeSubtreeCount()
	}

	return out, &splinter[K, V]{key: keys[mid], value: values[mid], right: newRight}
}

// joinNodes implements "join of unequal depths": it descends the deeper of
// left/right along its extreme spine until the depths match, concatenates,
// then bubbles any resulting splinter back up exactly like updateAnyValue
// does after a child split. left and right are each treated as owned by
// this call, the same sense in which a Map method's top-level call treats
// m.root as owned — shared descendants are still protected by the usual
// forMutation/isUnique check.
func joinNodes[K Ordered, V any](left *node[K, V], sepKey K, sepValue V, right *node[K, V]) (*node[K, V], *splinter[K, V]) {
	if left.depth == right.depth {
		return left.concatenateWith(true, right, sepKey, sepValue)
	}

	if left.depth > right.depth {
		out := left.forMutation(true)
		lastSlot := len(out.children) - 1
		newChild, sp := joinNodes(out.children[lastSlot], sepKey, sepValue, right)
		out.children[lastSlot] = newChild
		if sp == nil {
			out.recomputeSubtreeCount()
			return out, nil
		}
		if out.elementCount < out.capacity {
			handleOf(out).appendElement(sp.key, sp.value)
			handleOf(out).appendChild(sp.right)
			out.recomputeSubtreeCount()
			return out, nil
		}
		left2, sp2 := splitInternal(out, lastSlot, *sp)
		return left2, &sp2
	}

	out := right.forMutation(true)
	newChild, sp := joinNodes(left, sepKey, sepValue, out.children[0])
	out.children[0] = newChild
	if sp == nil {
		out.recomputeSubtreeCount()
		return out, nil
	}
	if out.elementCount < out.capacity {
		handleOf(out).insertElementAt(0, sp.key, sp.value)
		handleOf(out).insertChildAt(1, sp.right)
		out.recomputeSubtreeCount()
		return out, nil
	}
	left2, sp2 := splitInternal(out, 0, *sp)
	return left2, &sp2
}

// Join concatenates left and right into a single Map with (sepKey,
// sepValue) inserted between them — spec §4.6 "BTree-Map::join". Every
// key in left must sort before sepKey and every key in right must sort
// after it; Join panics with ErrInvariantViolation if minKey/maxKey show
// that ordering doesn't hold.
//
// Join consumes left and right the way the spec's cursor "moves the
// tree's root" out for its lifetime: both are left empty, and using
// either afterward (other than to discard it) is a programming error in
// exactly the sense the spec's BTree-Cursor section describes.
func Join[K Ordered, V any](left, right *Map[K, V], sepKey K, sepValue V) *Map[K, V] {
	if !left.IsEmpty() && !(left.root.maxKey() < sepKey) {
		panic(pcollectionerrors.ErrInvariantViolation)
	}
	if !right.IsEmpty() && !(sepKey < right.root.minKey()) {
		panic(pcollectionerrors.ErrInvariantViolation)
	}

	newRoot, sp := joinNodes(left.root, sepKey, sepValue, right.root)
	if sp != nil {
		wrapped := newInternal[K, V](left.internalCapacity, newRoot.depth+1)
		wrapped.keys = append(wrapped.keys, sp.key)
		wrapped.values = append(wrapped.values, sp.value)
		wrapped.children = append(wrapped.children, newRoot, sp.right)
		wrapped.elementCount = 1
		wrapped.recomputeSubtreeCount()
		newRoot = wrapped
	}

	joined := &Map[K, V]{
		root:             newRoot,
		size:             left.size + right.size + 1,
		leafCapacity:     left.leafCapacity,
		internalCapacity: left.internalCapacity,
	}

	left.root = newLeaf[K, V](left.leafCapacity)
	left.size = 0
	left.version++
	right.root = newLeaf[K, V](right.leafCapacity)
	right.size = 0
	right.version++

	return joined
}
