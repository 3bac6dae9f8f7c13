package hamt

import "github.com/pcollections/pcollections/hashpath"

// get returns the value stored for key along path, if any.
func (n *node[K, V]) get(key K, path hashpath.HashPath) (V, bool) {
	var zero V
	if n == nil {
		return zero, false
	}
	if n.isCollision {
		if !hashpath.SameHash(hashpath.FromHash(n.hash), path) {
			return zero, false
		}
		for _, e := range n.items {
			if e.key == key {
				return e.value, true
			}
		}
		return zero, false
	}
	b := path.CurrentBucket()
	if n.itemMap.Contains(b) {
		e := n.items[n.itemMap.Offset(b)]
		if e.key == key {
			return e.value, true
		}
		return zero, false
	}
	if n.childMap.Contains(b) {
		return n.children[n.childMap.Offset(b)].get(key, path.Descend())
	}
	return zero, false
}

// contains reports presence only.
func (n *node[K, V]) contains(key K, path hashpath.HashPath) bool {
	_, ok := n.get(key, path)
	return ok
}

// indexOf returns the position of key, and whether it was found.
// Positions walk buckets in ascending order, counting an item bucket as
// one and a child bucket as the child's whole count (the numbering
// itemAt uses). skippedBefore is the running count of items that precede
// n in that numbering.
func (n *node[K, V]) indexOf(key K, path hashpath.HashPath, skippedBefore int) (int, bool) {
	if n == nil {
		return 0, false
	}
	if n.isCollision {
		if !hashpath.SameHash(hashpath.FromHash(n.hash), path) {
			return 0, false
		}
		for i, e := range n.items {
			if e.key == key {
				return skippedBefore + i, true
			}
		}
		return 0, false
	}
	b := path.CurrentBucket()
	running := skippedBefore
	for bucket := uint(0); bucket < 32; bucket++ {
		if n.itemMap.Contains(bucket) {
			if bucket == b {
				e := n.items[n.itemMap.Offset(bucket)]
				if e.key == key {
					return running, true
				}
				return 0, false
			}
			if bucket < b {
				running++
			}
		}
		if n.childMap.Contains(bucket) {
			child := n.children[n.childMap.Offset(bucket)]
			if bucket == b {
				return child.indexOf(key, path.Descend(), running)
			}
			if bucket < b {
				running += child.count
			}
		}
	}
	return 0, false
}

// itemAt walks buckets in ascending order, descending into whichever
// bucket's cumulative contribution covers position.
func (n *node[K, V]) itemAt(position int) (K, V) {
	if n.isCollision {
		e := n.items[position]
		return e.key, e.value
	}
	remaining := position
	for bucket := uint(0); bucket < 32; bucket++ {
		if n.itemMap.Contains(bucket) {
			if remaining == 0 {
				e := n.items[n.itemMap.Offset(bucket)]
				return e.key, e.value
			}
			remaining--
		}
		if n.childMap.Contains(bucket) {
			child := n.children[n.childMap.Offset(bucket)]
			if remaining < child.count {
				return child.itemAt(remaining)
			}
			remaining -= child.count
		}
	}
	panic("hamt: itemAt position out of range")
}
