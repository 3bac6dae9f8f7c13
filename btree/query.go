package btree

import "github.com/pcollections/pcollections/pcollectionerrors"

// get returns the value at key and true, or the zero value and false.
func (n *node[K, V]) get(key K) (V, bool) {
	for {
		slot := n.startSlotFor(key)
		if slot < len(n.keys) && n.keys[slot] == key {
			return n.values[slot], true
		}
		if n.isLeaf() {
			var zero V
			return zero, false
		}
		n = n.children[slot]
	}
}

func (n *node[K, V]) containsKey(key K) bool {
	_, ok := n.get(key)
	return ok
}

// elementAt returns the key/value pair at ascending-order offset within
// n's subtree.
func (n *node[K, V]) elementAt(offset int) (K, V) {
	if n.isLeaf() {
		return n.keys[offset], n.values[offset]
	}
	running := 0
	for slot := 0; slot < len(n.children); slot++ {
		childCount := n.children[slot].subtreeCount
		if offset < running+childCount {
			return n.children[slot].elementAt(offset - running)
		}
		running += childCount
		if slot < len(n.keys) {
			if offset == running {
				return n.keys[slot], n.values[slot]
			}
			running++
		}
	}
	panic(pcollectionerrors.ErrOutOfBounds)
}

// startOffsetFor returns the ascending-order position of the first
// insertion point for key (the first position where key would live).
func (n *node[K, V]) startOffsetFor(key K) int {
	slot := n.startSlotFor(key)
	if n.isLeaf() {
		return slot
	}
	running := 0
	for i := 0; i < slot; i++ {
		running += n.children[i].subtreeCount + 1
	}
	if slot < len(n.keys) && n.keys[slot] == key {
		return running + n.children[slot].subtreeCount
	}
	return running + n.children[slot].startOffsetFor(key)
}

// lastOffsetFor returns the ascending-order position of key's last
// insertion point: the position just past any entry equal to key.
func (n *node[K, V]) lastOffsetFor(key K) int {
	slot := n.endSlotFor(key)
	if n.isLeaf() {
		return slot
	}
	running := 0
	for i := 0; i < slot; i++ {
		running += n.children[i].subtreeCount + 1
	}
	if slot > 0 && n.keys[slot-1] == key {
		return running
	}
	return running + n.children[slot].lastOffsetFor(key)
}
