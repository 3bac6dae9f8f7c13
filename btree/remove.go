package btree

import (
	"github.com/pcollections/pcollections/effect"
	"github.com/pcollections/pcollections/pcollectionerrors"
)

// removeAny is the recursive core of BTree-Map.Remove, grounded on spec
// §4.7. It returns the node to install in the caller's child slot; on a
// miss it returns n unchanged and leaves eff untouched.
func (n *node[K, V]) removeAny(callerUnique bool, key K, eff *effect.Record[V]) *node[K, V] {
	slot := n.startSlotFor(key)
	found := slot < len(n.keys) && n.keys[slot] == key

	if n.isLeaf() {
		if !found {
			return n
		}
		eff.MarkModified()
		out := n.forMutation(callerUnique)
		_, v := handleOf(out).removeElementAt(slot)
		eff.SetPreviousValue(v)
		out.subtreeCount = out.elementCount
		return out
	}

	if found {
		eff.MarkModified()
		eff.SetPreviousValue(n.values[slot])
		childUnique := callerUnique && n.isUnique()
		newLeftChild, predKey, predValue := popLastInto(n.children[slot], childUnique)
		out := n.forMutation(callerUnique)
		out.children[slot] = newLeftChild
		out.keys[slot] = predKey
		out.values[slot] = predValue
		out.balanceAt(slot)
		return out
	}

	childUnique := callerUnique && n.isUnique()
	newChild := n.children[slot].removeAny(childUnique, key, eff)
	if !eff.Modified {
		return n
	}
	out := n.forMutation(callerUnique)
	out.children[slot] = newChild
	out.balanceAt(slot)
	return out
}

// removeAtOffset removes the element at in-order position offset within
// n's subtree, returning the replacement node and the removed pair.
func (n *node[K, V]) removeAtOffset(callerUnique bool, offset int) (*node[K, V], K, V) {
	if n.isLeaf() {
		out := n.forMutation(callerUnique)
		k, v := handleOf(out).removeElementAt(offset)
		out.subtreeCount = out.elementCount
		return out, k, v
	}

	running := 0
	for slot := 0; slot < len(n.children); slot++ {
		childCount := n.children[slot].subtreeCount
		if offset < running+childCount {
			childUnique := callerUnique && n.isUnique()
			newChild, k, v := n.children[slot].removeAtOffset(childUnique, offset-running)
			out := n.forMutation(callerUnique)
			out.children[slot] = newChild
			out.balanceAt(slot)
			return out, k, v
		}
		running += childCount
		if slot < len(n.keys) {
			if offset == running {
				k, v := n.keys[slot], n.values[slot]
				childUnique := callerUnique && n.isUnique()
				newLeftChild, predKey, predValue := popLastInto(n.children[slot], childUnique)
				out := n.forMutation(callerUnique)
				out.children[slot] = newLeftChild
				out.keys[slot] = predKey
				out.values[slot] = predValue
				out.balanceAt(slot)
				return out, k, v
			}
			running++
		}
	}
	panic(pcollectionerrors.ErrOutOfBounds)
}

// popFirstInto/popLastInto descend to the extreme leaf, remove its extreme
// element, and rebalance on the way back up.
func popFirstInto[K Ordered, V any](n *node[K, V], callerUnique bool) (*node[K, V], K, V) {
	if n.isLeaf() {
		out := n.forMutation(callerUnique)
		k, v := handleOf(out).removeElementAt(0)
		out.subtreeCount = out.elementCount
		return out, k, v
	}
	childUnique := callerUnique && n.isUnique()
	newChild, k, v := popFirstInto(n.children[0], childUnique)
	out := n.forMutation(callerUnique)
	out.children[0] = newChild
	out.balanceAt(0)
	return out, k, v
}

func popLastInto[K Ordered, V any](n *node[K, V], callerUnique bool) (*node[K, V], K, V) {
	if n.isLeaf() {
		out := n.forMutation(callerUnique)
		lastIdx := len(out.keys) - 1
		k, v := handleOf(out).removeElementAt(lastIdx)
		out.subtreeCount = out.elementCount
		return out, k, v
	}
	lastSlot := len(n.children) - 1
	childUnique := callerUnique && n.isUnique()
	newChild, k, v := popLastInto(n.children[lastSlot], childUnique)
	out := n.forMutation(callerUnique)
	out.children[lastSlot] = newChild
	out.balanceAt(lastSlot)
	return out, k, v
}

// balanceAt restores the balance invariant for the child at slot after a
// removal may have underflowed it: rotate from a shrinkable sibling if one
// exists, otherwise collapse with a sibling. n is assumed already owned
// for mutation by the caller.
func (n *node[K, V]) balanceAt(slot int) {
	child := n.children[slot]
	if child.isBalanced() {
		n.recomputeSubtreeCount()
		return
	}
	switch {
	case slot > 0 && n.children[slot-1].isShrinkable():
		n.rotateRight(slot)
	case slot < len(n.children)-1 && n.children[slot+1].isShrinkable():
		n.rotateLeft(slot)
	case slot > 0:
		n.collapse(slot - 1)
	default:
		n.collapse(slot)
	}
	n.recomputeSubtreeCount()
}

// rotateRight moves the parent separator at slot-1 down into the front of
// children[slot], and the left sibling's last element up as the new
// separator (migrating its last child too, for internal nodes).
func (n *node[K, V]) rotateRight(slot int) {
	left := n.children[slot-1].forMutation(n.children[slot-1].isUnique())
	right := n.children[slot].forMutation(n.children[slot].isUnique())

	sepKey, sepValue := n.keys[slot-1], n.values[slot-1]
	lastIdx := len(left.keys) - 1
	lk, lv := handleOf(left).removeElementAt(lastIdx)
	handleOf(right).insertElementAt(0, sepKey, sepValue)
	n.keys[slot-1], n.values[slot-1] = lk, lv

	if !left.isLeaf() {
		movedChild := handleOf(left).removeChildAt(len(left.children) - 1)
		handleOf(right).insertChildAt(0, movedChild)
		left.recomputeSubtreeCount()
		right.recomputeSubtreeCount()
	} else {
		left.subtreeCount = left.elementCount
		right.subtreeCount = right.elementCount
	}

	n.children[slot-1] = left
	n.children[slot] = right
}

// rotateLeft moves the parent separator at slot down into the end of
// children[slot], and the right sibling's first element up as the new
// separator (migrating its first child too, for internal nodes).
func (n *node[K, V]) rotateLeft(slot int) {
	left := n.children[slot].forMutation(n.children[slot].isUnique())
	right := n.children[slot+1].forMutation(n.children[slot+1].isUnique())

	sepKey, sepValue := n.keys[slot], n.values[slot]
	rk, rv := handleOf(right).removeElementAt(0)
	handleOf(left).appendElement(sepKey, sepValue)
	n.keys[slot], n.values[slot] = rk, rv

	if !right.isLeaf() {
		movedChild := handleOf(right).removeChildAt(0)
		handleOf(left).appendChild(movedChild)
		left.recomputeSubtreeCount()
		right.recomputeSubtreeCount()
	} else {
		left.subtreeCount = left.elementCount
		right.subtreeCount = right.elementCount
	}

	n.children[slot] = left
	n.children[slot+1] = right
}

// collapse merges children[slot] and children[slot+1], pulling the
// separator at slot down between them, and removes that separator and the
// absorbed right child from n.
//
// Note: balanceAt only collapses a child that is one below
// minElementCount with a sibling that is not shrinkable (exactly at
// minElementCount), so the merged node holds 2*minElementCount elements,
// which never exceeds capacity.
func (n *node[K, V]) collapse(slot int) {
	left := n.children[slot].forMutation(n.children[slot].isUnique())
	right := n.children[slot+1]

	sepKey, sepValue := n.keys[slot], n.values[slot]
	handleOf(left).appendElement(sepKey, sepValue)
	left.keys = append(left.keys, right.keys...)
	left.values = append(left.values, right.values...)
	left.elementCount += right.elementCount
	if !left.isLeaf() {
		// right may still be reachable through another tree sharing this
		// subtree (that is exactly why left needed forMutation above); its
		// children must be retained, the same as cloneShallow retains
		// copied children, since left is now a second parent slot for them.
		for _, c := range right.children {
			c.retain()
		}
		left.children = append(left.children, right.children...)
	}
	left.recomputeSubtreeCount()

	n.children[slot] = left
	handleOf(n).removeElementAt(slot)
	handleOf(n).removeChildAt(slot + 1)
}
