package hamt

import (
	"github.com/pcollections/pcollections/bitmap"
	"github.com/pcollections/pcollections/effect"
	"github.com/pcollections/pcollections/hashpath"
)

// mergeSubtreeWithEntry wraps an already-built subtree (existingHash is
// the hash every leaf of that subtree shares — either a collision node's
// hash, or a recomputed item hash) together with a brand new entry,
// descending until their buckets diverge. It is the general form of
// "wrap a collision node as a sibling of a new item" and "two items with
// distinct hashes that happen to share a bucket at this depth".
func mergeSubtreeWithEntry[K comparable, V any](existing *node[K, V], existingHash uint64, path hashpath.HashPath, e entry[K, V]) *node[K, V] {
	bExisting := hashpath.AtShift(existingHash, path.Shift()).CurrentBucket()
	bNew := path.CurrentBucket()
	if bExisting != bNew {
		n := emptyNode[K, V]()
		n.itemMap = bitmap.Bitmap32(0).With(bNew)
		n.childMap = bitmap.Bitmap32(0).With(bExisting)
		n.items = []entry[K, V]{e}
		n.children = []*node[K, V]{existing.retain()}
		n.count = 1 + existing.count
		return n
	}
	child := mergeSubtreeWithEntry(existing, existingHash, path.Descend(), e)
	return oneChildNode[K, V](bExisting, child)
}

// updateOrUpdating is the core insert/update described in spec §4.3.
// hr recomputes hashes for already-stored keys when a merge needs to
// know where they diverge from the new key. callerUnique reflects
// whether the caller has already proven unique ownership of n.
func (n *node[K, V]) updateOrUpdating(hr hashpath.Hasher[K], callerUnique bool, path hashpath.HashPath, key K, value V, eff *effect.Record[V]) *node[K, V] {
	if n.isCollision {
		if n.hash != path.Hash() {
			eff.MarkModified()
			return mergeSubtreeWithEntry(n, n.hash, path, entry[K, V]{key: key, value: value})
		}
		for i, e := range n.items {
			if e.key == key {
				eff.SetPreviousValue(e.value)
				out := n.forMutation(callerUnique)
				out.items[i].value = value
				return out
			}
		}
		eff.MarkModified()
		out := n.forMutation(callerUnique)
		out.items = append(out.items, entry[K, V]{key: key, value: value})
		out.count++
		return out
	}

	b := path.CurrentBucket()

	if n.itemMap.Contains(b) {
		idx := n.itemMap.Offset(b)
		item0 := n.items[idx]
		if item0.key == key {
			eff.SetPreviousValue(item0.value)
			out := n.forMutation(callerUnique)
			out.items[idx].value = value
			return out
		}
		eff.MarkModified()
		item0Hash := hr.PathFor(item0.key).Hash()
		var merged *node[K, V]
		if item0Hash == path.Hash() {
			merged = collisionNode(path.Hash(), []entry[K, V]{item0, {key: key, value: value}})
		} else {
			merged = twoItemEntriesNode(hashpath.AtShift(item0Hash, path.Shift()).Descend(), path.Descend(), item0, entry[K, V]{key: key, value: value})
		}
		out := n.forMutation(callerUnique)
		out.items = removeEntryAt(out.items, idx)
		out.itemMap = out.itemMap.Without(b)
		childIdx := out.childMap.Offset(b)
		out.children = insertChildAt(out.children, childIdx, merged.retain())
		out.childMap = out.childMap.With(b)
		out.count = out.count - 1 + merged.count
		return out
	}

	if n.childMap.Contains(b) {
		idx := n.childMap.Offset(b)
		child := n.children[idx]
		oldChildCount := child.count
		childUnique := callerUnique && n.isUnique()
		newChild := child.updateOrUpdating(hr, childUnique, path.Descend(), key, value, eff)
		if newChild == child && !eff.Modified {
			// No entry was added below, and the child is the same node
			// (unchanged, or its value replaced in place), so n needs no
			// new child slot.
			return n
		}
		out := n.forMutation(callerUnique)
		out.children[out.childMap.Offset(b)] = newChild
		out.count += newChild.count - oldChildCount
		return out
	}

	eff.MarkModified()
	out := n.forMutation(callerUnique)
	idx := out.itemMap.Offset(b)
	out.items = insertEntryAt(out.items, idx, entry[K, V]{key: key, value: value})
	out.itemMap = out.itemMap.With(b)
	out.count++
	return out
}

// removeOrRemoving is the core removal described in spec §4.3.
func (n *node[K, V]) removeOrRemoving(callerUnique bool, path hashpath.HashPath, key K, eff *effect.Record[V]) *node[K, V] {
	if n.isCollision {
		if n.hash != path.Hash() {
			return n
		}
		for i, e := range n.items {
			if e.key == key {
				eff.MarkModified()
				eff.SetPreviousValue(e.value)
				remaining := make([]entry[K, V], 0, len(n.items)-1)
				remaining = append(remaining, n.items[:i]...)
				remaining = append(remaining, n.items[i+1:]...)
				if len(remaining) == 1 {
					b := path.Top().CurrentBucket()
					return singleItemNode[K, V](b, remaining[0])
				}
				return collisionNode(n.hash, remaining)
			}
		}
		return n
	}

	b := path.CurrentBucket()

	if n.itemMap.Contains(b) {
		idx := n.itemMap.Offset(b)
		item0 := n.items[idx]
		if item0.key != key {
			return n
		}
		eff.MarkModified()
		eff.SetPreviousValue(item0.value)

		if n.itemMap.Count() == 2 && n.childMap.IsEmpty() {
			var otherBucket uint
			var other entry[K, V]
			for _, bucket := range n.itemMap.Buckets() {
				if bucket != b {
					otherBucket = bucket
					other = n.items[n.itemMap.Offset(bucket)]
				}
			}
			if path.IsAtRoot() {
				return singleItemNode[K, V](otherBucket, other)
			}
			return singleItemNode[K, V](path.Top().CurrentBucket(), other)
		}

		if n.itemMap.Count() == 1 && n.childMap.Count() == 1 {
			onlyChild := n.children[0]
			if onlyChild.isCollision {
				// onlyChild is still referenced from n's children slot, so
				// its new parent slot is counted too.
				return onlyChild.retain()
			}
		}

		out := n.forMutation(callerUnique)
		out.items = removeEntryAt(out.items, idx)
		out.itemMap = out.itemMap.Without(b)
		out.count--
		return out
	}

	if n.childMap.Contains(b) {
		idx := n.childMap.Offset(b)
		child := n.children[idx]
		oldChildCount := child.count
		childUnique := callerUnique && n.isUnique()
		newChild := child.removeOrRemoving(childUnique, path.Descend(), key, eff)
		if !eff.Modified {
			// Nothing was found below; child is guaranteed unchanged.
			return n
		}

		candidateForCompaction := n.itemMap.IsEmpty() && n.childMap.Count() == 1

		if newChild.count == 1 && !newChild.isCollision {
			if candidateForCompaction {
				return newChild
			}
			out := n.forMutation(callerUnique)
			out.children = removeChildAt(out.children, idx)
			out.childMap = out.childMap.Without(b)
			insertIdx := out.itemMap.Offset(b)
			out.items = insertEntryAt(out.items, insertIdx, newChild.items[0])
			out.itemMap = out.itemMap.With(b)
			out.count--
			return out
		}

		if newChild.isCollision && candidateForCompaction {
			return newChild
		}

		out := n.forMutation(callerUnique)
		out.children[out.childMap.Offset(b)] = newChild
		out.count += newChild.count - oldChildCount
		return out
	}

	return n
}
