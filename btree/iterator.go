package btree

import "github.com/pcollections/pcollections/stack"

// frame tracks an in-order walk through one node. In an internal node,
// step encodes an interleaved child/key cursor: even step 2*i means "push
// child i next"; odd step 2*i+1 means "emit key i next". In a leaf, step
// is simply the index of the next key to emit. One counter field thus
// drives both kinds of node through the same loop in Iterator.Next.
type frame[K Ordered, V any] struct {
	n    *node[K, V]
	step int
}

// Iterator walks a Map's entries in ascending key order.
type Iterator[K Ordered, V any] struct {
	path stack.FixedDepthStack[frame[K, V]]
}

func newIterator[K Ordered, V any](root *node[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{}
	if root != nil && root.subtreeCount > 0 {
		it.path.PushBack(frame[K, V]{n: root})
	}
	return it
}

// Next returns the next key/value pair in ascending order, and true, or
// the zero values and false once the walk is exhausted.
func (it *Iterator[K, V]) Next() (K, V, bool) {
	var zeroK K
	var zeroV V
	for it.path.Len() > 0 {
		top := it.path.At(it.path.Len() - 1)

		if top.n.isLeaf() {
			if top.step < len(top.n.keys) {
				k, v := top.n.keys[top.step], top.n.values[top.step]
				top.step++
				it.path.Set(it.path.Len()-1, top)
				return k, v, true
			}
			it.path.PopBack()
			continue
		}

		half := top.step / 2
		if top.step%2 == 0 {
			if half < len(top.n.children) {
				child := top.n.children[half]
				top.step++
				it.path.Set(it.path.Len()-1, top)
				it.path.PushBack(frame[K, V]{n: child})
				continue
			}
			it.path.PopBack()
			continue
		}
		if half < len(top.n.keys) {
			k, v := top.n.keys[half], top.n.values[half]
			top.step++
			it.path.Set(it.path.Len()-1, top)
			return k, v, true
		}
		it.path.PopBack()
	}
	return zeroK, zeroV, false
}
