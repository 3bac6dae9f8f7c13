package hamt

import "github.com/pcollections/pcollections/stack"

// frame tracks how far a DFS pre-order walk has progressed through one
// node: its own items (in ascending bucket order) then its children (in
// ascending bucket order, each fully drained before the next).
type frame[K comparable, V any] struct {
	n        *node[K, V]
	itemPos  int
	childPos int
}

// Iterator walks a Dict's entries in DFS pre-order by bucket. The order
// is unspecified by the spec but deterministic for a given tree.
type Iterator[K comparable, V any] struct {
	path stack.FixedDepthStack[frame[K, V]]
}

func newIterator[K comparable, V any](root *node[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{}
	if root != nil && root.count > 0 {
		it.path.PushBack(frame[K, V]{n: root})
	}
	return it
}

// Next returns the next key/value pair and true, or the zero values and
// false once the walk is exhausted.
func (it *Iterator[K, V]) Next() (K, V, bool) {
	var zeroK K
	var zeroV V
	for it.path.Len() > 0 {
		top := it.path.At(it.path.Len() - 1)
		if top.itemPos < len(top.n.items) {
			e := top.n.items[top.itemPos]
			top.itemPos++
			it.path.Set(it.path.Len()-1, top)
			return e.key, e.value, true
		}
		if top.childPos < len(top.n.children) {
			child := top.n.children[top.childPos]
			top.childPos++
			it.path.Set(it.path.Len()-1, top)
			it.path.PushBack(frame[K, V]{n: child})
			continue
		}
		it.path.PopBack()
	}
	return zeroK, zeroV, false
}
