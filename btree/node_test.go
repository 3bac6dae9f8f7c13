package btree

import "testing"

// checkInvariants walks a subtree verifying spec §8 properties 3, 4, 5:
// ascending keys, correct subtree_count, and uniform child depth.
func checkInvariants[K Ordered, V any](t *testing.T, n *node[K, V], isRoot bool) {
	t.Helper()
	for i := 1; i < len(n.keys); i++ {
		if n.keys[i-1] >= n.keys[i] {
			t.Fatalf("keys not strictly ascending at %v, %v", n.keys[i-1], n.keys[i])
		}
	}
	if !isRoot && !n.isBalanced() {
		t.Fatalf("non-root node with elementCount %d below minimum %d", n.elementCount, n.minElementCount())
	}
	if n.isLeaf() {
		if n.subtreeCount != n.elementCount {
			t.Fatalf("leaf subtreeCount %d != elementCount %d", n.subtreeCount, n.elementCount)
		}
		return
	}
	if len(n.children) != n.elementCount+1 {
		t.Fatalf("internal node has %d children for %d keys; want %d", len(n.children), n.elementCount, n.elementCount+1)
	}
	total := n.elementCount
	for _, c := range n.children {
		if c.depth != n.depth-1 {
			t.Fatalf("child depth %d; want %d", c.depth, n.depth-1)
		}
		checkInvariants(t, c, false)
		total += c.subtreeCount
	}
	if total != n.subtreeCount {
		t.Fatalf("subtreeCount %d != elementCount + sum(child.subtreeCount) %d", n.subtreeCount, total)
	}
}

func TestInsertMaintainsInvariants(t *testing.T) {
	m := WithCapacity[int, int](6)
	for i := 0; i < 500; i++ {
		m.UpdateValue((i*37)%997, i)
		checkInvariants(t, m.root, true)
	}
}

func TestRemoveMaintainsInvariants(t *testing.T) {
	m := WithCapacity[int, int](6)
	keys := make([]int, 0, 300)
	for i := 0; i < 300; i++ {
		k := (i * 53) % 1009
		m.UpdateValue(k, i)
		keys = append(keys, k)
	}
	checkInvariants(t, m.root, true)
	for _, k := range keys {
		m.Remove(k)
		checkInvariants(t, m.root, true)
	}
	if !m.IsEmpty() {
		t.Fatalf("expected empty tree after removing every inserted key")
	}
}

func TestSlotSearchHelpers(t *testing.T) {
	n := newLeaf[int, string](8)
	n.keys = []int{10, 20, 20, 30}
	n.values = []string{"a", "b", "c", "d"}
	n.elementCount = 4
	n.subtreeCount = 4

	if got := n.startSlotFor(20); got != 1 {
		t.Fatalf("startSlotFor(20) = %d; want 1", got)
	}
	if got := n.endSlotFor(20); got != 3 {
		t.Fatalf("endSlotFor(20) = %d; want 3", got)
	}
	if got := n.startSlotFor(15); got != 1 {
		t.Fatalf("startSlotFor(15) = %d; want 1", got)
	}
	if got := n.startSlotFor(99); got != 4 {
		t.Fatalf("startSlotFor(99) = %d; want 4", got)
	}
}
