package hamt

import (
	"testing"

	"github.com/pcollections/pcollections/effect"
	"github.com/pcollections/pcollections/hashpath"
)

// fixedHashKey is a plain struct key. Nothing about it makes two keys
// hash alike; the collision test below builds the collision node and
// every lookup path from one explicit hash value instead, since a
// collision node's get/update/remove dispatch on path.Hash().
type fixedHashKey struct {
	tag int
	sub int
}

func TestCollisionNodeInsertGetRemove(t *testing.T) {
	a := entry[fixedHashKey, int]{key: fixedHashKey{tag: 7, sub: 1}, value: 1}
	b := entry[fixedHashKey, int]{key: fixedHashKey{tag: 7, sub: 2}, value: 2}

	n := collisionNode[fixedHashKey, int](42, []entry[fixedHashKey, int]{a})
	if !n.isCollision || n.count != 1 {
		t.Fatalf("collisionNode should start as a 1-item collision node")
	}

	path := hashpath.FromHash(42)
	v, ok := n.get(a.key, path)
	if !ok || v != 1 {
		t.Fatalf("get(a) = %v, %v; want 1, true", v, ok)
	}
	if _, ok := n.get(b.key, path); ok {
		t.Fatalf("get(b) on a 1-item collision node should miss")
	}

	hr := hashpath.NewHasher[fixedHashKey]()
	var eff effect.Record[int]
	n2 := n.updateOrUpdating(hr, true, path, b.key, b.value, &eff)
	if !n2.isCollision || n2.count != 2 {
		t.Fatalf("inserting a same-hash key should grow the collision node, got count=%d", n2.count)
	}
	if v, ok := n2.get(b.key, path); !ok || v != 2 {
		t.Fatalf("get(b) after insert = %v, %v; want 2, true", v, ok)
	}

	var removeEff effect.Record[int]
	n3 := n2.removeOrRemoving(true, path, a.key, &removeEff)
	if !removeEff.Modified {
		t.Fatalf("removing a present key should mark the effect modified")
	}
	if n3.count != 1 {
		t.Fatalf("after removing one of two colliding entries, count should be 1, got %d", n3.count)
	}
	if _, ok := n3.get(a.key, path); ok {
		t.Fatalf("a should be gone")
	}
	if _, ok := n3.get(b.key, path); !ok {
		t.Fatalf("b should remain")
	}
}

// TestRemoveCollapsingDepthTwoNodeUsesParentBucket is testable property 16:
// when a two-item node below the root collapses to one item, the survivor
// must be placed at the bucket the *parent* used to reach this node
// (path.Top().CurrentBucket()), not at the survivor's own bucket within the
// node being collapsed.
func TestRemoveCollapsingDepthTwoNodeUsesParentBucket(t *testing.T) {
	const rootBucket = uint(3)
	const depth1BucketA = uint(5)
	const depth1BucketB = uint(9) // deliberately != rootBucket

	hashA := uint64(rootBucket) | uint64(depth1BucketA)<<hashpath.BucketBits
	hashB := uint64(rootBucket) | uint64(depth1BucketB)<<hashpath.BucketBits

	a := entry[string, int]{key: "A", value: 1}
	b := entry[string, int]{key: "B", value: 2}
	pathA := hashpath.FromHash(hashA)
	pathB := hashpath.FromHash(hashB)

	// Both keys share rootBucket at depth 0 but diverge at depth 1, so
	// building them together produces: root --childMap[rootBucket]--> a
	// depth-1 node holding both a and b as plain items.
	root := twoItemEntriesNode(pathA, pathB, a, b)
	if !root.childMap.Contains(rootBucket) || !root.itemMap.IsEmpty() {
		t.Fatalf("setup: expected root to hold a single child at bucket %d, got itemMap=%v childMap=%v", rootBucket, root.itemMap, root.childMap)
	}
	child := root.children[root.childMap.Offset(rootBucket)]
	if child.itemMap.Count() != 2 || !child.childMap.IsEmpty() {
		t.Fatalf("setup: expected depth-1 node with 2 items and no children, got itemMap.Count=%d childMap.Count=%d", child.itemMap.Count(), child.childMap.Count())
	}

	var eff effect.Record[int]
	newRoot := root.removeOrRemoving(true, pathA, a.key, &eff)
	if !eff.Modified {
		t.Fatalf("removing a present key should mark the effect modified")
	}
	if newRoot.count != 1 {
		t.Fatalf("expected 1 entry remaining, got %d", newRoot.count)
	}
	if !newRoot.itemMap.Contains(rootBucket) {
		t.Fatalf("survivor should be promoted to rootBucket %d (the bucket the parent used for this subtree), got itemMap=%v", rootBucket, newRoot.itemMap)
	}
	if got := newRoot.items[newRoot.itemMap.Offset(rootBucket)]; got.key != b.key || got.value != b.value {
		t.Fatalf("survivor entry = %+v; want %+v", got, b)
	}
	if v, ok := newRoot.get(b.key, pathB); !ok || v != b.value {
		t.Fatalf("get(b) after collapse = %v, %v; want %d, true", v, ok, b.value)
	}
}

func TestRetainAndUniqueness(t *testing.T) {
	n := singleItemNode[string, int](3, entry[string, int]{key: "k", value: 1})
	if !n.isUnique() {
		t.Fatalf("a freshly built node should be unique")
	}
	n.retain()
	if n.isUnique() {
		t.Fatalf("a node retained a second time should no longer read as unique")
	}
}

func TestForMutationClonesWhenShared(t *testing.T) {
	n := singleItemNode[string, int](3, entry[string, int]{key: "k", value: 1})
	n.retain()
	out := n.forMutation(true)
	if out == n {
		t.Fatalf("forMutation should clone a node with refCount > 1")
	}
	out2 := n.forMutation(false)
	if out2 == n {
		t.Fatalf("forMutation should clone whenever callerUnique is false")
	}
}
