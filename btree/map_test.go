package btree

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func TestEmptyMap(t *testing.T) {
	m := New[int, string]()
	if m.Len() != 0 || !m.IsEmpty() {
		t.Fatalf("new Map should be empty")
	}
	if _, ok := m.Get(1); ok {
		t.Fatalf("Get on empty Map should miss")
	}
}

func TestUpdateAndGet(t *testing.T) {
	m := New[int, string]()
	if _, existed := m.UpdateValue(1, "a"); existed {
		t.Fatalf("first insert should report existed=false")
	}
	if _, existed := m.UpdateValue(2, "b"); existed {
		t.Fatalf("first insert should report existed=false")
	}
	if m.Len() != 2 {
		t.Fatalf("expected len 2, got %d", m.Len())
	}
	prev, existed := m.UpdateValue(1, "z")
	if !existed || prev != "a" {
		t.Fatalf("re-insert should report existed=true, prev=a, got %v %v", existed, prev)
	}
	if v, _ := m.Get(1); v != "z" {
		t.Fatalf("Get(1) = %v; want z", v)
	}
	if m.Len() != 2 {
		t.Fatalf("Len should still be 2 after value replacement")
	}
}

func TestRemove(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 20; i++ {
		m.UpdateValue(i, i*i)
	}
	if _, ok := m.Remove(999); ok {
		t.Fatalf("removing an absent key should report false")
	}
	v, ok := m.Remove(10)
	if !ok || v != 100 {
		t.Fatalf("Remove(10) = %v, %v; want 100, true", v, ok)
	}
	if m.Len() != 19 {
		t.Fatalf("expected len 19, got %d", m.Len())
	}
	if m.ContainsKey(10) {
		t.Fatalf("10 should be gone")
	}
}

// TestAscendingInsert is scenario S4: insert keys 1..=1000 in order, check
// at() and repeated remove_first().
func TestAscendingInsert(t *testing.T) {
	const n = 1000
	m := WithCapacity[int, int](8)
	for i := 1; i <= n; i++ {
		m.UpdateValue(i, i*10)
	}
	if m.Len() != n {
		t.Fatalf("expected len %d, got %d", n, m.Len())
	}
	for i := 0; i < n; i++ {
		idx := m.IndexAtOffset(i)
		k, v := idx.Get(m)
		if k != i+1 || v != k*10 {
			t.Fatalf("at(%d) = (%d, %d); want (%d, %d)", i, k, v, i+1, (i+1)*10)
		}
	}
	for want := 1; want <= n; want++ {
		k, _, ok := m.PopFirst()
		if !ok || k != want {
			t.Fatalf("PopFirst() = %d, %v; want %d, true", k, ok, want)
		}
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty tree after popping every key, got len %d", m.Len())
	}
}

// TestRandomInsert is scenario S5: insert 1000 random pairs with a seeded
// RNG, then check ascending iteration order and distinct-key length.
func TestRandomInsert(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	m := WithCapacity[int, int](12)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		k := rng.IntN(5000)
		m.UpdateValue(k, k*2)
		seen[k] = true
	}
	if m.Len() != len(seen) {
		t.Fatalf("expected len %d (distinct keys), got %d", len(seen), m.Len())
	}
	it := m.Iterator()
	prev, havePrev := 0, false
	count := 0
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		if v != k*2 {
			t.Fatalf("unexpected value for key %d: %d", k, v)
		}
		if havePrev && k <= prev {
			t.Fatalf("iteration order not strictly ascending: %d after %d", k, prev)
		}
		prev, havePrev = k, true
		count++
	}
	if count != len(seen) {
		t.Fatalf("iterator visited %d entries; want %d", count, len(seen))
	}
}

// TestCoWClone is scenario S6.
func TestCoWClone(t *testing.T) {
	t1 := New[int, int]()
	for i := 0; i < 100; i++ {
		t1.UpdateValue(i, i)
	}
	t2 := t1.Clone()

	t1.Remove(50)

	if !t2.ContainsKey(50) {
		t.Fatalf("t2 should still contain key 50")
	}
	if t2.Len() != 100 {
		t.Fatalf("t2.Len() = %d; want 100", t2.Len())
	}
	if t1.Len() != 99 {
		t.Fatalf("t1.Len() = %d; want 99", t1.Len())
	}
	if t1.ContainsKey(50) {
		t.Fatalf("t1 should no longer contain key 50")
	}
}

func TestIndexOffsetRoundTrip(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 200; i++ {
		m.UpdateValue(i, i)
	}
	for i := 0; i < m.Len(); i++ {
		idx := m.IndexAtOffset(i)
		for d := -5; d <= 5; d++ {
			target := i + d
			if target < 0 || target > m.Len() {
				continue
			}
			moved := m.OffsetBy(idx, d)
			back := m.OffsetBy(moved, -d)
			if back.Offset(m) != idx.Offset(m) {
				t.Fatalf("offset round trip failed at i=%d d=%d", i, d)
			}
		}
	}
}

func TestDistance(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 50; i++ {
		m.UpdateValue(i, i)
	}
	a := m.IndexAtOffset(5)
	b := m.IndexAtOffset(30)
	if m.Distance(a, b) != 25 {
		t.Fatalf("Distance(5,30) = %d; want 25", m.Distance(a, b))
	}
}

func TestStaleIndexPanics(t *testing.T) {
	m := New[int, int]()
	m.UpdateValue(1, 1)
	idx := m.IndexAtOffset(0)
	m.UpdateValue(2, 2)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected using a stale Index to panic")
		}
	}()
	idx.Get(m)
}

func TestRemoveSubrangeAndRemoveAll(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 30; i++ {
		m.UpdateValue(i, i)
	}
	lo := m.IndexAtOffset(10)
	hi := m.IndexAtOffset(20)
	m.RemoveSubrange(lo, hi)
	if m.Len() != 20 {
		t.Fatalf("expected len 20 after removing [10,20), got %d", m.Len())
	}
	for i := 10; i < 20; i++ {
		if m.ContainsKey(i) {
			t.Fatalf("key %d should have been removed by RemoveSubrange", i)
		}
	}
	m.RemoveAll()
	if !m.IsEmpty() {
		t.Fatalf("expected empty Map after RemoveAll")
	}
}

func TestStartAndLastIndexFor(t *testing.T) {
	m := New[int, string]()
	for _, k := range []int{10, 20, 30, 40} {
		m.UpdateValue(k, fmt.Sprintf("v%d", k))
	}
	start := m.StartIndexFor(25)
	if start.Offset(m) != 2 {
		t.Fatalf("StartIndexFor(25).Offset = %d; want 2", start.Offset(m))
	}
	startExact := m.StartIndexFor(20)
	if startExact.Offset(m) != 1 {
		t.Fatalf("StartIndexFor(20).Offset = %d; want 1", startExact.Offset(m))
	}
	lastExact := m.LastIndexFor(20)
	if lastExact.Offset(m) != 2 {
		t.Fatalf("LastIndexFor(20).Offset = %d; want 2", lastExact.Offset(m))
	}
}

func ExampleMap_PopFirst() {
	m := New[int, string]()
	m.UpdateValue(3, "c")
	m.UpdateValue(1, "a")
	m.UpdateValue(2, "b")

	for {
		k, v, ok := m.PopFirst()
		if !ok {
			break
		}
		fmt.Println(k, v)
	}
	// Output:
	// 1 a
	// 2 b
	// 3 c
}
