package hamt

// Equal reports whether a and b contain the same key/value pairs. It
// short-circuits on root identity, then falls back to a recursive
// structural comparison that treats hash-collision nodes as unordered
// multisets (per spec §4.4/§9) — valid because two bitmap-indexed nodes
// holding the same content always partition it into the same buckets,
// regardless of the insertion order that built them.
func Equal[K comparable, V comparable](a, b *Dict[K, V]) bool {
	if a == b {
		return true
	}
	if a.size != b.size {
		return false
	}
	return nodeEqual(a.root, b.root)
}

func nodeEqual[K comparable, V comparable](a, b *node[K, V]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.count != b.count || a.isCollision != b.isCollision {
		return false
	}
	if a.isCollision {
		if len(a.items) != len(b.items) {
			return false
		}
		used := make([]bool, len(b.items))
		for _, ea := range a.items {
			found := false
			for i, eb := range b.items {
				if used[i] {
					continue
				}
				if ea.key == eb.key && ea.value == eb.value {
					used[i] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	if a.itemMap != b.itemMap || a.childMap != b.childMap {
		return false
	}
	for i := range a.items {
		if a.items[i].key != b.items[i].key || a.items[i].value != b.items[i].value {
			return false
		}
	}
	for i := range a.children {
		if !nodeEqual(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
