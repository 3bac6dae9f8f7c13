package hamt

import "github.com/pcollections/pcollections/hashpath"

// pairKey is hashed as a unit to derive a per-entry hash contribution for
// HashOf. It must be comparable like any hashpath.Hasher key type.
type pairKey[K comparable, V comparable] struct {
	Key   K
	Value V
}

// HashOf returns a hash of d's contents that is independent of internal
// tree shape and insertion order: a commutative (XOR) combination of a
// per-entry hash, so two Dicts that are Equal always hash alike even if
// their tries were built in different orders (spec §4.4, testable
// property 12).
func HashOf[K comparable, V comparable](d *Dict[K, V]) uint64 {
	if d.root == nil {
		return 0
	}
	hasher := hashpath.NewHasher[pairKey[K, V]]()
	var h uint64
	it := d.Iterator()
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		h ^= hasher.PathFor(pairKey[K, V]{Key: k, Value: v}).Hash()
	}
	return h
}
