// Package effect implements EffectRecord, the return-by-reference record
// HAMT-Node's update/remove helpers use to report what happened without
// widening their return type.
package effect

// Record carries the side effects of one mutating HAMT-Node call.
// Both fields are monotonic within a single operation: once Modified is
// set it is never cleared, and PreviousValue is populated at most once,
// the first time an existing key's value is observed (on replace or on
// removal).
type Record[V any] struct {
	Modified      bool
	PreviousValue *V
}

// MarkModified sets Modified. Safe to call more than once.
func (r *Record[V]) MarkModified() {
	r.Modified = true
}

// SetPreviousValue records the value that was replaced or removed.
func (r *Record[V]) SetPreviousValue(v V) {
	r.PreviousValue = &v
}
