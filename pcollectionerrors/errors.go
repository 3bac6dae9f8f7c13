// Package pcollectionerrors defines the sentinel errors both container
// cores panic with. All failures described here are programming errors:
// there is no recovery contract, callers that want to turn a panic back
// into a value can recover() and compare with errors.Is.
package pcollectionerrors

import "errors"

var (
	// ErrOutOfBounds is raised when a position/offset passed to an
	// indexed accessor falls outside [0, count].
	ErrOutOfBounds = errors.New("pcollections: index out of bounds")

	// ErrInvalidIndex is raised when an Index with a stale version or a
	// foreign root is used against a tree.
	ErrInvalidIndex = errors.New("pcollections: invalid index")

	// ErrEmptyCollection names the remove-from-an-empty-collection
	// failure. btree.Map's PopFirst and PopLast do not raise it: they
	// report an empty Map by returning false.
	ErrEmptyCollection = errors.New("pcollections: collection is empty")

	// ErrDuplicateKey is raised by the bulk unique-pairs constructor
	// when it sees a repeated key.
	ErrDuplicateKey = errors.New("pcollections: duplicate key")

	// ErrOutOfHashBits is raised when a HashPath descends past the hash
	// width; it indicates excessive hash collisions or a broken hash
	// function.
	ErrOutOfHashBits = errors.New("pcollections: out of hash bits")

	// ErrInvariantViolation is raised by internal consistency checks.
	ErrInvariantViolation = errors.New("pcollections: invariant violation")

	// ErrDepthOverflow is raised when a FixedDepthStack exceeds its
	// fixed capacity.
	ErrDepthOverflow = errors.New("pcollections: depth overflow")
)
