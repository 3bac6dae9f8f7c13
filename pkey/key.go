// Package pkey provides Key, a concrete totally-ordered key type grounded
// on the teacher's key.go, rebased onto string (instead of []byte) so it
// satisfies both hamt's comparable and btree's constraints.Ordered bounds
// — a plain Go byte slice is neither.
package pkey

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key is a totally-ordered key built from strings or fixed-width
// integers. Lexicographic comparison of the underlying string corresponds
// to byte-wise comparison of the original encoding, so Key satisfies
// golang.org/x/exp/constraints.Ordered directly.
//
// Integer encoding policy
// -----------------------
// Every integer constructor produces an 8-byte big-endian representation
// and adds an offset of 1<<63 before encoding, so that lexicographic
// (hence string <) comparison of Keys matches numeric ordering across
// signed and unsigned inputs and across integer widths: FromInt32(x) and
// FromInt64(x) compare equal and order the same way as FromInt(x) for the
// same numeric x. This holds for unsigned inputs below 1<<63; for
// FromUint64/FromUint values of 1<<63 and above the offset addition wraps
// around, so those Keys sort before the Key of 0.
type Key string

// FromString returns a Key from s after normalizing it to Unicode NFC
// (FromString does not alter case or trim spaces).
func FromString(s string) Key {
	return Key(norm.NFC.String(s))
}

// FromBytes returns a Key from the raw bytes, unnormalized.
func FromBytes(b []byte) Key {
	return Key(b)
}

const int64Offset = uint64(1) << 63

func encodeOffsetUint64(u uint64) Key {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], u)
	return Key(b[:])
}

// FromInt converts an int to an order-preserving 8-byte Key.
func FromInt(i int) Key { return encodeOffsetUint64(uint64(int64(i)) + int64Offset) }

// FromInt64 converts an int64 to an order-preserving 8-byte Key.
func FromInt64(i int64) Key { return encodeOffsetUint64(uint64(i) + int64Offset) }

// FromInt32 converts an int32 to an order-preserving 8-byte Key.
func FromInt32(i int32) Key { return encodeOffsetUint64(uint64(int64(i)) + int64Offset) }

// FromInt16 converts an int16 to an order-preserving 8-byte Key.
func FromInt16(i int16) Key { return encodeOffsetUint64(uint64(int64(i)) + int64Offset) }

// FromInt8 converts an int8 to an order-preserving 8-byte Key.
func FromInt8(i int8) Key { return encodeOffsetUint64(uint64(int64(i)) + int64Offset) }

// FromUint converts a uint to an order-preserving 8-byte Key.
func FromUint(u uint) Key { return encodeOffsetUint64(uint64(u) + int64Offset) }

// FromUint64 converts a uint64 to an order-preserving 8-byte Key.
func FromUint64(u uint64) Key { return encodeOffsetUint64(u + int64Offset) }

// FromUint32 converts a uint32 to an order-preserving 8-byte Key.
func FromUint32(u uint32) Key { return encodeOffsetUint64(uint64(u) + int64Offset) }

// FromUint16 converts a uint16 to an order-preserving 8-byte Key.
func FromUint16(u uint16) Key { return encodeOffsetUint64(uint64(u) + int64Offset) }

// FromUint8 converts a uint8 to an order-preserving 8-byte Key.
func FromUint8(u uint8) Key { return encodeOffsetUint64(uint64(u) + int64Offset) }

// FromByte is an alias for FromUint8.
func FromByte(b byte) Key { return FromUint8(b) }

// FromRune converts a rune to its UTF-8 encoding as a Key.
func FromRune(r rune) Key { return Key(string(r)) }

// Bytes returns the Key's raw byte encoding.
func (k Key) Bytes() []byte { return []byte(k) }

// String renders the Key as uppercase hex byte tuples, e.g. "[01,AB,00]".
func (k Key) String() string {
	if len(k) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	const hex = "0123456789ABCDEF"
	for i := 0; i < len(k); i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		b := k[i]
		sb.WriteByte(hex[b>>4])
		sb.WriteByte(hex[b&0x0F])
	}
	sb.WriteByte(']')
	return sb.String()
}

// IsEmpty reports whether the Key is empty.
func (k Key) IsEmpty() bool { return len(k) == 0 }
