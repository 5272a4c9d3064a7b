// Package storage provides concrete cursor.Seekable backends: an in-memory
// sorted table for tests and small datasets, and a BadgerDB-backed ordered
// table for on-disk use. Both encode each row's key columns so that byte
// order of the encoded key matches the column's logical order, the same
// invariant the teacher's key encoders maintain for its fixed EAVT/AEVT/...
// index layouts.
package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// KeyCodec converts a column value to a byte encoding whose lexicographic
// order matches the column's comparator order, and back. BadgerTable uses
// one KeyCodec per key column to build composite row keys.
type KeyCodec interface {
	Encode(v any) []byte
	Decode(b []byte) (any, error)
	// Size is the fixed encoded width in bytes, or 0 for variable-width
	// codecs (which must be the last column in a composite key).
	Size() int
}

// Int64Codec order-preserves signed 64-bit integers by flipping the sign
// bit, the standard trick for making two's-complement integers compare
// correctly as unsigned big-endian bytes.
type Int64Codec struct{}

func (Int64Codec) Encode(v any) []byte {
	n := toInt64(v)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n)^(1<<63))
	return buf
}

func (Int64Codec) Decode(b []byte) (any, error) {
	if len(b) != 8 {
		return nil, fmt.Errorf("rangeindex/storage: Int64Codec expects 8 bytes, got %d", len(b))
	}
	u := binary.BigEndian.Uint64(b) ^ (1 << 63)
	return int64(u), nil
}

func (Int64Codec) Size() int { return 8 }

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		panic(fmt.Sprintf("rangeindex/storage: Int64Codec cannot encode %T", v))
	}
}

// Float64Codec order-preserves IEEE-754 doubles: for non-negative values,
// flipping the sign bit alone keeps big-endian byte order correct; for
// negative values every bit must also be flipped so that more-negative
// values sort first.
type Float64Codec struct{}

func (Float64Codec) Encode(v any) []byte {
	f, ok := v.(float64)
	if !ok {
		panic(fmt.Sprintf("rangeindex/storage: Float64Codec cannot encode %T", v))
	}
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, bits)
	return buf
}

func (Float64Codec) Decode(b []byte) (any, error) {
	if len(b) != 8 {
		return nil, fmt.Errorf("rangeindex/storage: Float64Codec expects 8 bytes, got %d", len(b))
	}
	bits := binary.BigEndian.Uint64(b)
	if bits&(1<<63) != 0 {
		bits &^= 1 << 63
	} else {
		bits = ^bits
	}
	return math.Float64frombits(bits), nil
}

func (Float64Codec) Size() int { return 8 }

// StringCodec encodes a string as its raw UTF-8 bytes, which already sort
// in the same order as Go's string comparison. It is variable-width, so it
// may only be used for the last column of a composite key.
type StringCodec struct{}

func (StringCodec) Encode(v any) []byte {
	s, ok := v.(string)
	if !ok {
		panic(fmt.Sprintf("rangeindex/storage: StringCodec cannot encode %T", v))
	}
	return []byte(s)
}

func (StringCodec) Decode(b []byte) (any, error) {
	return string(b), nil
}

func (StringCodec) Size() int { return 0 }

// concatBytes concatenates byte slices into one fresh buffer.
func concatBytes(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	result := make([]byte, 0, size)
	for _, p := range parts {
		result = append(result, p...)
	}
	return result
}
