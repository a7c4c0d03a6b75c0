// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import (
	"encoding/binary"
	"math"
)

// Buffer is an immutable, contiguous, cheaply cloneable byte region.
// Go slices already share their backing array on copy and on re-
// slicing, so Buffer is a thin value wrapper that documents the
// immutability contract from spec.md §3: a Buffer is never mutated
// after construction, so sharing its backing array across slices and
// across array nodes is always safe.
type Buffer struct {
	data []byte
}

// NewBuffer wraps b. The caller must not mutate b afterwards.
func NewBuffer(b []byte) Buffer { return Buffer{data: b} }

// Len returns the buffer's length in bytes.
func (b Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer's contents. Callers must treat the result
// as read-only.
func (b Buffer) Bytes() []byte { return b.data }

// Slice returns the byte range [start,stop), sharing the backing
// array — O(1), no copy.
func (b Buffer) Slice(start, stop int) Buffer {
	if start < 0 || stop < start || stop > len(b.data) {
		panic("nanocol: Buffer.Slice out of range")
	}
	return Buffer{data: b.data[start:stop]}
}

// Little-endian is the on-disk/in-memory byte order for all typed
// buffer access; spec.md §4.7 mandates little-endian for Bit-Packed
// buffers, and the rest of the codec set follows the same convention
// for a uniform wire layout (§6).

// readRaw reads the width-byte little-endian value at element index i
// in data, zero/sign-extended into a uint64 container (sign extension
// is the caller's responsibility when interpreting a signed ptype).
func readRaw(data []byte, width, i int) uint64 {
	off := i * width
	switch width {
	case 1:
		return uint64(data[off])
	case 2:
		return uint64(binary.LittleEndian.Uint16(data[off:]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(data[off:]))
	case 8:
		return binary.LittleEndian.Uint64(data[off:])
	default:
		panic("nanocol: unsupported width")
	}
}

// writeRaw writes v's low width*8 bits as little-endian at element
// index i in data.
func writeRaw(data []byte, width, i int, v uint64) {
	off := i * width
	switch width {
	case 1:
		data[off] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(data[off:], uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(data[off:], uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(data[off:], v)
	default:
		panic("nanocol: unsupported width")
	}
}

// signExtend interprets the low width*8 bits of v as a two's-complement
// signed integer of that width and returns it sign-extended to int64.
func signExtend(v uint64, width int) int64 {
	shift := uint(64 - width*8)
	return int64(v<<shift) >> shift
}

// scalarFromRaw decodes the raw element at buffer index i into a
// Scalar of the given ptype.
func scalarFromRaw(data []byte, p PType, i int) Scalar {
	raw := readRaw(data, p.Width(), i)
	switch {
	case p.IsSignedInt():
		return IntScalar(p, signExtend(raw, p.Width()))
	case p.IsUnsignedInt():
		return UintScalar(p, raw)
	case p == F32:
		return FloatScalar(F32, float64(math.Float32frombits(uint32(raw))))
	case p == F64:
		return FloatScalar(F64, math.Float64frombits(raw))
	case p == F16:
		return RawF16Scalar(uint16(raw))
	default:
		panic("nanocol: unsupported ptype")
	}
}

// rawFromScalar encodes a non-null scalar of ptype p into its raw
// little-endian bit pattern.
func rawFromScalar(p PType, s Scalar) uint64 {
	switch {
	case p.IsSignedInt():
		return uint64(s.AsInt64()) & widthMask(p.Width())
	case p.IsUnsignedInt():
		return s.AsUint64()
	case p == F32:
		return uint64(math.Float32bits(float32(s.AsFloat64())))
	case p == F64:
		return math.Float64bits(s.AsFloat64())
	case p == F16:
		return uint64(s.val.(uint16))
	default:
		panic("nanocol: unsupported ptype")
	}
}

func widthMask(width int) uint64 {
	if width == 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (width * 8)) - 1
}
