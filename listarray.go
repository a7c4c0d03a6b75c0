// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "encoding/binary"

// ListArray holds a single "elements" child array plus an offsets
// buffer of len+1 little-endian uint32 entries delimiting each row's
// sub-range of elements, and its own Validity.
type ListArray struct {
	dtype    DType
	elements Array
	offsets  Buffer
	offset   int
	len      int
	validity Validity
	stats    *StatsSet
}

// NewListArray constructs a ListArray. offsets must hold (n+1)*4
// bytes, non-decreasing, with offsets[n] <= elements.Len().
func NewListArray(dtype DType, elements Array, offsets Buffer, validity Validity, n int) *ListArray {
	if dtype.Kind() != KindList {
		panic(dtypeMismatch(List(Null(), true), dtype))
	}
	if offsets.Len() != (n+1)*4 {
		panic(invalidArgument("ListArray: offsets has %d bytes, want %d for len=%d", offsets.Len(), (n+1)*4, n))
	}
	if validity.Len() != n {
		panic(invalidArgument("ListArray: validity len %d != array len %d", validity.Len(), n))
	}
	a := &ListArray{dtype: dtype, elements: elements, offsets: offsets, len: n, validity: validity}
	a.stats = newStatsSet(a)
	return a
}

func (a *ListArray) Kind() Kind       { return KindListArray }
func (a *ListArray) DType() DType     { return a.dtype }
func (a *ListArray) Len() int         { return a.len }
func (a *ListArray) Stats() *StatsSet { return a.stats }

func (a *ListArray) NBytes() int { return (a.len+1)*4 + a.elements.NBytes() }

func (a *ListArray) rawOffset(i int) uint32 {
	return binary.LittleEndian.Uint32(a.offsets.Bytes()[(a.offset+i)*4:])
}

func (a *ListArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *ListArray) IsValid(i int) bool {
	a.checkIndex(i)
	return a.validity.IsValid(a.offset + i)
}

// ScalarAt returns a StructScalar-free composite: since Scalar has no
// dedicated list payload, list rows are surfaced via Row, not
// ScalarAt; ScalarAt instead returns a null scalar for null rows and
// panics for non-null rows, mirroring the Array interface's contract
// that ScalarAt is defined for every variant while acknowledging list
// values need their own accessor.
func (a *ListArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if !a.validity.IsValid(a.offset + i) {
		return NullScalar(a.dtype)
	}
	panic(notImplemented("ScalarAt", "List; use Row instead"))
}

// Row returns the element sub-array for logical row i.
func (a *ListArray) Row(i int) Array {
	a.checkIndex(i)
	lo, hi := a.rawOffset(i), a.rawOffset(i+1)
	return a.elements.Slice(int(lo), int(hi))
}

// Slice returns the O(1) logical window [start,stop); the elements
// child and offsets buffer are shared, only the offset window moves.
func (a *ListArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	na := &ListArray{
		dtype:    a.dtype,
		elements: a.elements,
		offsets:  a.offsets,
		offset:   a.offset + start,
		len:      stop - start,
		validity: a.validity,
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *ListArray) children() []Array { return []Array{a.elements} }

func (a *ListArray) computeStat(s Stat) (any, bool) {
	if s == StatNullCount {
		n := 0
		for i := 0; i < a.len; i++ {
			if !a.validity.IsValid(a.offset + i) {
				n++
			}
		}
		return n, true
	}
	return nil, false
}

var (
	_ canonicalizer = (*ListArray)(nil)
	_ childArrays   = (*ListArray)(nil)
)

func (a *ListArray) canonicalize() Array { return a }
