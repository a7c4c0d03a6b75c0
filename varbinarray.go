// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "encoding/binary"

// VarBinArray is a flat variable-width array (Utf8 or Binary): an
// uint32 offsets buffer of len+1 entries plus a concatenated data
// buffer and a Validity mask. Shared implementation for both dtype
// kinds since their on-wire shape (wire id VarBin=4, §6) is identical;
// only the logical dtype differs.
type VarBinArray struct {
	dtype    DType
	offsets  Buffer // (len+1) little-endian uint32 entries
	data     Buffer
	offset   int
	len      int
	validity Validity
	stats    *StatsSet
}

// NewUtf8Array constructs a Utf8 VarBinArray. offsets must hold
// (n+1)*4 bytes, non-decreasing, with offsets[n] <= data.Len().
func NewUtf8Array(offsets, data Buffer, validity Validity, n int) *VarBinArray {
	return newVarBinArray(Utf8(true), offsets, data, validity, n)
}

// NewBinaryArray constructs a Binary VarBinArray.
func NewBinaryArray(offsets, data Buffer, validity Validity, n int) *VarBinArray {
	return newVarBinArray(Binary(true), offsets, data, validity, n)
}

func newVarBinArray(dtype DType, offsets, data Buffer, validity Validity, n int) *VarBinArray {
	if offsets.Len() != (n+1)*4 {
		panic(invalidArgument("VarBinArray: offsets has %d bytes, want %d for len=%d", offsets.Len(), (n+1)*4, n))
	}
	if validity.Len() != n {
		panic(invalidArgument("VarBinArray: validity len %d != array len %d", validity.Len(), n))
	}
	a := &VarBinArray{dtype: dtype, offsets: offsets, data: data, len: n, validity: validity}
	a.stats = newStatsSet(a)
	return a
}

func (a *VarBinArray) Kind() Kind {
	if a.dtype.Kind() == KindUtf8 {
		return KindUtf8Array
	}
	return KindBinaryArray
}
func (a *VarBinArray) DType() DType     { return a.dtype }
func (a *VarBinArray) Len() int         { return a.len }
func (a *VarBinArray) Stats() *StatsSet { return a.stats }

// NBytes is the offsets buffer plus the data span actually referenced
// by this (possibly sliced) window.
func (a *VarBinArray) NBytes() int {
	if a.len == 0 {
		return (a.len + 1) * 4
	}
	lo := a.rawOffset(0)
	hi := a.rawOffset(a.len)
	return (a.len+1)*4 + int(hi-lo)
}

func (a *VarBinArray) rawOffset(i int) uint32 {
	return binary.LittleEndian.Uint32(a.offsets.Bytes()[(a.offset+i)*4:])
}

func (a *VarBinArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *VarBinArray) IsValid(i int) bool {
	a.checkIndex(i)
	return a.validity.IsValid(a.offset + i)
}

func (a *VarBinArray) bytesAt(i int) []byte {
	lo, hi := a.rawOffset(i), a.rawOffset(i+1)
	return a.data.Bytes()[lo:hi]
}

func (a *VarBinArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if !a.validity.IsValid(a.offset + i) {
		return NullScalar(a.dtype)
	}
	b := a.bytesAt(i)
	if a.dtype.Kind() == KindUtf8 {
		return Utf8Scalar(string(b))
	}
	return BinaryScalar(b)
}

// Slice returns the O(1) logical window [start,stop); the offsets and
// data buffers are shared, only the offset window advances.
func (a *VarBinArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	na := &VarBinArray{
		dtype:    a.dtype,
		offsets:  a.offsets,
		data:     a.data,
		offset:   a.offset + start,
		len:      stop - start,
		validity: a.validity,
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *VarBinArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatNullCount:
		n := 0
		for i := 0; i < a.len; i++ {
			if !a.validity.IsValid(a.offset + i) {
				n++
			}
		}
		return n, true
	case StatIsConstant:
		return a.scanIsConstant(), true
	case StatIsSorted, StatIsStrictSorted:
		return a.scanSorted(s == StatIsStrictSorted), true
	default:
		return nil, false
	}
}

func (a *VarBinArray) scanIsConstant() bool {
	if a.len <= 1 {
		return true
	}
	first := a.ScalarAt(0)
	for i := 1; i < a.len; i++ {
		if !first.Equal(a.ScalarAt(i)) {
			return false
		}
	}
	return true
}

func (a *VarBinArray) scanSorted(strict bool) bool {
	if a.len <= 1 {
		return true
	}
	for i := 1; i < a.len; i++ {
		cmp, ok := a.ScalarAt(i - 1).Compare(a.ScalarAt(i))
		if !ok {
			continue
		}
		if strict && cmp >= 0 {
			return false
		}
		if !strict && cmp > 0 {
			return false
		}
	}
	return true
}

var _ canonicalizer = (*VarBinArray)(nil)

func (a *VarBinArray) canonicalize() Array { return a }
