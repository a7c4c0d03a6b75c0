// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "math/bits"

// PrimitiveArray is a flat, fixed-width numeric array: a single raw
// Buffer of len*ptype.Width() bytes plus a Validity mask. It is the
// leaf variant every numeric codec ultimately canonicalizes to.
type PrimitiveArray struct {
	dtype    DType
	data     Buffer
	offset   int
	len      int
	validity Validity
	stats    *StatsSet
}

// NewPrimitiveArray constructs a PrimitiveArray of ptype p over raw
// buffer data, which must hold exactly len*p.Width() bytes.
func NewPrimitiveArray(p PType, data Buffer, validity Validity, length int) *PrimitiveArray {
	if data.Len() != length*p.Width() {
		panic(invalidArgument("PrimitiveArray: buffer has %d bytes, want %d for len=%d width=%d",
			data.Len(), length*p.Width(), length, p.Width()))
	}
	if validity.Len() != length {
		panic(invalidArgument("PrimitiveArray: validity len %d != array len %d", validity.Len(), length))
	}
	a := &PrimitiveArray{dtype: Primitive(p, true), data: data, len: length, validity: validity}
	a.stats = newStatsSet(a)
	return a
}

func (a *PrimitiveArray) Kind() Kind    { return KindPrimitiveArray }
func (a *PrimitiveArray) DType() DType  { return a.dtype }
func (a *PrimitiveArray) Len() int      { return a.len }
func (a *PrimitiveArray) NBytes() int   { return a.data.Len() }
func (a *PrimitiveArray) Stats() *StatsSet { return a.stats }

func (a *PrimitiveArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *PrimitiveArray) IsValid(i int) bool {
	a.checkIndex(i)
	return a.validity.IsValid(a.offset + i)
}

func (a *PrimitiveArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if !a.validity.IsValid(a.offset + i) {
		return NullScalar(a.dtype)
	}
	return scalarFromRaw(a.data.Bytes(), a.dtype.PType(), a.offset+i)
}

// Slice returns the O(1) logical window [start,stop).
func (a *PrimitiveArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	n := stop - start
	na := &PrimitiveArray{
		dtype:    a.dtype,
		data:     a.data,
		offset:   a.offset + start,
		len:      n,
		validity: a.validity,
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *PrimitiveArray) ptype() PType { return a.dtype.PType() }

// computeStat implements statsComputer by scanning the buffer once per
// requested stat. Primitive arrays have no notion of runs beyond
// RunCount/TrueCount in the general numeric sense; TrueCount is only
// meaningful for boolean logic and is reported absent here.
func (a *PrimitiveArray) computeStat(s Stat) (any, bool) {
	p := a.ptype()
	switch s {
	case StatNullCount:
		return a.len - a.countValid(), true
	case StatIsConstant:
		return a.scanIsConstant(), true
	case StatIsSorted:
		return a.scanSorted(false), true
	case StatIsStrictSorted:
		return a.scanSorted(true), true
	case StatMin, StatMax:
		return a.scanMinMax(s == StatMin)
	case StatRunCount:
		return a.scanRunCount(), true
	case StatBitWidthFreq:
		return a.scanBitWidthFreq(), true
	case StatTrailingZeroFreq:
		if !p.IsInt() {
			return nil, false
		}
		return a.scanTrailingZeroFreq(), true
	default:
		return nil, false
	}
}

func (a *PrimitiveArray) countValid() int {
	n := 0
	for i := 0; i < a.len; i++ {
		if a.validity.IsValid(a.offset + i) {
			n++
		}
	}
	return n
}

func (a *PrimitiveArray) scanIsConstant() bool {
	if a.len <= 1 {
		return true
	}
	first, firstValid := a.rawValid(0)
	for i := 1; i < a.len; i++ {
		v, valid := a.rawValid(i)
		if valid != firstValid || (valid && v != first) {
			return false
		}
	}
	return true
}

// rawValid returns the raw little-endian bit pattern at logical index
// i along with its validity, without constructing a Scalar.
func (a *PrimitiveArray) rawValid(i int) (uint64, bool) {
	if !a.validity.IsValid(a.offset + i) {
		return 0, false
	}
	return readRaw(a.data.Bytes(), a.ptype().Width(), a.offset+i), true
}

func (a *PrimitiveArray) scanSorted(strict bool) bool {
	if a.len <= 1 {
		return true
	}
	for i := 1; i < a.len; i++ {
		cmp, ok := a.compareAt(i-1, i)
		if !ok {
			continue // nulls don't violate sortedness here
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

func (a *PrimitiveArray) compareAt(i, j int) (int, bool) {
	si, sj := a.ScalarAt(i), a.ScalarAt(j)
	return si.Compare(sj)
}

func (a *PrimitiveArray) scanMinMax(wantMin bool) (any, bool) {
	var best Scalar
	found := false
	for i := 0; i < a.len; i++ {
		if !a.validity.IsValid(a.offset + i) {
			continue
		}
		s := scalarFromRaw(a.data.Bytes(), a.ptype(), a.offset+i)
		if !found {
			best, found = s, true
			continue
		}
		cmp, _ := s.Compare(best)
		if (wantMin && cmp < 0) || (!wantMin && cmp > 0) {
			best = s
		}
	}
	if !found {
		return nil, false
	}
	return best, true
}

func (a *PrimitiveArray) scanRunCount() int {
	if a.len == 0 {
		return 0
	}
	runs := 1
	prev, prevValid := a.rawValid(0)
	for i := 1; i < a.len; i++ {
		v, valid := a.rawValid(i)
		if valid != prevValid || (valid && v != prev) {
			runs++
			prev, prevValid = v, valid
		}
	}
	return runs
}

func (a *PrimitiveArray) scanBitWidthFreq() []int {
	freq := make([]int, 65)
	width := a.ptype().BitWidth()
	for i := 0; i < a.len; i++ {
		v, valid := a.rawValid(i)
		if !valid {
			continue
		}
		bw := bitWidthOf(v, a.ptype(), width)
		freq[bw]++
	}
	return freq
}

func (a *PrimitiveArray) scanTrailingZeroFreq() []int {
	freq := make([]int, 65)
	for i := 0; i < a.len; i++ {
		v, valid := a.rawValid(i)
		if !valid {
			continue
		}
		if v == 0 {
			freq[a.ptype().BitWidth()]++
			continue
		}
		freq[bits.TrailingZeros64(v)]++
	}
	return freq
}

// bitWidthOf returns the minimum number of bits needed to represent
// raw value v of ptype p (for signed ptypes, accounting for sign-
// extension: the width is measured after mapping into the unsigned
// residual space the way FoR/BitPacked do).
func bitWidthOf(v uint64, p PType, nativeWidth int) int {
	if p.IsSignedInt() {
		sv := signExtend(v, p.Width())
		if sv < 0 {
			sv = ^sv
		}
		if sv == 0 {
			return 0
		}
		return bits.Len64(uint64(sv)) + 1
	}
	if v == 0 {
		return 0
	}
	return bits.Len64(v)
}

var _ canonicalizer = (*PrimitiveArray)(nil)

func (a *PrimitiveArray) canonicalize() Array { return a }
