// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "github.com/nanocol/nanocol/internal/bitset"

// BoolArray is a flat boolean array: one internal/bitset.BitSet holding
// the values (1 = true) plus a Validity mask.
type BoolArray struct {
	dtype    DType
	values   bitset.BitSet
	offset   int
	len      int
	validity Validity
	stats    *StatsSet
}

// NewBoolArray constructs a BoolArray of length n from values (bit i
// true at logical index i) and validity.
func NewBoolArray(values bitset.BitSet, validity Validity, n int) *BoolArray {
	if validity.Len() != n {
		panic(invalidArgument("BoolArray: validity len %d != array len %d", validity.Len(), n))
	}
	a := &BoolArray{dtype: Bool(true), values: values, len: n, validity: validity}
	a.stats = newStatsSet(a)
	return a
}

func (a *BoolArray) Kind() Kind       { return KindBoolArray }
func (a *BoolArray) DType() DType     { return a.dtype }
func (a *BoolArray) Len() int         { return a.len }
func (a *BoolArray) NBytes() int      { return (a.len + 7) / 8 }
func (a *BoolArray) Stats() *StatsSet { return a.stats }

func (a *BoolArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *BoolArray) IsValid(i int) bool {
	a.checkIndex(i)
	return a.validity.IsValid(a.offset + i)
}

func (a *BoolArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if !a.validity.IsValid(a.offset + i) {
		return NullScalar(a.dtype)
	}
	return BoolScalar(a.values.Test(uint(a.offset + i)))
}

// Slice returns the O(1) logical window [start,stop).
func (a *BoolArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	na := &BoolArray{
		dtype:    a.dtype,
		values:   a.values,
		offset:   a.offset + start,
		len:      stop - start,
		validity: a.validity,
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *BoolArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatNullCount:
		n := 0
		for i := 0; i < a.len; i++ {
			if !a.validity.IsValid(a.offset + i) {
				n++
			}
		}
		return n, true
	case StatTrueCount:
		n := 0
		for i := 0; i < a.len; i++ {
			if a.validity.IsValid(a.offset+i) && a.values.Test(uint(a.offset+i)) {
				n++
			}
		}
		return n, true
	case StatIsConstant:
		return a.scanIsConstant(), true
	case StatIsSorted:
		return a.scanSorted(), true
	case StatRunCount:
		return a.scanRunCount(), true
	default:
		return nil, false
	}
}

func (a *BoolArray) at(i int) (bool, bool) {
	if !a.validity.IsValid(a.offset + i) {
		return false, false
	}
	return a.values.Test(uint(a.offset + i)), true
}

func (a *BoolArray) scanIsConstant() bool {
	if a.len <= 1 {
		return true
	}
	fv, fvalid := a.at(0)
	for i := 1; i < a.len; i++ {
		v, valid := a.at(i)
		if valid != fvalid || (valid && v != fv) {
			return false
		}
	}
	return true
}

// scanSorted reports non-decreasing order, treating false < true and
// nulls as non-constraining (matching PrimitiveArray.scanSorted).
func (a *BoolArray) scanSorted() bool {
	if a.len <= 1 {
		return true
	}
	prev, prevValid := a.at(0)
	for i := 1; i < a.len; i++ {
		v, valid := a.at(i)
		if prevValid && valid && prev && !v {
			return false
		}
		if valid {
			prev, prevValid = v, true
		}
	}
	return true
}

func (a *BoolArray) scanRunCount() int {
	if a.len == 0 {
		return 0
	}
	runs := 1
	prev, prevValid := a.at(0)
	for i := 1; i < a.len; i++ {
		v, valid := a.at(i)
		if valid != prevValid || (valid && v != prev) {
			runs++
			prev, prevValid = v, valid
		}
	}
	return runs
}

var _ canonicalizer = (*BoolArray)(nil)

func (a *BoolArray) canonicalize() Array { return a }
