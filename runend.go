// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "sort"

// RunEndArray is a run-length encoding: ends[k] is the exclusive
// upper bound of run k's logical index range, values[k] its value
// (§4.6). Slicing retains ends/values and advances offset/len rather
// than truncating, mirroring Sparse's and Patched's slicing contract.
type RunEndArray struct {
	ends   Array // unsigned integer PrimitiveArray, strictly ascending
	values Array // length == ends.Len()
	offset int
	len    int
	stats  *StatsSet
}

// NewRunEndArray constructs a RunEndArray spanning the full range
// described by ends/values: len = ends[R-1] (0 if empty).
func NewRunEndArray(ends, values Array) *RunEndArray {
	if ends.Len() != values.Len() {
		panic(invalidArgument("RunEndArray: ends len %d != values len %d", ends.Len(), values.Len()))
	}
	n := 0
	if ends.Len() > 0 {
		n = int(ends.ScalarAt(ends.Len() - 1).AsUint64())
	}
	a := &RunEndArray{ends: ends, values: values, len: n}
	a.stats = newStatsSet(a)
	return a
}

func (a *RunEndArray) Kind() Kind       { return KindRunEnd }
func (a *RunEndArray) DType() DType     { return a.values.DType() }
func (a *RunEndArray) Len() int         { return a.len }
func (a *RunEndArray) Stats() *StatsSet { return a.stats }

func (a *RunEndArray) NBytes() int { return a.ends.NBytes() + a.values.NBytes() }

func (a *RunEndArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

// runAt returns the run index owning logical index i, via
// lower_bound(ends, i+1) (§4.6).
func (a *RunEndArray) runAt(i int) int {
	target := uint64(i + a.offset + 1)
	return sort.Search(a.ends.Len(), func(k int) bool {
		return a.ends.ScalarAt(k).AsUint64() >= target
	})
}

func (a *RunEndArray) IsValid(i int) bool {
	a.checkIndex(i)
	return a.values.IsValid(a.runAt(i))
}

func (a *RunEndArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	return a.values.ScalarAt(a.runAt(i))
}

// Slice retains ends/values and advances offset, keeping the window
// as an (offset, len) pair into the shared run boundaries.
func (a *RunEndArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	na := &RunEndArray{
		ends:   a.ends,
		values: a.values,
		offset: a.offset + start,
		len:    stop - start,
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *RunEndArray) children() []Array { return []Array{a.ends, a.values} }

func (a *RunEndArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatRunCount:
		if a.len == 0 {
			return 0, true
		}
		first, last := a.runAt(0), a.runAt(a.len-1)
		return last - first + 1, true
	case StatIsConstant:
		if a.len == 0 {
			return true, true
		}
		return a.runAt(0) == a.runAt(a.len-1), true
	case StatNullCount:
		n := 0
		for i := 0; i < a.len; i++ {
			if !a.IsValid(i) {
				n++
			}
		}
		return n, true
	default:
		return nil, false
	}
}

var _ canonicalizer = (*RunEndArray)(nil)

func (a *RunEndArray) canonicalize() Array {
	out := make([]Scalar, a.len)
	for i := 0; i < a.len; i++ {
		out[i] = a.ScalarAt(i)
	}
	return buildFromScalars(a.DType(), out)
}

// CompressRunEnd builds a RunEndArray from src when its mean run
// length exceeds threshold (§4.8's ree_average_run_threshold, default
// 2.0).
func CompressRunEnd(src Array, threshold float64) (Array, bool) {
	n := src.Len()
	if n == 0 {
		return nil, false
	}
	runCount, ok := src.Stats().RunCount()
	if !ok || runCount == 0 {
		return nil, false
	}
	if float64(n)/float64(runCount) < threshold {
		return nil, false
	}

	var endsScalars, valuesScalars []Scalar
	runStart := 0
	for i := 1; i <= n; i++ {
		if i == n || !sameElement(src, i-1, i) {
			endsScalars = append(endsScalars, UintScalar(U32, uint64(i)))
			valuesScalars = append(valuesScalars, src.ScalarAt(runStart))
			runStart = i
		}
	}
	ends := buildFromScalars(Primitive(U32, true), endsScalars)
	values := buildFromScalars(src.DType(), valuesScalars)
	return NewRunEndArray(ends, values), true
}

func sameElement(src Array, i, j int) bool {
	vi, vj := src.IsValid(i), src.IsValid(j)
	if vi != vj {
		return false
	}
	if !vi {
		return true
	}
	return src.ScalarAt(i).Equal(src.ScalarAt(j))
}
