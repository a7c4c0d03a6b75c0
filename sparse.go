// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "sort"

// SparseArray overlays a minority of explicit (index, value) pairs
// atop an implicit fill value (§4.3). indices is strictly ascending
// and unsigned; values has the same dtype as the logical array.
// Slicing retains the children and adjusts indicesOffset (Open
// Question resolved in favor of original_source's sparse/mod.rs
// try_new_with_offset, which defers the index search rather than
// narrowing children on every slice).
type SparseArray struct {
	indices      Array // unsigned integer PrimitiveArray, ascending
	values       Array // same dtype as fillValue/logical array
	fillValue    Scalar
	indicesOffset int
	len          int
	stats        *StatsSet
}

// NewSparseArray constructs a SparseArray. indices.Len() must equal
// values.Len(); if non-empty, the last index (minus indicesOffset)
// must be < n; values.DType() must equal fillValue.DType().
func NewSparseArray(indices, values Array, fillValue Scalar, n int) *SparseArray {
	if indices.Len() != values.Len() {
		panic(invalidArgument("SparseArray: indices len %d != values len %d", indices.Len(), values.Len()))
	}
	if !values.DType().Equal(fillValue.DType()) {
		panic(dtypeMismatch(fillValue.DType(), values.DType()))
	}
	if indices.Len() > 0 {
		last := int(indices.ScalarAt(indices.Len() - 1).AsUint64())
		if last >= n {
			panic(invalidArgument("SparseArray: last index %d >= len %d", last, n))
		}
	}
	a := &SparseArray{indices: indices, values: values, fillValue: fillValue, len: n}
	a.stats = newStatsSet(a)
	return a
}

func (a *SparseArray) Kind() Kind       { return KindSparse }
func (a *SparseArray) DType() DType     { return a.fillValue.DType() }
func (a *SparseArray) Len() int         { return a.len }
func (a *SparseArray) Stats() *StatsSet { return a.stats }

func (a *SparseArray) NBytes() int {
	return a.indices.NBytes() + a.values.NBytes() + scalarNBytes(a.fillValue)
}

func (a *SparseArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

// findPos binary-searches for logical index i (already offset-
// adjusted) in the indices child, returning its position in
// values/indices if present.
func (a *SparseArray) findPos(i int) (pos int, found bool) {
	target := uint64(i + a.indicesOffset)
	n := a.indices.Len()
	pos = sort.Search(n, func(k int) bool {
		return a.indices.ScalarAt(k).AsUint64() >= target
	})
	if pos < n && a.indices.ScalarAt(pos).AsUint64() == target {
		return pos, true
	}
	return pos, false
}

func (a *SparseArray) IsValid(i int) bool {
	a.checkIndex(i)
	if pos, found := a.findPos(i); found {
		return a.values.IsValid(pos)
	}
	return !a.fillValue.IsNull()
}

func (a *SparseArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if pos, found := a.findPos(i); found {
		return a.values.ScalarAt(pos)
	}
	return a.fillValue
}

// Slice retains indices/values unmodified and advances indicesOffset,
// per the Open Question resolution documented in DESIGN.md.
func (a *SparseArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	na := &SparseArray{
		indices:       a.indices,
		values:        a.values,
		fillValue:     a.fillValue,
		indicesOffset: a.indicesOffset + start,
		len:           stop - start,
	}
	na.stats = newStatsSet(na)
	return na
}

// Take gathers indices, re-mapping into the sparse overlay: for each
// requested logical index, binary search as scalar_at does. The
// result materializes as a flat array since there is no general way
// to express an arbitrary gather as a smaller Sparse overlay.
func (a *SparseArray) Take(indices []int) Array {
	out := make([]Scalar, len(indices))
	for i, idx := range indices {
		out[i] = a.ScalarAt(idx)
	}
	return buildFromScalars(a.DType(), out)
}

// Filter re-maps retained indices against the surviving positions
// (§4.9's "Sparse must re-map retained indices").
func (a *SparseArray) Filter(predicate Array) Array {
	if predicate.Len() != a.len {
		panic(invalidArgument("SparseArray.Filter: predicate len %d != array len %d", predicate.Len(), a.len))
	}
	var out []Scalar
	for i := 0; i < a.len; i++ {
		if predicate.IsValid(i) && predicate.ScalarAt(i).AsBool() {
			out = append(out, a.ScalarAt(i))
		}
	}
	return buildFromScalars(a.DType(), out)
}

func (a *SparseArray) children() []Array { return []Array{a.indices, a.values} }

func (a *SparseArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatNullCount:
		lo, hi := a.window()
		covered := hi - lo
		uncovered := 0
		if a.fillValue.IsNull() {
			uncovered = a.len - covered
		}
		return uncovered + a.nullsAmongValues(lo, hi), true
	case StatIsConstant:
		if a.indices.Len() == 0 {
			return true, true
		}
		return false, true
	default:
		return nil, false
	}
}

// window returns the [lo, hi) positions in indices/values that fall
// within this array's current [indicesOffset, indicesOffset+len)
// slice window. Slice (above) retains the full, un-narrowed indices
// and values children and only advances indicesOffset, so any stat
// that depends on "how many patches are visible" must search this
// window rather than use indices.Len(), which counts patches across
// the whole original, unsliced array.
func (a *SparseArray) window() (lo, hi int) {
	n := a.indices.Len()
	lo = sort.Search(n, func(k int) bool {
		return a.indices.ScalarAt(k).AsUint64() >= uint64(a.indicesOffset)
	})
	hi = sort.Search(n, func(k int) bool {
		return a.indices.ScalarAt(k).AsUint64() >= uint64(a.indicesOffset+a.len)
	})
	return lo, hi
}

func (a *SparseArray) nullsAmongValues(lo, hi int) int {
	n := 0
	for i := lo; i < hi; i++ {
		if !a.values.IsValid(i) {
			n++
		}
	}
	return n
}

var _ canonicalizer = (*SparseArray)(nil)

// canonicalize materializes a flat array: fillValue everywhere, then
// overwrite with values at their indices.
func (a *SparseArray) canonicalize() Array {
	out := make([]Scalar, a.len)
	for i := range out {
		out[i] = a.fillValue
	}
	for k := 0; k < a.indices.Len(); k++ {
		idx := int(a.indices.ScalarAt(k).AsUint64()) - a.indicesOffset
		if idx < 0 || idx >= a.len {
			continue
		}
		out[idx] = a.values.ScalarAt(k)
	}
	return buildFromScalars(a.DType(), out)
}
