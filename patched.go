// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "sort"

// PatchedArray overlays explicit (index, value) exceptions atop a
// dense data child, rather than Sparse's implicit scalar fill (§4.3's
// "Patched variant"). Produced by CompressBitPacked for the minority
// of values that do not fit its bit width.
// Kept as a distinct wire kind from Sparse per the Open Question
// resolution in DESIGN.md: original_source's patched.rs is a wholly
// separate struct from vortex-array's SparseArray, not a unification.
type PatchedArray struct {
	indices       Array // unsigned integer PrimitiveArray, ascending
	values        Array // exception values, same dtype as data
	data          Array // dense base-codec result, same dtype, same len
	indicesOffset int
	stats         *StatsSet
}

// NewPatchedArray constructs a PatchedArray. indices.Len() must equal
// values.Len(); data.DType() must equal values.DType().
func NewPatchedArray(indices, values, data Array) *PatchedArray {
	if indices.Len() != values.Len() {
		panic(invalidArgument("PatchedArray: indices len %d != values len %d", indices.Len(), values.Len()))
	}
	if !values.DType().Equal(data.DType()) {
		panic(dtypeMismatch(data.DType(), values.DType()))
	}
	if indices.Len() > 0 {
		last := int(indices.ScalarAt(indices.Len() - 1).AsUint64())
		if last >= data.Len() {
			panic(invalidArgument("PatchedArray: last index %d >= len %d", last, data.Len()))
		}
	}
	a := &PatchedArray{indices: indices, values: values, data: data}
	a.stats = newStatsSet(a)
	return a
}

func (a *PatchedArray) Kind() Kind       { return KindPatched }
func (a *PatchedArray) DType() DType     { return a.data.DType() }
func (a *PatchedArray) Len() int         { return a.data.Len() }
func (a *PatchedArray) Stats() *StatsSet { return a.stats }

func (a *PatchedArray) NBytes() int {
	return a.indices.NBytes() + a.values.NBytes() + a.data.NBytes()
}

func (a *PatchedArray) checkIndex(i int) {
	if i < 0 || i >= a.Len() {
		panic(outOfBounds(i, 0, a.Len()))
	}
}

func (a *PatchedArray) findPos(i int) (pos int, found bool) {
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

func (a *PatchedArray) IsValid(i int) bool {
	a.checkIndex(i)
	if pos, found := a.findPos(i); found {
		return a.values.IsValid(pos)
	}
	return a.data.IsValid(i)
}

// ScalarAt returns values[pos] on a patch hit, else data[i] (§4.3).
func (a *PatchedArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if pos, found := a.findPos(i); found {
		return a.values.ScalarAt(pos)
	}
	return a.data.ScalarAt(i)
}

// Slice retains indices/values/data and advances indicesOffset,
// consistent with Sparse's slicing contract.
func (a *PatchedArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.Len() {
		panic(outOfBounds(stop, start, a.Len()))
	}
	na := &PatchedArray{
		indices:       a.indices,
		values:        a.values,
		data:          a.data.Slice(start, stop),
		indicesOffset: a.indicesOffset + start,
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *PatchedArray) children() []Array { return []Array{a.indices, a.values, a.data} }

func (a *PatchedArray) computeStat(s Stat) (any, bool) {
	if s == StatNullCount {
		n := 0
		for i := 0; i < a.Len(); i++ {
			if !a.IsValid(i) {
				n++
			}
		}
		return n, true
	}
	return nil, false
}

var _ canonicalizer = (*PatchedArray)(nil)

// canonicalize starts from the canonicalized data child and overwrites
// patch positions with their exception values.
func (a *PatchedArray) canonicalize() Array {
	base := IntoCanonical(a.data)
	n := base.Len()
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = base.ScalarAt(i)
	}
	for k := 0; k < a.indices.Len(); k++ {
		idx := int(a.indices.ScalarAt(k).AsUint64()) - a.indicesOffset
		if idx < 0 || idx >= n {
			continue
		}
		out[idx] = a.values.ScalarAt(k)
	}
	return buildFromScalars(a.DType(), out)
}
