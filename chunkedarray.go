// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "sort"

// ChunkedArray concatenates same-dtype chunks logically without
// copying them; ScalarAt binary-searches the cumulative chunk-length
// prefix to locate the owning chunk (wire id Chunked=6, §6).
type ChunkedArray struct {
	dtype   DType
	chunks  []Array
	lens    []int // cumulative lengths, lens[i] = sum of chunks[:i+1].Len()
	len     int
	stats   *StatsSet
}

// NewChunkedArray constructs a ChunkedArray from same-dtype chunks.
func NewChunkedArray(dtype DType, chunks []Array) *ChunkedArray {
	lens := make([]int, len(chunks))
	total := 0
	for i, c := range chunks {
		if !c.DType().Equal(dtype) {
			panic(dtypeMismatch(dtype, c.DType()))
		}
		total += c.Len()
		lens[i] = total
	}
	a := &ChunkedArray{dtype: dtype, chunks: chunks, lens: lens, len: total}
	a.stats = newStatsSet(a)
	return a
}

func (a *ChunkedArray) Kind() Kind       { return KindChunkedArray }
func (a *ChunkedArray) DType() DType     { return a.dtype }
func (a *ChunkedArray) Len() int         { return a.len }
func (a *ChunkedArray) Stats() *StatsSet { return a.stats }

func (a *ChunkedArray) NBytes() int {
	n := 0
	for _, c := range a.chunks {
		n += c.NBytes()
	}
	return n
}

// locate returns the chunk index owning logical index i and i's
// offset within that chunk.
func (a *ChunkedArray) locate(i int) (chunk, within int) {
	chunk = sort.Search(len(a.lens), func(k int) bool { return a.lens[k] > i })
	lo := 0
	if chunk > 0 {
		lo = a.lens[chunk-1]
	}
	return chunk, i - lo
}

func (a *ChunkedArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *ChunkedArray) IsValid(i int) bool {
	a.checkIndex(i)
	c, w := a.locate(i)
	return a.chunks[c].IsValid(w)
}

func (a *ChunkedArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	c, w := a.locate(i)
	return a.chunks[c].ScalarAt(w)
}

// Slice returns the logical window [start,stop), materialized as
// per-chunk sub-slices; unlike a single flat node this is not O(1)
// in the number of spanned chunks, but each spanned chunk's own
// Slice call is O(1).
func (a *ChunkedArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	if start == stop {
		return NewChunkedArray(a.dtype, nil)
	}
	firstChunk, firstWithin := a.locate(start)
	lastChunk, lastWithin := a.locate(stop - 1)

	var out []Array
	for c := firstChunk; c <= lastChunk; c++ {
		lo, hi := 0, a.chunks[c].Len()
		if c == firstChunk {
			lo = firstWithin
		}
		if c == lastChunk {
			hi = lastWithin + 1
		}
		out = append(out, a.chunks[c].Slice(lo, hi))
	}
	return NewChunkedArray(a.dtype, out)
}

func (a *ChunkedArray) children() []Array { return a.chunks }

func (a *ChunkedArray) computeStat(s Stat) (any, bool) {
	if s == StatNullCount {
		n := 0
		for i := 0; i < a.len; i++ {
			if !a.IsValid(i) {
				n++
			}
		}
		return n, true
	}
	return nil, false
}

var _ childArrays = (*ChunkedArray)(nil)

// ChunkedArray has no canonicalize method: IntoCanonical returns it
// unchanged rather than concatenating its chunks into one flat array,
// and compute.go's generic fallbacks read it element by element
// through ScalarAt.
