// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "github.com/nanocol/nanocol/internal/bitset"

// ValidityKind tags a Validity's representation.
type ValidityKind uint8

const (
	AllValidKind ValidityKind = iota
	AllInvalidKind
	BitmapKind
)

// Validity is every array's logical null mask: AllValid(n), AllInvalid(n),
// or an explicit Bitmap (LSB-first, 1 = valid) of length n. Every array
// has a well-defined logical validity of length array.Len().
//
// The Bitmap representation is backed by internal/bitset.BitSet, the
// same popcount-capable word-slice bitset the teacher (gaissmai/bart)
// implements for its CIDR tries — adapted here unchanged in algorithm,
// repurposed as a null mask instead of a route-stride mask.
type Validity struct {
	kind ValidityKind
	n    int
	bits bitset.BitSet
}

// AllValid returns a validity mask of length n with every element valid.
func AllValid(n int) Validity { return Validity{kind: AllValidKind, n: n} }

// AllInvalid returns a validity mask of length n with every element null.
func AllInvalid(n int) Validity { return Validity{kind: AllInvalidKind, n: n} }

// NewBitmapValidity returns an explicit Bitmap validity of length n
// from bits, where bit i set means element i is valid.
func NewBitmapValidity(bits bitset.BitSet, n int) Validity {
	return Validity{kind: BitmapKind, n: n, bits: bits}
}

func (v Validity) Kind() ValidityKind { return v.kind }
func (v Validity) Len() int           { return v.n }

// IsValid reports whether element i is non-null.
func (v Validity) IsValid(i int) bool {
	if i < 0 || i >= v.n {
		panic("nanocol: Validity.IsValid index out of range")
	}
	switch v.kind {
	case AllValidKind:
		return true
	case AllInvalidKind:
		return false
	default:
		return v.bits.Test(uint(i))
	}
}

// NullCount returns the number of null (invalid) elements.
func (v Validity) NullCount() int {
	switch v.kind {
	case AllValidKind:
		return 0
	case AllInvalidKind:
		return v.n
	default:
		return v.n - v.bits.Count()
	}
}

// Slice returns the logical validity of the window [start,stop).
func (v Validity) Slice(start, stop int) Validity {
	switch v.kind {
	case AllValidKind:
		return AllValid(stop - start)
	case AllInvalidKind:
		return AllInvalid(stop - start)
	default:
		n := stop - start
		var nb bitset.BitSet
		for i := 0; i < n; i++ {
			if v.bits.Test(uint(start + i)) {
				nb.Set(uint(i))
			}
		}
		return NewBitmapValidity(nb, n)
	}
}

// Bitmap materializes v as an explicit bitset, regardless of its
// current representation. Used by validityAnd, which needs a concrete
// bit-level view.
func (v Validity) Bitmap() bitset.BitSet {
	switch v.kind {
	case AllValidKind:
		var b bitset.BitSet
		for i := 0; i < v.n; i++ {
			b.Set(uint(i))
		}
		return b
	case AllInvalidKind:
		return bitset.BitSet(nil)
	default:
		return v.bits
	}
}

// validityAnd computes the three-valued-logic validity of a binary op:
// the result is null wherever either input is null.
func validityAnd(a, b Validity) Validity {
	if a.kind == AllValidKind && b.kind == AllValidKind {
		return AllValid(a.n)
	}
	if a.kind == AllInvalidKind || b.kind == AllInvalidKind {
		return AllInvalid(a.n)
	}
	ab, bb := a.Bitmap().Clone(), b.Bitmap()
	ab.InPlaceIntersection(bb)
	return NewBitmapValidity(ab, a.n)
}
