// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// Kind tags an Array node's encoding. It is a closed set: every array
// in the tree is exactly one of these variants, mirroring the
// teacher's tagged-node dispatch (noder.go's kind switch) rather than
// an open plugin interface — new encodings are added here, not via
// third-party implementations of Array.
type Kind uint8

const (
	KindNullArray Kind = iota
	KindBoolArray
	KindPrimitiveArray
	KindUtf8Array
	KindBinaryArray
	KindStructArray
	KindListArray
	KindChunkedArray
	KindExtensionArray
	KindConstant
	KindSparse
	KindPatched
	KindFrameOfReference
	KindDictionary
	KindRunEnd
	KindBitPacked
)

func (k Kind) String() string {
	names := [...]string{
		"Null", "Bool", "Primitive", "Utf8", "Binary", "Struct", "List",
		"Chunked", "Extension", "Constant", "Sparse", "Patched",
		"FrameOfReference", "Dictionary", "RunEnd", "BitPacked",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Kind(?)"
}

// Array is the polymorphic array node every encoding implements. Every
// variant must report len() in O(1), stable across slicing, and keep
// its own dtype consistent with its codec's schema (§4 in SPEC_FULL.md).
type Array interface {
	statsComputer

	// Kind reports this node's encoding tag.
	Kind() Kind

	// DType returns the array's logical type.
	DType() DType

	// Len returns the number of logical elements. O(1).
	Len() int

	// NBytes returns the recursive sum of owned buffer bytes, plus
	// children's NBytes. Used by the compression planner to compare
	// candidate encodings.
	NBytes() int

	// Stats returns the handle to this node's lazy statistics cache.
	Stats() *StatsSet

	// ScalarAt returns the semantic value at logical index i, honoring
	// the null mask and any codec overlay. Panics with OutOfBoundsError
	// if i is outside [0, Len()).
	ScalarAt(i int) Scalar

	// IsValid reports whether element i is non-null. Equivalent to
	// !ScalarAt(i).IsNull() but avoids materializing a Scalar.
	IsValid(i int) bool
}

// Slicer is an optional capability: O(1) logical slicing. Absent for
// no variant in this implementation (every array slices natively),
// but kept as a distinct interface per spec.md's "any capability may
// be absent" rule so compute.go's capability probes are uniform.
type Slicer interface {
	// Slice returns the window [start,stop) as a node of the same
	// dtype and length stop-start. Requires 0 <= start <= stop <= Len().
	Slice(start, stop int) Array
}

// Taker is an optional capability: native take(indices).
type Taker interface {
	// Take returns a same-dtype array of length len(indices), gathering
	// element indices[j] into position j. indices must be valid
	// logical indices into the receiver.
	Take(indices []int) Array
}

// Comparer is an optional capability: native compare(rhs, op).
type Comparer interface {
	// Compare returns a boolean array of length Len(). Null
	// propagates per three-valued logic: null wherever either side is
	// null at that position.
	Compare(rhs Array, op CompareOp) Array
}

// Ander is an optional capability: native three-valued AND.
type Ander interface {
	And(rhs Array) Array
}

// Orer is an optional capability: native three-valued OR.
type Orer interface {
	Or(rhs Array) Array
}

// Filterer is an optional capability: native filter(predicate).
type Filterer interface {
	// Filter returns a same-dtype array holding the elements where
	// predicate is true (non-null and true). predicate must have the
	// same length as the receiver.
	Filter(predicate Array) Array
}

// SearchSorter is an optional capability: native search over a sorted
// array. ConstantArray implements it; every other array goes through
// compute.go's generic binary-search fallback.
type SearchSorter interface {
	// SearchSorted returns the insertion point for v in a non-
	// decreasing array, per side (SearchLeft/SearchRight). Nulls sort
	// before every non-null value.
	SearchSorted(v Scalar, side SearchSide) int
}

// CompareOp enumerates the comparison operators of Compute Dispatch.
type CompareOp uint8

const (
	CompareEq CompareOp = iota
	CompareNotEq
	CompareGt
	CompareGte
	CompareLt
	CompareLte
)

// SearchSide selects which boundary SearchSorted resolves to when v
// occurs multiple times.
type SearchSide uint8

const (
	SearchLeft SearchSide = iota
	SearchRight
)

// canonicalizer is implemented by codec nodes (Constant, Sparse,
// Patched, FrameOfReference, Dictionary, RunEnd, BitPacked) that wrap
// a logical value in an encoded representation and must be able to
// produce their flat, primitive/bool/struct equivalent on demand —
// used both by canonical.go and as the universal fallback when an
// optional capability is absent.
type canonicalizer interface {
	canonicalize() Array
}

// childArrays exposes a node's owned children, for generic tree walks
// (NBytes accumulation, the planner's recursive step, dumper.go/
// jsonify.go's tree printers). Leaf variants (Primitive, Bool, VarBin,
// Null) and Constant do not implement it.
type childArrays interface {
	children() []Array
}
