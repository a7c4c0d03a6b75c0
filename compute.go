// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// Compute Dispatch (§4.9): for each operation, try the receiver's
// native capability first; if absent, canonicalize and retry against
// the flat fallback. Native implementations preserve compression; the
// flat path is always correct.

// ScalarAt returns a.ScalarAt(i); every Array implements it natively,
// so there is no fallback path here — this wrapper exists purely so
// callers route through compute.go like every other operation.
func ScalarAt(a Array, i int) Scalar { return a.ScalarAt(i) }

// Slice returns a.Slice(start,stop) via the Slicer capability,
// falling back to canonicalize-then-slice when absent.
func Slice(a Array, start, stop int) Array {
	if s, ok := a.(Slicer); ok {
		return s.Slice(start, stop)
	}
	return IntoCanonical(a).(Slicer).Slice(start, stop)
}

// Compare dispatches a binary comparison, honoring native Comparer
// capability when both sides cooperate; falls back to the generic
// element-wise comparator over canonicalized operands (§4.9).
func Compare(lhs, rhs Array, op CompareOp) Array {
	if c, ok := lhs.(Comparer); ok {
		if out := c.Compare(rhs, op); out != nil {
			return out
		}
	}
	return compareGeneric(IntoCanonical(lhs), IntoCanonical(rhs), op)
}

func compareGeneric(lhs, rhs Array, op CompareOp) Array {
	if lhs.Len() != rhs.Len() {
		panic(invalidArgument("Compare: length mismatch %d vs %d", lhs.Len(), rhs.Len()))
	}
	n := lhs.Len()
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = compareScalars(lhs.ScalarAt(i), rhs.ScalarAt(i), op)
	}
	return buildFromScalars(Bool(true), out)
}

// And computes three-valued-logic AND over two boolean arrays.
func And(lhs, rhs Array) Array {
	if a, ok := lhs.(Ander); ok {
		if out := a.And(rhs); out != nil {
			return out
		}
	}
	return boolOpGeneric(IntoCanonical(lhs), IntoCanonical(rhs), threeValuedAnd)
}

// Or computes three-valued-logic OR over two boolean arrays.
func Or(lhs, rhs Array) Array {
	if o, ok := lhs.(Orer); ok {
		if out := o.Or(rhs); out != nil {
			return out
		}
	}
	return boolOpGeneric(IntoCanonical(lhs), IntoCanonical(rhs), threeValuedOr)
}

func boolOpGeneric(lhs, rhs Array, op func(a, b Scalar) Scalar) Array {
	if lhs.Len() != rhs.Len() {
		panic(invalidArgument("boolean op: length mismatch %d vs %d", lhs.Len(), rhs.Len()))
	}
	n := lhs.Len()
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = op(lhs.ScalarAt(i), rhs.ScalarAt(i))
	}
	return buildFromScalars(Bool(true), out)
}

// Filter returns a same-dtype array holding the elements where
// predicate is true (§4.9). Constant short-circuits; Sparse re-maps
// retained indices — both handled by the native Filterer capability
// when present.
func Filter(a Array, predicate Array) Array {
	if f, ok := a.(Filterer); ok {
		if out := f.Filter(predicate); out != nil {
			return out
		}
	}
	return filterGeneric(IntoCanonical(a), predicate)
}

func filterGeneric(a Array, predicate Array) Array {
	if predicate.Len() != a.Len() {
		panic(invalidArgument("Filter: predicate len %d != array len %d", predicate.Len(), a.Len()))
	}
	var out []Scalar
	for i := 0; i < a.Len(); i++ {
		if predicate.IsValid(i) && predicate.ScalarAt(i).AsBool() {
			out = append(out, a.ScalarAt(i))
		}
	}
	return buildFromScalars(a.DType(), out)
}

// SearchSorted returns the insertion point for v in a (assumed non-
// decreasing) array, honoring the native SearchSorter capability when
// present, else falling back to a binary search over the canonicalized
// form (every canonical leaf provides the random access it needs via
// ScalarAt, so sort.Search-equivalent logic is used directly here).
func SearchSorted(a Array, v Scalar, side SearchSide) int {
	if s, ok := a.(SearchSorter); ok {
		return s.SearchSorted(v, side)
	}
	return searchSortedGeneric(IntoCanonical(a), v, side)
}

func searchSortedGeneric(a Array, v Scalar, side SearchSide) int {
	if v.IsNull() { // nulls sort before every value
		if side == SearchLeft {
			return 0
		}
		i := 0
		for i < a.Len() && !a.IsValid(i) {
			i++
		}
		return i
	}
	lo, hi := 0, a.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		cmp, ok := a.ScalarAt(mid).Compare(v)
		less := !ok || cmp < 0 // nulls sort before every value
		if side == SearchLeft {
			if less {
				lo = mid + 1
			} else {
				hi = mid
			}
		} else {
			if ok && cmp <= 0 {
				lo = mid + 1
			} else if !ok {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
	}
	return lo
}
