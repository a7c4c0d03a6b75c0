// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// ConstantArray represents n logical copies of a single scalar s
// (§4.2). Every capability is native and O(1) or O(len) only when the
// result itself must materialize len elements.
type ConstantArray struct {
	scalar Scalar
	len    int
	stats  *StatsSet
}

// NewConstantArray constructs a ConstantArray of n copies of s.
func NewConstantArray(s Scalar, n int) *ConstantArray {
	a := &ConstantArray{scalar: s, len: n}
	a.stats = newStatsSet(a)
	return a
}

func (a *ConstantArray) Kind() Kind       { return KindConstant }
func (a *ConstantArray) DType() DType     { return a.scalar.DType() }
func (a *ConstantArray) Len() int         { return a.len }
func (a *ConstantArray) Stats() *StatsSet { return a.stats }

// NBytes is O(1): a single boxed scalar regardless of len.
func (a *ConstantArray) NBytes() int { return scalarNBytes(a.scalar) }

func (a *ConstantArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *ConstantArray) IsValid(i int) bool {
	a.checkIndex(i)
	return !a.scalar.IsNull()
}

func (a *ConstantArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	return a.scalar
}

func (a *ConstantArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	return NewConstantArray(a.scalar, stop-start)
}

func (a *ConstantArray) Take(indices []int) Array {
	return NewConstantArray(a.scalar, len(indices))
}

func (a *ConstantArray) Filter(predicate Array) Array {
	if predicate.Len() != a.len {
		panic(invalidArgument("ConstantArray.Filter: predicate len %d != array len %d", predicate.Len(), a.len))
	}
	n := 0
	for i := 0; i < predicate.Len(); i++ {
		if predicate.IsValid(i) && predicate.ScalarAt(i).AsBool() {
			n++
		}
	}
	return NewConstantArray(a.scalar, n)
}

// Compare compares two Constants directly when rhs is also constant
// (§4.2); otherwise returns nil so compute.go falls back to
// canonicalizing the receiver.
func (a *ConstantArray) Compare(rhs Array, op CompareOp) Array {
	rc, ok := rhs.(*ConstantArray)
	if !ok {
		return nil
	}
	if a.len != rc.len {
		panic(invalidArgument("ConstantArray.Compare: length mismatch %d vs %d", a.len, rc.len))
	}
	result := compareScalars(a.scalar, rc.scalar, op)
	return NewConstantArray(result, a.len)
}

func (a *ConstantArray) And(rhs Array) Array {
	rc, ok := rhs.(*ConstantArray)
	if !ok {
		return nil
	}
	return NewConstantArray(threeValuedAnd(a.scalar, rc.scalar), a.len)
}

func (a *ConstantArray) Or(rhs Array) Array {
	rc, ok := rhs.(*ConstantArray)
	if !ok {
		return nil
	}
	return NewConstantArray(threeValuedOr(a.scalar, rc.scalar), a.len)
}

// SearchSorted implements §4.2's closed-form result: a constant array
// is trivially sorted, so the insertion point is 0 or n depending on
// how v compares to the constant.
func (a *ConstantArray) SearchSorted(v Scalar, side SearchSide) int {
	cmp, ok := v.Compare(a.scalar)
	if !ok { // v or the constant is null: nulls sort before every value
		if v.IsNull() && (side == SearchLeft || !a.scalar.IsNull()) {
			return 0
		}
		return a.len
	}
	switch {
	case cmp < 0:
		return 0
	case cmp > 0:
		return a.len
	default: // Equal
		if side == SearchLeft {
			return 0
		}
		return a.len
	}
}

func (a *ConstantArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatMin, StatMax:
		if a.scalar.IsNull() {
			return nil, false
		}
		return a.scalar, true
	case StatIsConstant, StatIsSorted, StatIsStrictSorted:
		return s != StatIsStrictSorted || a.len <= 1, true
	case StatRunCount:
		if a.len == 0 {
			return 0, true
		}
		return 1, true
	case StatTrueCount:
		if a.scalar.DType().Kind() != KindBool || a.scalar.IsNull() {
			return 0, true
		}
		if a.scalar.AsBool() {
			return a.len, true
		}
		return 0, true
	case StatNullCount:
		if a.scalar.IsNull() {
			return a.len, true
		}
		return 0, true
	default:
		return nil, false
	}
}

var _ canonicalizer = (*ConstantArray)(nil)

// canonicalize materializes n copies of the scalar into a flat array
// of the matching leaf variant.
func (a *ConstantArray) canonicalize() Array {
	return materializeConstant(a.scalar, a.len)
}

// compareScalars applies op to two non-null-aware scalars, returning
// a null scalar if either side is null (three-valued logic, §4.9).
func compareScalars(a, b Scalar, op CompareOp) Scalar {
	if a.IsNull() || b.IsNull() {
		return NullScalar(Bool(true))
	}
	cmp, ok := a.Compare(b)
	if !ok {
		return NullScalar(Bool(true))
	}
	var result bool
	switch op {
	case CompareEq:
		result = cmp == 0
	case CompareNotEq:
		result = cmp != 0
	case CompareGt:
		result = cmp > 0
	case CompareGte:
		result = cmp >= 0
	case CompareLt:
		result = cmp < 0
	case CompareLte:
		result = cmp <= 0
	}
	return BoolScalar(result)
}

// threeValuedAnd implements SQL-style three-valued AND: false
// dominates null (false AND null = false), else null propagates.
func threeValuedAnd(a, b Scalar) Scalar {
	if !a.IsNull() && !a.AsBool() {
		return BoolScalar(false)
	}
	if !b.IsNull() && !b.AsBool() {
		return BoolScalar(false)
	}
	if a.IsNull() || b.IsNull() {
		return NullScalar(Bool(true))
	}
	return BoolScalar(a.AsBool() && b.AsBool())
}

// threeValuedOr implements SQL-style three-valued OR: true dominates
// null (true OR null = true), else null propagates.
func threeValuedOr(a, b Scalar) Scalar {
	if !a.IsNull() && a.AsBool() {
		return BoolScalar(true)
	}
	if !b.IsNull() && b.AsBool() {
		return BoolScalar(true)
	}
	if a.IsNull() || b.IsNull() {
		return NullScalar(Bool(true))
	}
	return BoolScalar(a.AsBool() || b.AsBool())
}

// scalarNBytes estimates a boxed scalar's in-memory footprint for
// NBytes accounting; variable-width payloads count their actual bytes.
func scalarNBytes(s Scalar) int {
	if s.IsNull() {
		return 0
	}
	switch s.DType().Kind() {
	case KindPrimitive:
		return s.DType().PType().Width()
	case KindBool:
		return 1
	case KindUtf8:
		return len(s.AsString())
	case KindBinary:
		return len(s.AsBytes())
	case KindStruct:
		n := 0
		for _, f := range s.AsFields() {
			n += scalarNBytes(f)
		}
		return n
	default:
		return 0
	}
}
