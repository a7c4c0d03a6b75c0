// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// StructArray holds named, equal-length field arrays plus its own
// Validity (a struct element can be null independently of its
// fields, per the original source's StructArray semantics — SPEC_FULL
// supplemented item 1).
type StructArray struct {
	dtype    DType
	fields   []Array
	offset   int
	len      int
	validity Validity
	stats    *StatsSet
}

// NewStructArray constructs a StructArray. names/fields follow dtype's
// field order; every field array must have length n.
func NewStructArray(dtype DType, fields []Array, validity Validity, n int) *StructArray {
	if dtype.Kind() != KindStruct {
		panic(dtypeMismatch(Struct(nil, nil), dtype))
	}
	if len(fields) != len(dtype.FieldDTypes()) {
		panic(invalidArgument("StructArray: %d fields, dtype wants %d", len(fields), len(dtype.FieldDTypes())))
	}
	for i, f := range fields {
		if f.Len() != n {
			panic(invalidArgument("StructArray: field %d has len %d, want %d", i, f.Len(), n))
		}
	}
	if validity.Len() != n {
		panic(invalidArgument("StructArray: validity len %d != array len %d", validity.Len(), n))
	}
	a := &StructArray{dtype: dtype, fields: fields, len: n, validity: validity}
	a.stats = newStatsSet(a)
	return a
}

func (a *StructArray) Kind() Kind       { return KindStructArray }
func (a *StructArray) DType() DType     { return a.dtype }
func (a *StructArray) Len() int         { return a.len }
func (a *StructArray) Stats() *StatsSet { return a.stats }

func (a *StructArray) NBytes() int {
	n := 0
	for _, f := range a.fields {
		n += f.NBytes()
	}
	return n
}

func (a *StructArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *StructArray) IsValid(i int) bool {
	a.checkIndex(i)
	return a.validity.IsValid(a.offset + i)
}

// ScalarAt composes a StructScalar from each field's scalar at i, per
// original_source's struct_.rs scalar_at.
func (a *StructArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if !a.validity.IsValid(a.offset + i) {
		return NullScalar(a.dtype)
	}
	vals := make([]Scalar, len(a.fields))
	for j, f := range a.fields {
		vals[j] = f.ScalarAt(a.offset + i)
	}
	return StructScalar(a.dtype, vals)
}

// Slice slices every field array, plus this node's own validity
// window: one Slice call per field, so the cost per field is that
// field's own Slice cost (O(1) for most variants, not for BitPacked).
func (a *StructArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	sliced := make([]Array, len(a.fields))
	for i, f := range a.fields {
		sliced[i] = f.Slice(a.offset+start, a.offset+stop)
	}
	na := &StructArray{
		dtype:    a.dtype,
		fields:   sliced,
		len:      stop - start,
		validity: a.validity.Slice(a.offset+start, a.offset+stop),
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *StructArray) children() []Array { return a.fields }

func (a *StructArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatNullCount:
		n := 0
		for i := 0; i < a.len; i++ {
			if !a.validity.IsValid(a.offset + i) {
				n++
			}
		}
		return n, true
	case StatIsConstant:
		if a.len <= 1 {
			return true, true
		}
		first := a.ScalarAt(0)
		for i := 1; i < a.len; i++ {
			if !first.Equal(a.ScalarAt(i)) {
				return false, true
			}
		}
		return true, true
	default:
		return nil, false
	}
}

var (
	_ canonicalizer = (*StructArray)(nil)
	_ childArrays   = (*StructArray)(nil)
)

func (a *StructArray) canonicalize() Array { return a }
