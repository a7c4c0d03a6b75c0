// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

func newStructAB(a, b *PrimitiveArray, valid []bool) *StructArray {
	dtype := Struct([]string{"a", "b"}, []DType{Primitive(I32, true), Primitive(I32, true)})
	return NewStructArray(dtype, []Array{a, b}, validityFromBools(valid), a.Len())
}

func TestNewStructArrayFieldLenMismatchPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched field length")
		}
	}()
	dtype := Struct([]string{"a", "b"}, []DType{Primitive(I32, true), Primitive(I32, true)})
	a := newI32([]int32{1, 2, 3}, allTrue(3))
	b := newI32([]int32{1, 2}, allTrue(2))
	NewStructArray(dtype, []Array{a, b}, validityFromBools(allTrue(3)), 3)
}

func TestNewStructArrayFieldCountMismatchPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched field count")
		}
	}()
	dtype := Struct([]string{"a", "b"}, []DType{Primitive(I32, true), Primitive(I32, true)})
	a := newI32([]int32{1, 2, 3}, allTrue(3))
	NewStructArray(dtype, []Array{a}, validityFromBools(allTrue(3)), 3)
}

func TestStructArrayScalarAtComposesFields(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 2, 3}, allTrue(3))
	b := newI32([]int32{10, 20, 30}, allTrue(3))
	s := newStructAB(a, b, allTrue(3))

	sv := s.ScalarAt(1)
	if sv.IsNull() {
		t.Fatal("ScalarAt(1) should not be null")
	}
	fields := sv.AsFields()
	if fields[0].AsInt64() != 2 || fields[1].AsInt64() != 20 {
		t.Errorf("ScalarAt(1) fields = [%d,%d], want [2,20]", fields[0].AsInt64(), fields[1].AsInt64())
	}
}

func TestStructArrayScalarAtNullRow(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 2, 3}, allTrue(3))
	b := newI32([]int32{10, 20, 30}, allTrue(3))
	s := newStructAB(a, b, []bool{true, false, true})

	if !s.ScalarAt(1).IsNull() {
		t.Error("ScalarAt(1) should be null when the struct row itself is null")
	}
}

func TestStructArraySliceSlicesFieldsAndValidity(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 2, 3, 4}, allTrue(4))
	b := newI32([]int32{10, 20, 30, 40}, allTrue(4))
	s := newStructAB(a, b, []bool{true, true, false, true})

	sliced := s.Slice(1, 4).(*StructArray)
	if sliced.Len() != 3 {
		t.Fatalf("Slice len = %d, want 3", sliced.Len())
	}
	if !sliced.IsValid(0) || sliced.IsValid(1) || !sliced.IsValid(2) {
		t.Error("Slice did not carry the validity window correctly")
	}
	got := sliced.ScalarAt(0).AsFields()
	if got[0].AsInt64() != 2 || got[1].AsInt64() != 20 {
		t.Errorf("sliced ScalarAt(0) fields = [%d,%d], want [2,20]", got[0].AsInt64(), got[1].AsInt64())
	}
}

func TestStructArrayChildren(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1}, allTrue(1))
	b := newI32([]int32{2}, allTrue(1))
	s := newStructAB(a, b, allTrue(1))
	kids := s.children()
	if len(kids) != 2 || kids[0] != Array(a) || kids[1] != Array(b) {
		t.Error("children() should return the field arrays in order")
	}
}

func TestStructArrayStatsNullCountAndConstant(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 1}, allTrue(2))
	b := newI32([]int32{2, 2}, allTrue(2))
	s := newStructAB(a, b, []bool{true, false})
	if nc := s.Stats().NullCount(); nc != 1 {
		t.Errorf("NullCount() = %d, want 1", nc)
	}
	if s.Stats().IsConstant() {
		t.Error("IsConstant() = true, want false (row 1 is null, row 0 is not)")
	}
}
