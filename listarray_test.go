// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import (
	"encoding/binary"
	"testing"
)

// newI32List builds a ListArray over elements, with rows delimited by
// the given offset boundaries (len(bounds) == n+1).
func newI32List(elements *PrimitiveArray, bounds []uint32, valid []bool) *ListArray {
	buf := make([]byte, len(bounds)*4)
	for i, b := range bounds {
		binary.LittleEndian.PutUint32(buf[i*4:], b)
	}
	n := len(bounds) - 1
	dtype := List(Primitive(I32, true), true)
	return NewListArray(dtype, elements, NewBuffer(buf), validityFromBools(valid), n)
}

func TestListArrayRowSlicesElements(t *testing.T) {
	t.Parallel()
	elems := newI32([]int32{1, 2, 3, 4, 5, 6}, allTrue(6))
	l := newI32List(elems, []uint32{0, 2, 2, 6}, allTrue(3))

	row0 := l.Row(0)
	if row0.Len() != 2 || row0.ScalarAt(0).AsInt64() != 1 || row0.ScalarAt(1).AsInt64() != 2 {
		t.Errorf("Row(0) = %v, want [1,2]", row0)
	}
	if l.Row(1).Len() != 0 {
		t.Errorf("Row(1) len = %d, want 0", l.Row(1).Len())
	}
	row2 := l.Row(2)
	if row2.Len() != 4 || row2.ScalarAt(0).AsInt64() != 3 {
		t.Errorf("Row(2) = %v, want starting at 3, len 4", row2)
	}
}

func TestListArrayScalarAtNullVsPanic(t *testing.T) {
	t.Parallel()
	elems := newI32([]int32{1, 2, 3}, allTrue(3))
	l := newI32List(elems, []uint32{0, 3}, []bool{false})

	if !l.ScalarAt(0).IsNull() {
		t.Error("ScalarAt on a null row should return a null scalar")
	}

	elems2 := newI32([]int32{1, 2, 3}, allTrue(3))
	l2 := newI32List(elems2, []uint32{0, 3}, []bool{true})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling ScalarAt on a non-null list row")
		}
	}()
	l2.ScalarAt(0)
}

func TestListArraySliceSharesElementsAndOffsets(t *testing.T) {
	t.Parallel()
	elems := newI32([]int32{10, 20, 30, 40, 50}, allTrue(5))
	l := newI32List(elems, []uint32{0, 1, 3, 5}, allTrue(3))

	sliced := l.Slice(1, 3).(*ListArray)
	if sliced.elements != Array(elems) {
		t.Error("Slice should share the elements child, not copy it")
	}
	if &sliced.offsets.data[0] != &l.offsets.data[0] {
		t.Error("Slice should share the offsets buffer, not copy it")
	}
	row0 := sliced.Row(0)
	if row0.Len() != 2 || row0.ScalarAt(0).AsInt64() != 20 {
		t.Errorf("sliced Row(0) = %v, want starting at 20, len 2", row0)
	}
}

func TestListArrayChildren(t *testing.T) {
	t.Parallel()
	elems := newI32([]int32{1, 2}, allTrue(2))
	l := newI32List(elems, []uint32{0, 2}, allTrue(1))
	kids := l.children()
	if len(kids) != 1 || kids[0] != Array(elems) {
		t.Error("children() should return the elements array")
	}
}

func TestListArrayNullCount(t *testing.T) {
	t.Parallel()
	elems := newI32([]int32{1, 2, 3}, allTrue(3))
	l := newI32List(elems, []uint32{0, 1, 2, 3}, []bool{true, false, true})
	if nc := l.Stats().NullCount(); nc != 1 {
		t.Errorf("NullCount() = %d, want 1", nc)
	}
}
