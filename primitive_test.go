// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import (
	"testing"

	"github.com/nanocol/nanocol/internal/bitset"
)

func newI32(vals []int32, valid []bool) *PrimitiveArray {
	n := len(vals)
	data := make([]byte, n*4)
	for i, v := range vals {
		writeRaw(data, 4, i, rawFromScalar(I32, IntScalar(I32, int64(v))))
	}
	return NewPrimitiveArray(I32, NewBuffer(data), validityFromBools(valid), n)
}

func allTrue(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

func TestPrimitiveArrayScalarAtAndValidity(t *testing.T) {
	t.Parallel()
	valid := []bool{true, false, true}
	a := newI32([]int32{10, 0, 30}, valid)
	if a.ScalarAt(0).AsInt64() != 10 {
		t.Errorf("ScalarAt(0) = %d, want 10", a.ScalarAt(0).AsInt64())
	}
	if !a.ScalarAt(1).IsNull() {
		t.Errorf("ScalarAt(1) should be null")
	}
	if a.IsValid(1) {
		t.Errorf("IsValid(1) = true, want false")
	}
	if a.ScalarAt(2).AsInt64() != 30 {
		t.Errorf("ScalarAt(2) = %d, want 30", a.ScalarAt(2).AsInt64())
	}
}

func TestPrimitiveArraySliceIsWindowed(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 2, 3, 4, 5}, allTrue(5))
	s := a.Slice(1, 4).(*PrimitiveArray)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	want := []int64{2, 3, 4}
	for i, w := range want {
		if got := s.ScalarAt(i).AsInt64(); got != w {
			t.Errorf("Slice.ScalarAt(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestPrimitiveArrayOutOfBoundsPanics(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 2}, allTrue(2))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out of bounds access")
		}
	}()
	a.ScalarAt(5)
}

func TestPrimitiveArrayStats(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 2, 2, 5}, allTrue(4))
	min, ok := a.Stats().Min()
	if !ok || min.AsInt64() != 1 {
		t.Errorf("Min() = %v,%v want 1,true", min, ok)
	}
	max, ok := a.Stats().Max()
	if !ok || max.AsInt64() != 5 {
		t.Errorf("Max() = %v,%v want 5,true", max, ok)
	}
	if !a.Stats().IsSorted() {
		t.Error("IsSorted() = false, want true")
	}
	if a.Stats().IsStrictSorted() {
		t.Error("IsStrictSorted() = true, want false (duplicate 2)")
	}
	if rc, _ := a.Stats().RunCount(); rc != 3 {
		t.Errorf("RunCount() = %d, want 3", rc)
	}
}

func TestPrimitiveArrayConstantStat(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{7, 7, 7}, allTrue(3))
	if !a.Stats().IsConstant() {
		t.Error("IsConstant() = false, want true")
	}
	b := newI32([]int32{7, 8, 7}, allTrue(3))
	if b.Stats().IsConstant() {
		t.Error("IsConstant() = true, want false")
	}
}

func TestBoolArrayBasics(t *testing.T) {
	t.Parallel()
	var bits bitset.BitSet
	bits.Set(1)
	bits.Set(3)
	a := NewBoolArray(bits, AllValid(4), 4)
	want := []bool{false, true, false, true}
	for i, w := range want {
		if got := a.ScalarAt(i).AsBool(); got != w {
			t.Errorf("ScalarAt(%d) = %v, want %v", i, got, w)
		}
	}
	if tc, _ := a.Stats().TrueCount(); tc != 2 {
		t.Errorf("TrueCount() = %d, want 2", tc)
	}
}

func TestVarBinArrayUtf8RoundTrip(t *testing.T) {
	t.Parallel()
	a := buildFromScalars(Utf8(true), []Scalar{
		Utf8Scalar("abc"), NullScalar(Utf8(true)), Utf8Scalar("xyz"),
	}).(*VarBinArray)
	if a.ScalarAt(0).AsString() != "abc" {
		t.Errorf("ScalarAt(0) = %q, want abc", a.ScalarAt(0).AsString())
	}
	if !a.ScalarAt(1).IsNull() {
		t.Error("ScalarAt(1) should be null")
	}
	if a.ScalarAt(2).AsString() != "xyz" {
		t.Errorf("ScalarAt(2) = %q, want xyz", a.ScalarAt(2).AsString())
	}
}

func TestNullArrayAllNull(t *testing.T) {
	t.Parallel()
	a := NewNullArray(3)
	for i := 0; i < 3; i++ {
		if a.IsValid(i) {
			t.Errorf("IsValid(%d) = true, want false", i)
		}
		if !a.ScalarAt(i).IsNull() {
			t.Errorf("ScalarAt(%d) should be null", i)
		}
	}
	if nc := a.Stats().NullCount(); nc != 3 {
		t.Errorf("NullCount() = %d, want 3", nc)
	}
}
