// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

func TestCompressFrameOfReferenceRoundTrip(t *testing.T) {
	t.Parallel()
	src := newI32([]int32{1000, 1004, 1008, 1012}, allTrue(4))
	out, ok := CompressFrameOfReference(src)
	if !ok {
		t.Fatal("CompressFrameOfReference returned ok=false")
	}
	fo, ok := out.(*FrameOfReferenceArray)
	if !ok {
		t.Fatalf("result is %T, want *FrameOfReferenceArray", out)
	}
	for i := 0; i < src.Len(); i++ {
		if got, want := fo.ScalarAt(i).AsInt64(), src.ScalarAt(i).AsInt64(); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestCompressFrameOfReferenceAllEqualToMinCollapsesToConstant(t *testing.T) {
	t.Parallel()
	src := newI32([]int32{5, 5, 5}, allTrue(3))
	out, ok := CompressFrameOfReference(src)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if _, isConst := out.(*ConstantArray); !isConst {
		t.Fatalf("result is %T, want *ConstantArray", out)
	}
}

func TestCompressFrameOfReferenceAllNullCollapsesToNullConstant(t *testing.T) {
	t.Parallel()
	src := newI32([]int32{0, 0}, []bool{false, false})
	out, ok := CompressFrameOfReference(src)
	if !ok {
		t.Fatal("expected ok=true")
	}
	c, isConst := out.(*ConstantArray)
	if !isConst {
		t.Fatalf("result is %T, want *ConstantArray", out)
	}
	if !c.ScalarAt(0).IsNull() {
		t.Error("expected a null constant")
	}
}

func TestCompressFrameOfReferenceHandlesNegativeWrap(t *testing.T) {
	t.Parallel()
	// Values spanning a range that could overflow a naive signed
	// subtraction near the type's extremes; wrapping arithmetic must
	// still round-trip correctly.
	src := newI32([]int32{-2000000000, -1999999996, -1999999992}, allTrue(3))
	out, ok := CompressFrameOfReference(src)
	if !ok {
		t.Fatal("expected ok=true")
	}
	for i := 0; i < src.Len(); i++ {
		if got, want := out.ScalarAt(i).AsInt64(), src.ScalarAt(i).AsInt64(); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestRunEndArrayBasics(t *testing.T) {
	t.Parallel()
	ends := newU32Indices([]uint32{3, 5, 8})
	values := newI32([]int32{10, 20, 30}, allTrue(3))
	r := NewRunEndArray(ends, values)

	if r.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", r.Len())
	}
	want := []int64{10, 10, 10, 20, 20, 30, 30, 30}
	for i, w := range want {
		if got := r.ScalarAt(i).AsInt64(); got != w {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestRunEndArraySliceAdvancesOffset(t *testing.T) {
	t.Parallel()
	ends := newU32Indices([]uint32{3, 5, 8})
	values := newI32([]int32{10, 20, 30}, allTrue(3))
	r := NewRunEndArray(ends, values)

	s := r.Slice(2, 6).(*RunEndArray)
	if s.ends != r.ends || s.values != r.values {
		t.Error("Slice must retain the same ends/values children")
	}
	want := []int64{10, 20, 20, 30}
	for i, w := range want {
		if got := s.ScalarAt(i).AsInt64(); got != w {
			t.Errorf("sliced ScalarAt(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestCompressRunEndThresholdGating(t *testing.T) {
	t.Parallel()
	// 3 runs over 9 elements -> average run length 3, above default 2.0.
	src := newI32([]int32{1, 1, 1, 2, 2, 2, 3, 3, 3}, allTrue(9))
	out, ok := CompressRunEnd(src, 2.0)
	if !ok {
		t.Fatal("expected ok=true for highly run-compressible input")
	}
	for i := 0; i < src.Len(); i++ {
		if got, want := out.ScalarAt(i).AsInt64(), src.ScalarAt(i).AsInt64(); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}

	// No runs at all: every element distinct, must reject.
	distinct := newI32([]int32{1, 2, 3, 4}, allTrue(4))
	if _, ok := CompressRunEnd(distinct, 2.0); ok {
		t.Error("expected ok=false for a run-incompressible input")
	}
}
