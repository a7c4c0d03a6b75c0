// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

func TestCompareGenericThreeValuedNulls(t *testing.T) {
	t.Parallel()
	lhs := newI32([]int32{1, 2, 0}, []bool{true, true, false})
	rhs := newI32([]int32{1, 3, 5}, allTrue(3))
	out := Compare(lhs, rhs, CompareEq)
	if !out.ScalarAt(0).AsBool() {
		t.Error("Compare(1,1,Eq) = false, want true")
	}
	if out.ScalarAt(1).AsBool() {
		t.Error("Compare(2,3,Eq) = true, want false")
	}
	if !out.ScalarAt(2).IsNull() {
		t.Error("Compare with a null operand should be null")
	}
}

func TestCompareConstantNativeFastPath(t *testing.T) {
	t.Parallel()
	lhs := NewConstantArray(IntScalar(I32, 5), 3)
	rhs := NewConstantArray(IntScalar(I32, 5), 3)
	out := Compare(lhs, rhs, CompareEq)
	if _, ok := out.(*ConstantArray); !ok {
		t.Fatalf("Compare(Constant,Constant) should stay constant, got %T", out)
	}
	for i := 0; i < 3; i++ {
		if !out.ScalarAt(i).AsBool() {
			t.Errorf("ScalarAt(%d) = false, want true", i)
		}
	}
}

func TestAndOrThreeValuedLogic(t *testing.T) {
	t.Parallel()
	falseArr := NewConstantArray(BoolScalar(false), 1)
	nullArr := NewConstantArray(NullScalar(Bool(true)), 1)
	trueArr := NewConstantArray(BoolScalar(true), 1)

	if And(falseArr, nullArr).ScalarAt(0).AsBool() != false {
		t.Error("false AND null should be false")
	}
	if !Or(trueArr, nullArr).ScalarAt(0).AsBool() {
		t.Error("true OR null should be true")
	}
	if !And(trueArr, nullArr).ScalarAt(0).IsNull() {
		t.Error("true AND null should be null")
	}
}

func TestFilterDropsFalseAndNull(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{10, 20, 30, 40}, allTrue(4))
	pred := buildFromScalars(Bool(true), []Scalar{
		BoolScalar(true), BoolScalar(false), NullScalar(Bool(true)), BoolScalar(true),
	})
	out := Filter(a, pred)
	if out.Len() != 2 {
		t.Fatalf("Filter len = %d, want 2", out.Len())
	}
	if out.ScalarAt(0).AsInt64() != 10 || out.ScalarAt(1).AsInt64() != 40 {
		t.Errorf("Filter result = [%d,%d], want [10,40]", out.ScalarAt(0).AsInt64(), out.ScalarAt(1).AsInt64())
	}
}

func TestSearchSortedLeftRight(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{1, 3, 3, 3, 5}, allTrue(5))
	if got := SearchSorted(a, IntScalar(I32, 3), SearchLeft); got != 1 {
		t.Errorf("SearchSorted(left,3) = %d, want 1", got)
	}
	if got := SearchSorted(a, IntScalar(I32, 3), SearchRight); got != 4 {
		t.Errorf("SearchSorted(right,3) = %d, want 4", got)
	}
	if got := SearchSorted(a, IntScalar(I32, 0), SearchLeft); got != 0 {
		t.Errorf("SearchSorted(left,0) = %d, want 0", got)
	}
	if got := SearchSorted(a, IntScalar(I32, 9), SearchLeft); got != 5 {
		t.Errorf("SearchSorted(left,9) = %d, want 5", got)
	}
}

func TestSearchSortedConstantNativeFastPath(t *testing.T) {
	t.Parallel()
	a := NewConstantArray(IntScalar(I32, 7), 10)
	if got := SearchSorted(a, IntScalar(I32, 7), SearchLeft); got != 0 {
		t.Errorf("SearchSorted(left,7) = %d, want 0", got)
	}
	if got := SearchSorted(a, IntScalar(I32, 7), SearchRight); got != 10 {
		t.Errorf("SearchSorted(right,7) = %d, want 10", got)
	}
}

func TestSliceDispatchesToBitPackedNativeSlicer(t *testing.T) {
	t.Parallel()
	vals := make([]int32, 40)
	for i := range vals {
		vals[i] = int32(i % 3)
	}
	src := newI32(vals, allTrue(len(vals)))
	packed, ok := CompressBitPacked(src, 2)
	if !ok {
		t.Fatal("expected ok=true")
	}
	// BitPackedArray.Slice materializes rather than sharing state, but
	// still must satisfy the Slicer contract via compute.go's dispatch.
	out := Slice(packed, 5, 10)
	for i := 0; i < 5; i++ {
		if got, want := out.ScalarAt(i).AsInt64(), int64(vals[5+i]); got != want {
			t.Errorf("Slice.ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestTakeDispatchesToNativeTaker(t *testing.T) {
	t.Parallel()
	a := NewConstantArray(IntScalar(I32, 9), 5)
	out := Take(a, []int{0, 1, 2})
	if _, ok := out.(*ConstantArray); !ok {
		t.Fatalf("Take(Constant) should stay constant, got %T", out)
	}
	if out.Len() != 3 {
		t.Errorf("Take len = %d, want 3", out.Len())
	}
}

func TestTakeGenericFallback(t *testing.T) {
	t.Parallel()
	a := newI32([]int32{10, 20, 30, 40}, allTrue(4))
	out := Take(a, []int{3, 0, 0, 2})
	want := []int64{40, 10, 10, 30}
	for i, w := range want {
		if got := out.ScalarAt(i).AsInt64(); got != w {
			t.Errorf("Take.ScalarAt(%d) = %d, want %d", i, got, w)
		}
	}
}
