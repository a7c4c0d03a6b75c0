// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

func TestCompressBitPackedRoundTrip(t *testing.T) {
	t.Parallel()
	vals := make([]int32, 200)
	for i := range vals {
		vals[i] = int32(i % 16) // fits in 4 bits
	}
	src := newI32(vals, allTrue(len(vals)))
	packed, ok := CompressBitPacked(src, 4)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if packed.bitWidth != 4 {
		t.Errorf("bitWidth = %d, want 4", packed.bitWidth)
	}
	for i := range vals {
		if got, want := packed.ScalarAt(i).AsInt64(), int64(vals[i]); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestCompressBitPackedSpansMultipleBlocks(t *testing.T) {
	t.Parallel()
	n := bitPackedBlockSize*2 + 37
	vals := make([]int32, n)
	for i := range vals {
		vals[i] = int32(i % 8)
	}
	src := newI32(vals, allTrue(n))
	packed, ok := CompressBitPacked(src, 3)
	if !ok {
		t.Fatal("expected ok=true")
	}
	for _, i := range []int{0, bitPackedBlockSize - 1, bitPackedBlockSize, bitPackedBlockSize * 2, n - 1} {
		if got, want := packed.ScalarAt(i).AsInt64(), int64(vals[i]); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestCompressBitPackedPatchesOutOfRangeValues(t *testing.T) {
	t.Parallel()
	vals := []int32{1, 2, 3, 100, 4, 5}
	src := newI32(vals, allTrue(len(vals)))
	packed, ok := CompressBitPacked(src, 3) // 3 bits cannot hold 100
	if !ok {
		t.Fatal("expected ok=true")
	}
	if packed.patch == nil {
		t.Fatal("expected a patch overlay for the out-of-range value")
	}
	for i, v := range vals {
		if got, want := packed.ScalarAt(i).AsInt64(), int64(v); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestCompressBitPackedPatchedNBytesDoesNotInflate(t *testing.T) {
	t.Parallel()
	vals := []int32{1, 2, 3, 100, 4, 5}
	src := newI32(vals, allTrue(len(vals)))
	packed, ok := CompressBitPacked(src, 3) // 3 bits cannot hold 100
	if !ok {
		t.Fatal("expected ok=true")
	}
	if packed.patch == nil {
		t.Fatal("expected a patch overlay for the out-of-range value")
	}
	if got, want := packed.NBytes(), src.NBytes(); got >= want {
		t.Errorf("NBytes() = %d, want strictly less than uncompressed NBytes() = %d", got, want)
	}
}

func TestCompressBitPackedPreservesNulls(t *testing.T) {
	t.Parallel()
	vals := []int32{1, 0, 3}
	valid := []bool{true, false, true}
	src := newI32(vals, valid)
	packed, ok := CompressBitPacked(src, 2)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if packed.IsValid(1) {
		t.Error("IsValid(1) = true, want false")
	}
	if !packed.ScalarAt(1).IsNull() {
		t.Error("ScalarAt(1) should be null")
	}
}
