// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

func TestCompressDictionaryRoundTrip(t *testing.T) {
	t.Parallel()
	src := newI32([]int32{1, 2, 1, 1, 2, 3, 1}, allTrue(7))
	out, ok := CompressDictionary(src)
	if !ok {
		t.Fatal("expected ok=true for a low-cardinality column")
	}
	d, ok := out.(*DictionaryArray)
	if !ok {
		t.Fatalf("result is %T, want *DictionaryArray", out)
	}
	if d.values.Len() != 3 {
		t.Errorf("distinct values = %d, want 3", d.values.Len())
	}
	for i := 0; i < src.Len(); i++ {
		if got, want := d.ScalarAt(i).AsInt64(), src.ScalarAt(i).AsInt64(); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestCompressDictionaryRejectsHighCardinality(t *testing.T) {
	t.Parallel()
	vals := make([]int32, 10)
	for i := range vals {
		vals[i] = int32(i) // every value distinct
	}
	src := newI32(vals, allTrue(10))
	if _, ok := CompressDictionary(src); ok {
		t.Error("expected ok=false for an all-distinct column")
	}
}

func TestCompressDictionaryHandlesNulls(t *testing.T) {
	t.Parallel()
	src := newI32([]int32{1, 0, 1, 2, 1}, []bool{true, false, true, true, true})
	out, ok := CompressDictionary(src)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if out.ScalarAt(1).IsNull() == false {
		t.Error("ScalarAt(1) should remain null")
	}
	for _, i := range []int{0, 2, 3, 4} {
		if got, want := out.ScalarAt(i).AsInt64(), src.ScalarAt(i).AsInt64(); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestSmallestUnsignedFor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		n    int
		want PType
	}{
		{1, U8}, {256, U8}, {257, U16}, {1 << 16, U16}, {1<<16 + 1, U32},
	}
	for _, c := range cases {
		if got := smallestUnsignedFor(c.n); got != c.want {
			t.Errorf("smallestUnsignedFor(%d) = %s, want %s", c.n, got, c.want)
		}
	}
}
