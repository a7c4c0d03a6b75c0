// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

func TestNewExtensionArrayStorageDTypeMismatchPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on storage dtype mismatch")
		}
	}()
	extDType := Extension("seconds_since_epoch", Primitive(I64, true), true)
	storage := newI32([]int32{1, 2, 3}, allTrue(3))
	NewExtensionArray(extDType, storage)
}

func TestExtensionArrayScalarAtRewrapsUnderExtensionDType(t *testing.T) {
	t.Parallel()
	extDType := Extension("seconds_since_epoch", Primitive(I32, true), true)
	storage := newI32([]int32{10, 20, 30}, []bool{true, false, true})
	a := NewExtensionArray(extDType, storage)

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	sv := a.ScalarAt(0)
	if sv.IsNull() {
		t.Fatal("ScalarAt(0) should not be null")
	}
	if !sv.DType().Equal(extDType) {
		t.Error("ScalarAt should rewrap the value under the extension dtype")
	}
	if sv.AsInt64() != 10 {
		t.Errorf("ScalarAt(0) = %d, want 10", sv.AsInt64())
	}
	if !a.ScalarAt(1).IsNull() {
		t.Error("ScalarAt(1) should be null")
	}
}

func TestExtensionArraySliceRewraps(t *testing.T) {
	t.Parallel()
	extDType := Extension("seconds_since_epoch", Primitive(I32, true), true)
	storage := newI32([]int32{10, 20, 30}, allTrue(3))
	a := NewExtensionArray(extDType, storage)

	sliced, ok := a.Slice(1, 3).(*ExtensionArray)
	if !ok {
		t.Fatalf("Slice() = %T, want *ExtensionArray", a.Slice(1, 3))
	}
	if sliced.Len() != 2 || sliced.ScalarAt(0).AsInt64() != 20 {
		t.Errorf("Slice(1,3).ScalarAt(0) = %v, want 20", sliced.ScalarAt(0))
	}
}

func TestExtensionArrayCanonicalizeRecursesIntoStorage(t *testing.T) {
	t.Parallel()
	extDType := Extension("dictionary_encoded", Primitive(I32, true), true)
	src := newI32([]int32{1, 2, 1, 1, 2, 3, 1}, allTrue(7))
	dict, ok := CompressDictionary(src)
	if !ok {
		t.Fatal("expected ok=true building the dictionary-encoded storage")
	}
	a := NewExtensionArray(extDType, dict)

	out := IntoCanonical(a)
	ext, ok := out.(*ExtensionArray)
	if !ok {
		t.Fatalf("canonicalize() = %T, want *ExtensionArray", out)
	}
	if _, ok := ext.Storage().(*DictionaryArray); ok {
		t.Error("canonicalize should have decoded the dictionary storage, not kept it")
	}
	for i := 0; i < src.Len(); i++ {
		if got, want := ext.ScalarAt(i).AsInt64(), src.ScalarAt(i).AsInt64(); got != want {
			t.Errorf("ScalarAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestExtensionArrayNullCountDelegatesToStorage(t *testing.T) {
	t.Parallel()
	extDType := Extension("seconds_since_epoch", Primitive(I32, true), true)
	storage := newI32([]int32{1, 0, 3}, []bool{true, false, true})
	a := NewExtensionArray(extDType, storage)
	if nc := a.Stats().NullCount(); nc != 1 {
		t.Errorf("NullCount() = %d, want 1", nc)
	}
}
