// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// ExtensionArray wraps a storage array under a named extension dtype
// (wire id Extension=16, §6). It is a first-class canonical kind
// (SPEC_FULL supplemented item 2): canonicalization recurses into the
// storage array but keeps the Extension dtype on the result, rather
// than unwrapping it to the storage dtype.
type ExtensionArray struct {
	dtype   DType
	storage Array
	stats   *StatsSet
}

// NewExtensionArray wraps storage under an Extension dtype. storage's
// dtype must equal dtype.StorageDType().
func NewExtensionArray(dtype DType, storage Array) *ExtensionArray {
	if dtype.Kind() != KindExtension {
		panic(dtypeMismatch(Extension("", Null(), true), dtype))
	}
	if !storage.DType().Equal(dtype.StorageDType()) {
		panic(dtypeMismatch(dtype.StorageDType(), storage.DType()))
	}
	a := &ExtensionArray{dtype: dtype, storage: storage}
	a.stats = newStatsSet(a)
	return a
}

func (a *ExtensionArray) Kind() Kind       { return KindExtensionArray }
func (a *ExtensionArray) DType() DType     { return a.dtype }
func (a *ExtensionArray) Len() int         { return a.storage.Len() }
func (a *ExtensionArray) NBytes() int      { return a.storage.NBytes() }
func (a *ExtensionArray) Stats() *StatsSet { return a.stats }

func (a *ExtensionArray) IsValid(i int) bool { return a.storage.IsValid(i) }

func (a *ExtensionArray) ScalarAt(i int) Scalar {
	s := a.storage.ScalarAt(i)
	if s.IsNull() {
		return NullScalar(a.dtype)
	}
	return Scalar{dtype: a.dtype, val: s.val}
}

func (a *ExtensionArray) Slice(start, stop int) Array {
	return NewExtensionArray(a.dtype, a.storage.Slice(start, stop))
}

func (a *ExtensionArray) Storage() Array { return a.storage }

func (a *ExtensionArray) children() []Array { return []Array{a.storage} }

func (a *ExtensionArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatNullCount:
		return a.storage.Stats().NullCount(), true
	case StatIsConstant:
		return a.storage.Stats().IsConstant(), true
	default:
		return nil, false
	}
}

var _ childArrays = (*ExtensionArray)(nil)

func (a *ExtensionArray) canonicalize() Array {
	if c, ok := a.storage.(canonicalizer); ok {
		return NewExtensionArray(a.dtype, c.canonicalize())
	}
	return a
}
