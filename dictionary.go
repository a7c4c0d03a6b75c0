// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import (
	"encoding/binary"
	"math"

	"github.com/dchest/siphash"
)

// DictionaryArray stores each element as a small index ("code") into
// a deduplicated values array (§4.5). scalar_at(i) = values[codes[i]].
type DictionaryArray struct {
	codes  *PrimitiveArray // unsigned integer ptype
	values Array           // unique values, same dtype as the logical array
	stats  *StatsSet
}

// NewDictionaryArray constructs a DictionaryArray. Every code must be
// < values.Len().
func NewDictionaryArray(codes *PrimitiveArray, values Array) *DictionaryArray {
	if !codes.ptype().IsUnsignedInt() {
		panic(invalidArgument("DictionaryArray: codes must be an unsigned integer ptype, got %s", codes.ptype()))
	}
	for i := 0; i < codes.Len(); i++ {
		if codes.IsValid(i) && int(codes.ScalarAt(i).AsUint64()) >= values.Len() {
			panic(invalidArgument("DictionaryArray: code %d >= values len %d", codes.ScalarAt(i).AsUint64(), values.Len()))
		}
	}
	a := &DictionaryArray{codes: codes, values: values}
	a.stats = newStatsSet(a)
	return a
}

func (a *DictionaryArray) Kind() Kind       { return KindDictionary }
func (a *DictionaryArray) DType() DType     { return a.values.DType() }
func (a *DictionaryArray) Len() int         { return a.codes.Len() }
func (a *DictionaryArray) Stats() *StatsSet { return a.stats }

func (a *DictionaryArray) NBytes() int { return a.codes.NBytes() + a.values.NBytes() }

func (a *DictionaryArray) IsValid(i int) bool { return a.codes.IsValid(i) }

func (a *DictionaryArray) ScalarAt(i int) Scalar {
	if !a.codes.IsValid(i) {
		return NullScalar(a.DType())
	}
	code := int(a.codes.ScalarAt(i).AsUint64())
	return a.values.ScalarAt(code)
}

func (a *DictionaryArray) Slice(start, stop int) Array {
	na := &DictionaryArray{
		codes:  a.codes.Slice(start, stop).(*PrimitiveArray),
		values: a.values,
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *DictionaryArray) Take(indices []int) Array {
	width := a.codes.ptype().Width()
	data := make([]byte, len(indices)*width)
	validBits := make([]bool, len(indices))
	for j, idx := range indices {
		if !a.codes.IsValid(idx) {
			continue
		}
		validBits[j] = true
		raw := rawFromScalar(a.codes.ptype(), a.codes.ScalarAt(idx))
		writeRaw(data, width, j, raw)
	}
	codes := NewPrimitiveArray(a.codes.ptype(), NewBuffer(data), validityFromBools(validBits), len(indices))
	return NewDictionaryArray(codes, a.values)
}

func (a *DictionaryArray) children() []Array { return []Array{a.codes, a.values} }

func (a *DictionaryArray) computeStat(s Stat) (any, bool) {
	if s == StatNullCount {
		return a.codes.Stats().NullCount(), true
	}
	return nil, false
}

var _ canonicalizer = (*DictionaryArray)(nil)

func (a *DictionaryArray) canonicalize() Array {
	n := a.Len()
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = a.ScalarAt(i)
	}
	return buildFromScalars(a.DType(), out)
}

// CompressDictionary builds a DictionaryArray from src, deduplicating
// equal values via a siphash-keyed hash table over each scalar's byte
// encoding (§4.5). Returns ok=false when deduplication would not
// shrink the representation (distinct-value count is not materially
// below the row count).
func CompressDictionary(src Array) (Array, bool) {
	n := src.Len()
	if n == 0 {
		return nil, false
	}
	hashKey0, hashKey1 := uint64(0x6c65646f5f636f6c), uint64(0x6e616e6f636f6c31)

	table := make(map[uint64][]int) // hash -> value positions (into `values`)
	var values []Scalar
	codes := make([]uint64, n)
	nullAt := make([]bool, n)

	for i := 0; i < n; i++ {
		s := src.ScalarAt(i)
		if s.IsNull() {
			nullAt[i] = true
			continue
		}
		h := siphash.Hash(hashKey0, hashKey1, scalarHashBytes(s))
		code := -1
		for _, cand := range table[h] {
			if values[cand].Equal(s) {
				code = cand
				break
			}
		}
		if code < 0 {
			code = len(values)
			values = append(values, s)
			table[h] = append(table[h], code)
		}
		codes[i] = uint64(code)
	}

	if len(values) == 0 {
		return nil, false
	}
	if float64(len(values)) > float64(n)*0.8 {
		return nil, false // not a materially smaller dictionary
	}

	codeType := smallestUnsignedFor(len(values))
	width := codeType.Width()
	data := make([]byte, n*width)
	validBits := make([]bool, n)
	for i := 0; i < n; i++ {
		if nullAt[i] {
			continue
		}
		validBits[i] = true
		writeRaw(data, width, i, codes[i])
	}
	codesArr := NewPrimitiveArray(codeType, NewBuffer(data), validityFromBools(validBits), n)
	valuesArr := buildFromScalars(src.DType(), values)
	return NewDictionaryArray(codesArr, valuesArr), true
}

// smallestUnsignedFor returns the narrowest unsigned ptype that can
// index a values array of the given length.
func smallestUnsignedFor(n int) PType {
	switch {
	case n <= 1<<8:
		return U8
	case n <= 1<<16:
		return U16
	case n <= 1<<32:
		return U32
	default:
		return U64
	}
}

// scalarHashBytes encodes a non-null scalar into bytes suitable for
// hashing in CompressDictionary's dedup table.
func scalarHashBytes(s Scalar) []byte {
	switch s.DType().Kind() {
	case KindBool:
		if s.AsBool() {
			return []byte{1}
		}
		return []byte{0}
	case KindPrimitive:
		b := make([]byte, 8)
		if s.DType().PType().IsFloat() {
			binary.LittleEndian.PutUint64(b, math.Float64bits(s.AsFloat64()))
		} else if s.DType().PType().IsSignedInt() {
			binary.LittleEndian.PutUint64(b, uint64(s.AsInt64()))
		} else {
			binary.LittleEndian.PutUint64(b, s.AsUint64())
		}
		return b
	case KindUtf8:
		return []byte(s.AsString())
	case KindBinary:
		return s.AsBytes()
	default:
		return []byte(s.String())
	}
}
