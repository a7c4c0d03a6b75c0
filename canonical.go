// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import (
	"encoding/binary"

	"github.com/nanocol/nanocol/internal/bitset"
)

// IntoCanonical inverts any codec's transform, returning the flat
// primitive/bool/utf8/binary/struct/list/extension equivalent of a.
// Flat variants canonicalize to themselves (§4.1's iter_canonical). A
// ChunkedArray is also returned unchanged; its chunks are not
// concatenated.
func IntoCanonical(a Array) Array {
	if c, ok := a.(canonicalizer); ok {
		return c.canonicalize()
	}
	return a
}

// materializeConstant builds the flat n-element array equal to n
// copies of s, dispatching on s's dtype kind.
func materializeConstant(s Scalar, n int) Array {
	d := s.DType()
	if s.IsNull() {
		return materializeAllNull(d, n)
	}
	switch d.Kind() {
	case KindNull:
		return NewNullArray(n)
	case KindBool:
		var bits bitset.BitSet
		if s.AsBool() {
			for i := 0; i < n; i++ {
				bits.Set(uint(i))
			}
		}
		return NewBoolArray(bits, AllValid(n), n)
	case KindPrimitive:
		return materializeConstantPrimitive(d.PType(), s, n)
	case KindUtf8, KindBinary:
		return materializeConstantVarBin(d, s, n)
	case KindStruct:
		fields := s.AsFields()
		out := make([]Array, len(fields))
		for i, f := range fields {
			out[i] = materializeConstant(f, n)
		}
		return NewStructArray(d, out, AllValid(n), n)
	case KindExtension:
		storage := Scalar{dtype: d.StorageDType(), val: s.val}
		return NewExtensionArray(d, materializeConstant(storage, n))
	default:
		panic(notImplemented("materializeConstant", d.String()))
	}
}

// buildFromScalars constructs the flat array of dtype d holding
// exactly the given scalars in order. Used by codec fallbacks (Take,
// Filter, canonicalize) that must materialize an arbitrary, non-
// uniform result rather than emit another instance of their own
// codec.
func buildFromScalars(d DType, scalars []Scalar) Array {
	n := len(scalars)
	switch d.Kind() {
	case KindNull:
		return NewNullArray(n)
	case KindBool:
		var bits bitset.BitSet
		validBits := make([]bool, n)
		for i, s := range scalars {
			validBits[i] = !s.IsNull()
			if !s.IsNull() && s.AsBool() {
				bits.Set(uint(i))
			}
		}
		return NewBoolArray(bits, validityFromBools(validBits), n)
	case KindPrimitive:
		p := d.PType()
		data := make([]byte, n*p.Width())
		validBits := make([]bool, n)
		for i, s := range scalars {
			validBits[i] = !s.IsNull()
			if !s.IsNull() {
				writeRaw(data, p.Width(), i, rawFromScalar(p, s))
			}
		}
		return NewPrimitiveArray(p, NewBuffer(data), validityFromBools(validBits), n)
	case KindUtf8, KindBinary:
		offs := make([]byte, (n+1)*4)
		var data []byte
		validBits := make([]bool, n)
		off := 0
		for i, s := range scalars {
			binary.LittleEndian.PutUint32(offs[i*4:], uint32(off))
			validBits[i] = !s.IsNull()
			if !s.IsNull() {
				var b []byte
				if d.Kind() == KindUtf8 {
					b = []byte(s.AsString())
				} else {
					b = s.AsBytes()
				}
				data = append(data, b...)
				off += len(b)
			}
		}
		binary.LittleEndian.PutUint32(offs[n*4:], uint32(off))
		if d.Kind() == KindUtf8 {
			return NewUtf8Array(NewBuffer(offs), NewBuffer(data), validityFromBools(validBits), n)
		}
		return NewBinaryArray(NewBuffer(offs), NewBuffer(data), validityFromBools(validBits), n)
	case KindStruct:
		types := d.FieldDTypes()
		fieldScalars := make([][]Scalar, len(types))
		for i := range fieldScalars {
			fieldScalars[i] = make([]Scalar, n)
		}
		validBits := make([]bool, n)
		for i, s := range scalars {
			validBits[i] = !s.IsNull()
			if !s.IsNull() {
				for j, fs := range s.AsFields() {
					fieldScalars[j][i] = fs
				}
			} else {
				for j, ft := range types {
					fieldScalars[j][i] = NullScalar(ft)
				}
			}
		}
		fields := make([]Array, len(types))
		for j, t := range types {
			fields[j] = buildFromScalars(t, fieldScalars[j])
		}
		return NewStructArray(d, fields, validityFromBools(validBits), n)
	case KindExtension:
		storage := make([]Scalar, n)
		for i, s := range scalars {
			if s.IsNull() {
				storage[i] = NullScalar(d.StorageDType())
			} else {
				storage[i] = Scalar{dtype: d.StorageDType(), val: s.val}
			}
		}
		return NewExtensionArray(d, buildFromScalars(d.StorageDType(), storage))
	default:
		panic(notImplemented("buildFromScalars", d.String()))
	}
}

// validityFromBools builds a Bitmap Validity from a per-element
// valid/null slice, collapsing to AllValid/AllInvalid when uniform.
func validityFromBools(valid []bool) Validity {
	n := len(valid)
	allValid, allInvalid := true, true
	for _, v := range valid {
		if v {
			allInvalid = false
		} else {
			allValid = false
		}
	}
	if allValid {
		return AllValid(n)
	}
	if allInvalid {
		return AllInvalid(n)
	}
	var bits bitset.BitSet
	for i, v := range valid {
		if v {
			bits.Set(uint(i))
		}
	}
	return NewBitmapValidity(bits, n)
}

func materializeAllNull(d DType, n int) Array {
	switch d.Kind() {
	case KindNull:
		return NewNullArray(n)
	case KindBool:
		return NewBoolArray(nil, AllInvalid(n), n)
	case KindPrimitive:
		return NewPrimitiveArray(d.PType(), NewBuffer(make([]byte, n*d.PType().Width())), AllInvalid(n), n)
	case KindUtf8, KindBinary:
		offs := make([]byte, (n+1)*4)
		if d.Kind() == KindUtf8 {
			return NewUtf8Array(NewBuffer(offs), NewBuffer(nil), AllInvalid(n), n)
		}
		return NewBinaryArray(NewBuffer(offs), NewBuffer(nil), AllInvalid(n), n)
	case KindStruct:
		types := d.FieldDTypes()
		out := make([]Array, len(types))
		for i, t := range types {
			out[i] = materializeAllNull(t, n)
		}
		return NewStructArray(d, out, AllInvalid(n), n)
	case KindExtension:
		return NewExtensionArray(d, materializeAllNull(d.StorageDType(), n))
	default:
		panic(notImplemented("materializeAllNull", d.String()))
	}
}

func materializeConstantPrimitive(p PType, s Scalar, n int) Array {
	width := p.Width()
	data := make([]byte, n*width)
	raw := rawFromScalar(p, s)
	for i := 0; i < n; i++ {
		writeRaw(data, width, i, raw)
	}
	return NewPrimitiveArray(p, NewBuffer(data), AllValid(n), n)
}

func materializeConstantVarBin(d DType, s Scalar, n int) Array {
	var b []byte
	if d.Kind() == KindUtf8 {
		b = []byte(s.AsString())
	} else {
		b = s.AsBytes()
	}
	offs := make([]byte, (n+1)*4)
	data := make([]byte, n*len(b))
	for i := 0; i <= n; i++ {
		binary.LittleEndian.PutUint32(offs[i*4:], uint32(i*len(b)))
	}
	for i := 0; i < n; i++ {
		copy(data[i*len(b):], b)
	}
	if d.Kind() == KindUtf8 {
		return NewUtf8Array(NewBuffer(offs), NewBuffer(data), AllValid(n), n)
	}
	return NewBinaryArray(NewBuffer(offs), NewBuffer(data), AllValid(n), n)
}
