// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "fmt"

// Scalar is a boxed, dtype-bearing value used for fill values and
// point lookups. Equality and a partial order consistent with the
// underlying primitive order are supported; nulls are incomparable
// (Compare's ok return is false), treated as "less" only by the
// sorted-search contract in SearchSorted.
type Scalar struct {
	dtype  DType
	isNull bool
	val    any // native Go type matching dtype.ptype, or bool/string/[]byte/[]Scalar
}

// NullScalar returns a null scalar of dtype d.
func NullScalar(d DType) Scalar { return Scalar{dtype: d, isNull: true} }

// BoolScalar returns a non-null boolean scalar.
func BoolScalar(v bool) Scalar { return Scalar{dtype: Bool(true), val: v} }

// IntScalar returns a non-null scalar for a signed-integer ptype.
func IntScalar(p PType, v int64) Scalar {
	if !p.IsSignedInt() {
		panic("nanocol: IntScalar requires a signed integer ptype")
	}
	var boxed any
	switch p {
	case I8:
		boxed = int8(v)
	case I16:
		boxed = int16(v)
	case I32:
		boxed = int32(v)
	case I64:
		boxed = v
	}
	return Scalar{dtype: Primitive(p, true), val: boxed}
}

// UintScalar returns a non-null scalar for an unsigned-integer ptype.
func UintScalar(p PType, v uint64) Scalar {
	if !p.IsUnsignedInt() {
		panic("nanocol: UintScalar requires an unsigned integer ptype")
	}
	var boxed any
	switch p {
	case U8:
		boxed = uint8(v)
	case U16:
		boxed = uint16(v)
	case U32:
		boxed = uint32(v)
	case U64:
		boxed = v
	}
	return Scalar{dtype: Primitive(p, true), val: boxed}
}

// FloatScalar returns a non-null scalar for a floating-point ptype.
// F16 has no native Go representation; use RawF16Scalar for it, since
// a float64 argument cannot round-trip through F16's 16-bit encoding
// without a conversion this package does not implement.
func FloatScalar(p PType, v float64) Scalar {
	if !p.IsFloat() {
		panic("nanocol: FloatScalar requires a float ptype")
	}
	if p == F16 {
		panic("nanocol: FloatScalar on F16, use RawF16Scalar")
	}
	var boxed any
	switch p {
	case F32:
		boxed = float32(v)
	case F64:
		boxed = v
	}
	return Scalar{dtype: Primitive(p, true), val: boxed}
}

// RawF16Scalar returns a non-null F16 scalar from its raw IEEE 754
// binary16 bit pattern. Buffer-level code (scalarFromRaw/rawFromScalar)
// passes F16 values through as raw bits rather than converting to and
// from float64, since arithmetic on F16 is not required by this
// package — only storage and passthrough.
func RawF16Scalar(bits uint16) Scalar {
	return Scalar{dtype: Primitive(F16, true), val: bits}
}

// Utf8Scalar returns a non-null utf8 scalar.
func Utf8Scalar(s string) Scalar { return Scalar{dtype: Utf8(true), val: s} }

// BinaryScalar returns a non-null binary scalar.
func BinaryScalar(b []byte) Scalar { return Scalar{dtype: Binary(true), val: append([]byte(nil), b...)} }

// StructScalar returns a non-null struct scalar composed of per-field
// scalars, matching original_source's StructArray::scalar_at
// composition semantics (SPEC_FULL.md item 1).
func StructScalar(d DType, fields []Scalar) Scalar {
	if d.Kind() != KindStruct {
		panic("nanocol: StructScalar requires a struct dtype")
	}
	return Scalar{dtype: d, val: fields}
}

func (s Scalar) DType() DType  { return s.dtype }
func (s Scalar) IsNull() bool  { return s.isNull }

// AsInt64 returns the scalar's value widened to int64. It panics if
// the scalar is null or not a signed-integer scalar.
func (s Scalar) AsInt64() int64 {
	switch v := s.val.(type) {
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	default:
		panic(fmt.Sprintf("nanocol: AsInt64 on %T", s.val))
	}
}

// AsUint64 returns the scalar's value widened to uint64. It panics if
// the scalar is null or not an unsigned-integer scalar.
func (s Scalar) AsUint64() uint64 {
	switch v := s.val.(type) {
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	default:
		panic(fmt.Sprintf("nanocol: AsUint64 on %T", s.val))
	}
}

// AsFloat64 returns the scalar's value widened to float64.
func (s Scalar) AsFloat64() float64 {
	switch v := s.val.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		panic(fmt.Sprintf("nanocol: AsFloat64 on %T", s.val))
	}
}

// AsBool returns the scalar's boolean value.
func (s Scalar) AsBool() bool {
	v, ok := s.val.(bool)
	if !ok {
		panic(fmt.Sprintf("nanocol: AsBool on %T", s.val))
	}
	return v
}

// AsString returns the scalar's utf8 value.
func (s Scalar) AsString() string {
	v, ok := s.val.(string)
	if !ok {
		panic(fmt.Sprintf("nanocol: AsString on %T", s.val))
	}
	return v
}

// AsBytes returns the scalar's binary value.
func (s Scalar) AsBytes() []byte {
	v, ok := s.val.([]byte)
	if !ok {
		panic(fmt.Sprintf("nanocol: AsBytes on %T", s.val))
	}
	return v
}

// AsFields returns the scalar's per-field values for a struct scalar.
func (s Scalar) AsFields() []Scalar {
	v, ok := s.val.([]Scalar)
	if !ok {
		panic(fmt.Sprintf("nanocol: AsFields on %T", s.val))
	}
	return v
}

// Equal reports value equality; two nulls of the same dtype are equal.
func (s Scalar) Equal(o Scalar) bool {
	if !s.dtype.Equal(o.dtype) {
		return false
	}
	if s.isNull || o.isNull {
		return s.isNull == o.isNull
	}
	cmp, ok := s.Compare(o)
	return ok && cmp == 0
}

// Compare returns -1, 0, 1 for s <, ==, > o, and ok=false when either
// side is null (nulls are incomparable) or the dtypes are primitive-
// incompatible. Binary/utf8 compare lexicographically; struct scalars
// compare field by field in order, and are incomparable when any
// compared field pair is. Other kinds (e.g. extension) are incomparable.
func (s Scalar) Compare(o Scalar) (cmp int, ok bool) {
	if s.isNull || o.isNull {
		return 0, false
	}
	switch s.dtype.Kind() {
	case KindBool:
		a, b := s.AsBool(), o.AsBool()
		return boolCmp(a, b), true
	case KindPrimitive:
		if s.dtype.PType().IsFloat() {
			a, b := s.AsFloat64(), o.AsFloat64()
			switch {
			case a < b:
				return -1, true
			case a > b:
				return 1, true
			default:
				return 0, true
			}
		}
		if s.dtype.PType().IsSignedInt() {
			a, b := s.AsInt64(), o.AsInt64()
			switch {
			case a < b:
				return -1, true
			case a > b:
				return 1, true
			default:
				return 0, true
			}
		}
		a, b := s.AsUint64(), o.AsUint64()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		default:
			return 0, true
		}
	case KindUtf8:
		a, b := s.AsString(), o.AsString()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		default:
			return 0, true
		}
	case KindBinary:
		return bytesCompare(s.AsBytes(), o.AsBytes()), true
	case KindStruct:
		a, b := s.AsFields(), o.AsFields()
		for i := 0; i < len(a) && i < len(b); i++ {
			c, ok := a[i].Compare(b[i])
			if !ok {
				return 0, false
			}
			if c != 0 {
				return c, true
			}
		}
		return 0, true
	default:
		return 0, false
	}
}

func boolCmp(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func bytesCompare(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func (s Scalar) String() string {
	if s.isNull {
		return "null"
	}
	return fmt.Sprintf("%v", s.val)
}
