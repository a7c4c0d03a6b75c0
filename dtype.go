// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "strings"

// PType is a physical, fixed-width numeric representation.
type PType uint8

const (
	I8 PType = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
)

// Width returns the byte width of a single value of p.
func (p PType) Width() int {
	switch p {
	case I8, U8:
		return 1
	case I16, U16, F16:
		return 2
	case I32, U32, F32:
		return 4
	case I64, U64, F64:
		return 8
	default:
		panic("nanocol: unknown ptype")
	}
}

// BitWidth returns the bit width of a single value of p.
func (p PType) BitWidth() int { return p.Width() * 8 }

// IsSignedInt reports whether p is a signed integer ptype.
func (p PType) IsSignedInt() bool {
	switch p {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsUnsignedInt reports whether p is an unsigned integer ptype.
func (p PType) IsUnsignedInt() bool {
	switch p {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// IsInt reports whether p is any integer ptype.
func (p PType) IsInt() bool { return p.IsSignedInt() || p.IsUnsignedInt() }

// IsFloat reports whether p is a floating-point ptype.
func (p PType) IsFloat() bool {
	switch p {
	case F16, F32, F64:
		return true
	default:
		return false
	}
}

// ToUnsigned returns the unsigned ptype of the same width as p. Used by
// the Frame-of-Reference codec, which always stores residuals in an
// unsigned representation regardless of the logical ptype's signedness.
func (p PType) ToUnsigned() PType {
	switch p {
	case I8, U8:
		return U8
	case I16, U16:
		return U16
	case I32, U32:
		return U32
	case I64, U64:
		return U64
	default:
		panic("nanocol: ToUnsigned on non-integer ptype")
	}
}

func (p PType) String() string {
	switch p {
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "invalid"
	}
}

// DTypeKind is the tag of a logical type (§3).
type DTypeKind uint8

const (
	KindNull DTypeKind = iota
	KindBool
	KindPrimitive
	KindUtf8
	KindBinary
	KindStruct
	KindList
	KindExtension
)

// DType is a logical type: a tagged value, not a property of any
// particular array node. Nullability lives here, not on the array.
type DType struct {
	kind       DTypeKind
	ptype      PType
	nullable   bool
	fieldNames []string
	fieldTypes []DType
	elem       *DType
	extID      string
	storage    *DType
}

// Null returns the Null dtype.
func Null() DType { return DType{kind: KindNull} }

// Bool returns the Bool(nullable) dtype.
func Bool(nullable bool) DType { return DType{kind: KindBool, nullable: nullable} }

// Primitive returns the Primitive(ptype, nullable) dtype.
func Primitive(ptype PType, nullable bool) DType {
	return DType{kind: KindPrimitive, ptype: ptype, nullable: nullable}
}

// Utf8 returns the Utf8(nullable) dtype.
func Utf8(nullable bool) DType { return DType{kind: KindUtf8, nullable: nullable} }

// Binary returns the Binary(nullable) dtype.
func Binary(nullable bool) DType { return DType{kind: KindBinary, nullable: nullable} }

// Struct returns the Struct(field_names, field_dtypes) dtype.
func Struct(names []string, types []DType) DType {
	if len(names) != len(types) {
		panic("nanocol: Struct field_names and field_dtypes length mismatch")
	}
	return DType{kind: KindStruct, fieldNames: names, fieldTypes: types}
}

// List returns the List(element_dtype, nullable) dtype.
func List(elem DType, nullable bool) DType {
	e := elem
	return DType{kind: KindList, elem: &e, nullable: nullable}
}

// Extension returns the Extension(id, storage_dtype, nullable) dtype.
func Extension(id string, storage DType, nullable bool) DType {
	s := storage
	return DType{kind: KindExtension, extID: id, storage: &s, nullable: nullable}
}

func (d DType) Kind() DTypeKind  { return d.kind }
func (d DType) Nullable() bool   { return d.nullable }
func (d DType) PType() PType     { return d.ptype }
func (d DType) ExtensionID() string { return d.extID }

// StorageDType returns the underlying storage dtype of an Extension
// dtype; it panics on any other kind.
func (d DType) StorageDType() DType {
	if d.kind != KindExtension {
		panic("nanocol: StorageDType on non-extension dtype")
	}
	return *d.storage
}

// ElementDType returns the element dtype of a List dtype; it panics on
// any other kind.
func (d DType) ElementDType() DType {
	if d.kind != KindList {
		panic("nanocol: ElementDType on non-list dtype")
	}
	return *d.elem
}

// FieldNames returns the field names of a Struct dtype.
func (d DType) FieldNames() []string { return d.fieldNames }

// FieldDTypes returns the field dtypes of a Struct dtype.
func (d DType) FieldDTypes() []DType { return d.fieldTypes }

// Equal reports whether d and other describe the same logical type.
func (d DType) Equal(other DType) bool {
	if d.kind != other.kind || d.nullable != other.nullable {
		return false
	}
	switch d.kind {
	case KindPrimitive:
		return d.ptype == other.ptype
	case KindStruct:
		if len(d.fieldNames) != len(other.fieldNames) {
			return false
		}
		for i := range d.fieldNames {
			if d.fieldNames[i] != other.fieldNames[i] || !d.fieldTypes[i].Equal(other.fieldTypes[i]) {
				return false
			}
		}
		return true
	case KindList:
		return d.elem.Equal(*other.elem)
	case KindExtension:
		return d.extID == other.extID && d.storage.Equal(*other.storage)
	default:
		return true
	}
}

func (d DType) String() string {
	switch d.kind {
	case KindNull:
		return "null"
	case KindBool:
		return nullableSuffix("bool", d.nullable)
	case KindPrimitive:
		return nullableSuffix(d.ptype.String(), d.nullable)
	case KindUtf8:
		return nullableSuffix("utf8", d.nullable)
	case KindBinary:
		return nullableSuffix("binary", d.nullable)
	case KindStruct:
		var b strings.Builder
		b.WriteString("struct{")
		for i, name := range d.fieldNames {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(d.fieldTypes[i].String())
		}
		b.WriteString("}")
		return b.String()
	case KindList:
		return nullableSuffix("list<"+d.elem.String()+">", d.nullable)
	case KindExtension:
		return nullableSuffix("ext<"+d.extID+","+d.storage.String()+">", d.nullable)
	default:
		return "invalid"
	}
}

func nullableSuffix(s string, nullable bool) string {
	if nullable {
		return s + "?"
	}
	return s
}
