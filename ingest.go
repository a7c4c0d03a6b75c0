// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "fmt"

// RowSource is the external collaborator boundary for ingestion
// (§6): a row-batch iterator (e.g. from a columnar reader) that this
// package converts into the flat array form via schema mapping,
// without itself reading files or sockets.
type RowSource interface {
	// Next returns the next row's column values in schema field
	// order, or ok=false when exhausted. A nil value at position i
	// means that field is null for this row.
	Next() (row []any, ok bool)
}

// Ingest builds a StructArray of dtype schema (which must be
// KindStruct) from every row in rows, mapping Go values to the
// matching bool/primitive/utf8/binary/struct kind per field dtype.
// List fields are not supported: a schema with a List field panics
// with a *NotImplementedError.
func Ingest(schema DType, rows RowSource) (*StructArray, error) {
	if schema.Kind() != KindStruct {
		return nil, &DTypeMismatchError{Expected: Struct(nil, nil), Got: schema}
	}
	fieldTypes := schema.FieldDTypes()
	columns := make([][]Scalar, len(fieldTypes))

	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		if len(row) != len(fieldTypes) {
			return nil, &InvalidArgumentError{Msg: fmt.Sprintf("ingest: row has %d values, schema wants %d", len(row), len(fieldTypes))}
		}
		for i, v := range row {
			columns[i] = append(columns[i], valueToScalar(fieldTypes[i], v))
		}
	}

	n := 0
	if len(columns) > 0 {
		n = len(columns[0])
	}
	fields := make([]Array, len(fieldTypes))
	for i, t := range fieldTypes {
		fields[i] = buildFromScalars(t, columns[i])
	}
	return NewStructArray(schema, fields, AllValid(n), n), nil
}

// valueToScalar maps a raw Go value onto dtype d, per §6's schema
// mapping (bool -> Bool, primitive -> Primitive, utf8 -> Utf8,
// binary -> Binary, struct -> Struct). A nil value always maps to a
// null scalar of d; a non-nil value for any other kind, List included,
// panics with a *NotImplementedError.
func valueToScalar(d DType, v any) Scalar {
	if v == nil {
		return NullScalar(d)
	}
	switch d.Kind() {
	case KindBool:
		return BoolScalar(v.(bool))
	case KindPrimitive:
		p := d.PType()
		switch {
		case p.IsFloat():
			return FloatScalar(p, toFloat64(v))
		case p.IsSignedInt():
			return IntScalar(p, toInt64(v))
		default:
			return UintScalar(p, toUint64(v))
		}
	case KindUtf8:
		return Utf8Scalar(v.(string))
	case KindBinary:
		return BinaryScalar(v.([]byte))
	case KindStruct:
		rowVals := v.([]any)
		fieldTypes := d.FieldDTypes()
		fields := make([]Scalar, len(fieldTypes))
		for i, ft := range fieldTypes {
			fields[i] = valueToScalar(ft, rowVals[i])
		}
		return StructScalar(d, fields)
	default:
		panic(notImplemented("Ingest", d.String()))
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	default:
		panic(fmt.Sprintf("nanocol: ingest: cannot convert %T to int64", v))
	}
}

func toUint64(v any) uint64 {
	switch n := v.(type) {
	case uint:
		return uint64(n)
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	default:
		panic(fmt.Sprintf("nanocol: ingest: cannot convert %T to uint64", v))
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		panic(fmt.Sprintf("nanocol: ingest: cannot convert %T to float64", v))
	}
}
