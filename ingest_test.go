// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "testing"

type sliceRowSource struct {
	rows [][]any
	pos  int
}

func (s *sliceRowSource) Next() ([]any, bool) {
	if s.pos >= len(s.rows) {
		return nil, false
	}
	r := s.rows[s.pos]
	s.pos++
	return r, true
}

func TestIngestBuildsStructArrayFromRows(t *testing.T) {
	t.Parallel()
	schema := Struct([]string{"id", "name"}, []DType{Primitive(I32, true), Utf8(true)})
	src := &sliceRowSource{rows: [][]any{
		{int32(1), "alice"},
		{int32(2), "bob"},
		{nil, "carol"},
	}}

	out, err := Ingest(schema, src)
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", out.Len())
	}
	row0 := out.ScalarAt(0).AsFields()
	if row0[0].AsInt64() != 1 || row0[1].AsString() != "alice" {
		t.Errorf("row 0 = %v, want [1,alice]", row0)
	}
	row2 := out.ScalarAt(2).AsFields()
	if !row2[0].IsNull() || row2[1].AsString() != "carol" {
		t.Errorf("row 2 id should be null, name should be carol, got %v", row2)
	}
}

func TestIngestRejectsNonStructSchema(t *testing.T) {
	t.Parallel()
	_, err := Ingest(Primitive(I32, true), &sliceRowSource{})
	if err == nil {
		t.Fatal("expected an error for a non-struct schema")
	}
}

func TestIngestRejectsRowArityMismatch(t *testing.T) {
	t.Parallel()
	schema := Struct([]string{"id"}, []DType{Primitive(I32, true)})
	src := &sliceRowSource{rows: [][]any{{int32(1), "extra"}}}
	_, err := Ingest(schema, src)
	if err == nil {
		t.Fatal("expected an error for a row with the wrong arity")
	}
}

func TestIngestEmptyRowSource(t *testing.T) {
	t.Parallel()
	schema := Struct([]string{"id"}, []DType{Primitive(I32, true)})
	out, err := Ingest(schema, &sliceRowSource{})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Len() = %d, want 0", out.Len())
	}
}

func TestValueToScalarNestedStruct(t *testing.T) {
	t.Parallel()
	inner := Struct([]string{"x"}, []DType{Primitive(I32, true)})
	outer := Struct([]string{"id", "point"}, []DType{Primitive(I32, true), inner})
	src := &sliceRowSource{rows: [][]any{
		{int32(1), []any{int32(42)}},
	}}
	out, err := Ingest(outer, src)
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	row0 := out.ScalarAt(0).AsFields()
	point := row0[1].AsFields()
	if point[0].AsInt64() != 42 {
		t.Errorf("nested point.x = %d, want 42", point[0].AsInt64())
	}
}

func TestToInt64UnsupportedTypePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an unsupported Go value type")
		}
	}()
	toInt64("not an int")
}

func TestToUint64UnsupportedTypePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an unsupported Go value type")
		}
	}()
	toUint64("not a uint")
}

func TestToFloat64UnsupportedTypePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an unsupported Go value type")
		}
	}()
	toFloat64("not a float")
}
