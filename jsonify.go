// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "encoding/json"

// ToJSON renders a's logical values as a JSON array, reading each
// element through a.ScalarAt without canonicalizing, so the output
// reflects semantic content regardless of which codec produced a.
// Struct elements become JSON objects keyed by
// field name; null elements become JSON null.
func ToJSON(a Array) ([]byte, error) {
	return json.Marshal(scalarsToJSON(a))
}

func scalarsToJSON(a Array) []any {
	n := a.Len()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = scalarToJSON(a.ScalarAt(i))
	}
	return out
}

func scalarToJSON(s Scalar) any {
	if s.IsNull() {
		return nil
	}
	switch s.DType().Kind() {
	case KindBool:
		return s.AsBool()
	case KindPrimitive:
		p := s.DType().PType()
		switch {
		case p.IsFloat():
			return s.AsFloat64()
		case p.IsSignedInt():
			return s.AsInt64()
		default:
			return s.AsUint64()
		}
	case KindUtf8:
		return s.AsString()
	case KindBinary:
		return s.AsBytes()
	case KindStruct:
		names := s.DType().FieldNames()
		fields := s.AsFields()
		m := make(map[string]any, len(fields))
		for i, f := range fields {
			m[names[i]] = scalarToJSON(f)
		}
		return m
	default:
		return s.String()
	}
}
