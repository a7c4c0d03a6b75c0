// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "fmt"

// Codec is a value-less singleton describing one encoding: its wire
// id, which dtypes it applies to, and how to attempt compression of
// an array into this encoding (§6's encoding registry).
type Codec interface {
	ID() uint16
	Name() string
	Kind() Kind
	Applicable(d DType) bool
	// Compress attempts to encode a (or, during planning, a
	// representative sample of a) into this codec. ok is false when
	// the codec does not apply or would not shrink the input.
	Compress(a Array, cfg CompressConfig) (out Array, ok bool)
}

// registry is the process-wide (id -> codec) table, populated at
// init() and read-only thereafter (§6).
var registry = map[uint16]Codec{}
var registryByKind = map[Kind]Codec{}

// RegisterCodec adds c to the process-wide registry. Intended for
// init()-time registration only; panics on a duplicate id, since a
// colliding wire id is a programming error, not a runtime condition.
func RegisterCodec(c Codec) {
	if _, exists := registry[c.ID()]; exists {
		panic(fmt.Sprintf("nanocol: codec id %d already registered", c.ID()))
	}
	registry[c.ID()] = c
	registryByKind[c.Kind()] = c
}

// LookupCodec returns the codec registered for id, if any.
func LookupCodec(id uint16) (Codec, bool) {
	c, ok := registry[id]
	return c, ok
}

// CodecForKind returns the codec registered for a Kind, if any (leaf
// kinds like Primitive/Bool have no codec entry, since they are not
// themselves produced by compression).
func CodecForKind(k Kind) (Codec, bool) {
	c, ok := registryByKind[k]
	return c, ok
}

// Codecs returns every registered codec, in unspecified order.
func Codecs() []Codec {
	out := make([]Codec, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}

func init() {
	RegisterCodec(constantCodec{})
	RegisterCodec(sparseCodec{})
	RegisterCodec(dictionaryCodec{})
	RegisterCodec(runEndCodec{})
	RegisterCodec(frameOfReferenceCodec{})
	RegisterCodec(bitPackedCodec{})
}

type constantCodec struct{}

func (constantCodec) ID() uint16     { return WireConstant }
func (constantCodec) Name() string   { return "constant" }
func (constantCodec) Kind() Kind     { return KindConstant }
func (constantCodec) Applicable(DType) bool { return true }

func (constantCodec) Compress(a Array, _ CompressConfig) (Array, bool) {
	if a.Len() == 0 || !a.Stats().IsConstant() {
		return nil, false
	}
	var s Scalar
	if a.IsValid(0) {
		s = a.ScalarAt(0)
	} else {
		s = NullScalar(a.DType())
	}
	return NewConstantArray(s, a.Len()), true
}

type sparseCodec struct{}

func (sparseCodec) ID() uint16   { return WireSparse }
func (sparseCodec) Name() string { return "sparse" }
func (sparseCodec) Kind() Kind   { return KindSparse }
func (sparseCodec) Applicable(DType) bool { return true }

// Compress picks the most frequent value as fill and overlays the
// rest explicitly; only worthwhile when that value covers a large
// majority of rows.
func (sparseCodec) Compress(a Array, cfg CompressConfig) (Array, bool) {
	n := a.Len()
	if n == 0 {
		return nil, false
	}
	counts := map[string]int{}
	type kv struct {
		s Scalar
		c int
	}
	best := kv{}
	for i := 0; i < n; i++ {
		s := a.ScalarAt(i)
		key := s.String()
		counts[key]++
		if counts[key] > best.c {
			best = kv{s, counts[key]}
		}
	}
	if float64(best.c) < float64(n)*0.8 {
		return nil, false
	}
	var idxScalars, valScalars []Scalar
	for i := 0; i < n; i++ {
		s := a.ScalarAt(i)
		if s.Equal(best.s) {
			continue
		}
		idxScalars = append(idxScalars, UintScalar(U32, uint64(i)))
		valScalars = append(valScalars, s)
	}
	indices := buildFromScalars(Primitive(U32, true), idxScalars)
	values := buildFromScalars(a.DType(), valScalars)
	return NewSparseArray(indices, values, best.s, n), true
}

type dictionaryCodec struct{}

func (dictionaryCodec) ID() uint16   { return WireDictionary }
func (dictionaryCodec) Name() string { return "dictionary" }
func (dictionaryCodec) Kind() Kind   { return KindDictionary }
func (dictionaryCodec) Applicable(DType) bool { return true }
func (dictionaryCodec) Compress(a Array, _ CompressConfig) (Array, bool) {
	return CompressDictionary(a)
}

type runEndCodec struct{}

func (runEndCodec) ID() uint16   { return WireRunEnd }
func (runEndCodec) Name() string { return "run_end" }
func (runEndCodec) Kind() Kind   { return KindRunEnd }
func (runEndCodec) Applicable(DType) bool { return true }
func (runEndCodec) Compress(a Array, cfg CompressConfig) (Array, bool) {
	return CompressRunEnd(a, cfg.REEAverageRunThreshold)
}

type frameOfReferenceCodec struct{}

func (frameOfReferenceCodec) ID() uint16     { return WireFrameOfReference }
func (frameOfReferenceCodec) Name() string   { return "frame_of_reference" }
func (frameOfReferenceCodec) Kind() Kind     { return KindFrameOfReference }
func (frameOfReferenceCodec) Applicable(d DType) bool {
	return d.Kind() == KindPrimitive && d.PType().IsInt()
}
func (frameOfReferenceCodec) Compress(a Array, _ CompressConfig) (Array, bool) {
	p, ok := a.(*PrimitiveArray)
	if !ok {
		return nil, false
	}
	return CompressFrameOfReference(p)
}

type bitPackedCodec struct{}

func (bitPackedCodec) ID() uint16   { return WireBitPacked }
func (bitPackedCodec) Name() string { return "bit_packed" }
func (bitPackedCodec) Kind() Kind   { return KindBitPacked }
func (bitPackedCodec) Applicable(d DType) bool {
	return d.Kind() == KindPrimitive && d.PType().IsInt()
}

// Compress picks the narrowest bit width covering at least 99% of
// values (the remainder becomes a patch overlay), using the
// BitWidthFreq stat (§4.7, §4.8).
func (bitPackedCodec) Compress(a Array, _ CompressConfig) (Array, bool) {
	p, ok := a.(*PrimitiveArray)
	if !ok || p.Len() == 0 {
		return nil, false
	}
	freq, ok := p.Stats().BitWidthFreq()
	if !ok {
		return nil, false
	}
	total := 0
	for _, c := range freq {
		total += c
	}
	if total == 0 {
		return nil, false
	}
	covered := 0
	bitWidth := p.ptype().BitWidth()
	for w, c := range freq {
		covered += c
		if float64(covered) >= float64(total)*0.99 {
			bitWidth = w
			break
		}
	}
	if bitWidth == 0 {
		bitWidth = 1
	}
	if bitWidth >= p.ptype().BitWidth() {
		return nil, false
	}
	packed, ok := CompressBitPacked(p, bitWidth)
	if !ok {
		return nil, false
	}
	return packed, true
}
