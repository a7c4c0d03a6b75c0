// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// FrameOfReferenceArray stores an integer column as a reference value
// plus narrow residuals: residual[i] = wrapping((raw[i]>>shift) -
// (min>>shift)), reinterpreted unsigned (§4.4). shift is the common
// trailing-zero factor across every value, so the dropped low bits
// are always zero and decoding never loses information.
type FrameOfReferenceArray struct {
	reference Scalar // same ptype as the logical dtype
	shift     uint8
	encoded   *PrimitiveArray // unsigned ptype, same width as reference
	stats     *StatsSet
}

// NewFrameOfReferenceArray wraps a pre-computed reference/shift/encoded
// triple. Use CompressFrameOfReference to derive these from a source
// PrimitiveArray.
func NewFrameOfReferenceArray(reference Scalar, shift uint8, encoded *PrimitiveArray) *FrameOfReferenceArray {
	a := &FrameOfReferenceArray{reference: reference, shift: shift, encoded: encoded}
	a.stats = newStatsSet(a)
	return a
}

func (a *FrameOfReferenceArray) Kind() Kind       { return KindFrameOfReference }
func (a *FrameOfReferenceArray) DType() DType     { return Primitive(a.reference.DType().PType(), true) }
func (a *FrameOfReferenceArray) Len() int         { return a.encoded.Len() }
func (a *FrameOfReferenceArray) Stats() *StatsSet { return a.stats }

func (a *FrameOfReferenceArray) NBytes() int { return a.encoded.NBytes() }

func (a *FrameOfReferenceArray) IsValid(i int) bool { return a.encoded.IsValid(i) }

func (a *FrameOfReferenceArray) ScalarAt(i int) Scalar {
	if !a.encoded.IsValid(i) {
		return NullScalar(a.DType())
	}
	p := a.reference.DType().PType()
	encRaw := rawFromScalar(a.encoded.ptype(), a.encoded.ScalarAt(i))
	raw := decodeFrameOfReference(encRaw, a.shift, p, a.reference)
	return scalarFromRaw(rawBytes(raw, p), p, 0)
}

func (a *FrameOfReferenceArray) Slice(start, stop int) Array {
	na := &FrameOfReferenceArray{
		reference: a.reference,
		shift:     a.shift,
		encoded:   a.encoded.Slice(start, stop).(*PrimitiveArray),
	}
	na.stats = newStatsSet(na)
	return na
}

func (a *FrameOfReferenceArray) children() []Array { return []Array{a.encoded} }

func (a *FrameOfReferenceArray) computeStat(s Stat) (any, bool) {
	switch s {
	case StatNullCount:
		return a.encoded.Stats().NullCount(), true
	case StatIsSorted:
		// the (shift, add) transform is monotonic, so order matches the
		// residual array's order
		return a.encoded.Stats().IsSorted(), true
	case StatIsStrictSorted:
		return a.encoded.Stats().IsStrictSorted(), true
	default:
		return nil, false
	}
}

var _ canonicalizer = (*FrameOfReferenceArray)(nil)

func (a *FrameOfReferenceArray) canonicalize() Array {
	p := a.reference.DType().PType()
	n := a.Len()
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = a.ScalarAt(i)
	}
	_ = p
	return buildFromScalars(Primitive(p, true), out)
}

// decodeFrameOfReference reverses the compression formula: raw =
// wrapping_add(encoded<<shift, reference), all in the native width of p.
func decodeFrameOfReference(encoded uint64, shift uint8, p PType, reference Scalar) uint64 {
	width := p.Width()
	mask := widthMask(width)
	refRaw := rawFromScalar(p, reference)
	shifted := (encoded << shift) & mask
	return (shifted + refRaw) & mask
}

// encodeFrameOfReference computes a single residual: wrapping((raw>>
// shift) - (min>>shift)) in the native width of p.
func encodeFrameOfReference(raw uint64, shift uint8, p PType, referenceRaw uint64) uint64 {
	width := p.Width()
	mask := widthMask(width)
	return ((raw>>shift)-(referenceRaw>>shift)) & mask
}

// rawBytes encodes a single raw value as a little-endian byte slice
// of p's width, for reuse with scalarFromRaw's buffer-oriented API.
func rawBytes(raw uint64, p PType) []byte {
	b := make([]byte, p.Width())
	writeRaw(b, p.Width(), 0, raw)
	return b
}

// CompressFrameOfReference attempts to encode src with Frame-of-
// Reference. It requires src's Min and TrailingZeroFreq stats (§4.4
// step 1); returns ok=false when src's ptype is not an integer or src
// is empty. An all-null src becomes a null Constant, and a src with no
// nulls whose values all equal min becomes a Constant of min.
func CompressFrameOfReference(src *PrimitiveArray) (Array, bool) {
	p := src.ptype()
	if !p.IsInt() {
		return nil, false
	}
	n := src.Len()
	if n == 0 {
		return nil, false
	}
	minScalar, ok := src.Stats().Min()
	if !ok {
		// all-null: represent as a null Constant (§4.4 step 2)
		return NewConstantArray(NullScalar(src.DType()), n), true
	}

	shift := commonTrailingZeroShift(src)
	width := p.BitWidth()
	maxScalar, _ := src.Stats().Max()
	if (shift >= width || maxScalar.Equal(minScalar)) && src.Stats().NullCount() == 0 {
		// every value equals min (§4.4 step 2); with nulls present the
		// FoR encoding below keeps the validity mask instead
		return NewConstantArray(minScalar, n), true
	}

	refRaw := rawFromScalar(p, minScalar)
	data := make([]byte, n*p.ToUnsigned().Width())
	validBits := make([]bool, n)
	for i := 0; i < n; i++ {
		if !src.IsValid(i) {
			continue
		}
		validBits[i] = true
		raw := rawFromScalar(p, src.ScalarAt(i))
		enc := encodeFrameOfReference(raw, shift, p, refRaw)
		writeRaw(data, p.ToUnsigned().Width(), i, enc)
	}
	encoded := NewPrimitiveArray(p.ToUnsigned(), NewBuffer(data), validityFromBools(validBits), n)
	return NewFrameOfReferenceArray(minScalar, shift, encoded), true
}

// commonTrailingZeroShift finds the trailing-zero count shared by
// every valid value, using the TrailingZeroFreq histogram: the
// largest k such that every valid value has >= k trailing zero bits.
// A lone zero value contributes its full bit width to the histogram
// (scanTrailingZeroFreq's convention) so it never lowers the common
// shift below what the non-zero values support — the Open Question
// resolution recorded in DESIGN.md.
func commonTrailingZeroShift(src *PrimitiveArray) uint8 {
	freq, ok := src.Stats().TrailingZeroFreq()
	if !ok {
		return 0
	}
	for k, count := range freq {
		if count > 0 {
			return uint8(k)
		}
	}
	return 0
}
