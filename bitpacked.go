// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

const bitPackedBlockSize = 1024

// BitPackedArray packs a primitive column at bitWidth < native width
// (§4.7). Each 1024-value block is stored as bitWidth bit-planes: for
// bit position b, a 1024-bit (128-byte) little-endian plane holds bit
// b of every value in the block, lane i at bit i — the transposed
// FastLanes layout that lets a decoder extract one bit-plane at a
// time across the whole block instead of one value at a time.
type BitPackedArray struct {
	ptype    PType // original ptype (signed or unsigned) values are widened back to
	bitWidth int
	data     Buffer // packed bit-planes, block by block
	patch    *PatchedArray
	len      int
	validity Validity
	stats    *StatsSet
}

// NewBitPackedArray wraps a pre-packed data buffer. Use
// CompressBitPacked to pack a source PrimitiveArray.
func NewBitPackedArray(ptype PType, bitWidth int, data Buffer, patch *PatchedArray, validity Validity, n int) *BitPackedArray {
	if bitWidth <= 0 || bitWidth >= ptype.BitWidth() {
		panic(invalidArgument("BitPackedArray: bitWidth %d out of range for %s", bitWidth, ptype))
	}
	a := &BitPackedArray{ptype: ptype, bitWidth: bitWidth, data: data, patch: patch, len: n, validity: validity}
	a.stats = newStatsSet(a)
	return a
}

func (a *BitPackedArray) Kind() Kind       { return KindBitPacked }
func (a *BitPackedArray) DType() DType     { return Primitive(a.ptype, true) }
func (a *BitPackedArray) Len() int         { return a.len }
func (a *BitPackedArray) Stats() *StatsSet { return a.stats }

func (a *BitPackedArray) NBytes() int {
	n := a.data.Len()
	if a.patch != nil {
		n += a.patch.NBytes()
	}
	return n
}

// planeBytes is the byte size of a single bit-plane for a block of up
// to bitPackedBlockSize values.
func planeBytes(blockLen int) int { return (blockLen + 7) / 8 }

func (a *BitPackedArray) blockLen(block int) int {
	remaining := a.len - block*bitPackedBlockSize
	if remaining > bitPackedBlockSize {
		return bitPackedBlockSize
	}
	return remaining
}

func (a *BitPackedArray) blockByteOffset(block int) int {
	off := 0
	for b := 0; b < block; b++ {
		off += a.bitWidth * planeBytes(a.blockLen(b))
	}
	return off
}

// extract decodes the raw bit_width-bit value at logical index i by
// reading one bit from each of bitWidth planes.
func (a *BitPackedArray) extract(i int) uint64 {
	block := i / bitPackedBlockSize
	lane := i % bitPackedBlockSize
	blockLen := a.blockLen(block)
	pBytes := planeBytes(blockLen)
	base := a.blockByteOffset(block)
	data := a.data.Bytes()

	var v uint64
	for b := 0; b < a.bitWidth; b++ {
		planeOff := base + b*pBytes
		byteIdx := planeOff + lane/8
		bit := (data[byteIdx] >> uint(lane%8)) & 1
		v |= uint64(bit) << uint(b)
	}
	return v
}

func (a *BitPackedArray) checkIndex(i int) {
	if i < 0 || i >= a.len {
		panic(outOfBounds(i, 0, a.len))
	}
}

func (a *BitPackedArray) IsValid(i int) bool {
	a.checkIndex(i)
	return a.validity.IsValid(i)
}

// sentinel is the reserved "needs-patch" marker: the all-ones value
// representable in bitWidth bits (§4.7).
func (a *BitPackedArray) sentinel() uint64 {
	return (uint64(1) << uint(a.bitWidth)) - 1
}

func (a *BitPackedArray) ScalarAt(i int) Scalar {
	a.checkIndex(i)
	if !a.validity.IsValid(i) {
		return NullScalar(a.DType())
	}
	raw := a.extract(i)
	if raw == a.sentinel() && a.patch != nil {
		if pos, found := a.patch.findPos(i); found {
			return a.patch.values.ScalarAt(pos)
		}
	}
	return scalarFromRaw(rawBytes(raw, a.ptype), a.ptype, 0)
}

// Slice is not O(1) for BitPackedArray since the transposed bit-plane
// layout has no cheap offset representation; it materializes the
// window as a fresh, independently packed BitPackedArray. Compute
// dispatch (compute.go) treats the absent O(1) guarantee as
// acceptable here: the codec set's invariant is "O(1) aside from
// adjusting child index searches" for index-child codecs, which
// BitPacked is not.
func (a *BitPackedArray) Slice(start, stop int) Array {
	if start < 0 || stop < start || stop > a.len {
		panic(outOfBounds(stop, start, a.len))
	}
	n := stop - start
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = a.ScalarAt(start + i)
	}
	packed, _ := CompressBitPacked(buildFromScalars(a.DType(), out).(*PrimitiveArray), a.bitWidth)
	return packed
}

func (a *BitPackedArray) children() []Array {
	if a.patch != nil {
		return []Array{a.patch}
	}
	return nil
}

func (a *BitPackedArray) computeStat(s Stat) (any, bool) {
	if s == StatNullCount {
		return a.validity.NullCount(), true
	}
	return nil, false
}

var _ canonicalizer = (*BitPackedArray)(nil)

func (a *BitPackedArray) canonicalize() Array {
	out := make([]Scalar, a.len)
	for i := 0; i < a.len; i++ {
		out[i] = a.ScalarAt(i)
	}
	return buildFromScalars(a.DType(), out)
}

// CompressBitPacked packs src at the given bitWidth, emitting a patch
// overlay (§4.3) for any value that doesn't fit (use the BitWidthFreq
// stat to choose bitWidth so patches stay rare). Values needing a
// patch are stored as the sentinel and recorded as (index, value)
// pairs in the returned patch.
func CompressBitPacked(src *PrimitiveArray, bitWidth int) (*BitPackedArray, bool) {
	p := src.ptype()
	if bitWidth <= 0 || bitWidth >= p.BitWidth() {
		return nil, false
	}
	n := src.Len()
	sentinel := (uint64(1) << uint(bitWidth)) - 1

	nBlocks := (n + bitPackedBlockSize - 1) / bitPackedBlockSize
	total := 0
	blockLens := make([]int, nBlocks)
	for b := 0; b < nBlocks; b++ {
		remaining := n - b*bitPackedBlockSize
		l := bitPackedBlockSize
		if remaining < l {
			l = remaining
		}
		blockLens[b] = l
		total += bitWidth * planeBytes(l)
	}
	data := make([]byte, total)
	validBits := make([]bool, n)

	var patchIdx, patchVal []Scalar
	off := 0
	for b := 0; b < nBlocks; b++ {
		blockLen := blockLens[b]
		pBytes := planeBytes(blockLen)
		for lane := 0; lane < blockLen; lane++ {
			i := b*bitPackedBlockSize + lane
			if !src.IsValid(i) {
				continue
			}
			validBits[i] = true
			raw := rawFromScalar(p, src.ScalarAt(i))
			v := raw & ((uint64(1) << uint(bitWidth)) - 1)
			if raw != v {
				patchIdx = append(patchIdx, UintScalar(U32, uint64(i)))
				patchVal = append(patchVal, src.ScalarAt(i))
				v = sentinel
			}
			for bi := 0; bi < bitWidth; bi++ {
				if v&(1<<uint(bi)) != 0 {
					byteIdx := off + bi*pBytes + lane/8
					data[byteIdx] |= 1 << uint(lane%8)
				}
			}
		}
		off += bitWidth * pBytes
	}

	var patch *PatchedArray
	if len(patchIdx) > 0 {
		indices := buildFromScalars(Primitive(U32, true), patchIdx)
		values := buildFromScalars(src.DType(), patchVal)
		// BitPackedArray.ScalarAt never consults patch.data: non-patched
		// positions are bit-unpacked directly, so the fallback base only
		// needs to satisfy NewPatchedArray's DType/Len contract, not hold
		// real bytes. A dense buffer here would double-count bytes in
		// NBytes (§8 invariant 6).
		placeholder := NewConstantArray(NullScalar(src.DType()), n)
		patch = NewPatchedArray(indices, values, placeholder)
	}

	return NewBitPackedArray(p, bitWidth, NewBuffer(data), patch, validityFromBools(validBits), n), true
}
