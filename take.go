// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// Take gathers elements at indices into a new same-dtype array
// (§4.9). Kept as its own entry point, distinct from compute.go's
// other dispatch operations, because take has codec-specific gather
// strategies worth isolating (Constant ignores indices entirely;
// Sparse looks up each requested index by binary search, grounded on
// original_source's dedicated compute/take.rs module rather than
// folding gather logic into the general compute file).
func Take(a Array, indices []int) Array {
	if t, ok := a.(Taker); ok {
		if out := t.Take(indices); out != nil {
			return out
		}
	}
	return takeGeneric(IntoCanonical(a), indices)
}

func takeGeneric(a Array, indices []int) Array {
	out := make([]Scalar, len(indices))
	for i, idx := range indices {
		out[i] = a.ScalarAt(idx)
	}
	return buildFromScalars(a.DType(), out)
}
