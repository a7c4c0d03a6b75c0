// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// Compress runs the recursive, sample-driven compression planner over
// a, returning a (possibly) smaller equivalent tree (§4.8).
func Compress(a Array, cfg CompressConfig) Array {
	return compressAtDepth(a, cfg, 0)
}

func compressAtDepth(a Array, cfg CompressConfig, depth int) Array {
	if a.Len() == 0 || depth == cfg.MaxDepth {
		return a
	}

	if out, ok := shortCircuit(a, cfg); ok {
		return recurseChildren(out, cfg, depth)
	}

	probe := sampleProbe(a, cfg)
	probeBaseline := probe.NBytes()

	var bestCodec Codec
	bestRatio := 1.0 - cfg.MinImprovement // candidate must beat this to win
	for _, c := range Codecs() {
		if !cfg.isEnabled(c.Kind()) || !c.Applicable(a.DType()) {
			continue
		}
		encoded, ok := c.Compress(probe, cfg)
		if !ok || probeBaseline == 0 {
			continue
		}
		ratio := float64(encoded.NBytes()) / float64(probeBaseline)
		if ratio < bestRatio {
			bestRatio = ratio
			bestCodec = c
		}
	}

	if bestCodec == nil {
		return a // no candidate improves (step 6)
	}

	full, ok := bestCodec.Compress(a, cfg)
	if !ok {
		return a
	}
	return recurseChildren(full, cfg, depth)
}

// shortCircuit implements §4.8 step 3a's pre-sampling fast paths.
func shortCircuit(a Array, cfg CompressConfig) (Array, bool) {
	if a.Stats().IsConstant() {
		var s Scalar
		if a.IsValid(0) {
			s = a.ScalarAt(0)
		} else {
			s = NullScalar(a.DType())
		}
		return NewConstantArray(s, a.Len()), true
	}
	if cfg.isEnabled(KindRunEnd) {
		if runCount, ok := a.Stats().RunCount(); ok && runCount > 0 {
			if float64(a.Len())/float64(runCount) >= cfg.REEAverageRunThreshold {
				if out, ok := CompressRunEnd(a, cfg.REEAverageRunThreshold); ok {
					return out, true
				}
			}
		}
	}
	return nil, false
}

// recurseChildren applies the planner at depth+1 to the residual child
// of a FrameOfReferenceArray and the codes child of a DictionaryArray;
// other node kinds are returned as they are. Both of those children
// are held as *PrimitiveArray, so a recompressed child is kept only
// when the recursive call returns a PrimitiveArray; when it picks any
// other encoding, the result is discarded and the parent is returned
// unchanged. Compositions such as FoR -> BitPacked or Dict -> BitPacked
// are therefore not produced.
func recurseChildren(result Array, cfg CompressConfig, depth int) Array {
	switch r := result.(type) {
	case *FrameOfReferenceArray:
		encoded := compressAtDepth(r.encoded, cfg, depth+1)
		if enc, ok := encoded.(*PrimitiveArray); ok {
			return NewFrameOfReferenceArray(r.reference, r.shift, enc)
		}
		return r
	case *DictionaryArray:
		codes := compressAtDepth(r.codes, cfg, depth+1)
		if c, ok := codes.(*PrimitiveArray); ok {
			return NewDictionaryArray(c, r.values)
		}
		return r
	default:
		return result
	}
}
