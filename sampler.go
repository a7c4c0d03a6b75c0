// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import "math/rand/v2"

// sampleProbe draws cfg.SampleCount non-overlapping windows of
// cfg.SampleSize rows from a, each at a uniformly random offset within
// its own equal-width stride of a (fewer windows when a is too short
// for cfg.SampleCount disjoint ones), concatenated
// into a single probe array (§4.8 step 2). A seeded RNG (when cfg has
// a seed set) makes the draw reproducible for tests, matching the
// teacher's RandomPrefix(prng *rand.Rand) idiom of taking the PRNG as
// an explicit parameter rather than reaching for a global source.
func sampleProbe(a Array, cfg CompressConfig) Array {
	n := a.Len()
	windowSize := cfg.SampleSize
	if windowSize <= 0 || windowSize >= n {
		return a
	}
	count := cfg.SampleCount
	if count <= 0 {
		count = 1
	}

	var src rand.Source
	if cfg.seedSet {
		src = rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)
	} else {
		src = rand.NewPCG(1, 1)
	}
	rng := rand.New(src)

	// one window per equal-width stride of a, so windows never overlap;
	// count shrinks when a cannot hold that many disjoint windows
	if maxCount := n / windowSize; count > maxCount {
		count = maxCount
	}
	stride := n / count
	var parts []Array
	for i := 0; i < count; i++ {
		start := i*stride + rng.IntN(stride-windowSize+1)
		parts = append(parts, a.Slice(start, start+windowSize))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return NewChunkedArray(a.DType(), parts)
}
