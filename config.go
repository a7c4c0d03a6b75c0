// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

// CompressConfig tunes the compression planner (§4.8). No environment
// variables, no global state beyond the encoding registry (§6).
type CompressConfig struct {
	// BlockSize is the number of rows per compression block.
	BlockSize int
	// SampleSize is the number of rows per sample window.
	SampleSize int
	// SampleCount is the number of sample windows drawn per probe.
	SampleCount int
	// MaxDepth bounds nested recoding depth.
	MaxDepth int
	// REEAverageRunThreshold is the minimum mean run length to pick
	// Run-End over the alternative candidates.
	REEAverageRunThreshold float64
	// EnabledEncodings whitelists Kinds; empty means all are enabled.
	EnabledEncodings []Kind
	// DisabledEncodings blacklists Kinds.
	DisabledEncodings []Kind
	// MinImprovement is the fractional size reduction a candidate must
	// achieve over the identity encoding to be chosen (§4.8 step 3,
	// "≥5%" default).
	MinImprovement float64
	// seed drives the sampler's RNG; DefaultCompressConfig leaves it
	// unset (0), callers wanting determinism should set it explicitly
	// via WithSeed.
	seed    uint64
	seedSet bool
}

// DefaultCompressConfig returns the §4.8 defaults.
func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		BlockSize:              65536,
		SampleSize:             64,
		SampleCount:            10,
		MaxDepth:               3,
		REEAverageRunThreshold: 2.0,
		MinImprovement:         0.05,
	}
}

// WithSeed returns a copy of c with a fixed sampler seed, for
// deterministic tests.
func (c CompressConfig) WithSeed(seed uint64) CompressConfig {
	c.seed, c.seedSet = seed, true
	return c
}

func (c CompressConfig) isEnabled(k Kind) bool {
	if len(c.DisabledEncodings) > 0 {
		for _, d := range c.DisabledEncodings {
			if d == k {
				return false
			}
		}
	}
	if len(c.EnabledEncodings) == 0 {
		return true
	}
	for _, e := range c.EnabledEncodings {
		if e == k {
			return true
		}
	}
	return false
}
