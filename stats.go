// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

package nanocol

import (
	"sync"

	"github.com/nanocol/nanocol/internal/sparse"
)

// Stat enumerates the lazily computed, memoized per-node statistics.
type Stat uint8

const (
	StatMin Stat = iota
	StatMax
	StatIsConstant
	StatIsSorted
	StatIsStrictSorted
	StatRunCount
	StatTrueCount
	StatNullCount
	StatBitWidthFreq
	StatTrailingZeroFreq
	numStats
)

func (s Stat) String() string {
	names := [...]string{"Min", "Max", "IsConstant", "IsSorted", "IsStrictSorted",
		"RunCount", "TrueCount", "NullCount", "BitWidthFreq", "TrailingZeroFreq"}
	if int(s) < len(names) {
		return names[s]
	}
	return "Stat(?)"
}

// statsComputer is implemented by every array node kind: it computes a
// single requested stat from the node's own content (which may involve
// canonicalizing, scanning a child, or returning a codec-specific
// shortcut — e.g. Constant's stats are O(1), see constant.go).
type statsComputer interface {
	computeStat(s Stat) (any, bool)
}

// StatsSet is a node's lazy statistics cache, reader/writer-lock guarded
// per spec.md §5 so that concurrent stats() queries on a shared root are
// safe. It is backed by internal/sparse.Array, the teacher's popcount-
// compressed sparse array, repurposed here: the key space is the ~10-
// member Stat enum rather than IP route base-indices, and the payload
// is a computed stat value rather than a route value.
type StatsSet struct {
	mu     sync.RWMutex
	values sparse.Array[any]
	src    statsComputer
}

// newStatsSet returns an empty stats cache backed by src.
func newStatsSet(src statsComputer) *StatsSet {
	return &StatsSet{src: src}
}

// get returns stat s, computing and memoizing it on a cache miss.
// Absent stats (the computer cannot produce a value, e.g. RunCount for
// a node with no notion of runs) are not memoized and are recomputed
// on every call, per spec.md §7's "statistic computation errors are
// not observable" rule.
func (c *StatsSet) get(s Stat) (any, bool) {
	c.mu.RLock()
	if v, ok := c.values.Get(uint(s)); ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	v, ok := c.src.computeStat(s)
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	c.values.InsertAt(uint(s), v)
	c.mu.Unlock()
	return v, true
}

// invalidate drops every memoized value. Called whenever a node's
// logical content changes identity (slicing constructs a fresh node
// with a fresh, empty StatsSet, so this is mostly for completeness).
func (c *StatsSet) invalidate() {
	c.mu.Lock()
	c.values.Reset()
	c.mu.Unlock()
}

// Min returns the minimum value, if known.
func (c *StatsSet) Min() (Scalar, bool) {
	v, ok := c.get(StatMin)
	if !ok {
		return Scalar{}, false
	}
	return v.(Scalar), true
}

// Max returns the maximum value, if known.
func (c *StatsSet) Max() (Scalar, bool) {
	v, ok := c.get(StatMax)
	if !ok {
		return Scalar{}, false
	}
	return v.(Scalar), true
}

// IsConstant reports whether every element equals the same value.
func (c *StatsSet) IsConstant() bool {
	v, ok := c.get(StatIsConstant)
	return ok && v.(bool)
}

// IsSorted reports whether the array is non-decreasing.
func (c *StatsSet) IsSorted() bool {
	v, ok := c.get(StatIsSorted)
	return ok && v.(bool)
}

// IsStrictSorted reports whether the array is strictly increasing.
func (c *StatsSet) IsStrictSorted() bool {
	v, ok := c.get(StatIsStrictSorted)
	return ok && v.(bool)
}

// RunCount returns the number of maximal constant-value runs.
func (c *StatsSet) RunCount() (int, bool) {
	v, ok := c.get(StatRunCount)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// TrueCount returns the number of true values in a boolean array.
func (c *StatsSet) TrueCount() (int, bool) {
	v, ok := c.get(StatTrueCount)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// NullCount returns the number of null elements.
func (c *StatsSet) NullCount() int {
	v, _ := c.get(StatNullCount)
	if v == nil {
		return 0
	}
	return v.(int)
}

// BitWidthFreq returns a histogram of the minimum bit width needed per
// element, indexed [0,64].
func (c *StatsSet) BitWidthFreq() ([]int, bool) {
	v, ok := c.get(StatBitWidthFreq)
	if !ok {
		return nil, false
	}
	return v.([]int), true
}

// TrailingZeroFreq returns a histogram of trailing-zero-bit counts per
// element, indexed [0,64]; used by the Frame-of-Reference codec to
// find the common right-shift (§4.4, §4.8).
func (c *StatsSet) TrailingZeroFreq() ([]int, bool) {
	v, ok := c.get(StatTrailingZeroFreq)
	if !ok {
		return nil, false
	}
	return v.([]int), true
}
