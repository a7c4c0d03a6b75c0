// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

// Package sparse implements a generic sparse array with popcount
// compression: an internal/bitset.BitSet marks which keys are present,
// and a parallel Items slice holds one value per set bit, indexed by
// the bit's rank among the set bits below it. Presence tests are O(1);
// insertion/deletion are O(n) (shifts Items by one slot), which is fine
// for the small, fixed key spaces this package is used for in nanocol
// (stats.go's ~10-member Stat enum).
package sparse

import (
	"math/bits"

	"github.com/nanocol/nanocol/internal/bitset"
)

// Array is a generic sparse array with popcount compression and
// payload T.
type Array[T any] struct {
	bits  bitset.BitSet
	Items []T
}

// Get returns the value at key i, if present.
//
//	                   ⬇
//	BitSet: [0|0|1|0|0|1|0|1|...] <- 3 bits set
//	Items:  [*|*|*]               <- len(Items) = 3
//	           ⬆
//
//	bits.Test(5):      true
//	rank0(bits, 5):    1, equal popcount([0,5))
func (a *Array[T]) Get(i uint) (value T, ok bool) {
	if a.bits.Test(i) {
		return a.Items[rank0(a.bits, i)], true
	}
	return
}

// Len returns the number of present keys.
func (a *Array[T]) Len() int { return len(a.Items) }

// InsertAt sets the value at key i, overwriting any existing value.
// It reports whether a value was already present.
func (a *Array[T]) InsertAt(i uint, value T) (existed bool) {
	if a.bits.Test(i) {
		a.Items[rank0(a.bits, i)] = value
		return true
	}
	a.bits.Set(i)
	a.insertItem(rank0(a.bits, i), value)
	return false
}

// DeleteAt removes the value at key i, if present.
func (a *Array[T]) DeleteAt(i uint) (value T, existed bool) {
	if !a.bits.Test(i) {
		return
	}
	r := rank0(a.bits, i)
	value = a.Items[r]
	a.deleteItem(r)
	a.bits.Clear(i)
	return value, true
}

// rank0 returns the number of set bits strictly before index i, which
// is the slot a value at i occupies in the popcount-compressed Items
// slice.
func rank0(b bitset.BitSet, i uint) int {
	word := i >> 6
	var n int
	for w := uint(0); w < word && w < uint(len(b)); w++ {
		n += bits.OnesCount64(b[w])
	}
	if word < uint(len(b)) {
		n += bits.OnesCount64(b[word] & (1<<(i&63) - 1))
	}
	return n
}

// Reset clears the array back to empty, retaining Items' capacity.
func (a *Array[T]) Reset() {
	a.bits = a.bits[:0]
	a.Items = a.Items[:0]
}

func (a *Array[T]) insertItem(i int, item T) {
	if len(a.Items) < cap(a.Items) {
		a.Items = a.Items[:len(a.Items)+1]
	} else {
		var zero T
		a.Items = append(a.Items, zero)
	}
	copy(a.Items[i+1:], a.Items[i:])
	a.Items[i] = item
}

func (a *Array[T]) deleteItem(i int) {
	var zero T
	nl := len(a.Items) - 1
	copy(a.Items[i:], a.Items[i+1:])
	a.Items[nl] = zero
	a.Items = a.Items[:nl]
}
