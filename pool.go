// This file provides pooled limb buffers for Karatsuba temporaries.

package grou

import (
	"math/bits"
	"sync"
)

// limbSlicePools pools []Limb scratch slices by size class. Size classes are
// powers of 4 from 64 to 64K limbs; larger requests bypass the pool.
var limbSlicePools = [...]sync.Pool{
	{New: func() any { return make([]Limb, 64) }},
	{New: func() any { return make([]Limb, 256) }},
	{New: func() any { return make([]Limb, 1024) }},
	{New: func() any { return make([]Limb, 4096) }},
	{New: func() any { return make([]Limb, 16384) }},
	{New: func() any { return make([]Limb, 65536) }},
}

var limbSliceSizes = [...]int{64, 256, 1024, 4096, 16384, 65536}

// limbPoolIndex returns the pool index for a capacity of size limbs, or -1
// when size is too large for pooling. Class i holds 4^(i+3) limbs, so the
// index follows from bits.Len(size-1).
func limbPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > limbSliceSizes[len(limbSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireLimbs returns an empty slice with capacity for at least size limbs.
// Release it with releaseLimbs once nothing refers to it any more.
func acquireLimbs(size int) []Limb {
	idx := limbPoolIndex(size)
	if idx < 0 {
		return make([]Limb, 0, size)
	}
	return limbSlicePools[idx].Get().([]Limb)[:0]
}

// releaseLimbs returns s to its pool. Slices whose capacity is not exactly a
// size class (grown by append, or allocated directly) are left to the GC.
func releaseLimbs(s []Limb) {
	c := cap(s)
	idx := limbPoolIndex(c)
	if idx >= 0 && limbSliceSizes[idx] == c {
		limbSlicePools[idx].Put(s[:c])
	}
}
