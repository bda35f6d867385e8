package grou

import (
	"slices"
	"strconv"
	"strings"
)

// Limb is one 64-bit digit of a Number.
type Limb = uint64

// LimbBits is the width of a Limb in bits.
const LimbBits = 64

// Number is an arbitrary-precision unsigned integer stored as limbs, least
// significant first. The zero value is the empty Number (no limbs).
type Number struct {
	limbs []Limb
}

// Empty returns a Number with no limbs. capacity is an allocation hint.
func Empty(capacity int) Number {
	if capacity < 0 {
		capacity = 0
	}
	return Number{limbs: make([]Limb, 0, capacity)}
}

// FromUint64 returns the single-limb Number v.
func FromUint64(v Limb) Number {
	return Number{limbs: []Limb{v}}
}

// FromLimbs returns a Number holding a copy of limbs, least significant
// first. The result is not trimmed.
func FromLimbs(limbs ...Limb) Number {
	return Number{limbs: append(make([]Limb, 0, len(limbs)), limbs...)}
}

// Len returns the number of limbs, including any high-order zero limbs.
func (n Number) Len() int { return len(n.limbs) }

// Limbs returns a copy of the limbs, least significant first.
func (n Number) Limbs() []Limb { return slices.Clone(n.limbs) }

// Clone returns a deep copy of n.
func (n Number) Clone() Number {
	return Number{limbs: slices.Clone(n.limbs)}
}

// Trim drops high-order zero limbs, keeping at least one limb. An empty
// Number stays empty.
func (n *Number) Trim() {
	n.limbs = trimLimbs(n.limbs)
}

// IsZero reports whether n represents zero, including the empty Number.
func (n Number) IsZero() bool { return sigLen(n.limbs) == 0 }

// Equal reports whether n and m have identical limb sequences. Two
// representations of the same value are only Equal when both are trimmed.
func (n Number) Equal(m Number) bool { return slices.Equal(n.limbs, m.limbs) }

// String returns a debug rendering of the limbs, e.g. "grou[99 1]".
func (n Number) String() string {
	var sb strings.Builder
	sb.WriteString("grou[")
	for i, l := range n.limbs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(l, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// trimLimbs returns z without its high-order zero limbs, keeping at least one
// limb when z is non-empty.
func trimLimbs(z []Limb) []Limb {
	i := len(z)
	for i > 1 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

// sigLen returns the number of limbs up to and including the most significant
// non-zero limb; it is 0 for zero and for the empty slice.
func sigLen(z []Limb) int {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return i
}

// growZero extends z with zero limbs to length n.
func growZero(z []Limb, n int) []Limb {
	if n <= len(z) {
		return z
	}
	l := len(z)
	z = slices.Grow(z, n-l)[:n]
	clear(z[l:])
	return z
}
