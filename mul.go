package grou

import (
	"math/bits"
	"slices"
)

// mulSmall multiplies z by y in place and returns the carry out of the most
// significant limb.
func mulSmall(z []Limb, y Limb) (carry Limb) {
	for i, zi := range z {
		hi, lo := bits.Mul64(zi, y)
		var c Limb
		lo, c = bits.Add64(lo, carry, 0)
		z[i] = lo
		carry = hi + c // hi <= 2^64-2, cannot overflow
	}
	return carry
}

// MulSmall multiplies n by the single limb v in place.
func (n *Number) MulSmall(v Limb) {
	if c := mulSmall(n.limbs, v); c != 0 {
		n.limbs = append(n.limbs, c)
	}
}

// MulScalar returns n · v as a new Number.
func (n Number) MulScalar(v Limb) Number {
	m := Number{limbs: slices.Grow(slices.Clone(n.limbs), 1)}
	m.MulSmall(v)
	return m
}

// addMulResult adds x·y·2^(64·off) into z, growing z with zero limbs as
// needed, and returns z.
//
// Each step forms the double-width product x[i]·y + mulCarry; its low limb is
// then added into z[off+i] with addCarry as carry-in. The two carries are
// kept apart because their sum can itself overflow a limb.
func addMulResult(z, x []Limb, y Limb, off int) []Limb {
	z = growZero(z, off+len(x))
	var mulCarry, addCarry Limb
	zs := z[off : off+len(x)]
	for i, xi := range x {
		hi, lo := bits.Mul64(xi, y)
		var c Limb
		lo, c = bits.Add64(lo, mulCarry, 0)
		mulCarry = hi + c
		zs[i], addCarry = bits.Add64(zs[i], lo, addCarry)
	}
	for p := off + len(x); mulCarry != 0 || addCarry != 0; p++ {
		if p == len(z) {
			z = append(z, 0)
		}
		z[p], addCarry = bits.Add64(z[p], mulCarry, addCarry)
		mulCarry = 0
	}
	return z
}

// mulLimbs sets z = x · y with the quadratic schoolbook method and returns
// it trimmed. z must not alias x or y. An empty operand gives an empty
// product.
func mulLimbs(z, x, y []Limb) []Limb {
	z = z[:0]
	if len(x) == 0 || len(y) == 0 {
		return z
	}
	z = growZero(z, len(x)+len(y))
	for j, yj := range y {
		if yj != 0 {
			z = addMulResult(z, x, yj, j)
		}
	}
	return trimLimbs(z)
}

// StraightMul returns a · b computed in O(len(a)·len(b)), trimmed.
func StraightMul(a, b View) Number {
	return Number{limbs: mulLimbs(nil, a.Limbs(), b.Limbs())}
}

// shiftLimbs shifts z up by shift limbs (multiplies it by 2^(64·shift)) in
// place and returns it.
func shiftLimbs(z []Limb, shift int) []Limb {
	if shift <= 0 {
		return z
	}
	n := len(z)
	z = slices.Grow(z, shift)[:n+shift]
	copy(z[shift:], z[:n])
	clear(z[:shift])
	return z
}

// ShiftLimbs multiplies n by 2^(64·shift) in place by inserting shift zero
// limbs below the current least significant limb.
func (n *Number) ShiftLimbs(shift int) {
	n.limbs = shiftLimbs(n.limbs, shift)
}
