package grou

import (
	"math/bits"
	"slices"
)

// subLimbs sets z = x - y, trimmed, and returns z. The caller guarantees
// x >= y by value; z must not alias x or y.
func subLimbs(z, x, y []Limb) []Limb {
	y = y[:sigLen(y)]
	z = slices.Grow(z[:0], len(x))

	var b Limb
	xs := x[:len(y)]
	for i, yi := range y {
		var d Limb
		d, b = bits.Sub64(xs[i], yi, b)
		z = append(z, d)
	}
	for i := len(y); i < len(x); i++ {
		if b == 0 {
			z = append(z, x[i:]...)
			break
		}
		var d Limb
		d, b = bits.Sub64(x[i], 0, b)
		z = append(z, d)
	}
	if b != 0 {
		panic("grou: subLimbs called with x < y")
	}
	return trimLimbs(z)
}

// subAt subtracts x·2^(64·off) from z in place. The caller guarantees the
// difference is non-negative.
func subAt(z, x []Limb, off int) []Limb {
	x = x[:sigLen(x)]
	if len(x) == 0 {
		return z
	}
	if off+len(x) > len(z) {
		panic("grou: subAt operand exceeds minuend")
	}
	var b Limb
	zs := z[off : off+len(x)]
	for i, xi := range x {
		zs[i], b = bits.Sub64(zs[i], xi, b)
	}
	for p := off + len(x); b != 0; p++ {
		if p == len(z) {
			panic("grou: subAt underflow")
		}
		z[p], b = bits.Sub64(z[p], 0, b)
	}
	return z
}

// subWithSign sets z = |x - y| and reports whether x < y.
func subWithSign(z, x, y []Limb) (negative bool, mag []Limb) {
	switch cmpLimbs(x, y) {
	case 0:
		return false, append(z[:0], 0)
	case -1:
		return true, subLimbs(z, y, x)
	}
	return false, subLimbs(z, x, y)
}

// Sub returns n - x, trimmed. It returns ErrUnderflow when x > n. Equal
// operands short-circuit to the canonical zero.
func (n Number) Sub(x Number) (Number, error) {
	switch cmpLimbs(n.limbs, x.limbs) {
	case -1:
		return Number{}, ErrUnderflow
	case 0:
		return FromUint64(0), nil
	}
	return Number{limbs: subLimbs(nil, n.limbs, x.limbs)}, nil
}

// MustSub is like Sub but panics on underflow.
func (n Number) MustSub(x Number) Number {
	d, err := n.Sub(x)
	if err != nil {
		panic(err)
	}
	return d
}

// SubWithSign returns |a - b| and whether a < b.
func SubWithSign(a, b Number) (negative bool, magnitude Number) {
	neg, mag := subWithSign(nil, a.limbs, b.limbs)
	return neg, Number{limbs: mag}
}
