package grou

import (
	"math/bits"
	"slices"
)

// addLimbs sets z = x + y and returns z. z's backing array is reused when
// large enough; it must not alias x or y. The result has max(len(x),len(y))
// limbs, plus one when a final carry remains, and is not trimmed.
func addLimbs(z, x, y []Limb) []Limb {
	if len(x) < len(y) {
		x, y = y, x
	}
	z = slices.Grow(z[:0], len(x)+1)

	var c Limb
	xs := x[:len(y)]
	for i, yi := range y {
		var s Limb
		s, c = bits.Add64(xs[i], yi, c)
		z = append(z, s)
	}
	for i := len(y); i < len(x); i++ {
		if c == 0 {
			// Without a carry the rest of x copies through unchanged.
			z = append(z, x[i:]...)
			break
		}
		var s Limb
		s, c = bits.Add64(x[i], 0, c)
		z = append(z, s)
	}
	if c != 0 {
		z = append(z, 1)
	}
	return z
}

// addAt adds x·2^(64·off) into z in place, growing z as needed.
func addAt(z, x []Limb, off int) []Limb {
	z = growZero(z, off+len(x))
	var c Limb
	zs := z[off : off+len(x)]
	for i, xi := range x {
		zs[i], c = bits.Add64(zs[i], xi, c)
	}
	for p := off + len(x); c != 0; p++ {
		if p == len(z) {
			z = append(z, 0)
		}
		z[p], c = bits.Add64(z[p], 0, c)
	}
	return z
}

// Add returns n + x. The result is not trimmed.
func (n Number) Add(x Number) Number {
	return Number{limbs: addLimbs(nil, n.limbs, x.limbs)}
}

// AddAssign sets n = n + x. The sum is built in a fresh buffer before it
// replaces n's storage, so n and x may share limbs.
func (n *Number) AddAssign(x Number) {
	n.limbs = addLimbs(nil, n.limbs, x.limbs)
}

// AddSmall adds the single limb v to n in place. An empty n becomes [v].
func (n *Number) AddSmall(v Limb) {
	if len(n.limbs) == 0 {
		n.limbs = append(n.limbs, v)
		return
	}
	c := v
	for i := range n.limbs {
		if c == 0 {
			return
		}
		n.limbs[i], c = bits.Add64(n.limbs[i], c, 0)
	}
	if c != 0 {
		n.limbs = append(n.limbs, c)
	}
}

// Add returns the sum of the limbs viewed by v and w as a new Number.
func (v View) Add(w View) Number {
	return Number{limbs: addLimbs(nil, v.Limbs(), w.Limbs())}
}
