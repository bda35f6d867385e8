package grou

import "context"

// DefaultKaratsubaThreshold is the operand length, in limbs, at or below
// which Karatsuba recursion bottoms out in schoolbook multiplication.
const DefaultKaratsubaThreshold = 32

// karatsubaSplit holds one level of the Karatsuba decomposition
//
//	x = x1·B^k + x0,  y = y1·B^k + y0,  B = 2^64
//
// together with the difference magnitudes |x1-x0| and |y1-y0|.
type karatsubaSplit struct {
	k              int
	x0, x1, y0, y1 []Limb
	dx, dy         []Limb
	// addMid is set when x1-x0 and y1-y0 have opposite signs, so the middle
	// product enters the combination with a plus sign.
	addMid bool
}

func splitKaratsuba(x, y []Limb) karatsubaSplit {
	k := ceilDiv(max(len(x), len(y)), 2)
	xv, yv := viewOf(x), viewOf(y)
	s := karatsubaSplit{
		k:  k,
		x0: xv.SplitOffBlock(0, k).Limbs(),
		x1: xv.SplitOffBlock(k, k).Limbs(),
		y0: yv.SplitOffBlock(0, k).Limbs(),
		y1: yv.SplitOffBlock(k, k).Limbs(),
	}
	var negX, negY bool
	negX, s.dx = subWithSign(acquireLimbs(k), s.x1, s.x0)
	negY, s.dy = subWithSign(acquireLimbs(k), s.y1, s.y0)
	s.addMid = negX != negY
	return s
}

func (s *karatsubaSplit) release() {
	releaseLimbs(s.dx)
	releaseLimbs(s.dy)
}

// combine writes the product into z from the three sub-products
//
//	high = x1·y1,  low = x0·y0,  mid = |x1-x0|·|y1-y0|
//
// as high·B^2k + (high + low ∓ mid)·B^k + low, and returns z trimmed.
// z must not alias any of the inputs.
func (s *karatsubaSplit) combine(z, low, high, mid []Limb) []Limb {
	// high·B^2k + low: low has at most 2k limbs, so it fills the zero gap.
	z = append(z[:0], high...)
	z = shiftLimbs(z, 2*s.k)
	copy(z, low)

	sum := addLimbs(acquireLimbs(max(len(low), len(high))+1), high, low)
	z = addAt(z, sum, s.k)
	releaseLimbs(sum)

	if s.addMid {
		z = addAt(z, mid, s.k)
	} else {
		z = subAt(z, mid, s.k)
	}
	return trimLimbs(z)
}

// karatsuba sets z = x · y and returns it trimmed, recursing while the longer
// operand exceeds threshold limbs. ctx is checked before every split; once it
// is done the pooled temporaries are released and only ctx.Err() is returned.
func karatsuba(ctx context.Context, z, x, y []Limb, threshold int) ([]Limb, error) {
	if len(x) == 0 || len(y) == 0 {
		return z[:0], nil
	}
	if max(len(x), len(y)) <= max(threshold, 1) {
		return mulLimbs(z, x, y), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return karatsubaStep(z, x, y, func(z, a, b []Limb) ([]Limb, error) {
		return karatsuba(ctx, z, a, b, threshold)
	})
}

// karatsubaStep performs a single level of Karatsuba, computing the three
// sub-products with mul in order and stopping at the first error.
func karatsubaStep(z, x, y []Limb, mul func(z, x, y []Limb) ([]Limb, error)) ([]Limb, error) {
	s := splitKaratsuba(x, y)
	defer s.release()

	var parts [3][]Limb
	defer func() {
		for _, p := range parts {
			releaseLimbs(p)
		}
	}()
	operands := [3][2][]Limb{{s.x0, s.y0}, {s.x1, s.y1}, {s.dx, s.dy}}
	for i, op := range operands {
		buf := acquireLimbs(len(op[0]) + len(op[1]))
		p, err := mul(buf, op[0], op[1])
		if err != nil {
			releaseLimbs(buf)
			return nil, err
		}
		parts[i] = p
	}
	return s.combine(z, parts[0], parts[1], parts[2]), nil
}

// KaratsubaMul returns n · rhs, trimmed. The top level always splits the
// operands in half; sub-products recurse with DefaultKaratsubaThreshold.
func (n Number) KaratsubaMul(rhs Number) Number {
	x, y := n.limbs, rhs.limbs
	switch {
	case len(x) == 0 || len(y) == 0:
		return Number{}
	case max(len(x), len(y)) < 2:
		return Number{limbs: mulLimbs(nil, x, y)}
	}
	ctx := context.Background()
	z, _ := karatsubaStep(nil, x, y, func(z, a, b []Limb) ([]Limb, error) {
		return karatsuba(ctx, z, a, b, DefaultKaratsubaThreshold)
	})
	return Number{limbs: z}
}
