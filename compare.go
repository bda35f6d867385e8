package grou

// cmpLimbs compares x and y as unsigned integers, ignoring high-order zero
// limbs. It returns -1, 0 or +1. Two empty slices compare equal.
func cmpLimbs(x, y []Limb) int {
	x, y = x[:sigLen(x)], y[:sigLen(y)]
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// Cmp compares n and m and returns:
//
//	-1 if n <  m
//	 0 if n == m
//	+1 if n >  m
//
// High-order zero limbs are ignored, so Cmp is a total order on values even
// when Equal (which is structural) would disagree.
func (n Number) Cmp(m Number) int { return cmpLimbs(n.limbs, m.limbs) }

// Cmp compares the limb ranges of v and w as unsigned integers.
func (v View) Cmp(w View) int { return cmpLimbs(v.Limbs(), w.Limbs()) }
