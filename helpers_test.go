package grou

import (
	"math"
	"math/big"
	"math/rand/v2"
	"slices"
	"testing"
)

const u = math.MaxUint64

// toBig converts n to a big.Int, most significant limb last.
func toBig(n Number) *big.Int {
	z := new(big.Int)
	for i := len(n.limbs) - 1; i >= 0; i-- {
		z.Lsh(z, LimbBits)
		z.Or(z, new(big.Int).SetUint64(n.limbs[i]))
	}
	return z
}

// fromBig converts a non-negative big.Int into a canonical Number.
func fromBig(x *big.Int) Number {
	if x.Sign() == 0 {
		return FromUint64(0)
	}
	words := x.Bits()
	limbs := make([]Limb, len(words))
	for i, w := range words {
		limbs[i] = Limb(w)
	}
	return Number{limbs: limbs}
}

// randNumber returns a canonical Number of exactly n limbs (n > 0).
func randNumber(r *rand.Rand, n int) Number {
	limbs := make([]Limb, n)
	for i := range limbs {
		limbs[i] = r.Uint64()
	}
	if limbs[n-1] == 0 {
		limbs[n-1] = 1
	}
	return Number{limbs: limbs}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// checkLimbs reports an error when n's limbs differ from want. A nil want
// matches an empty Number.
func checkLimbs(t *testing.T, n Number, want []Limb) {
	t.Helper()
	if got := n.Limbs(); !slices.Equal(got, want) {
		t.Errorf("limbs = %v, want %v", got, want)
	}
}

// checkPanics reports an error when f returns normally.
func checkPanics(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	f()
}
