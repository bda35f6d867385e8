package grou

import (
	"math/big"
	"testing"
)

func TestAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b Number
		want []Limb
	}{
		{"carry into new limb", FromUint64(100), FromUint64(u), []Limb{99, 1}},
		{"no carry", FromLimbs(1, 2), FromLimbs(3, 4), []Limb{4, 6}},
		{"uneven lengths", FromLimbs(1, 2, 3), FromLimbs(4), []Limb{5, 2, 3}},
		{"uneven lengths swapped", FromLimbs(4), FromLimbs(1, 2, 3), []Limb{5, 2, 3}},
		{"carry chain", FromLimbs(u, u, u), FromUint64(1), []Limb{0, 0, 0, 1}},
		{"empty operand", Number{}, FromLimbs(8, 9), []Limb{8, 9}},
		{"three limbs with carry", FromLimbs(u, u, 1), FromLimbs(u, u, 1), []Limb{u - 1, u, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.a.Add(tt.b)
			checkLimbs(t, got, tt.want)
			want := new(big.Int).Add(toBig(tt.a), toBig(tt.b))
			if toBig(got).Cmp(want) != 0 {
				t.Errorf("%v + %v = %s, want %s", tt.a, tt.b, toBig(got), want)
			}
		})
	}
}

func TestAddOverflowAcrossLimbs(t *testing.T) {
	t.Parallel()
	a := FromLimbs(0, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	b := FromLimbs(u, u, u, u, u, u, u, u, u, u)
	checkLimbs(t, a.Add(b), []Limb{u, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1})
}

func TestAddAssign(t *testing.T) {
	t.Parallel()
	n := FromUint64(u)
	n.AddAssign(FromUint64(100))
	checkLimbs(t, n, []Limb{99, 1})

	// Adding a Number to itself shares storage between the operands.
	n.AddAssign(n)
	checkLimbs(t, n, []Limb{198, 2})
}

func TestAddSmall(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    Number
		v    Limb
		want []Limb
	}{
		{"empty becomes v", Number{}, 7, []Limb{7}},
		{"empty becomes zero", Number{}, 0, []Limb{0}},
		{"no carry", FromLimbs(1, 1), 2, []Limb{3, 1}},
		{"carry stops early", FromLimbs(u, 5), 1, []Limb{0, 6}},
		{"carry out", FromLimbs(u, u), 1, []Limb{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.n.AddSmall(tt.v)
			checkLimbs(t, tt.n, tt.want)
		})
	}
}

func TestViewAdd(t *testing.T) {
	t.Parallel()
	g := FromLimbs(1, 2, 3, 4, 5, 6)
	got := g.Subset(0, 3).Add(g.Subset(3, 6))
	checkLimbs(t, got, []Limb{5, 7, 9})
	// operands untouched
	checkLimbs(t, g, []Limb{1, 2, 3, 4, 5, 6})
}
