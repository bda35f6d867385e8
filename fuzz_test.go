package grou

import (
	"encoding/binary"
	"math/big"
	"testing"
)

// limbsFromBytes packs b into little-endian limbs, zero-padding the tail.
func limbsFromBytes(b []byte) Number {
	n := Number{limbs: make([]Limb, 0, ceilDiv(len(b), 8))}
	for len(b) > 0 {
		var buf [8]byte
		k := copy(buf[:], b)
		n.limbs = append(n.limbs, binary.LittleEndian.Uint64(buf[:]))
		b = b[k:]
	}
	n.Trim()
	return n
}

func FuzzKaratsubaVsStraight(f *testing.F) {
	f.Add([]byte{10, 0, 0, 0, 0, 0, 0, 0, 10}, []byte{5, 0, 0, 0, 0, 0, 0, 0, 5})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, []byte{2})
	f.Add(make([]byte, 300), []byte{1, 2, 3})

	f.Fuzz(func(t *testing.T, x, y []byte) {
		if len(x) > 4096 || len(y) > 4096 {
			t.Skip()
		}
		a, b := limbsFromBytes(x), limbsFromBytes(y)
		k := a.KaratsubaMul(b)
		s := StraightMul(a.SubsetAll(), b.SubsetAll())
		if !k.Equal(s) {
			t.Fatalf("KaratsubaMul(%v, %v) = %v, straight = %v", a, b, k, s)
		}
	})
}

func FuzzAddSub(f *testing.F) {
	f.Add([]byte{1}, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	f.Add([]byte{}, []byte{7})

	f.Fuzz(func(t *testing.T, x, y []byte) {
		a, b := limbsFromBytes(x), limbsFromBytes(y)
		sum := a.Add(b)
		want := new(big.Int).Add(toBig(a), toBig(b))
		if toBig(sum).Cmp(want) != 0 {
			t.Fatalf("%v + %v = %v", a, b, sum)
		}
		d, err := sum.Sub(a)
		if err != nil {
			t.Fatalf("(%v + %v) - %v: %v", a, b, a, err)
		}
		if toBig(d).Cmp(toBig(b)) != 0 {
			t.Fatalf("(%v + %v) - %v = %v", a, b, a, d)
		}
	})
}

func FuzzParse(f *testing.F) {
	for _, s := range []string{"0", "123", "0xdeadbeef", "0b1011", "", "0x", "9999999999999999999999"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		n, err := Parse(s)
		if err != nil {
			return
		}
		base, digits := 10, s
		switch {
		case len(s) >= 2 && s[:2] == "0x":
			base, digits = 16, s[2:]
		case len(s) >= 2 && s[:2] == "0b":
			base, digits = 2, s[2:]
		}
		if digits == "" {
			if n.Len() != 0 {
				t.Fatalf("Parse(%q) = %v, want empty", s, n)
			}
			return
		}
		want, ok := new(big.Int).SetString(digits, base)
		if !ok {
			t.Fatalf("Parse(%q) accepted text big.Int rejects", s)
		}
		if toBig(n).Cmp(want) != 0 {
			t.Fatalf("Parse(%q) = %v, want %s", s, n, want)
		}
	})
}
