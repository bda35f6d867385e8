package grou

import "slices"

// View is a borrowed, read-only window over the limbs [off, off+n) of a
// Number's storage. It owns nothing: it stays valid only while the Number it
// was taken from is neither mutated nor reassigned. Views carry no
// canonical-form guarantee; materialize with Number and Trim when needed.
//
// The zero View is empty.
type View struct {
	src []Limb
	off int
	n   int
}

func viewOf(z []Limb) View { return View{src: z, n: len(z)} }

// Len returns the number of limbs in the view.
func (v View) Len() int { return v.n }

// At returns limb i of the view.
func (v View) At(i int) Limb {
	if i < 0 || i >= v.n {
		panic(&BoundsError{Start: i, End: i + 1, Len: v.n})
	}
	return v.src[v.off+i]
}

// Limbs returns the viewed limbs. The returned slice aliases the owner's
// storage and has its capacity clipped, so appending to it never writes
// into the owner.
func (v View) Limbs() []Limb {
	return v.src[v.off : v.off+v.n : v.off+v.n]
}

// Number copies the viewed limbs into a new, untrimmed Number.
func (v View) Number() Number {
	return Number{limbs: slices.Clone(v.Limbs())}
}

// Equal reports whether v and w view identical limb sequences.
func (v View) Equal(w View) bool { return slices.Equal(v.Limbs(), w.Limbs()) }

// Subset returns the sub-view [start, end) of v. It panics with a
// *BoundsError when the range does not lie within v.
func (v View) Subset(start, end int) View {
	if start < 0 || end < start || end > v.n {
		panic(&BoundsError{Start: start, End: end, Len: v.n})
	}
	return View{src: v.src, off: v.off + start, n: end - start}
}

// SplitOffBlock returns the view of at most length limbs starting at start.
// The block is shorter when the view runs out and empty when start is at or
// past the end.
func (v View) SplitOffBlock(start, length int) View {
	if start < 0 || length < 0 {
		panic(&BoundsError{Start: start, End: start + length, Len: v.n})
	}
	if start >= v.n {
		return View{src: v.src, off: v.off + v.n}
	}
	return View{src: v.src, off: v.off + start, n: min(length, v.n-start)}
}

// Subset returns a view of limbs [start, end) of n. It panics with a
// *BoundsError when the range does not lie within n.
func (n Number) Subset(start, end int) View { return viewOf(n.limbs).Subset(start, end) }

// SubsetAll returns a view of every limb of n.
func (n Number) SubsetAll() View { return viewOf(n.limbs) }

// SplitOffBlock returns a view of at most length limbs of n beginning at
// start; see View.SplitOffBlock.
func (n Number) SplitOffBlock(start, length int) View {
	return viewOf(n.limbs).SplitOffBlock(start, length)
}

// Split2 partitions n into a low and a high view of ceil(len/2) and the
// remaining limbs.
func (n Number) Split2() (View, View) {
	parts := splitN(viewOf(n.limbs), 2)
	return parts[0], parts[1]
}

// Split3 partitions n into three consecutive views of ceil(len/3) limbs,
// the last ones possibly shorter or empty.
func (n Number) Split3() (View, View, View) {
	parts := splitN(viewOf(n.limbs), 3)
	return parts[0], parts[1], parts[2]
}

// splitN cuts v into exactly parts views of ceil(len/parts) limbs. Blocks the
// iterator does not reach are empty views anchored at the end of v.
func splitN(v View, parts int) []View {
	out := make([]View, 0, parts)
	it := newBlockIterator(v, ceilDiv(v.n, parts))
	for len(out) < parts {
		b, ok := it.Next()
		if !ok {
			b = v.SplitOffBlock(v.n, 0)
		}
		out = append(out, b)
	}
	return out
}

func ceilDiv(a, b int) int {
	return a/b + btoi(a%b != 0)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
