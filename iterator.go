package grou

import "iter"

// BlockIterator yields consecutive fixed-length Views over a Number, in
// ascending limb order. The last block may be shorter. An iterator is
// single-pass; build a new one to start over.
type BlockIterator struct {
	src         View
	blockLength int
	offset      int
	done        bool
}

// NewBlockIterator returns an iterator over n in blocks of blockLength limbs.
// A non-positive blockLength yields nothing.
func NewBlockIterator(n Number, blockLength int) *BlockIterator {
	return newBlockIterator(viewOf(n.limbs), blockLength)
}

func newBlockIterator(v View, blockLength int) *BlockIterator {
	return &BlockIterator{src: v, blockLength: blockLength, done: blockLength <= 0}
}

// BlockLength returns the configured block length.
func (it *BlockIterator) BlockLength() int { return it.blockLength }

// Next returns the next block and true, or a zero View and false once the
// number is exhausted. An empty Number yields a single empty block.
func (it *BlockIterator) Next() (View, bool) {
	if it.done {
		return View{}, false
	}
	b := it.src.SplitOffBlock(it.offset, it.blockLength)
	it.offset += it.blockLength
	if it.offset >= it.src.n {
		it.done = true
	}
	return b, true
}

// Blocks returns a sequence over the blocks of n of the given length.
func (n Number) Blocks(length int) iter.Seq[View] {
	return func(yield func(View) bool) {
		it := NewBlockIterator(n, length)
		for {
			b, ok := it.Next()
			if !ok || !yield(b) {
				return
			}
		}
	}
}

// CalculateBlockLength returns ceil(max(len(a), len(b)) / nblocks), the block
// length that splits the longer operand into nblocks pieces.
func CalculateBlockLength(nblocks int, a, b Number) int {
	return ceilDiv(max(a.Len(), b.Len()), nblocks)
}
