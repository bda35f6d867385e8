// Package grou implements arbitrary-precision unsigned integers.
//
// A Number is a little-endian sequence of 64-bit limbs: the value is
// Σ limb[i] · 2^(64·i). The package provides carry-propagating addition,
// borrow-propagating subtraction, scalar and full multiplication (schoolbook
// and Karatsuba), non-owning Views over limb ranges, a BlockIterator that
// slices a Number into fixed-size Views, and parsing of decimal, 0x-prefixed
// hexadecimal and 0b-prefixed binary numerals.
//
// Canonical form:
//
// A canonical non-zero Number has no zero limb above its most significant
// non-zero limb; a canonical zero is a single zero limb. Subtraction and
// multiplication always return canonical results. Addition does not trim:
// a sum is only non-canonical when an operand already was. Equality is
// structural, so compare canonical Numbers (or use Cmp, which ignores
// high-order zero limbs).
//
// Ownership:
//
// Number has value semantics only by convention: copying the struct shares
// the backing array, so Clone before handing a Number to another owner that
// may mutate it. A View borrows the storage of the Number it was taken from
// and must not be read after that Number is mutated.
package grou
