package grou

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// radix describes how a numeral in one base is cut into packets: each packet
// of packetLen digits parses to one base-B proto-digit with B = base^packetLen
// the largest such power that fits in a Limb.
type radix struct {
	base      int
	packetLen int
	b         Limb
}

var (
	decimalRadix = radix{base: 10, packetLen: 19, b: 10_000_000_000_000_000_000}
	hexRadix     = radix{base: 16, packetLen: 15, b: 1 << 60}
	binaryRadix  = radix{base: 2, packetLen: 63, b: 1 << 63}
)

// Parse converts an ASCII numeral into a Number. A "0x" prefix selects
// hexadecimal, "0b" binary, anything else decimal. Empty text, and a prefix
// with no digits after it, give the empty Number. Leading zero digits are
// accepted and the result is canonical.
func Parse(text string) (Number, error) {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return Number{}, &FormatError{Input: text, Offset: i, Reason: "non-ASCII character"}
		}
	}
	if text == "" {
		return Number{}, nil
	}

	r, digits, off := decimalRadix, text, 0
	switch {
	case strings.HasPrefix(text, "0x"):
		r, digits, off = hexRadix, text[2:], 2
	case strings.HasPrefix(text, "0b"):
		r, digits, off = binaryRadix, text[2:], 2
	}

	packets, err := r.packets(digits)
	if err != nil {
		err.Input = text
		err.Offset += off
		return Number{}, err
	}
	return foldPackets(packets, r.b), nil
}

// MustParse is like Parse but panics if text is not a valid numeral.
func MustParse(text string) Number {
	n, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return n
}

// packets splits digits into right-aligned packets, least significant first,
// and parses each one in r's base.
func (r radix) packets(digits string) ([]Limb, *FormatError) {
	out := make([]Limb, 0, ceilDiv(len(digits), r.packetLen))
	for end := len(digits); end > 0; end -= r.packetLen {
		start := max(end-r.packetLen, 0)
		d, err := strconv.ParseUint(digits[start:end], r.base, LimbBits)
		if err != nil {
			return nil, &FormatError{
				Offset: start,
				Reason: "invalid base-" + strconv.Itoa(r.base) + " packet " + strconv.Quote(digits[start:end]),
				Err:    err,
			}
		}
		out = append(out, d)
	}
	return out, nil
}

// foldPackets evaluates proto-digits (least significant first) in base b with
// Horner's method.
func foldPackets(packets []Limb, b Limb) Number {
	n := Empty(len(packets))
	for i := len(packets) - 1; i >= 0; i-- {
		n.MulSmall(b)
		n.AddSmall(packets[i])
	}
	n.Trim()
	return n
}

// ParseDigits converts base-10 digit values (0 through 9, most significant
// first, not ASCII characters) into a Number. It panics with a *FormatError
// if any value exceeds 9.
func ParseDigits(digits []byte) Number {
	packets := make([]Limb, 0, ceilDiv(len(digits), decimalRadix.packetLen))
	var acc, mult Limb = 0, 1
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if d > 9 {
			panic(&FormatError{Offset: i, Reason: "digit value " + strconv.Itoa(int(d)) + " out of range"})
		}
		acc += mult * Limb(d)
		mult *= 10
		if mult == decimalRadix.b {
			packets = append(packets, acc)
			acc, mult = 0, 1
		}
	}
	if mult != 1 {
		packets = append(packets, acc)
	}
	return foldPackets(packets, decimalRadix.b)
}
