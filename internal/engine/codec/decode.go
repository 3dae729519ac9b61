package codec

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// DecodeOne decodes the single character starting at the beginning of b.
// It returns the character and the number of bytes it occupies.
//
// If b does not start with a valid unit in the encoding, DecodeOne returns
// Placeholder and consumes exactly 1 byte. It never consumes zero bytes on
// non-empty input, so a decode loop always terminates and stays aligned
// with the underlying bytes.
func DecodeOne(e Encoding, b []byte) (rune, int) {
	if len(b) == 0 {
		return Placeholder, 0
	}

	switch e {
	case UTF8:
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			return Placeholder, 1
		}
		return r, size
	case UTF16LE:
		return decodeOneUTF16(b, false)
	case UTF16BE:
		return decodeOneUTF16(b, true)
	case ShiftJIS, EUCJP:
		return decodeOneTransform(e.xtextEncoding(), b, e.maxUnitLen())
	default:
		return Placeholder, 1
	}
}

// decodeOneUTF16 decodes one UTF-16 code point, combining surrogate pairs.
func decodeOneUTF16(b []byte, bigEndian bool) (rune, int) {
	unit := func(i int) uint16 {
		if bigEndian {
			return uint16(b[i])<<8 | uint16(b[i+1])
		}
		return uint16(b[i]) | uint16(b[i+1])<<8
	}

	if len(b) < 2 {
		return Placeholder, 1
	}

	u := unit(0)
	switch {
	case u >= 0xD800 && u <= 0xDBFF: // high surrogate
		if len(b) >= 4 {
			u2 := unit(2)
			if u2 >= 0xDC00 && u2 <= 0xDFFF {
				return utf16.DecodeRune(rune(u), rune(u2)), 4
			}
		}
		return Placeholder, 1
	case u >= 0xDC00 && u <= 0xDFFF: // unpaired low surrogate
		return Placeholder, 1
	default:
		return rune(u), 2
	}
}

// decodeOneTransform decodes one character using an x/text decoder by
// probing prefixes of increasing length. Multi-byte lead bytes never decode
// validly on their own, so the shortest prefix that yields a real character
// is the character's true extent.
func decodeOneTransform(enc encoding.Encoding, b []byte, maxLen int) (rune, int) {
	var dst [utf8.UTFMax]byte

	for l := 1; l <= maxLen && l <= len(b); l++ {
		dec := enc.NewDecoder()
		nDst, nSrc, err := dec.Transform(dst[:], b[:l], true)
		if err != nil || nSrc != l || nDst == 0 {
			continue
		}

		r, size := utf8.DecodeRune(dst[:nDst])
		if r == utf8.RuneError || size != nDst {
			continue
		}
		return r, l
	}

	return Placeholder, 1
}

// Decode decodes all of b, substituting Placeholder for invalid units.
// The result has exactly one character per decoded unit.
func Decode(e Encoding, b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := DecodeOne(e, b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
