package codec

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnencodableChar is returned when a character has no representation in
// the selected encoding.
var ErrUnencodableChar = errors.New("character not encodable in this encoding")

// Placeholder is the rune shown for bytes that do not decode to a valid
// character unit. It always stands for exactly one byte.
const Placeholder = '.'

// Encoding selects one byte-to-character mapping from the supported set.
// The zero value is UTF8.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	ShiftJIS
	EUCJP

	numEncodings
)

// All returns the supported encodings in display/cycling order.
func All() []Encoding {
	return []Encoding{UTF8, UTF16LE, UTF16BE, ShiftJIS, EUCJP}
}

// String returns the display name of the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case ShiftJIS:
		return "Shift_JIS"
	case EUCJP:
		return "EUC-JP"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// Valid returns true if e names a supported encoding.
func (e Encoding) Valid() bool {
	return e < numEncodings
}

// Next returns the next encoding in the fixed cycling order, wrapping at
// the end of the list.
func (e Encoding) Next() Encoding {
	return (e + 1) % numEncodings
}

// Prev returns the previous encoding in the fixed cycling order.
func (e Encoding) Prev() Encoding {
	return (e + numEncodings - 1) % numEncodings
}

// Parse returns the encoding with the given name. Matching ignores case
// and treats '-' and '_' as equivalent, so "utf-8", "UTF_8", and
// "shift_jis" all parse.
func Parse(name string) (Encoding, bool) {
	fold := func(s string) string {
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "_", "-")
	}
	want := fold(name)
	for _, e := range All() {
		if fold(e.String()) == want {
			return e, true
		}
	}
	return UTF8, false
}

// maxUnitLen returns the longest byte sequence a single character can
// occupy in the encoding.
func (e Encoding) maxUnitLen() int {
	switch e {
	case UTF8:
		return 4
	case UTF16LE, UTF16BE:
		return 4 // surrogate pair
	case ShiftJIS:
		return 2
	case EUCJP:
		return 3 // SS3 + two bytes
	default:
		return 1
	}
}

// xtextEncoding returns the x/text encoding backing e, or nil for the
// encodings handled natively.
func (e Encoding) xtextEncoding() encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case ShiftJIS:
		return japanese.ShiftJIS
	case EUCJP:
		return japanese.EUCJP
	default:
		return nil
	}
}
