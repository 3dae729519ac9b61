package pattern

import "strings"

// normalizeFullwidth maps fullwidth ASCII variants (U+FF01..U+FF5E) and the
// ideographic space (U+3000) to their halfwidth forms. Other runes pass
// through unchanged.
func normalizeFullwidth(r rune) rune {
	if r >= 0xFF01 && r <= 0xFF5E {
		return r - 0xFF00 + 0x20
	}
	if r == '　' {
		return ' '
	}
	return r
}

// normalizeFullwidthString applies normalizeFullwidth to every rune.
func normalizeFullwidthString(s string) string {
	return strings.Map(normalizeFullwidth, s)
}

// normalizeHexDigit returns the canonical uppercase form of a hex digit,
// accepting fullwidth and lowercase variants. ok is false for anything that
// is not a hex digit.
func normalizeHexDigit(r rune) (byte, bool) {
	r = normalizeFullwidth(r)
	switch {
	case r >= '0' && r <= '9':
		return byte(r), true
	case r >= 'A' && r <= 'F':
		return byte(r), true
	case r >= 'a' && r <= 'f':
		return byte(r - 'a' + 'A'), true
	default:
		return 0, false
	}
}

// hexSeparators are characters ignored by the liberal NormalizeHex used for
// pasted content: common byte-listing punctuation and whitespace.
func isHexSeparator(r rune) bool {
	switch r {
	case ' ', ',', '{', '}', '\n', '\r', '\t':
		return true
	}
	return false
}

// NormalizeHex extracts canonical uppercase hex digits from liberally
// formatted input: separators (spaces, commas, braces, newlines) and 0x
// prefixes are stripped, fullwidth and lowercase digits are folded, and any
// other character is dropped. "0xDE, 0xad {be}" normalizes to "DEADBE".
func NormalizeHex(s string) string {
	var sb strings.Builder
	for _, r := range s {
		r = normalizeFullwidth(r)
		if isHexSeparator(r) || r == 'x' || r == 'X' {
			continue
		}
		if d, ok := normalizeHexDigit(r); ok {
			sb.WriteByte(d)
		}
	}
	return sb.String()
}

// LooksLikeHex reports whether liberally formatted input should be treated
// as hex: after NormalizeHex it must be a non-trivial even run of digits.
func LooksLikeHex(s string) bool {
	n := NormalizeHex(s)
	return len(n) >= 2 && len(n)%2 == 0
}

// HexToBytes decodes liberally formatted hex input to bytes.
// Returns false when the normalized digit count is odd or zero.
func HexToBytes(s string) ([]byte, bool) {
	n := NormalizeHex(s)
	if len(n) == 0 || len(n)%2 != 0 {
		return nil, false
	}
	return pairsToBytes(n), true
}

// pairsToBytes converts a canonical even-length hex digit string to bytes.
func pairsToBytes(s string) []byte {
	out := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		out[i/2] = hexVal(s[i])<<4 | hexVal(s[i+1])
	}
	return out
}

// hexVal returns the value of a canonical uppercase hex digit.
func hexVal(c byte) byte {
	if c >= 'A' {
		return c - 'A' + 10
	}
	return c - '0'
}

// FormatSpaced renders bytes as uppercase hex pairs separated by single
// spaces: []byte{0x48, 0x65} becomes "48 65".
func FormatSpaced(b []byte) string {
	const digits = "0123456789ABCDEF"
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	for i, v := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, digits[v>>4], digits[v&0x0F])
	}
	return string(out)
}

// FormatContinuous renders bytes as uppercase hex pairs with no separator.
func FormatContinuous(b []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, len(b)*2)
	for _, v := range b {
		out = append(out, digits[v>>4], digits[v&0x0F])
	}
	return string(out)
}
