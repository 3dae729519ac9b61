package codec

import (
	"fmt"
	"unicode/utf8"
)

// Encode converts text to bytes in the selected encoding.
// It fails with ErrUnencodableChar when a character has no representation;
// nothing is substituted or dropped.
func Encode(e Encoding, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("input is not valid text: %w", ErrUnencodableChar)
	}

	if e == UTF8 {
		return []byte(s), nil
	}

	enc := e.xtextEncoding()
	if enc == nil {
		return nil, fmt.Errorf("encoding %s: %w", e, ErrUnencodableChar)
	}

	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %q as %s: %w", s, e, ErrUnencodableChar)
	}
	return out, nil
}

// EncodeRune converts a single character to bytes in the selected encoding.
func EncodeRune(e Encoding, r rune) ([]byte, error) {
	return Encode(e, string(r))
}
