package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/bytestorm/internal/engine/codec"
)

// Errors returned by pattern compilation.
var (
	ErrEmptyPattern     = errors.New("empty pattern")
	ErrInvalidHexLength = errors.New("hex input has odd digit count")
)

// Origin records how a pattern's bytes were derived. It is informational
// only; matching is always exact byte comparison.
type Origin uint8

const (
	OriginHex  Origin = iota // compiled from hex digit pairs
	OriginText               // encoded from text via the active encoding
)

// String returns the origin name.
func (o Origin) String() string {
	if o == OriginHex {
		return "hex"
	}
	return "text"
}

// Pattern is a canonical byte sequence to match against document content.
type Pattern struct {
	Bytes  []byte
	Origin Origin
}

// Len returns the pattern length in bytes.
func (p Pattern) Len() int {
	return len(p.Bytes)
}

// String renders the pattern for user feedback: hex patterns as spaced
// pairs, text patterns as the byte count.
func (p Pattern) String() string {
	if p.Origin == OriginHex {
		return FormatSpaced(p.Bytes)
	}
	return fmt.Sprintf("text (%d bytes)", len(p.Bytes))
}

// Compile classifies raw user input and compiles it to a Pattern using the
// active encoding for the text fallback.
//
// Precedence is fixed:
//  1. hex digit pairs separated by single spaces ("DE AD BE EF")
//  2. continuous even-length hex digits ("DEADBEEF")
//  3. raw text, encoded with enc
//
// Input consisting solely of hex digits with an odd count is rejected with
// ErrInvalidHexLength rather than reinterpreted as text; anything else
// falls through to the text form. Fullwidth digits are normalized before
// classification.
func Compile(input string, enc codec.Encoding) (Pattern, error) {
	trimmed := strings.TrimSpace(normalizeFullwidthString(input))
	if trimmed == "" {
		return Pattern{}, ErrEmptyPattern
	}

	if b, ok := parseSpacedHex(trimmed); ok {
		return Pattern{Bytes: b, Origin: OriginHex}, nil
	}

	if isAllHexDigits(trimmed) {
		if len(trimmed)%2 != 0 {
			return Pattern{}, fmt.Errorf("%q: %w", trimmed, ErrInvalidHexLength)
		}
		return Pattern{Bytes: pairsToBytes(canonicalizeHex(trimmed)), Origin: OriginHex}, nil
	}

	b, err := codec.Encode(enc, input)
	if err != nil {
		return Pattern{}, err
	}
	if len(b) == 0 {
		return Pattern{}, ErrEmptyPattern
	}
	return Pattern{Bytes: b, Origin: OriginText}, nil
}

// parseSpacedHex parses the spaced-hex form: two-digit hex pairs separated
// by single spaces. Any deviation (wrong token length, non-hex digit,
// doubled space) rejects the form entirely.
func parseSpacedHex(s string) ([]byte, bool) {
	tokens := strings.Split(s, " ")
	if len(tokens) < 2 {
		return nil, false
	}

	out := make([]byte, len(tokens))
	for i, tok := range tokens {
		if len(tok) != 2 {
			return nil, false
		}
		hi, ok1 := normalizeHexDigit(rune(tok[0]))
		lo, ok2 := normalizeHexDigit(rune(tok[1]))
		if !ok1 || !ok2 {
			return nil, false
		}
		out[i] = hexVal(hi)<<4 | hexVal(lo)
	}
	return out, true
}

// isAllHexDigits reports whether every character is a hex digit.
func isAllHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if _, ok := normalizeHexDigit(r); !ok {
			return false
		}
	}
	return true
}

// canonicalizeHex uppercases an all-hex-digit string.
func canonicalizeHex(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		d, _ := normalizeHexDigit(r)
		sb.WriteByte(d)
	}
	return sb.String()
}
