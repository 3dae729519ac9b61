package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned when input cannot be parsed as an offset.
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress parses a human-entered offset. Accepted forms:
//
//	0x1F4    - 0x-prefixed hex
//	1F4h     - trailing-h hex
//	1F4      - bare hex when it contains a hex letter
//	500      - decimal otherwise
//
// The result is not clamped to any document length; bounds checking
// belongs to the caller at the point of use.
func ParseAddress(input string) (int64, error) {
	s := strings.TrimSpace(normalizeFullwidthString(input))
	if s == "" {
		return 0, ErrInvalidAddress
	}

	var (
		v   int64
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseInt(s[2:], 16, 64)
	case strings.HasSuffix(s, "h") || strings.HasSuffix(s, "H"):
		v, err = strconv.ParseInt(s[:len(s)-1], 16, 64)
	case isAllHexDigits(s) && containsHexLetter(s):
		v, err = strconv.ParseInt(s, 16, 64)
	default:
		v, err = strconv.ParseInt(s, 10, 64)
	}

	if err != nil || v < 0 {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidAddress)
	}
	return v, nil
}

// ParseCount parses a repetition count: 0x-prefixed hex or decimal.
func ParseCount(input string) (int64, error) {
	s := strings.TrimSpace(normalizeFullwidthString(input))
	if s == "" {
		return 0, ErrInvalidAddress
	}

	var (
		v   int64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseInt(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidAddress)
	}
	return v, nil
}

// ParseByteValue parses a single byte value. A one- or two-digit hex run is
// taken as hex ("ff" is 255); longer digit runs fall back to decimal.
func ParseByteValue(input string) (byte, error) {
	s := strings.TrimSpace(normalizeFullwidthString(input))
	if s == "" {
		return 0, ErrInvalidAddress
	}

	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 8)
	case len(s) <= 2 && isAllHexDigits(s):
		v, err = strconv.ParseUint(s, 16, 8)
	default:
		v, err = strconv.ParseUint(s, 10, 8)
	}
	if err != nil {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidAddress)
	}
	return byte(v), nil
}

// containsHexLetter reports whether s has at least one A-F digit, which
// disambiguates bare hex from decimal.
func containsHexLetter(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'F', r >= 'a' && r <= 'f':
			return true
		}
	}
	return false
}
