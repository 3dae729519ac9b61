package binutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidOffset is returned when an offset argument cannot be parsed.
	ErrInvalidOffset = errors.New("invalid offset")
	// ErrInvalidRange is returned for malformed start:end range arguments.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidPatch is returned for malformed offset=hexvalue patch specs.
	ErrInvalidPatch = errors.New("invalid patch")
	// ErrPatchOutOfBounds is returned when a patch extends past the data.
	ErrPatchOutOfBounds = errors.New("patch out of bounds")
)

// ParseOffset parses a command-line offset: 0x-prefixed hex, otherwise
// decimal. Bare hex is not guessed at.
func ParseOffset(s string) (int64, error) {
	s = strings.TrimSpace(s)
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
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidOffset)
	}
	return v, nil
}

// ParseRange parses a start:end byte range against a known data length.
// An empty start means 0; an empty end means maxLen; the end is clamped
// to maxLen. Offsets follow ParseOffset.
func ParseRange(s string, maxLen int64) (start, end int64, err error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q: %w (want start:end)", s, ErrInvalidRange)
	}

	if strings.TrimSpace(parts[0]) != "" {
		start, err = ParseOffset(parts[0])
		if err != nil {
			return 0, 0, err
		}
	}
	end = maxLen
	if strings.TrimSpace(parts[1]) != "" {
		end, err = ParseOffset(parts[1])
		if err != nil {
			return 0, 0, err
		}
		if end > maxLen {
			end = maxLen
		}
	}
	if start > end {
		return 0, 0, fmt.Errorf("%q: %w (start past end)", s, ErrInvalidRange)
	}
	return start, end, nil
}

// Patch is a single in-place overwrite parsed from an offset=hexvalue spec.
type Patch struct {
	Offset int64
	Data   []byte
}

// ParsePatch parses an offset=hexvalue spec, such as "0x10=DEADBEEF".
func ParsePatch(s string) (Patch, error) {
	offStr, hexStr, ok := strings.Cut(s, "=")
	if !ok {
		return Patch{}, fmt.Errorf("%q: %w (want offset=hexvalue)", s, ErrInvalidPatch)
	}
	off, err := ParseOffset(offStr)
	if err != nil {
		return Patch{}, err
	}
	data, err := ParseHex(hexStr)
	if err != nil {
		return Patch{}, err
	}
	if len(data) == 0 {
		return Patch{}, fmt.Errorf("%q: %w (empty value)", s, ErrInvalidPatch)
	}
	return Patch{Offset: off, Data: data}, nil
}

// ApplyPatches overwrites data in place. Patches must fit entirely within
// the existing data; none may grow it.
func ApplyPatches(data []byte, patches []Patch) error {
	for _, p := range patches {
		if p.Offset+int64(len(p.Data)) > int64(len(data)) {
			return fmt.Errorf("offset %#x + %d bytes exceeds size %d: %w",
				p.Offset, len(p.Data), len(data), ErrPatchOutOfBounds)
		}
		copy(data[p.Offset:], p.Data)
	}
	return nil
}
