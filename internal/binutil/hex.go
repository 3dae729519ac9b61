package binutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrOddHexLength is returned when hex input has an odd number of digits.
var ErrOddHexLength = errors.New("odd number of hex digits")

// ErrInvalidHexDigit is returned when a digit cannot be decoded.
var ErrInvalidHexDigit = errors.New("invalid hex digit")

// defaultHexWidth is the number of bytes per output line for Bin2Hex and
// Dump when the caller passes a non-positive width.
const defaultHexWidth = 16

// ParseHex decodes hex input to bytes. Separators (whitespace, commas,
// punctuation) are skipped; the remaining digit count must be even.
// Empty input decodes to zero bytes.
func ParseHex(s string) ([]byte, error) {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("%q: %w", s, ErrOddHexLength)
	}

	out := make([]byte, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		out[i/2] = hexVal(digits[i])<<4 | hexVal(digits[i+1])
	}
	return out, nil
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}

func hexVal(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

// Bin2Hex renders binary input as uppercase hex pairs, one trailing space
// per byte, width bytes per line. Every line including a partial final one
// ends with a newline.
func Bin2Hex(w io.Writer, r io.Reader, width int) error {
	if width <= 0 {
		width = defaultHexWidth
	}
	bw := bufio.NewWriter(w)
	br := bufio.NewReader(r)

	col := 0
	buf := make([]byte, 32<<10)
	for {
		n, err := br.Read(buf)
		for _, b := range buf[:n] {
			fmt.Fprintf(bw, "%02X ", b)
			col++
			if col == width {
				bw.WriteByte('\n')
				col = 0
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if col > 0 {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Hex2Bin decodes hex input (separators ignored) and writes the raw bytes.
func Hex2Bin(w io.Writer, r io.Reader) error {
	text, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Dump writes an offset-annotated hex listing of data. Each line carries
// the 8-digit hex offset (base plus the position within data), 16 bytes as
// uppercase pairs, and an extra space between the two 8-byte halves.
func Dump(w io.Writer, data []byte, base int64) error {
	bw := bufio.NewWriter(w)
	for lo := 0; lo < len(data); lo += defaultHexWidth {
		hi := lo + defaultHexWidth
		if hi > len(data) {
			hi = len(data)
		}
		fmt.Fprintf(bw, "%08X  ", base+int64(lo))
		for i, b := range data[lo:hi] {
			if i == 8 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%02X ", b)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
