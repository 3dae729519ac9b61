package engine

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// SelectionInfo is the numeric interpretation of a selected byte range:
// the raw bytes plus integer and float readings where the length permits.
type SelectionInfo struct {
	Range Range
	Data  []byte
}

// InspectSelection interprets the active selection numerically.
func (d *Document) InspectSelection() (SelectionInfo, error) {
	sel, ok := d.Selection()
	if !ok {
		return SelectionInfo{}, ErrNoSelection
	}
	return SelectionInfo{
		Range: sel,
		Data:  d.buf.Slice(sel.Start, sel.End),
	}, nil
}

// Uint reads the bytes as an unsigned integer in the given byte order.
// Supported lengths are 1, 2, 3 (24-bit), 4, and 8 bytes.
func (s SelectionInfo) Uint(le bool) (uint64, bool) {
	b := s.Data
	switch len(b) {
	case 1:
		return uint64(b[0]), true
	case 2:
		if le {
			return uint64(binary.LittleEndian.Uint16(b)), true
		}
		return uint64(binary.BigEndian.Uint16(b)), true
	case 3:
		if le {
			return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16, true
		}
		return uint64(b[0])<<16 | uint64(b[1])<<8 | uint64(b[2]), true
	case 4:
		if le {
			return uint64(binary.LittleEndian.Uint32(b)), true
		}
		return uint64(binary.BigEndian.Uint32(b)), true
	case 8:
		if le {
			return binary.LittleEndian.Uint64(b), true
		}
		return binary.BigEndian.Uint64(b), true
	default:
		return 0, false
	}
}

// Int reads the bytes as a signed integer in the given byte order.
func (s SelectionInfo) Int(le bool) (int64, bool) {
	u, ok := s.Uint(le)
	if !ok {
		return 0, false
	}
	switch len(s.Data) {
	case 1:
		return int64(int8(u)), true
	case 2:
		return int64(int16(u)), true
	case 3:
		// Sign-extend from bit 23.
		v := int64(u)
		if v&0x800000 != 0 {
			v -= 1 << 24
		}
		return v, true
	case 4:
		return int64(int32(u)), true
	default:
		return int64(u), true
	}
}

// Float reads the bytes as an IEEE 754 float. Supported lengths are 4
// (float32) and 8 (float64).
func (s SelectionInfo) Float(le bool) (float64, bool) {
	switch len(s.Data) {
	case 4:
		u, _ := s.Uint(le)
		return float64(math.Float32frombits(uint32(u))), true
	case 8:
		u, _ := s.Uint(le)
		return math.Float64frombits(u), true
	default:
		return 0, false
	}
}

// String renders the interpretation for a status line: byte count, then
// integer readings in both byte orders, then float readings for 4- and
// 8-byte selections when at least one order is finite.
func (s SelectionInfo) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d bytes", len(s.Data)))

	switch len(s.Data) {
	case 1:
		parts = append(parts, fmt.Sprintf("u8:%d i8:%d", s.Data[0], int8(s.Data[0])))
	case 2:
		le, _ := s.Uint(true)
		be, _ := s.Uint(false)
		parts = append(parts, fmt.Sprintf("u16 LE:%d BE:%d", le, be))
		leI, _ := s.Int(true)
		beI, _ := s.Int(false)
		parts = append(parts, fmt.Sprintf("i16 LE:%d BE:%d", leI, beI))
	case 3:
		le, _ := s.Uint(true)
		be, _ := s.Uint(false)
		parts = append(parts, fmt.Sprintf("u24 LE:%d BE:%d", le, be))
	case 4:
		le, _ := s.Uint(true)
		be, _ := s.Uint(false)
		parts = append(parts, fmt.Sprintf("u32 LE:%d BE:%d", le, be))
		fle, _ := s.Float(true)
		fbe, _ := s.Float(false)
		if !math.IsInf(fle, 0) && !math.IsNaN(fle) || !math.IsInf(fbe, 0) && !math.IsNaN(fbe) {
			parts = append(parts, fmt.Sprintf("f32 LE:%.6f BE:%.6f", fle, fbe))
		}
	case 8:
		le, _ := s.Uint(true)
		be, _ := s.Uint(false)
		parts = append(parts, fmt.Sprintf("u64 LE:%d BE:%d", le, be))
		fle, _ := s.Float(true)
		fbe, _ := s.Float(false)
		if !math.IsInf(fle, 0) && !math.IsNaN(fle) || !math.IsInf(fbe, 0) && !math.IsNaN(fbe) {
			parts = append(parts, fmt.Sprintf("f64 LE:%.6f BE:%.6f", fle, fbe))
		}
	default:
		if len(s.Data) > 0 && len(s.Data) < 8 {
			parts = append(parts, fmt.Sprintf("(% X)", s.Data))
		}
	}

	return strings.Join(parts, " | ")
}
