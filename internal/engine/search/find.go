package search

import (
	"errors"

	"github.com/dshills/bytestorm/internal/engine/buffer"
	"github.com/dshills/bytestorm/internal/engine/pattern"
)

// ErrNotFound is returned when a pattern has no match.
var ErrNotFound = errors.New("pattern not found")

// Direction selects the scan direction for Find.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// searchBlockSize is the streaming read granularity. Blocks overlap by
// len(pattern)-1 bytes so matches spanning a block boundary are seen.
const searchBlockSize = 64 << 10

// matcher holds the Boyer-Moore-Horspool shift tables for one pattern.
// skip drives the forward scan (shift on the last byte of the window);
// rskip mirrors it for the backward scan (shift on the first byte).
type matcher struct {
	pat   []byte
	skip  [256]int
	rskip [256]int
}

func newMatcher(pat []byte) *matcher {
	m := &matcher{pat: pat}
	p := len(pat)
	for i := range m.skip {
		m.skip[i] = p
		m.rskip[i] = p
	}
	for i := 0; i < p-1; i++ {
		m.skip[pat[i]] = p - 1 - i
	}
	for i := p - 1; i >= 1; i-- {
		m.rskip[pat[i]] = i
	}
	return m
}

// index returns the offset of the first match in s, or -1.
func (m *matcher) index(s []byte) int {
	p := len(m.pat)
	for i := 0; i <= len(s)-p; {
		j := p - 1
		for j >= 0 && s[i+j] == m.pat[j] {
			j--
		}
		if j < 0 {
			return i
		}
		i += m.skip[s[i+p-1]]
	}
	return -1
}

// lastIndex returns the offset of the last match in s, or -1.
func (m *matcher) lastIndex(s []byte) int {
	p := len(m.pat)
	for i := len(s) - p; i >= 0; {
		j := 0
		for j < p && s[i+j] == m.pat[j] {
			j++
		}
		if j == p {
			return i
		}
		i -= m.rskip[s[i]]
	}
	return -1
}

// Find locates the first match of pat in the snapshot, scanning from the
// given position in the given direction. Forward matches start at or after
// from; backward matches end at or before from. The scan wraps cyclically
// past the document boundary. Returns ErrNotFound when the pattern does not
// occur and pattern.ErrEmptyPattern for an empty pattern.
func Find(snap *buffer.Snapshot, pat []byte, from buffer.ByteOffset, dir Direction) (buffer.Range, error) {
	if len(pat) == 0 {
		return buffer.Range{}, pattern.ErrEmptyPattern
	}

	n := snap.Len()
	p := buffer.ByteOffset(len(pat))
	if p > n {
		return buffer.Range{}, ErrNotFound
	}
	if from < 0 {
		from = 0
	}
	if from > n {
		from = n
	}

	m := newMatcher(pat)
	if dir == Forward {
		if r, ok := scanForward(snap, m, from, n); ok {
			return r, nil
		}
		// Wrap: matches starting before from may extend past it.
		hi := from + p - 1
		if hi > n {
			hi = n
		}
		if r, ok := scanForward(snap, m, 0, hi); ok {
			return r, nil
		}
	} else {
		if r, ok := scanBackward(snap, m, 0, from); ok {
			return r, nil
		}
		if r, ok := scanBackward(snap, m, 0, n); ok {
			return r, nil
		}
	}
	return buffer.Range{}, ErrNotFound
}

// FindAll returns every non-overlapping match of pat, in ascending order,
// scanning the whole snapshot once without wrapping.
func FindAll(snap *buffer.Snapshot, pat []byte) ([]buffer.Range, error) {
	if len(pat) == 0 {
		return nil, pattern.ErrEmptyPattern
	}

	m := newMatcher(pat)
	var out []buffer.Range
	pos := buffer.ByteOffset(0)
	for {
		r, ok := scanForward(snap, m, pos, snap.Len())
		if !ok {
			return out, nil
		}
		out = append(out, r)
		pos = r.End
	}
}

// scanForward returns the first match lying entirely within [lo, hi). It
// streams the range block by block, carrying the trailing len(pat)-1 bytes
// across block boundaries.
func scanForward(snap *buffer.Snapshot, m *matcher, lo, hi buffer.ByteOffset) (buffer.Range, bool) {
	p := buffer.ByteOffset(len(m.pat))
	if hi > snap.Len() {
		hi = snap.Len()
	}
	if lo < 0 || hi-lo < p {
		return buffer.Range{}, false
	}

	r := snap.NewReader(lo, hi)
	buf := make([]byte, 0, searchBlockSize+len(m.pat))
	block := make([]byte, searchBlockSize)
	base := lo
	for {
		n, err := r.Read(block)
		if n > 0 {
			buf = append(buf, block[:n]...)
			if k := m.index(buf); k >= 0 {
				start := base + buffer.ByteOffset(k)
				return buffer.Range{Start: start, End: start + p}, true
			}
			if carry := len(m.pat) - 1; len(buf) > carry {
				drop := len(buf) - carry
				base += buffer.ByteOffset(drop)
				buf = append(buf[:0], buf[drop:]...)
			}
		}
		if err != nil {
			// io.EOF or a short read; either way the range is exhausted.
			return buffer.Range{}, false
		}
	}
}

// scanBackward returns the last match lying entirely within [lo, hi),
// walking block windows from the end of the range toward lo.
func scanBackward(snap *buffer.Snapshot, m *matcher, lo, hi buffer.ByteOffset) (buffer.Range, bool) {
	p := buffer.ByteOffset(len(m.pat))
	if hi > snap.Len() {
		hi = snap.Len()
	}
	if lo < 0 || hi-lo < p {
		return buffer.Range{}, false
	}

	// segHi is the exclusive ceiling on match start positions.
	segHi := hi - p + 1
	for segHi > lo {
		segLo := segHi - searchBlockSize
		if segLo < lo {
			segLo = lo
		}
		// Extend the window so matches starting just below segHi are
		// fully covered.
		winHi := segHi + p - 1
		if winHi > hi {
			winHi = hi
		}
		if k := m.lastIndex(snap.Slice(segLo, winHi)); k >= 0 {
			start := segLo + buffer.ByteOffset(k)
			return buffer.Range{Start: start, End: start + p}, true
		}
		segHi = segLo
	}
	return buffer.Range{}, false
}
