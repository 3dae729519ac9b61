package engine

import (
	"github.com/dshills/bytestorm/internal/engine/pattern"
	"github.com/dshills/bytestorm/internal/engine/search"
)

// Direction selects the search direction.
type Direction = search.Direction

// Re-export search directions.
const (
	Forward  = search.Forward
	Backward = search.Backward
)

// Compile turns raw user input into a byte pattern using the active
// encoding for the text fallback.
func (d *Document) Compile(input string) (pattern.Pattern, error) {
	return pattern.Compile(input, d.Encoding())
}

// Find searches for the compiled form of input starting from the cursor:
// forward searches begin just past the cursor, backward searches end at the
// cursor, and both wrap cyclically. On a match the cursor moves to the
// match start.
func (d *Document) Find(input string, dir Direction) (Range, error) {
	p, err := d.Compile(input)
	if err != nil {
		return Range{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	from := d.cursor
	if dir == Forward {
		from++
	}
	r, err := search.Find(d.buf.Snapshot(), p.Bytes, from, dir)
	if err != nil {
		return Range{}, err
	}
	d.cursor = r.Start
	return r, nil
}

// FindBytes searches for an exact byte pattern from the given position.
func (d *Document) FindBytes(pat []byte, from ByteOffset, dir Direction) (Range, error) {
	return search.Find(d.buf.Snapshot(), pat, from, dir)
}

// FindAll returns every non-overlapping match of the compiled form of
// input, in ascending order.
func (d *Document) FindAll(input string) ([]Range, error) {
	p, err := d.Compile(input)
	if err != nil {
		return nil, err
	}
	return search.FindAll(d.buf.Snapshot(), p.Bytes)
}

// StartReplace begins an interactive replace scan at the cursor. Both the
// search and replacement inputs compile with the active encoding. The
// session prompts through its state machine; each committed replacement is
// an independently undoable transaction on this document.
func (d *Document) StartReplace(from, to string) (*search.ReplaceSession, error) {
	p, err := d.Compile(from)
	if err != nil {
		return nil, err
	}

	var repl []byte
	if to != "" {
		rp, err := d.Compile(to)
		if err != nil {
			return nil, err
		}
		repl = rp.Bytes
	}

	return search.NewReplaceSession(d, p.Bytes, repl, d.Cursor())
}
