package engine

import "github.com/dshills/bytestorm/internal/engine/buffer"

// Tx records edits inside a Transact call. All edits applied through a Tx
// commit as one transaction and undo atomically.
type Tx struct {
	d       *Document
	changes []buffer.Change
}

// Insert inserts bytes at the given offset.
func (t *Tx) Insert(offset ByteOffset, data []byte) error {
	c, err := t.d.buf.Insert(offset, data)
	if err != nil {
		return err
	}
	t.applied(c)
	t.d.cursor = c.NewRange.End
	return nil
}

// Delete removes bytes in [start, end).
func (t *Tx) Delete(start, end ByteOffset) error {
	c, err := t.d.buf.Delete(start, end)
	if err != nil {
		return err
	}
	t.applied(c)
	t.d.cursor = start
	return nil
}

// Overwrite replaces bytes starting at offset, appending any excess.
func (t *Tx) Overwrite(offset ByteOffset, data []byte) error {
	c, err := t.d.buf.Overwrite(offset, data)
	if err != nil {
		return err
	}
	t.applied(c)
	t.d.cursor = c.NewRange.End
	return nil
}

// SetByte overwrites the single byte at offset. The offset must address an
// existing byte. This is the primitive behind nibble editing, where two
// keystrokes compose one byte and must undo together.
func (t *Tx) SetByte(offset ByteOffset, b byte) error {
	if offset < 0 || offset >= t.d.buf.Len() {
		return ErrOffsetOutOfRange
	}
	c, err := t.d.buf.Overwrite(offset, []byte{b})
	if err != nil {
		return err
	}
	t.applied(c)
	return nil
}

func (t *Tx) applied(c buffer.Change) {
	t.changes = append(t.changes, c)
	_ = t.d.hist.Record(c)
}

// Transact runs fn with a Tx and commits every edit it applied as a single
// undoable transaction. If fn returns an error, all applied edits are
// rolled back and nothing is recorded. Returns the dirty region.
func (d *Document) Transact(label string, fn func(*Tx) error) (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}

	before := d.cursorStateLocked()
	d.hist.Begin(label, before)

	tx := &Tx{d: d}
	if err := fn(tx); err != nil {
		// Roll back in reverse application order.
		for i := len(tx.changes) - 1; i >= 0; i-- {
			_ = d.buf.ApplyChange(tx.changes[i].Invert())
		}
		d.hist.Cancel()
		d.restoreCursorLocked(before)
		return Range{}, err
	}

	t := d.hist.Commit(d.cursorStateLocked())
	if t == nil {
		return Range{}, nil
	}
	d.dirty = true
	r, _ := t.DirtyRange()
	return r, nil
}
