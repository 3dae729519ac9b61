package engine

import (
	"bytes"
	"io"
	"sync"

	"github.com/dshills/bytestorm/internal/engine/buffer"
	"github.com/dshills/bytestorm/internal/engine/clipboard"
	"github.com/dshills/bytestorm/internal/engine/codec"
	"github.com/dshills/bytestorm/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the document.
	ByteOffset = buffer.ByteOffset

	// Range is a byte range in the document.
	Range = buffer.Range

	// Change is a recorded splice.
	Change = buffer.Change

	// Encoding selects the active text encoding.
	Encoding = codec.Encoding

	// TransactionInfo describes a committed undo entry.
	TransactionInfo = history.TransactionInfo
)

// Document is one open document: the byte buffer, its undo history, cursor
// and selection, the active text encoding, and the session clipboard.
//
// All operations are synchronous and thread-safe, but a document is meant
// to be driven by one logical session: overlapping edit sequences from
// multiple goroutines interleave at operation granularity.
type Document struct {
	mu sync.RWMutex

	buf  *buffer.Buffer
	hist *history.History
	clip *clipboard.Manager

	cursor    ByteOffset
	selection *Range
	enc       codec.Encoding
	dirty     bool
	readOnly  bool

	maxUndo     int
	initContent []byte
}

// New creates a document with the given options.
func New(opts ...Option) *Document {
	d := &Document{
		maxUndo: DefaultMaxUndoEntries,
		enc:     codec.UTF8,
	}
	for _, opt := range opts {
		opt(d)
	}

	if len(d.initContent) > 0 {
		d.buf = buffer.NewBufferFromBytes(d.initContent)
	} else {
		d.buf = buffer.NewBuffer()
	}
	d.initContent = nil
	d.hist = history.New(d.maxUndo)
	if d.clip == nil {
		d.clip = clipboard.NewManager()
	}
	return d
}

// NewFromReader creates a document whose content is read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	d := New(opts...)
	buf, err := buffer.NewBufferFromReader(r)
	if err != nil {
		return nil, err
	}
	d.buf = buf
	return d, nil
}

// Read Operations

// Bytes returns the full document content.
// For large documents, prefer Read or NewReader.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Read returns a copy of the bytes in [start, end). It returns
// buffer.ErrOffsetOutOfRange when the range reaches outside the document
// and buffer.ErrRangeInvalid when start exceeds end. Display code that
// wants silent clamping should use Slice.
func (d *Document) Read(start, end ByteOffset) ([]byte, error) {
	return d.buf.Read(start, end)
}

// Slice returns a copy of the bytes in [start, end), clamped to the
// document's length.
func (d *Document) Slice(start, end ByteOffset) []byte {
	return d.buf.Slice(start, end)
}

// Len returns the document length in bytes.
func (d *Document) Len() ByteOffset {
	return d.buf.Len()
}

// ByteAt returns the byte at the given offset.
func (d *Document) ByteAt(offset ByteOffset) (byte, bool) {
	return d.buf.ByteAt(offset)
}

// IsEmpty returns true if the document is empty.
func (d *Document) IsEmpty() bool {
	return d.buf.IsEmpty()
}

// NewReader returns a streaming reader over [start, end) of the current
// content. The reader sees a stable snapshot.
func (d *Document) NewReader(start, end ByteOffset) io.Reader {
	return d.buf.NewReader(start, end)
}

// Snapshot returns a read-only snapshot of the current content.
func (d *Document) Snapshot() *buffer.Snapshot {
	return d.buf.Snapshot()
}

// CharAt decodes the character starting at the given offset using the
// active encoding. Returns the decoded rune (the '.' placeholder for bytes
// that are not a valid unit) and the number of bytes it spans.
func (d *Document) CharAt(offset ByteOffset) (rune, int) {
	d.mu.RLock()
	enc := d.enc
	d.mu.RUnlock()
	return codec.DecodeOne(enc, d.buf.Slice(offset, offset+8))
}

// Write Operations

// Insert inserts bytes at the given offset as one undoable transaction.
// The cursor moves to the end of the inserted bytes. Returns the dirty
// region for redraw.
func (d *Document) Insert(offset ByteOffset, data []byte) (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}

	before := d.cursorStateLocked()
	c, err := d.buf.Insert(offset, data)
	if err != nil {
		return Range{}, err
	}
	d.cursor = c.NewRange.End
	d.recordLocked("insert", before, c)
	return c.NewRange, nil
}

// Delete removes bytes in [start, end) as one undoable transaction.
// The cursor moves to start.
func (d *Document) Delete(start, end ByteOffset) (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}

	before := d.cursorStateLocked()
	c, err := d.buf.Delete(start, end)
	if err != nil {
		return Range{}, err
	}
	d.cursor = start
	d.recordLocked("delete", before, c)
	return c.NewRange, nil
}

// Overwrite replaces bytes starting at offset with data, appending any
// excess past the end of the document. One undoable transaction; the cursor
// moves to the end of the written bytes.
func (d *Document) Overwrite(offset ByteOffset, data []byte) (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}

	before := d.cursorStateLocked()
	c, err := d.buf.Overwrite(offset, data)
	if err != nil {
		return Range{}, err
	}
	d.cursor = c.NewRange.End
	d.recordLocked("overwrite", before, c)
	return c.NewRange, nil
}

// SetByte overwrites the single byte at offset. The offset must address an
// existing byte.
func (d *Document) SetByte(offset ByteOffset, b byte) (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}
	if offset < 0 || offset >= d.buf.Len() {
		return Range{}, ErrOffsetOutOfRange
	}

	before := d.cursorStateLocked()
	c, err := d.buf.Overwrite(offset, []byte{b})
	if err != nil {
		return Range{}, err
	}
	d.recordLocked("set byte", before, c)
	return c.NewRange, nil
}

// Fill overwrites [start, end) with the given byte value.
func (d *Document) Fill(start, end ByteOffset, b byte) (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}
	if start < 0 || start > end || end > d.buf.Len() {
		return Range{}, ErrRangeInvalid
	}
	if start == end {
		return Range{Start: start, End: start}, nil
	}

	before := d.cursorStateLocked()
	c, err := d.buf.Splice(start, end, bytes.Repeat([]byte{b}, int(end-start)))
	if err != nil {
		return Range{}, err
	}
	d.recordLocked("fill", before, c)
	return c.NewRange, nil
}

// InsertRepeat inserts count copies of the byte value at offset.
func (d *Document) InsertRepeat(offset ByteOffset, count int64, b byte) (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}
	if count <= 0 {
		return Range{Start: offset, End: offset}, nil
	}

	before := d.cursorStateLocked()
	c, err := d.buf.Insert(offset, bytes.Repeat([]byte{b}, int(count)))
	if err != nil {
		return Range{}, err
	}
	d.cursor = c.NewRange.End
	d.recordLocked("insert repeat", before, c)
	return c.NewRange, nil
}

// ReplaceRange replaces [start, end) with data as one undoable transaction
// and moves the cursor to the end of the replacement. This is the commit
// surface the replace session drives.
func (d *Document) ReplaceRange(start, end ByteOffset, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return ErrReadOnly
	}

	before := d.cursorStateLocked()
	c, err := d.buf.Splice(start, end, data)
	if err != nil {
		return err
	}
	d.cursor = c.NewRange.End
	d.recordLocked("replace", before, c)
	return nil
}

// recordLocked commits a single change as its own transaction, unless a
// grouped transaction is open, in which case the change joins the group.
func (d *Document) recordLocked(label string, before history.CursorState, c buffer.Change) {
	d.dirty = true
	if d.hist.InTransaction() {
		_ = d.hist.Record(c)
		return
	}
	d.hist.Begin(label, before)
	_ = d.hist.Record(c)
	d.hist.Commit(d.cursorStateLocked())
}

func (d *Document) cursorStateLocked() history.CursorState {
	st := history.CursorState{Offset: d.cursor}
	if d.selection != nil {
		sel := *d.selection
		st.Selection = &sel
	}
	return st
}

// Undo/Redo

// Undo reverses the most recent transaction, restoring content, cursor,
// and selection. Returns the dirty region for redraw.
func (d *Document) Undo() (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}

	tx, err := d.hist.Undo()
	if err != nil {
		return Range{}, err
	}

	var dirtyRange Range
	for i, c := range tx.Inverse() {
		if err := d.buf.ApplyChange(c); err != nil {
			return Range{}, err
		}
		if i == 0 {
			dirtyRange = c.NewRange
		} else {
			dirtyRange = dirtyRange.Union(c.NewRange)
		}
	}

	d.restoreCursorLocked(tx.Before)
	d.dirty = true
	return dirtyRange, nil
}

// Redo reapplies the most recently undone transaction.
func (d *Document) Redo() (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}

	tx, err := d.hist.Redo()
	if err != nil {
		return Range{}, err
	}

	var dirtyRange Range
	for i, c := range tx.Changes {
		if err := d.buf.ApplyChange(c); err != nil {
			return Range{}, err
		}
		if i == 0 {
			dirtyRange = c.NewRange
		} else {
			dirtyRange = dirtyRange.Union(c.NewRange)
		}
	}

	d.restoreCursorLocked(tx.After)
	d.dirty = true
	return dirtyRange, nil
}

// restoreCursorLocked applies a recorded cursor state, clamped to the
// current document length.
func (d *Document) restoreCursorLocked(st history.CursorState) {
	n := d.buf.Len()
	d.cursor = clampOffset(st.Offset, n)
	if st.Selection != nil {
		sel := st.Selection.Clamp(n)
		d.selection = &sel
	} else {
		d.selection = nil
	}
}

func clampOffset(off, n ByteOffset) ByteOffset {
	if off < 0 {
		return 0
	}
	if off > n {
		return n
	}
	return off
}

// CanUndo returns true if undo is available.
func (d *Document) CanUndo() bool {
	return d.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (d *Document) CanRedo() bool {
	return d.hist.CanRedo()
}

// UndoCount returns the number of undo steps available.
func (d *Document) UndoCount() int {
	return d.hist.UndoCount()
}

// RedoCount returns the number of redo steps available.
func (d *Document) RedoCount() int {
	return d.hist.RedoCount()
}

// PeekUndo returns info about the next undo step without taking it.
func (d *Document) PeekUndo() (TransactionInfo, bool) {
	return d.hist.PeekUndo()
}

// ClearHistory removes all undo/redo history.
func (d *Document) ClearHistory() {
	d.hist.Clear()
}

// Document State

// Dirty returns true if the document has been modified since the last
// MarkSaved (or since creation).
func (d *Document) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

// MarkSaved records a save boundary: the document is clean until the next
// mutation.
func (d *Document) MarkSaved() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = false
}

// IsReadOnly returns true if the document rejects mutations.
func (d *Document) IsReadOnly() bool {
	return d.readOnly
}

// Cursor and Selection

// Cursor returns the cursor offset.
func (d *Document) Cursor() ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursor
}

// SetCursor moves the cursor, clamping to [0, Len].
func (d *Document) SetCursor(offset ByteOffset) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = clampOffset(offset, d.buf.Len())
}

// Select sets the selection to [start, end).
func (d *Document) Select(start, end ByteOffset) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if start < 0 || start > end || end > d.buf.Len() {
		return ErrRangeInvalid
	}
	d.selection = &Range{Start: start, End: end}
	return nil
}

// Selection returns the active selection, if any.
func (d *Document) Selection() (Range, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.selection == nil {
		return Range{}, false
	}
	return *d.selection, true
}

// ClearSelection removes the selection.
func (d *Document) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = nil
}

// Encoding

// Encoding returns the active text encoding.
func (d *Document) Encoding() Encoding {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enc
}

// SetEncoding sets the active text encoding. Invalid values are ignored.
func (d *Document) SetEncoding(enc Encoding) {
	if !enc.Valid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enc = enc
}

// CycleEncoding advances to the next (or previous) encoding in the fixed
// cycling order and returns the new value.
func (d *Document) CycleEncoding(forward bool) Encoding {
	d.mu.Lock()
	defer d.mu.Unlock()

	if forward {
		d.enc = d.enc.Next()
	} else {
		d.enc = d.enc.Prev()
	}
	return d.enc
}

// Clipboard

// CopySelection copies the selected bytes to the clipboard, rendered in
// the given hex format. Returns the number of bytes copied.
func (d *Document) CopySelection(f clipboard.HexFormat) (int, error) {
	sel, ok := d.Selection()
	if !ok {
		return 0, ErrNoSelection
	}
	b := d.buf.Slice(sel.Start, sel.End)
	if err := d.clip.Copy(b, f); err != nil {
		return len(b), err
	}
	return len(b), nil
}

// ClipboardPayload returns the escape-sequence payload for the clipboard
// content, for terminal delivery by the front end.
func (d *Document) ClipboardPayload() (string, error) {
	return d.clip.Payload()
}

// Paste inserts the clipboard content at the cursor, classifying hex-looking
// text to bytes. An active selection is replaced; the deletion and the
// insertion undo together.
func (d *Document) Paste() (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return Range{}, ErrReadOnly
	}

	data, _, err := d.clip.Paste(d.enc)
	if err != nil {
		return Range{}, err
	}

	before := d.cursorStateLocked()
	d.hist.Begin("paste", before)

	pos := d.cursor
	if d.selection != nil {
		sel := *d.selection
		c, err := d.buf.Delete(sel.Start, sel.End)
		if err != nil {
			d.hist.Cancel()
			return Range{}, err
		}
		_ = d.hist.Record(c)
		pos = sel.Start
		d.selection = nil
	}

	c, err := d.buf.Insert(pos, data)
	if err != nil {
		d.hist.Cancel()
		return Range{}, err
	}
	_ = d.hist.Record(c)

	d.cursor = c.NewRange.End
	d.dirty = true
	d.hist.Commit(d.cursorStateLocked())
	return c.NewRange, nil
}
