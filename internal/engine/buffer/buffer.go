package buffer

import (
	"errors"
	"io"
	"sync"

	"github.com/dshills/bytestorm/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// Buffer wraps a Rope with revision tracking and splice-level edit records.
// It provides the primary interface for byte manipulation.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	rope       rope.Rope
	revisionID RevisionID
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		rope:       rope.New(),
		revisionID: NewRevisionID(),
	}
}

// NewBufferFromBytes creates a buffer with initial content. The input is copied.
func NewBufferFromBytes(b []byte) *Buffer {
	buf := NewBuffer()
	buf.rope = rope.FromBytes(b)
	return buf
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	buf := NewBuffer()
	rp, err := rope.FromReader(r)
	if err != nil {
		return nil, err
	}
	buf.rope = rp
	return buf, nil
}

// Read Operations

// Bytes returns the full buffer content.
// For large buffers, prefer Slice or NewReader.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Bytes()
}

// Slice returns a copy of the bytes in the given range, clamped to the
// buffer's length.
func (b *Buffer) Slice(start, end ByteOffset) []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Slice(start, end)
}

// Read returns a copy of the bytes in [start, end), validating the range
// against the buffer's length. Callers that want silent clamping for display
// purposes should use Slice instead.
func (b *Buffer) Read(start, end ByteOffset) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if start < 0 || end > b.rope.Len() {
		return nil, ErrOffsetOutOfRange
	}
	if start > end {
		return nil, ErrRangeInvalid
	}
	return b.rope.Slice(start, end), nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.ByteAt(offset)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.IsEmpty()
}

// Write Operations

// Splice replaces the range [start, end) with data and reports the applied
// change. It is the primitive behind Insert, Delete, and Overwrite.
func (b *Buffer) Splice(start, end ByteOffset, data []byte) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spliceLocked(start, end, data, kindFor(start, end, data))
}

// Insert inserts bytes at the given offset.
func (b *Buffer) Insert(offset ByteOffset, data []byte) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.rope.Len() {
		return Change{}, ErrOffsetOutOfRange
	}
	return b.spliceLocked(offset, offset, data, ChangeInsert)
}

// Delete removes bytes in the given range.
func (b *Buffer) Delete(start, end ByteOffset) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spliceLocked(start, end, nil, ChangeDelete)
}

// Overwrite replaces bytes starting at offset with data. When the target
// range runs past the end of the buffer, the remainder is appended, so
// overwriting at EOF behaves exactly like an insert.
func (b *Buffer) Overwrite(offset ByteOffset, data []byte) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.rope.Len() {
		return Change{}, ErrOffsetOutOfRange
	}

	end := offset + ByteOffset(len(data))
	if end > b.rope.Len() {
		end = b.rope.Len()
	}
	return b.spliceLocked(offset, end, data, ChangeOverwrite)
}

// spliceLocked performs the splice. Caller holds the write lock.
func (b *Buffer) spliceLocked(start, end ByteOffset, data []byte, kind ChangeKind) (Change, error) {
	if start < 0 || start > end || end > b.rope.Len() {
		return Change{}, ErrRangeInvalid
	}

	old := b.rope.Slice(start, end)
	b.rope = b.rope.Replace(start, end, data)
	b.revisionID = NewRevisionID()

	newData := make([]byte, len(data))
	copy(newData, data)

	return Change{
		Kind:     kind,
		Range:    Range{Start: start, End: end},
		NewRange: Range{Start: start, End: start + ByteOffset(len(data))},
		Old:      old,
		New:      newData,
	}, nil
}

func kindFor(start, end ByteOffset, data []byte) ChangeKind {
	switch {
	case start == end:
		return ChangeInsert
	case len(data) == 0:
		return ChangeDelete
	default:
		return ChangeOverwrite
	}
}

// ApplyChange reapplies a recorded change (or its inverse) to the buffer.
func (b *Buffer) ApplyChange(c Change) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.spliceLocked(c.Range.Start, c.Range.End, c.New, c.Kind)
	return err
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest offset first) so earlier edits
// don't shift the offsets of later ones.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}

	ropeLen := b.rope.Len()
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > ropeLen {
			return ErrRangeInvalid
		}
	}

	for _, edit := range edits {
		b.rope = b.rope.Replace(edit.Range.Start, edit.Range.End, edit.Data)
	}

	b.revisionID = NewRevisionID()
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// NewReader returns a streaming reader over the byte range [start, end)
// of the current content. The reader sees a stable snapshot; later buffer
// mutations do not affect it.
func (b *Buffer) NewReader(start, end ByteOffset) io.Reader {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.NewReader(start, end)
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		rope:       b.rope, // Ropes are immutable, safe to share
		revisionID: b.revisionID,
	}
}
