package buffer

import (
	"io"

	"github.com/dshills/bytestorm/internal/engine/rope"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	rope       rope.Rope
	revisionID RevisionID
}

// Bytes returns the full snapshot content.
func (s *Snapshot) Bytes() []byte {
	return s.rope.Bytes()
}

// Slice returns a copy of the bytes in the given range, clamped to the
// snapshot's length.
func (s *Snapshot) Slice(start, end ByteOffset) []byte {
	return s.rope.Slice(start, end)
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return s.rope.Len()
}

// ByteAt returns the byte at the given offset.
func (s *Snapshot) ByteAt(offset ByteOffset) (byte, bool) {
	return s.rope.ByteAt(offset)
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return s.rope.IsEmpty()
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// Chunks returns an iterator over all chunks in the snapshot's rope.
func (s *Snapshot) Chunks() *rope.ChunkIterator {
	return s.rope.Chunks()
}

// NewReader returns a streaming reader over the byte range [start, end).
func (s *Snapshot) NewReader(start, end ByteOffset) io.Reader {
	return s.rope.NewReader(start, end)
}
