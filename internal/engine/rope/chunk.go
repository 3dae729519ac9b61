package rope

// ByteOffset is a byte position or length within a rope.
type ByteOffset = int64

// Chunk size constants control the granularity of storage.
// Binary data has no natural split points, so chunks split purely by size.
const (
	// MinChunkSize is the minimum bytes per chunk (except the last).
	MinChunkSize = 512

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 1024

	// TargetChunkSize is the preferred chunk size when slicing input.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded byte run stored in leaf nodes.
// Chunks are immutable once created; the data they reference is never
// written to again.
type Chunk struct {
	data []byte
}

// NewChunk creates a chunk owning a copy of b.
func NewChunk(b []byte) Chunk {
	data := make([]byte, len(b))
	copy(data, b)
	return Chunk{data: data}
}

// newChunkNoCopy wraps b without copying. The caller must guarantee
// exclusive ownership of the slice.
func newChunkNoCopy(b []byte) Chunk {
	return Chunk{data: b}
}

// Bytes returns the chunk's data. The returned slice must not be modified.
func (c Chunk) Bytes() []byte {
	return c.data
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no bytes.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at a byte offset, returning two chunks.
// The halves share the underlying array; immutability makes that safe.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return Chunk{data: c.data[:offset:offset]}, Chunk{data: c.data[offset:]}
}

// splitIntoChunks slices a byte run into chunks of appropriate size.
// The input is copied exactly once.
func splitIntoChunks(b []byte) []Chunk {
	if len(b) == 0 {
		return nil
	}

	owned := make([]byte, len(b))
	copy(owned, b)

	if len(owned) <= MaxChunkSize {
		return []Chunk{newChunkNoCopy(owned)}
	}

	var chunks []Chunk
	remaining := owned
	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, newChunkNoCopy(remaining))
			break
		}
		chunks = append(chunks, newChunkNoCopy(remaining[:TargetChunkSize:TargetChunkSize]))
		remaining = remaining[TargetChunkSize:]
	}

	return chunks
}
