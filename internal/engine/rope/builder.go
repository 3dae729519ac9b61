package rope

import "io"

// Builder provides efficient incremental construction of a rope.
// It buffers writes and builds the rope structure when Build is called.
// The zero value is ready to use.
type Builder struct {
	chunks   []Chunk
	buffer   []byte
	totalLen int64
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{
		chunks: make([]Chunk, 0, 64),
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b.totalLen += int64(len(p))
	b.buffer = append(b.buffer, p...)

	// Flush to chunks once the buffer is large enough
	if len(b.buffer) >= MaxChunkSize*2 {
		b.flushBuffer()
	}
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.totalLen++
	b.buffer = append(b.buffer, c)
	if len(b.buffer) >= MaxChunkSize*2 {
		b.flushBuffer()
	}
	return nil
}

// flushBuffer converts the buffer contents to chunks.
func (b *Builder) flushBuffer() {
	if len(b.buffer) == 0 {
		return
	}

	b.chunks = append(b.chunks, splitIntoChunks(b.buffer)...)
	b.buffer = b.buffer[:0]
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int64 {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buffer = b.buffer[:0]
	b.totalLen = 0
}

// Build creates the rope from accumulated data.
// After calling Build, the builder is reset.
func (b *Builder) Build() Rope {
	b.flushBuffer()

	if len(b.chunks) == 0 {
		b.Reset()
		return New()
	}

	chunks := b.chunks
	b.Reset()

	return buildFromChunks(chunks)
}

// ReadFrom implements io.ReaderFrom for efficient reading.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024) // 64KB read buffer
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := b.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
