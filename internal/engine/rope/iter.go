package rope

import "io"

// chunkIterFrame represents a position in the tree traversal.
type chunkIterFrame struct {
	node     *Node
	childIdx int        // Next child index to visit (internal nodes)
	chunkIdx int        // Next chunk index to visit (leaf nodes)
	offset   ByteOffset // Absolute byte offset at start of this node
}

// ChunkIterator iterates over chunks in a rope.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart ByteOffset
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
	}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{
			node:     it.rope.root,
			childIdx: 0,
			chunkIdx: 0,
			offset:   0,
		})
		return it.findNextChunk()
	}

	// Advance past the current chunk
	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.IsLeaf() {
			frame.chunkIdx++
		}
	}
	return it.findNextChunk()
}

// findNextChunk finds the next available chunk.
func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				chunkOffset := frame.offset
				for i := 0; i < frame.chunkIdx; i++ {
					chunkOffset += ByteOffset(node.chunks[i].Len())
				}
				it.chunk = node.chunks[frame.chunkIdx]
				it.chunkStart = chunkOffset
				return true
			}
			// Done with this leaf, pop and advance parent
			it.stack = it.stack[:len(it.stack)-1]
			if len(it.stack) > 0 {
				it.stack[len(it.stack)-1].childIdx++
			}
			continue
		}

		// Internal node: descend to next unvisited child
		if frame.childIdx < len(node.children) {
			childOffset := frame.offset
			for i := 0; i < frame.childIdx; i++ {
				childOffset += node.childLens[i]
			}

			it.stack = append(it.stack, chunkIterFrame{
				node:     node.children[frame.childIdx],
				childIdx: 0,
				chunkIdx: 0,
				offset:   childOffset,
			})
			continue
		}

		// Done with this internal node, pop and advance parent
		it.stack = it.stack[:len(it.stack)-1]
		if len(it.stack) > 0 {
			it.stack[len(it.stack)-1].childIdx++
		}
	}

	return false
}

// chunksFrom returns an iterator positioned so the first Next reports the
// chunk containing offset. The position is reached by descending the tree,
// not by walking every chunk before it.
func (r Rope) chunksFrom(offset ByteOffset) *ChunkIterator {
	if offset <= 0 {
		return r.Chunks()
	}
	it := &ChunkIterator{
		rope:    r,
		stack:   make([]chunkIterFrame, 0, 16),
		started: true,
	}
	if r.root == nil || offset >= r.Len() {
		return it
	}

	node := r.root
	nodeStart := ByteOffset(0)
	rel := offset
	for !node.IsLeaf() {
		idx, within := node.findChildByOffset(rel)
		it.stack = append(it.stack, chunkIterFrame{
			node:     node,
			childIdx: idx,
			offset:   nodeStart,
		})
		nodeStart += rel - within
		node = node.children[idx]
		rel = within
	}

	chunkIdx := 0
	var chunkStart ByteOffset
	for i, c := range node.chunks {
		if chunkStart+ByteOffset(c.Len()) > rel {
			chunkIdx = i
			break
		}
		chunkStart += ByteOffset(c.Len())
		chunkIdx = i + 1
	}

	// Next advances chunkIdx before reading, so park one before the target.
	it.stack = append(it.stack, chunkIterFrame{
		node:     node,
		chunkIdx: chunkIdx - 1,
		offset:   nodeStart,
	})
	return it
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() ByteOffset {
	return it.chunkStart
}

// Reader streams the rope range [start, end) as an io.Reader.
// The range is clamped to the rope's length. Data is surfaced chunk by
// chunk without materializing the full range.
type Reader struct {
	iter    *ChunkIterator
	start   ByteOffset
	end     ByteOffset
	pending []byte
	pos     ByteOffset
	done    bool
}

// NewReader returns a reader over the byte range [start, end).
func (r Rope) NewReader(start, end ByteOffset) *Reader {
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	return &Reader{
		iter:  r.chunksFrom(start),
		start: start,
		end:   end,
		pos:   start,
		done:  start >= end,
	}
}

// Read implements io.Reader.
func (rd *Reader) Read(p []byte) (int, error) {
	if rd.done && len(rd.pending) == 0 {
		return 0, io.EOF
	}

	for len(rd.pending) == 0 {
		if !rd.iter.Next() {
			rd.done = true
			return 0, io.EOF
		}

		chunkStart := rd.iter.Offset()
		chunk := rd.iter.Chunk().Bytes()
		chunkEnd := chunkStart + ByteOffset(len(chunk))

		if chunkEnd <= rd.pos {
			continue
		}

		lo := 0
		if rd.pos > chunkStart {
			lo = int(rd.pos - chunkStart)
		}
		hi := len(chunk)
		if rd.end < chunkEnd {
			hi = int(rd.end - chunkStart)
		}
		if lo >= hi {
			rd.done = true
			return 0, io.EOF
		}
		rd.pending = chunk[lo:hi]
	}

	n := copy(p, rd.pending)
	rd.pending = rd.pending[n:]
	rd.pos += ByteOffset(n)
	if rd.pos >= rd.end {
		rd.done = true
	}
	return n, nil
}
