package rope

import "io"

// Rope is an immutable rope data structure for efficient binary storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and thread-safe concurrent read access.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromBytes creates a rope from a byte slice. The input is copied.
func FromBytes(b []byte) Rope {
	if len(b) == 0 {
		return New()
	}

	chunks := splitIntoChunks(b)
	return buildFromChunks(chunks)
}

// FromReader creates a rope by reading r to EOF.
func FromReader(r io.Reader) (Rope, error) {
	var builder Builder
	if _, err := builder.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return builder.Build(), nil
}

// buildFromChunks builds a rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	// Build leaf nodes
	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	// Build tree bottom-up
	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	if len(nodes) == 0 {
		return New()
	}
	return Rope{root: nodes[0]}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// IsEmpty returns true if the rope contains no bytes.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Bytes returns the full contents as a byte slice.
// Use sparingly for large ropes.
func (r Rope) Bytes() []byte {
	if r.root == nil {
		return nil
	}
	return r.root.appendTo(make([]byte, 0, r.Len()))
}

// Slice returns a copy of the bytes in the range [start, end).
// The range is clamped to the rope's length.
func (r Rope) Slice(start, end ByteOffset) []byte {
	if r.root == nil || start >= end || start >= r.Len() {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	return r.root.appendRange(make([]byte, 0, end-start), start, end)
}

// ByteAt returns the byte at the given offset.
// Returns 0 and false if offset is out of range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return 0, false
	}

	node := r.root
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByOffset(offset)
		node = node.children[idx]
		offset = childOffset
	}

	for _, chunk := range node.chunks {
		chunkLen := ByteOffset(chunk.Len())
		if offset < chunkLen {
			return chunk.Bytes()[offset], true
		}
		offset -= chunkLen
	}

	return 0, false
}

// Insert inserts bytes at the given offset.
// Returns a new rope; the original is unchanged.
func (r Rope) Insert(offset ByteOffset, b []byte) Rope {
	if len(b) == 0 {
		return r
	}

	if r.root == nil || r.Len() == 0 {
		return FromBytes(b)
	}

	if offset <= 0 {
		return FromBytes(b).Concat(r)
	}

	if offset >= r.Len() {
		return r.Concat(FromBytes(b))
	}

	left, right := r.Split(offset)
	return left.Concat(FromBytes(b)).Concat(right)
}

// Delete removes bytes in the range [start, end).
// Returns a new rope; the original is unchanged.
func (r Rope) Delete(start, end ByteOffset) Rope {
	if r.root == nil || start >= end {
		return r
	}

	ropeLen := r.Len()
	if start < 0 {
		start = 0
	}
	if start >= ropeLen {
		return r
	}
	if end > ropeLen {
		end = ropeLen
	}

	if start == 0 && end >= ropeLen {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end >= ropeLen {
		left, _ := r.Split(start)
		return left
	}

	left, temp := r.Split(start)
	_, right := temp.Split(end - start)

	return left.Concat(right)
}

// Replace replaces bytes in the range [start, end) with b.
// Returns a new rope; the original is unchanged.
func (r Rope) Replace(start, end ByteOffset, b []byte) Rope {
	if start >= end && len(b) == 0 {
		return r
	}

	if start >= end {
		return r.Insert(start, b)
	}
	if len(b) == 0 {
		return r.Delete(start, end)
	}

	return r.Delete(start, end).Insert(start, b)
}

// Split splits the rope at offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
// Returns a new rope; the originals are unchanged.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}

	newRoot := concat(r.root, other.root)
	return Rope{root: newRoot}
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks in the rope.
// Useful for debugging.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals returns true if two ropes contain the same bytes.
// This compares content, not structure.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}

	it1 := r.Chunks()
	it2 := other.Chunks()

	var b1, b2 []byte
	for {
		if len(b1) == 0 {
			if !it1.Next() {
				return len(b2) == 0 && !it2.Next()
			}
			b1 = it1.Chunk().Bytes()
		}
		if len(b2) == 0 {
			if !it2.Next() {
				return false
			}
			b2 = it2.Chunk().Bytes()
		}

		n := len(b1)
		if len(b2) < n {
			n = len(b2)
		}
		for i := 0; i < n; i++ {
			if b1[i] != b2[i] {
				return false
			}
		}
		b1 = b1[n:]
		b2 = b2[n:]
	}
}
