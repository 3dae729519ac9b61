package rope

import (
	"bytes"
	"io"
	"testing"
)

// seqBytes returns n bytes with a repeating 0x00..0xFF pattern.
func seqBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 256)
	}
	return b
}

func TestNewEmpty(t *testing.T) {
	r := New()
	if !r.IsEmpty() {
		t.Error("new rope should be empty")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if got := r.Bytes(); len(got) != 0 {
		t.Errorf("Bytes() = %v, want empty", got)
	}
}

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single byte", []byte{0x00}},
		{"small", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"exactly one chunk", seqBytes(MaxChunkSize)},
		{"multiple chunks", seqBytes(MaxChunkSize * 3)},
		{"large", seqBytes(64 * 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes(tt.data)
			if r.Len() != int64(len(tt.data)) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.data))
			}
			if !bytes.Equal(r.Bytes(), tt.data) {
				t.Error("Bytes() does not round-trip input")
			}
		})
	}
}

func TestFromBytesCopiesInput(t *testing.T) {
	data := []byte{1, 2, 3}
	r := FromBytes(data)
	data[0] = 99
	if got := r.Bytes(); got[0] != 1 {
		t.Errorf("rope observed caller mutation: got %v", got)
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name   string
		base   []byte
		offset ByteOffset
		ins    []byte
		want   []byte
	}{
		{"into empty", nil, 0, []byte{0xAA}, []byte{0xAA}},
		{"at start", []byte{2, 3}, 0, []byte{1}, []byte{1, 2, 3}},
		{"in middle", []byte{1, 3}, 1, []byte{2}, []byte{1, 2, 3}},
		{"at end", []byte{1, 2}, 2, []byte{3}, []byte{1, 2, 3}},
		{"past end clamps to append", []byte{1}, 100, []byte{2}, []byte{1, 2}},
		{"empty insert", []byte{1, 2}, 1, nil, []byte{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes(tt.base).Insert(tt.offset, tt.ins)
			if !bytes.Equal(r.Bytes(), tt.want) {
				t.Errorf("got %v, want %v", r.Bytes(), tt.want)
			}
		})
	}
}

func TestInsertLarge(t *testing.T) {
	base := seqBytes(10 * 1024)
	ins := seqBytes(4 * 1024)

	r := FromBytes(base).Insert(5000, ins)

	want := make([]byte, 0, len(base)+len(ins))
	want = append(want, base[:5000]...)
	want = append(want, ins...)
	want = append(want, base[5000:]...)

	if !bytes.Equal(r.Bytes(), want) {
		t.Error("large insert produced wrong content")
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		base       []byte
		start, end ByteOffset
		want       []byte
	}{
		{"from start", []byte{1, 2, 3}, 0, 1, []byte{2, 3}},
		{"middle", []byte{1, 2, 3}, 1, 2, []byte{1, 3}},
		{"to end", []byte{1, 2, 3}, 2, 3, []byte{1, 2}},
		{"everything", []byte{1, 2, 3}, 0, 3, nil},
		{"empty range", []byte{1, 2, 3}, 1, 1, []byte{1, 2, 3}},
		{"end clamped", []byte{1, 2, 3}, 1, 100, []byte{1}},
		{"start past end", []byte{1, 2, 3}, 10, 20, []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes(tt.base).Delete(tt.start, tt.end)
			if !bytes.Equal(r.Bytes(), tt.want) {
				t.Errorf("got %v, want %v", r.Bytes(), tt.want)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name       string
		base       []byte
		start, end ByteOffset
		repl       []byte
		want       []byte
	}{
		{"same size", []byte{1, 2, 3}, 1, 2, []byte{9}, []byte{1, 9, 3}},
		{"grow", []byte{1, 2, 3}, 1, 2, []byte{8, 9}, []byte{1, 8, 9, 3}},
		{"shrink", []byte{1, 2, 3, 4}, 1, 3, []byte{9}, []byte{1, 9, 4}},
		{"pure insert", []byte{1, 3}, 1, 1, []byte{2}, []byte{1, 2, 3}},
		{"pure delete", []byte{1, 2, 3}, 1, 2, nil, []byte{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes(tt.base).Replace(tt.start, tt.end, tt.repl)
			if !bytes.Equal(r.Bytes(), tt.want) {
				t.Errorf("got %v, want %v", r.Bytes(), tt.want)
			}
		})
	}
}

func TestImmutability(t *testing.T) {
	original := FromBytes([]byte{1, 2, 3})
	_ = original.Insert(1, []byte{9})
	_ = original.Delete(0, 2)
	_ = original.Replace(0, 3, []byte{7})

	if !bytes.Equal(original.Bytes(), []byte{1, 2, 3}) {
		t.Errorf("original modified: %v", original.Bytes())
	}
}

func TestByteAt(t *testing.T) {
	data := seqBytes(MaxChunkSize * 2)
	r := FromBytes(data)

	for _, off := range []ByteOffset{0, 1, MaxChunkSize - 1, MaxChunkSize, int64(len(data)) - 1} {
		b, ok := r.ByteAt(off)
		if !ok {
			t.Fatalf("ByteAt(%d) not ok", off)
		}
		if b != data[off] {
			t.Errorf("ByteAt(%d) = %#x, want %#x", off, b, data[off])
		}
	}

	if _, ok := r.ByteAt(r.Len()); ok {
		t.Error("ByteAt(Len()) should not be ok")
	}
	if _, ok := r.ByteAt(-1); ok {
		t.Error("ByteAt(-1) should not be ok")
	}
}

func TestSlice(t *testing.T) {
	data := seqBytes(MaxChunkSize * 3)
	r := FromBytes(data)

	tests := []struct {
		name       string
		start, end ByteOffset
	}{
		{"within one chunk", 10, 20},
		{"across chunk boundary", MaxChunkSize - 5, MaxChunkSize + 5},
		{"full range", 0, int64(len(data))},
		{"end clamped", int64(len(data)) - 10, int64(len(data)) + 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := tt.end
			if end > int64(len(data)) {
				end = int64(len(data))
			}
			got := r.Slice(tt.start, tt.end)
			if !bytes.Equal(got, data[tt.start:end]) {
				t.Errorf("Slice(%d, %d) wrong content", tt.start, tt.end)
			}
		})
	}

	if got := r.Slice(5, 5); got != nil {
		t.Errorf("empty range should return nil, got %v", got)
	}
}

func TestSplitConcat(t *testing.T) {
	data := seqBytes(MaxChunkSize * 4)
	r := FromBytes(data)

	for _, off := range []ByteOffset{0, 1, MaxChunkSize, MaxChunkSize*2 + 17, r.Len()} {
		left, right := r.Split(off)
		if left.Len()+right.Len() != r.Len() {
			t.Fatalf("Split(%d): lengths %d + %d != %d", off, left.Len(), right.Len(), r.Len())
		}
		joined := left.Concat(right)
		if !joined.Equals(r) {
			t.Errorf("Split(%d) then Concat lost content", off)
		}
	}
}

func TestEquals(t *testing.T) {
	a := FromBytes(seqBytes(5000))

	// Same content, different structure
	b := FromBytes(seqBytes(2500)).Concat(FromBytes(seqBytes(5000)[2500:]))
	if !a.Equals(b) {
		t.Error("ropes with equal content should be Equals")
	}

	c := a.Insert(100, []byte{0xFF})
	if a.Equals(c) {
		t.Error("ropes with different content should not be Equals")
	}
}

func TestChunkIterator(t *testing.T) {
	data := seqBytes(MaxChunkSize * 5)
	r := FromBytes(data)

	var rebuilt []byte
	var lastOffset ByteOffset = -1
	it := r.Chunks()
	for it.Next() {
		if it.Offset() <= lastOffset {
			t.Fatalf("chunk offsets not strictly increasing: %d after %d", it.Offset(), lastOffset)
		}
		if it.Offset() != int64(len(rebuilt)) {
			t.Fatalf("chunk offset %d, want %d", it.Offset(), len(rebuilt))
		}
		lastOffset = it.Offset()
		rebuilt = append(rebuilt, it.Chunk().Bytes()...)
	}

	if !bytes.Equal(rebuilt, data) {
		t.Error("iterating chunks did not reproduce content")
	}
}

func TestReader(t *testing.T) {
	data := seqBytes(MaxChunkSize*3 + 100)
	r := FromBytes(data)

	tests := []struct {
		name       string
		start, end ByteOffset
	}{
		{"full", 0, r.Len()},
		{"middle across chunks", MaxChunkSize - 10, MaxChunkSize*2 + 10},
		{"empty", 50, 50},
		{"clamped end", r.Len() - 5, r.Len() + 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(r.NewReader(tt.start, tt.end))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			end := tt.end
			if end > r.Len() {
				end = r.Len()
			}
			want := data[tt.start:end]
			if !bytes.Equal(got, want) {
				t.Errorf("read %d bytes, want %d", len(got), len(want))
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	var want []byte
	for i := 0; i < 100; i++ {
		piece := seqBytes(i * 37 % 300)
		b.Write(piece)
		want = append(want, piece...)
	}
	b.WriteByte(0x42)
	want = append(want, 0x42)

	if b.Len() != int64(len(want)) {
		t.Errorf("Builder.Len() = %d, want %d", b.Len(), len(want))
	}

	r := b.Build()
	if !bytes.Equal(r.Bytes(), want) {
		t.Error("built rope does not match written bytes")
	}

	// Builder resets after Build
	if b.Len() != 0 {
		t.Errorf("builder not reset after Build: Len() = %d", b.Len())
	}
}

func TestReaderSeeksIntoTail(t *testing.T) {
	data := seqBytes(1 << 20) // 1 MiB, multi-level tree
	r := FromBytes(data)

	// Edits fragment the chunk layout so the descent crosses uneven leaves.
	for i := 0; i < 50; i++ {
		off := int64(i * 16384)
		r = r.Insert(off, []byte{0xEE})
		r = r.Delete(off, off+1)
	}
	if !bytes.Equal(r.Bytes(), data) {
		t.Fatal("edit churn changed content")
	}

	tests := []struct {
		name       string
		start, end int64
	}{
		{"last byte", r.Len() - 1, r.Len()},
		{"tail block", r.Len() - 4096, r.Len()},
		{"mid range", r.Len() / 2, r.Len()/2 + 100},
		{"chunk boundary", int64(MaxChunkSize), int64(MaxChunkSize) + 10},
		{"at end", r.Len(), r.Len()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(r.NewReader(tt.start, tt.end))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(got, data[tt.start:tt.end]) {
				t.Errorf("read %d bytes, want %d", len(got), tt.end-tt.start)
			}
		})
	}
}

func TestTreeStaysShallow(t *testing.T) {
	r := FromBytes(seqBytes(1 << 20)) // 1 MiB
	if h := r.Height(); h > 8 {
		t.Errorf("tree height %d too tall for 1MiB", h)
	}

	// Many point edits should not degrade the structure catastrophically
	for i := 0; i < 200; i++ {
		r = r.Insert(int64(i*512), []byte{byte(i)})
	}
	if h := r.Height(); h > 16 {
		t.Errorf("tree height %d after edits", h)
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	r := FromBytes(seqBytes(1 << 20))
	ins := []byte{0xAA, 0xBB}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Insert(r.Len()/2, ins)
	}
}

func BenchmarkByteAt(b *testing.B) {
	r := FromBytes(seqBytes(1 << 20))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.ByteAt(int64(i) % r.Len())
	}
}
