package rope

import (
	"bytes"
	"testing"
)

// FuzzFromBytes tests rope creation from arbitrary byte slices.
func FuzzFromBytes(f *testing.F) {
	// Add seed corpus
	f.Add([]byte{})
	f.Add([]byte("hello"))
	f.Add([]byte{0x00, 0x01, 0x02})
	f.Add([]byte{0xFF, 0xFE, 0xFD})
	f.Add(bytes.Repeat([]byte{0xAB}, 10000))

	f.Fuzz(func(t *testing.T, b []byte) {
		r := FromBytes(b)

		// Verify length
		if int(r.Len()) != len(b) {
			t.Errorf("length mismatch: got %d, want %d", r.Len(), len(b))
		}

		// Verify content
		if len(b) > 0 && !bytes.Equal(r.Bytes(), b) {
			t.Errorf("content mismatch")
		}
	})
}

// FuzzInsert tests insert operations.
func FuzzInsert(f *testing.F) {
	f.Add([]byte("hello"), 0, []byte{0x78})
	f.Add([]byte("hello"), 5, []byte{0x78})
	f.Add([]byte("hello"), 3, []byte("world"))
	f.Add([]byte{}, 0, []byte("test"))
	f.Add([]byte{0x00, 0xFF}, 1, []byte{0x80})

	f.Fuzz(func(t *testing.T, initial []byte, offset int, insert []byte) {
		r := FromBytes(initial)

		// Clamp offset to valid range
		if offset < 0 {
			offset = 0
		}
		if offset > len(initial) {
			offset = len(initial)
		}

		result := r.Insert(ByteOffset(offset), insert)

		// Verify result against slice arithmetic
		expected := make([]byte, 0, len(initial)+len(insert))
		expected = append(expected, initial[:offset]...)
		expected = append(expected, insert...)
		expected = append(expected, initial[offset:]...)
		if !bytes.Equal(result.Bytes(), expected) {
			t.Errorf("insert mismatch at offset %d", offset)
		}
	})
}

// FuzzDelete tests delete operations.
func FuzzDelete(f *testing.F) {
	f.Add([]byte("hello world"), 0, 5)
	f.Add([]byte("hello world"), 6, 11)
	f.Add([]byte("hello world"), 5, 6)
	f.Add([]byte{0x00, 0x01, 0x02}, 0, 3)

	f.Fuzz(func(t *testing.T, initial []byte, start, end int) {
		r := FromBytes(initial)

		// Clamp to valid range
		if start < 0 {
			start = 0
		}
		if start > len(initial) {
			start = len(initial)
		}
		if end < start {
			end = start
		}
		if end > len(initial) {
			end = len(initial)
		}

		result := r.Delete(ByteOffset(start), ByteOffset(end))

		expected := make([]byte, 0, len(initial))
		expected = append(expected, initial[:start]...)
		expected = append(expected, initial[end:]...)
		if !bytes.Equal(result.Bytes(), expected) {
			t.Errorf("delete mismatch: range [%d, %d)", start, end)
		}
	})
}

// FuzzReplace tests replace operations.
func FuzzReplace(f *testing.F) {
	f.Add([]byte("hello world"), 0, 5, []byte("hi"))
	f.Add([]byte("hello world"), 6, 11, []byte("universe"))
	f.Add([]byte("abcdef"), 2, 4, []byte("XYZ"))

	f.Fuzz(func(t *testing.T, initial []byte, start, end int, replacement []byte) {
		r := FromBytes(initial)

		// Clamp to valid range
		if start < 0 {
			start = 0
		}
		if start > len(initial) {
			start = len(initial)
		}
		if end < start {
			end = start
		}
		if end > len(initial) {
			end = len(initial)
		}

		result := r.Replace(ByteOffset(start), ByteOffset(end), replacement)

		expected := make([]byte, 0, len(initial)+len(replacement))
		expected = append(expected, initial[:start]...)
		expected = append(expected, replacement...)
		expected = append(expected, initial[end:]...)
		if !bytes.Equal(result.Bytes(), expected) {
			t.Errorf("replace mismatch: range [%d, %d)", start, end)
		}
	})
}

// FuzzSplit tests split operations.
func FuzzSplit(f *testing.F) {
	f.Add([]byte("hello world"), 0)
	f.Add([]byte("hello world"), 5)
	f.Add([]byte("hello world"), 11)
	f.Add([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 2)

	f.Fuzz(func(t *testing.T, b []byte, offset int) {
		r := FromBytes(b)

		// Clamp to valid range
		if offset < 0 {
			offset = 0
		}
		if offset > len(b) {
			offset = len(b)
		}

		left, right := r.Split(ByteOffset(offset))

		// Verify parts
		if !bytes.Equal(left.Bytes(), b[:offset]) {
			t.Errorf("left part mismatch at offset %d", offset)
		}
		if !bytes.Equal(right.Bytes(), b[offset:]) {
			t.Errorf("right part mismatch at offset %d", offset)
		}

		// Verify concatenation reproduces original
		combined := left.Concat(right)
		if !bytes.Equal(combined.Bytes(), b) {
			t.Errorf("split+concat does not reproduce original")
		}
	})
}

// FuzzSlice tests slice operations.
func FuzzSlice(f *testing.F) {
	f.Add([]byte("hello world"), 0, 5)
	f.Add([]byte("hello world"), 6, 11)
	f.Add([]byte("hello world"), 0, 11)
	f.Add([]byte{0x00, 0x01, 0x02}, 1, 3)

	f.Fuzz(func(t *testing.T, b []byte, start, end int) {
		r := FromBytes(b)

		// Clamp to valid range
		if start < 0 {
			start = 0
		}
		if start > len(b) {
			start = len(b)
		}
		if end < start {
			end = start
		}
		if end > len(b) {
			end = len(b)
		}

		slice := r.Slice(ByteOffset(start), ByteOffset(end))
		if len(slice) != end-start {
			t.Fatalf("slice length %d, want %d", len(slice), end-start)
		}
		if !bytes.Equal(slice, b[start:end]) {
			t.Errorf("slice mismatch: range [%d, %d)", start, end)
		}
	})
}

// FuzzReaderAt tests the seeking reader against slice arithmetic.
func FuzzReaderAt(f *testing.F) {
	f.Add([]byte("hello world"), 0, 11)
	f.Add([]byte("hello world"), 6, 11)
	f.Add(bytes.Repeat([]byte{0x5A}, 20000), 19000, 20000)

	f.Fuzz(func(t *testing.T, b []byte, start, end int) {
		r := FromBytes(b)

		if start < 0 {
			start = 0
		}
		if start > len(b) {
			start = len(b)
		}
		if end < start {
			end = start
		}
		if end > len(b) {
			end = len(b)
		}

		rd := r.NewReader(ByteOffset(start), ByteOffset(end))
		got := make([]byte, 0, end-start)
		buf := make([]byte, 113) // odd size to cross chunk boundaries
		for {
			n, err := rd.Read(buf)
			got = append(got, buf[:n]...)
			if err != nil {
				break
			}
		}
		if !bytes.Equal(got, b[start:end]) {
			t.Errorf("reader mismatch: range [%d, %d)", start, end)
		}
	})
}

// FuzzMultipleOperations tests sequences of operations.
func FuzzMultipleOperations(f *testing.F) {
	// op: 0=insert, 1=delete, 2=replace
	f.Add([]byte("hello"), 0, 0, 5, []byte{0x78})
	f.Add([]byte("hello"), 1, 0, 3, []byte{})
	f.Add([]byte("hello"), 2, 1, 4, []byte("abc"))

	f.Fuzz(func(t *testing.T, initial []byte, op int, pos1, pos2 int, data []byte) {
		r := FromBytes(initial)

		// Clamp positions
		if pos1 < 0 {
			pos1 = 0
		}
		if pos2 < pos1 {
			pos2 = pos1
		}
		if pos1 > len(initial) {
			pos1 = len(initial)
		}
		if pos2 > len(initial) {
			pos2 = len(initial)
		}

		var expected []byte
		switch op % 3 {
		case 0:
			r = r.Insert(ByteOffset(pos1), data)
			expected = append(expected, initial[:pos1]...)
			expected = append(expected, data...)
			expected = append(expected, initial[pos1:]...)
		case 1:
			r = r.Delete(ByteOffset(pos1), ByteOffset(pos2))
			expected = append(expected, initial[:pos1]...)
			expected = append(expected, initial[pos2:]...)
		case 2:
			r = r.Replace(ByteOffset(pos1), ByteOffset(pos2), data)
			expected = append(expected, initial[:pos1]...)
			expected = append(expected, data...)
			expected = append(expected, initial[pos2:]...)
		}

		if int(r.Len()) != len(expected) {
			t.Errorf("length mismatch: Len()=%d, want %d", r.Len(), len(expected))
		}
		if len(expected) > 0 && !bytes.Equal(r.Bytes(), expected) {
			t.Errorf("content mismatch after op %d", op%3)
		}
	})
}
