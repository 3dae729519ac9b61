// Package rope provides an immutable chunked tree for binary data storage.
//
// The rope is a B+ tree variant where leaf nodes hold byte chunks and
// internal nodes carry aggregated byte counts. Unlike a text rope there are
// no line or character metrics; the unit of addressing is always the byte.
//
// Key features:
//   - O(log n) insertion, deletion, and random access
//   - Immutable operations return new ropes; originals are never modified
//   - Structural sharing makes snapshots free
//   - Thread-safe for concurrent read access
//
// Basic usage:
//
//	r := rope.FromBytes([]byte{0xDE, 0xAD})
//	r = r.Insert(1, []byte{0xBE})  // DE BE AD
//	r = r.Delete(0, 1)             // BE AD
//	data := r.Bytes()
//
// The rope is designed for gigabyte-scale documents where localized edits
// must stay cheap and old revisions must remain readable.
package rope
