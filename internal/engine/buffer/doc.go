// Package buffer provides the mutable byte buffer at the core of a document.
//
// A Buffer wraps an immutable rope with thread-safe mutation, revision
// tracking, and splice-level edit records suitable for undo. All offsets are
// byte offsets; ranges are half-open [Start, End).
//
// The primary mutation primitive is Splice, which replaces a range with new
// bytes and reports what was there before. Insert, Delete, and Overwrite are
// conveniences built on it. Overwrite extends the buffer when the target
// range runs past the end, so overwriting at EOF behaves as an append.
//
// Snapshots share the underlying rope and are free to take; they remain
// valid and unchanged while the buffer continues to mutate.
package buffer
