// Package binutil provides the byte-level helpers behind the pipe tool:
// strict hex parsing and rendering, offset and range parsing for command
// arguments, in-place patches, and content statistics (entropy, null and
// printable-byte ratios).
//
// Parsing here is stricter than the interactive pattern rules: separators
// are ignored but the digit count must be even, and offsets are decimal
// unless 0x-prefixed. Scripted input gets no guessing.
package binutil
