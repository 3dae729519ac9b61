// Package clipboard transcodes byte ranges to and from clipboard text.
//
// Copied bytes travel two ways: as spaced or continuous hex text pushed to
// the system clipboard, and as a base64 payload suitable for escape-sequence
// delivery to terminals. Payload size is bounded; oversized ranges are
// refused with ErrPayloadTooLarge rather than silently truncated.
//
// Pasted text is classified with the same hex-before-text precedence used
// for search patterns, so "48 65 6C 6C 6F" pastes as five bytes while
// "Hello" pastes as the active encoding's bytes for that text.
package clipboard
