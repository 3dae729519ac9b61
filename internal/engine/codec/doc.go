// Package codec maps between raw bytes and characters for a fixed set of
// encodings: UTF-8, UTF-16 (both byte orders), Shift-JIS, and EUC-JP.
//
// The contract that matters for a hex view is byte alignment: DecodeOne
// always consumes at least one byte, and when the bytes at an offset do not
// form a valid unit in the selected encoding it yields a placeholder rune
// consuming exactly one byte. The decoded column can therefore never drift
// out of sync with the hex column, whatever the input.
//
// Encoding is strict: Encode fails with ErrUnencodableChar when a character
// has no representation in the target encoding, rather than substituting.
//
// The Japanese encodings are backed by golang.org/x/text.
package codec
