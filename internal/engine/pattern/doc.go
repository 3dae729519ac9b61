// Package pattern compiles user input into canonical byte-sequence patterns
// and parses human-entered addresses.
//
// Classification precedence is fixed: spaced hex pairs ("DE AD BE EF"),
// then continuous even-length hex ("DEADBEEF"), then raw text encoded with
// the active encoding. The hex forms win, so "00" is the single byte 0x00
// and never the two-character text "00". Input that is nothing but hex
// digits with an odd count is rejected with ErrInvalidHexLength instead of
// being silently reinterpreted as text.
//
// Fullwidth ASCII variants (U+FF01..U+FF5E and the ideographic space) are
// normalized before any hex parsing, so hex typed through a CJK input
// method classifies the same as its halfwidth form.
package pattern
