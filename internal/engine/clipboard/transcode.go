package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dshills/bytestorm/internal/engine/codec"
	"github.com/dshills/bytestorm/internal/engine/pattern"
)

// Errors returned by clipboard transcoding.
var (
	ErrPayloadTooLarge = errors.New("clipboard payload too large")
	ErrEmptyClipboard  = errors.New("clipboard is empty")
)

// DefaultPayloadLimit bounds the encoded payload size. Terminals commonly
// cap escape-sequence clipboard writes around this length.
const DefaultPayloadLimit = 100_000

// HexFormat selects the textual rendering of copied bytes.
type HexFormat uint8

const (
	Spaced     HexFormat = iota // "48 65 6C"
	Continuous                  // "48656C"
)

// FormatHex renders bytes as uppercase hex text in the given format.
func FormatHex(b []byte, f HexFormat) string {
	if f == Continuous {
		return pattern.FormatContinuous(b)
	}
	return pattern.FormatSpaced(b)
}

// ExportPayload encodes bytes as a base64 payload for escape-sequence
// clipboard delivery. A limit of zero or less applies DefaultPayloadLimit.
// When the encoded form exceeds the limit the export is refused whole with
// ErrPayloadTooLarge; nothing is truncated.
func ExportPayload(b []byte, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultPayloadLimit
	}
	if n := base64.StdEncoding.EncodedLen(len(b)); n > limit {
		return "", fmt.Errorf("%d encoded bytes exceed limit %d: %w", n, limit, ErrPayloadTooLarge)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// PasteKind records how pasted text was interpreted.
type PasteKind uint8

const (
	PasteHex  PasteKind = iota // decoded from hex digit pairs
	PasteText                  // encoded as text via the active encoding
)

// String returns the kind name.
func (k PasteKind) String() string {
	if k == PasteHex {
		return "hex"
	}
	return "text"
}

// ClassifyPaste decides whether pasted text is hex or raw text and decodes
// it to bytes. Hex wins when the text normalizes to a non-trivial even run
// of hex digits, tolerating 0x prefixes, commas, braces, and whitespace;
// anything else is encoded as text with enc.
func ClassifyPaste(text string, enc codec.Encoding) ([]byte, PasteKind, error) {
	if text == "" {
		return nil, PasteText, ErrEmptyClipboard
	}
	if b, ok := pattern.HexToBytes(text); ok {
		return b, PasteHex, nil
	}
	b, err := codec.Encode(enc, text)
	if err != nil {
		return nil, PasteText, err
	}
	return b, PasteText, nil
}
