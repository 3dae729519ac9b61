package engine

import (
	"github.com/dshills/bytestorm/internal/engine/clipboard"
	"github.com/dshills/bytestorm/internal/engine/codec"
)

// DefaultMaxUndoEntries bounds the undo history when no limit is configured.
const DefaultMaxUndoEntries = 1000

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial content of the document. The bytes are copied.
func WithContent(content []byte) Option {
	return func(d *Document) {
		d.initContent = append([]byte(nil), content...)
	}
}

// WithEncoding sets the initial text encoding. Invalid values are ignored.
func WithEncoding(enc codec.Encoding) Option {
	return func(d *Document) {
		if enc.Valid() {
			d.enc = enc
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndo = max
		}
	}
}

// WithReadOnly creates a read-only document.
// Mutating operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

// WithClipboard supplies a shared clipboard manager. By default each
// document gets its own.
func WithClipboard(m *clipboard.Manager) Option {
	return func(d *Document) {
		if m != nil {
			d.clip = m
		}
	}
}
