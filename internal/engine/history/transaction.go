package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/bytestorm/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// CursorState captures the cursor and selection at a point in time.
type CursorState struct {
	Offset    ByteOffset // Cursor position
	Selection *Range     // Active selection, nil when none
}

// Clone returns a deep copy of the cursor state.
func (c CursorState) Clone() CursorState {
	out := CursorState{Offset: c.Offset}
	if c.Selection != nil {
		sel := *c.Selection
		out.Selection = &sel
	}
	return out
}

// Transaction is an immutable record of one undoable edit: an ordered list
// of applied changes plus the cursor state on either side. Once committed a
// transaction is never modified.
type Transaction struct {
	ID        uuid.UUID       // Unique identity, stable across undo/redo
	Label     string          // Human-readable description ("insert", "replace"...)
	Changes   []buffer.Change // Changes in application order
	Before    CursorState     // Cursor state when the transaction began
	After     CursorState     // Cursor state when the transaction committed
	Timestamp time.Time       // When the transaction was committed
}

// newTransaction creates an open transaction ready to record changes.
func newTransaction(label string, before CursorState) *Transaction {
	return &Transaction{
		ID:     uuid.New(),
		Label:  label,
		Before: before.Clone(),
	}
}

// IsEmpty returns true if the transaction recorded no changes.
func (t *Transaction) IsEmpty() bool {
	return len(t.Changes) == 0
}

// Inverse returns the changes that undo this transaction, in the order they
// must be applied (reverse of the original order, each inverted).
func (t *Transaction) Inverse() []buffer.Change {
	out := make([]buffer.Change, len(t.Changes))
	for i, c := range t.Changes {
		out[len(t.Changes)-1-i] = c.Invert()
	}
	return out
}

// BytesDelta returns the net change in document length.
func (t *Transaction) BytesDelta() int64 {
	var total int64
	for _, c := range t.Changes {
		total += int64(len(c.New)) - int64(len(c.Old))
	}
	return total
}

// DirtyRange returns the union of all post-edit ranges touched by the
// transaction, or false if it recorded nothing.
func (t *Transaction) DirtyRange() (Range, bool) {
	if len(t.Changes) == 0 {
		return Range{}, false
	}
	r := t.Changes[0].NewRange
	for _, c := range t.Changes[1:] {
		r = r.Union(c.NewRange)
	}
	return r, true
}

// TransactionInfo provides read-only info about a committed transaction.
// Used for displaying undo/redo history.
type TransactionInfo struct {
	ID         uuid.UUID
	Label      string
	Timestamp  time.Time
	BytesDelta int64
}

func (t *Transaction) info() TransactionInfo {
	return TransactionInfo{
		ID:         t.ID,
		Label:      t.Label,
		Timestamp:  t.Timestamp,
		BytesDelta: t.BytesDelta(),
	}
}
