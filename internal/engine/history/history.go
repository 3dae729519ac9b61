package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/bytestorm/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrNoOpenTx      = errors.New("no open transaction")
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a document.
//
// Committed transactions are stored in an arena; the undo and redo stacks
// hold arena indexes. Moving a transaction between the stacks is an index
// push/pop, so undo and redo never copy edit data.
type History struct {
	mu sync.Mutex

	arena []*Transaction
	undo  []int // indexes into arena, oldest first
	redo  []int // indexes into arena, most recently undone last

	open *Transaction // transaction currently recording, nil when idle

	maxEntries int
}

// New creates a new history manager.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Begin opens a transaction. Changes recorded until Commit become a single
// undo unit. Nested Begin calls are ignored; the outer transaction wins.
func (h *History) Begin(label string, before CursorState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open != nil {
		return
	}
	h.open = newTransaction(label, before)
}

// Record appends a change to the open transaction.
func (h *History) Record(c buffer.Change) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.open == nil {
		return ErrNoOpenTx
	}
	h.open.Changes = append(h.open.Changes, c)
	return nil
}

// Commit closes the open transaction and pushes it onto the undo stack.
// An empty transaction is discarded and Commit returns nil.
// Committing clears the redo stack.
func (h *History) Commit(after CursorState) *Transaction {
	h.mu.Lock()
	defer h.mu.Unlock()

	tx := h.open
	h.open = nil

	if tx == nil || tx.IsEmpty() {
		return nil
	}

	tx.After = after.Clone()
	tx.Timestamp = time.Now()

	h.pushLocked(tx)
	return tx
}

// Cancel discards the open transaction without recording it.
// Changes already applied to storage are not rolled back here; the caller
// owns that.
func (h *History) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = nil
}

// InTransaction returns true if a transaction is currently open.
func (h *History) InTransaction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open != nil
}

// pushLocked appends a committed transaction and clears the redo stack.
func (h *History) pushLocked(tx *Transaction) {
	h.arena = append(h.arena, tx)
	h.undo = append(h.undo, len(h.arena)-1)
	h.redo = nil

	// Evict oldest entries beyond the limit
	if len(h.undo) > h.maxEntries {
		excess := len(h.undo) - h.maxEntries
		h.undo = h.undo[excess:]
	}

	h.maybeCompactLocked()
}

// maybeCompactLocked rebuilds the arena when most of it is unreferenced,
// keeping memory proportional to the live stacks.
func (h *History) maybeCompactLocked() {
	if len(h.arena) <= 2*h.maxEntries {
		return
	}

	live := make(map[int]int, len(h.undo)+len(h.redo))
	newArena := make([]*Transaction, 0, len(h.undo)+len(h.redo))

	remap := func(stack []int) {
		for i, idx := range stack {
			ni, ok := live[idx]
			if !ok {
				ni = len(newArena)
				newArena = append(newArena, h.arena[idx])
				live[idx] = ni
			}
			stack[i] = ni
		}
	}
	remap(h.undo)
	remap(h.redo)

	h.arena = newArena
}

// Undo pops the most recent transaction from the undo stack and returns it.
// The caller applies the transaction's Inverse to storage. The transaction
// moves to the redo stack.
func (h *History) Undo() (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}

	idx := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, idx)

	return h.arena[idx], nil
}

// Redo pops the most recently undone transaction and returns it.
// The caller replays the transaction's Changes. The transaction moves back
// to the undo stack.
func (h *History) Redo() (*Transaction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}

	idx := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, idx)

	return h.arena[idx], nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

// PeekUndo returns info about the next undo step without taking it.
func (h *History) PeekUndo() (TransactionInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return TransactionInfo{}, false
	}
	return h.arena[h.undo[len(h.undo)-1]].info(), true
}

// PeekRedo returns info about the next redo step without taking it.
func (h *History) PeekRedo() (TransactionInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return TransactionInfo{}, false
	}
	return h.arena[h.redo[len(h.redo)-1]].info(), true
}

// UndoInfo returns info about all undoable transactions, oldest first.
func (h *History) UndoInfo() []TransactionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]TransactionInfo, len(h.undo))
	for i, idx := range h.undo {
		out[i] = h.arena[idx].info()
	}
	return out
}

// Clear removes all undo/redo history and any open transaction.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.arena = nil
	h.undo = nil
	h.redo = nil
	h.open = nil
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are evicted.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undo) > max {
		excess := len(h.undo) - max
		h.undo = h.undo[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
