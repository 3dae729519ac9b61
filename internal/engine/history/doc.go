// Package history provides transaction-based undo/redo for a document.
//
// Every user-visible edit is recorded as a Transaction: an ordered list of
// splice-level changes plus the cursor state before and after. Committed
// transactions live in an append-only arena and are referenced by index from
// the undo and redo stacks, so undo/redo never copies edit data.
//
// Undo pops the undo stack and hands the transaction back to the caller,
// which applies the inverse changes; redo replays the original changes.
// Committing a new transaction clears the redo stack. The history is bounded:
// when the limit is reached the oldest undoable transaction is evicted.
//
// The package is buffer-agnostic by design. It records what happened and in
// which order; applying changes to storage is the caller's job.
package history
