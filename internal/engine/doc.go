// Package engine is the document engine facade: one Document combines the
// byte buffer, the undo/redo transaction log, cursor and selection state,
// the active text encoding, and the session clipboard behind a single
// synchronous API.
//
// Every mutation commits as an undoable transaction; Transact groups
// multiple edits (such as the two nibble keystrokes composing one byte)
// into a single atomic undo unit. Undo and redo restore content, cursor,
// and selection together. Search compiles user input through the pattern
// precedence rules and interactive replace is driven step by step through
// a search.ReplaceSession bound to the document.
//
// Documents are constructed per session with New or NewFromReader; the
// engine owns no persistence beyond the Dirty/MarkSaved save boundary.
package engine
