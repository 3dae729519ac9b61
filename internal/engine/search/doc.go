// Package search locates byte patterns in buffer snapshots and drives the
// interactive query-replace state machine.
//
// Find uses Boyer-Moore-Horspool matching streamed over the snapshot's rope
// chunks, so a search never materializes the whole document. Forward and
// backward searches wrap cyclically past the document boundary; FindAll
// collects every non-overlapping match without wrapping.
//
// ReplaceSession is a step function: the caller owns the input loop and
// feeds decisions (Replace, Skip, ReplaceRest, Abort); the session owns the
// scan position and state transitions. The replace scan runs from its
// starting position to the end of the document without wrapping, so a
// replace-rest run always terminates. Each replacement is committed through
// the Replacer as its own unit, independently undoable.
package search
