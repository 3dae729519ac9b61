package engine

import (
	"errors"

	"github.com/dshills/bytestorm/internal/engine/buffer"
	"github.com/dshills/bytestorm/internal/engine/history"
	"github.com/dshills/bytestorm/internal/engine/pattern"
	"github.com/dshills/bytestorm/internal/engine/search"
)

// Errors returned by document operations. Sentinels from the underlying
// packages are re-exported so callers can match with errors.Is against this
// package alone.
var (
	// ErrReadOnly indicates a mutation was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrNoSelection indicates an operation that needs a selection ran
	// without one.
	ErrNoSelection = errors.New("no selection")

	// ErrOffsetOutOfRange indicates an offset outside the valid buffer range.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrRangeInvalid indicates an invalid range (e.g. end < start).
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrNotFound indicates a search pattern has no match.
	ErrNotFound = search.ErrNotFound

	// ErrEmptyPattern indicates an empty search or replace pattern.
	ErrEmptyPattern = pattern.ErrEmptyPattern
)
