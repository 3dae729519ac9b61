package search

import (
	"bytes"
	"errors"

	"github.com/dshills/bytestorm/internal/engine/buffer"
	"github.com/dshills/bytestorm/internal/engine/pattern"
)

// ErrNoPendingMatch is returned by Decide when the session is not waiting
// on a match decision.
var ErrNoPendingMatch = errors.New("no match awaiting decision")

// Replacer is the mutation surface a ReplaceSession drives. Each
// ReplaceRange call must commit as one independently undoable unit.
type Replacer interface {
	Snapshot() *buffer.Snapshot
	ReplaceRange(start, end buffer.ByteOffset, data []byte) error
}

// State is the replace session's position in its lifecycle.
type State uint8

const (
	StateSeeking     State = iota // scanning for the next match
	StatePrompting                // match found, awaiting a decision
	StateReplaceRest              // replacing every remaining match silently
	StateDone                     // scan exhausted or aborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateSeeking:
		return "seeking"
	case StatePrompting:
		return "prompting"
	case StateReplaceRest:
		return "replace-rest"
	default:
		return "done"
	}
}

// Decision is the caller's answer to a prompted match.
type Decision uint8

const (
	Replace     Decision = iota // replace this match, continue scanning
	Skip                        // leave this match, continue scanning
	ReplaceRest                 // replace this and every remaining match
	Abort                       // stop scanning; committed replacements stand
)

// ReplaceSession is a query-replace scan over one document. It advances
// strictly forward from its starting position to the end of the document
// without wrapping, prompting at each match until a decision ends the scan
// or no match remains.
type ReplaceSession struct {
	doc      Replacer
	m        *matcher
	repl     []byte
	pos      buffer.ByteOffset
	state    State
	match    buffer.Range
	replaced int
}

// NewReplaceSession starts a replace scan for pat over doc, beginning at
// from. The session immediately seeks the first match: on return it is
// either Prompting with a pending match or Done.
func NewReplaceSession(doc Replacer, pat, repl []byte, from buffer.ByteOffset) (*ReplaceSession, error) {
	if len(pat) == 0 {
		return nil, pattern.ErrEmptyPattern
	}
	if from < 0 {
		from = 0
	}

	s := &ReplaceSession{
		doc:   doc,
		m:     newMatcher(append([]byte(nil), pat...)),
		repl:  append([]byte(nil), repl...),
		pos:   from,
		state: StateSeeking,
	}
	s.seek()
	return s, nil
}

// State returns the session's current state.
func (s *ReplaceSession) State() State {
	return s.state
}

// Match returns the pending match when the session is Prompting.
func (s *ReplaceSession) Match() (buffer.Range, bool) {
	if s.state != StatePrompting {
		return buffer.Range{}, false
	}
	return s.match, true
}

// Replaced returns the number of replacements committed so far.
func (s *ReplaceSession) Replaced() int {
	return s.replaced
}

// Decide applies a decision to the pending match and advances the scan.
// After a successful call the session is again Prompting or has reached
// Done; Abort discards nothing already committed.
func (s *ReplaceSession) Decide(d Decision) error {
	if s.state != StatePrompting {
		return ErrNoPendingMatch
	}

	switch d {
	case Replace:
		if err := s.replaceCurrent(); err != nil {
			return err
		}
		s.state = StateSeeking
		s.seek()

	case Skip:
		s.pos = s.match.End
		s.state = StateSeeking
		s.seek()

	case ReplaceRest:
		s.state = StateReplaceRest
		for {
			if err := s.replaceCurrent(); err != nil {
				return err
			}
			r, ok := s.nextMatch()
			if !ok {
				s.state = StateDone
				return nil
			}
			s.match = r
		}

	case Abort:
		s.state = StateDone
	}
	return nil
}

// replaceCurrent commits one replacement for the pending match. The match
// is re-verified against a fresh snapshot first; if the content shifted
// underneath the session, the mutation is skipped and the scan resumes at
// the stale match's start.
func (s *ReplaceSession) replaceCurrent() error {
	snap := s.doc.Snapshot()
	if !bytes.Equal(snap.Slice(s.match.Start, s.match.End), s.m.pat) {
		s.pos = s.match.Start
		return nil
	}
	if err := s.doc.ReplaceRange(s.match.Start, s.match.End, s.repl); err != nil {
		return err
	}
	s.replaced++
	// Resume just past the replacement, not the original match end, so a
	// replacement containing the pattern is never re-matched.
	s.pos = s.match.Start + buffer.ByteOffset(len(s.repl))
	return nil
}

// seek advances from Seeking to Prompting on the next match, or to Done
// when the rest of the document has none.
func (s *ReplaceSession) seek() {
	r, ok := s.nextMatch()
	if !ok {
		s.state = StateDone
		return
	}
	s.match = r
	s.state = StatePrompting
}

// nextMatch scans forward from the current position without wrapping.
func (s *ReplaceSession) nextMatch() (buffer.Range, bool) {
	snap := s.doc.Snapshot()
	return scanForward(snap, s.m, s.pos, snap.Len())
}
