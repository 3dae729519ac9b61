package buffer

// Edit represents a single splice: replace Range with Data.
// Batches of edits are applied with ApplyEdits.
type Edit struct {
	Range Range  // The range to replace
	Data  []byte // The replacement bytes
}

// NewEdit creates a new Edit.
func NewEdit(r Range, data []byte) Edit {
	return Edit{Range: r, Data: data}
}

// ChangeKind categorizes a change for reporting purposes.
type ChangeKind uint8

const (
	ChangeInsert    ChangeKind = iota // Bytes were inserted
	ChangeDelete                      // Bytes were deleted
	ChangeOverwrite                   // Bytes were replaced in place
)

// String returns a string representation of the change kind.
func (c ChangeKind) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// Change records a single applied splice with enough information to undo it.
// Range is the pre-edit range that was replaced; NewRange is the post-edit
// range holding New. Applying the inverse restores Old.
type Change struct {
	Kind     ChangeKind // Kind of change
	Range    Range      // Pre-edit range that was replaced
	NewRange Range      // Post-edit range of the new bytes
	Old      []byte     // Bytes that were removed
	New      []byte     // Bytes that were added
}

// Invert returns the inverse change that undoes this change.
// Invert is an involution: c.Invert().Invert() equals c.
func (c Change) Invert() Change {
	return Change{
		Kind:     c.Kind.invert(),
		Range:    c.NewRange,
		NewRange: c.Range,
		Old:      c.New,
		New:      c.Old,
	}
}

func (k ChangeKind) invert() ChangeKind {
	switch k {
	case ChangeInsert:
		return ChangeDelete
	case ChangeDelete:
		return ChangeInsert
	default:
		return ChangeOverwrite
	}
}
