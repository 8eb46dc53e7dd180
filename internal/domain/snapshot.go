package domain

import "slices"

// Snapshot is the undoable part of the editor state. Selection and any
// in-flight gesture are deliberately not part of it.
type Snapshot struct {
	Plan       Plan
	Categories []Category
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Plan: s.Plan.Clone(), Categories: slices.Clone(s.Categories)}
}

// Equal reports structural equality of plan and categories.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Plan.Equal(o.Plan) && slices.Equal(s.Categories, o.Categories)
}
