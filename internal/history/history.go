// Package history keeps a bounded linear undo/redo log of editor
// snapshots.
package history

import (
	"slices"

	"github.com/alexanderramin/planboard/internal/domain"
)

// DefaultCapacity is the number of snapshots retained when no capacity is
// configured.
const DefaultCapacity = 50

// Manager is a linear history with a cursor. Pushing while the cursor is
// not at the tail discards every entry after it. Manager is not safe for
// concurrent use.
type Manager struct {
	entries   []domain.Snapshot
	cursor    int
	capacity  int
	restoring bool
}

// New returns an empty history. A non-positive capacity uses
// DefaultCapacity.
func New(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{cursor: -1, capacity: capacity}
}

// Capacity returns the maximum number of retained snapshots.
func (m *Manager) Capacity() int { return m.capacity }

// Len returns the number of retained snapshots.
func (m *Manager) Len() int { return len(m.entries) }

// Cursor returns the index of the current snapshot, or -1 when empty.
func (m *Manager) Cursor() int { return m.cursor }

// Push records s as the newest state. It reports false when nothing was
// recorded: during a restore, or when s equals the current snapshot.
func (m *Manager) Push(s domain.Snapshot) bool {
	if m.restoring {
		return false
	}
	if m.cursor >= 0 && m.entries[m.cursor].Equal(s) {
		return false
	}

	m.entries = append(m.entries[:m.cursor+1], s.Clone())
	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = slices.Delete(m.entries, 0, over)
	}
	m.cursor = len(m.entries) - 1
	return true
}

// CanUndo reports whether an older snapshot exists.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether a newer snapshot exists.
func (m *Manager) CanRedo() bool { return m.cursor >= 0 && m.cursor < len(m.entries)-1 }

// Undo moves the cursor back and returns a copy of the snapshot there.
func (m *Manager) Undo() (domain.Snapshot, bool) {
	if !m.CanUndo() {
		return domain.Snapshot{}, false
	}
	m.cursor--
	return m.entries[m.cursor].Clone(), true
}

// Redo moves the cursor forward and returns a copy of the snapshot there.
func (m *Manager) Redo() (domain.Snapshot, bool) {
	if !m.CanRedo() {
		return domain.Snapshot{}, false
	}
	m.cursor++
	return m.entries[m.cursor].Clone(), true
}

// Current returns a copy of the snapshot under the cursor.
func (m *Manager) Current() (domain.Snapshot, bool) {
	if m.cursor < 0 {
		return domain.Snapshot{}, false
	}
	return m.entries[m.cursor].Clone(), true
}

// Restoring reports whether a Restore callback is running.
func (m *Manager) Restoring() bool { return m.restoring }

// Restore runs fn with pushes suppressed, so applying an undone or redone
// snapshot never records a new entry.
func (m *Manager) Restore(fn func() error) error {
	m.restoring = true
	defer func() { m.restoring = false }()
	return fn()
}

// Entries returns copies of the retained snapshots and the cursor, for
// persistence.
func (m *Manager) Entries() ([]domain.Snapshot, int) {
	out := make([]domain.Snapshot, len(m.entries))
	for i, s := range m.entries {
		out[i] = s.Clone()
	}
	return out, m.cursor
}

// Load replaces the history with persisted entries. Entries beyond the
// capacity are dropped from the oldest end and the cursor is clamped into
// range.
func (m *Manager) Load(entries []domain.Snapshot, cursor int) {
	if over := len(entries) - m.capacity; over > 0 {
		entries = entries[over:]
		cursor -= over
	}
	m.entries = make([]domain.Snapshot, len(entries))
	for i, s := range entries {
		m.entries[i] = s.Clone()
	}
	m.cursor = min(max(cursor, 0), len(m.entries)-1)
}

// Reset drops every entry.
func (m *Manager) Reset() {
	m.entries = nil
	m.cursor = -1
}
