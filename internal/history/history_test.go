package history

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(name string) domain.Snapshot {
	p := domain.EmptyPlan()
	p.Name = name
	return domain.Snapshot{Plan: p, Categories: domain.DefaultCategories()}
}

func TestPushUndoRedo(t *testing.T) {
	m := New(0)
	assert.Equal(t, DefaultCapacity, m.Capacity())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	require.True(t, m.Push(snap("a")))
	require.True(t, m.Push(snap("b")))
	require.True(t, m.Push(snap("c")))

	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", got.Plan.Name)
	got, ok = m.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", got.Plan.Name)
	_, ok = m.Undo()
	assert.False(t, ok, "cannot undo past the first entry")

	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, "b", got.Plan.Name)
	assert.True(t, m.CanRedo())
}

func TestPush_EqualToCurrentIsNoop(t *testing.T) {
	m := New(10)
	require.True(t, m.Push(snap("a")))
	assert.False(t, m.Push(snap("a")))
	assert.Equal(t, 1, m.Len())
}

func TestPush_BranchDiscard(t *testing.T) {
	m := New(10)
	m.Push(snap("a"))
	m.Push(snap("b"))
	m.Push(snap("c"))
	m.Undo()
	m.Undo()

	require.True(t, m.Push(snap("x")))
	assert.Equal(t, 2, m.Len())
	assert.False(t, m.CanRedo(), "b and c were discarded")

	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", got.Plan.Name)
	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, "x", got.Plan.Name)
	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestPush_CapacityEvictsOldest(t *testing.T) {
	m := New(DefaultCapacity)
	for i := range 51 {
		m.Push(snap(fmt.Sprintf("s%02d", i)))
	}
	assert.Equal(t, 50, m.Len())
	assert.Equal(t, 49, m.Cursor())

	entries, _ := m.Entries()
	assert.Equal(t, "s01", entries[0].Plan.Name, "s00 is evicted first")
	assert.Equal(t, "s50", entries[49].Plan.Name)

	undone := 0
	for m.CanUndo() {
		m.Undo()
		undone++
	}
	assert.Equal(t, 49, undone)
	cur, _ := m.Current()
	assert.Equal(t, "s01", cur.Plan.Name)
}

func TestEntriesAreDeepCopies(t *testing.T) {
	m := New(5)
	s := snap("a")
	m.Push(s)
	s.Categories[0].Name = "mutated"
	s.Plan.Activities["x"] = domain.Activity{ID: "x"}

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "Preparation", cur.Categories[0].Name)
	assert.Empty(t, cur.Plan.Activities)

	cur.Plan.Name = "changed"
	again, _ := m.Current()
	assert.Equal(t, "a", again.Plan.Name, "returned snapshots never alias stored entries")
}

func TestRestore_SuppressesPush(t *testing.T) {
	m := New(5)
	m.Push(snap("a"))
	m.Push(snap("b"))

	err := m.Restore(func() error {
		assert.True(t, m.Restoring())
		s, _ := m.Undo()
		assert.False(t, m.Push(s), "re-applying a restored snapshot must not record")
		assert.False(t, m.Push(snap("side-effect")))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, m.Restoring())
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.CanRedo())
}

func TestRestore_PropagatesError(t *testing.T) {
	m := New(5)
	err := m.Restore(func() error { return fmt.Errorf("boom") })
	assert.EqualError(t, err, "boom")
	assert.False(t, m.Restoring())
}

func TestLoad(t *testing.T) {
	m := New(2)
	m.Load([]domain.Snapshot{snap("a"), snap("b"), snap("c")}, 2)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Cursor())
	cur, _ := m.Current()
	assert.Equal(t, "c", cur.Plan.Name)

	m.Load([]domain.Snapshot{snap("a"), snap("b")}, 7)
	assert.Equal(t, 1, m.Cursor())

	m.Load(nil, 0)
	assert.Equal(t, -1, m.Cursor())
	_, ok := m.Current()
	assert.False(t, ok)
}
