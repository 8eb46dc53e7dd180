package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourInARow adds four back-to-back activities and returns their ids in
// start order.
func fourInARow(t *testing.T, store *PlanStore) []string {
	t.Helper()
	var ids []string
	for _, a := range testutil.NewNumberedActivities("Stop", "2024-03-01", 4) {
		ids = append(ids, addActivity(t, store, a).ID)
	}
	return ids
}

func TestSelect_Replace(t *testing.T) {
	store, _ := setupTrip(t)
	ids := fourInARow(t, store)

	require.NoError(t, store.Select(ids[0], SelectReplace))
	require.NoError(t, store.Select(ids[2], SelectReplace))
	assert.Equal(t, []string{ids[2]}, store.Selection())
	assert.True(t, store.IsSelected(ids[2]))
	assert.False(t, store.IsSelected(ids[0]))
}

func TestSelect_Toggle(t *testing.T) {
	store, _ := setupTrip(t)
	ids := fourInARow(t, store)

	require.NoError(t, store.Select(ids[0], SelectToggle))
	require.NoError(t, store.Select(ids[1], SelectToggle))
	assert.ElementsMatch(t, ids[:2], store.Selection())

	require.NoError(t, store.Select(ids[0], SelectToggle))
	assert.Equal(t, []string{ids[1]}, store.Selection())
}

func TestSelect_RangeFollowsStartOrder(t *testing.T) {
	store, _ := setupTrip(t)
	ids := fourInARow(t, store)

	require.NoError(t, store.Select(ids[3], SelectReplace))
	require.NoError(t, store.Select(ids[1], SelectRange))
	assert.ElementsMatch(t, ids[1:4], store.Selection())

	// The anchor stays put, so a second range replaces the first.
	require.NoError(t, store.Select(ids[2], SelectRange))
	assert.ElementsMatch(t, ids[2:4], store.Selection())
}

func TestSelect_RangeAddKeepsExisting(t *testing.T) {
	store, _ := setupTrip(t)
	ids := fourInARow(t, store)
	extra := addActivity(t, store, testutil.NewTestActivity("Dinner", "2024-03-02", "19:00", "20:00"))

	require.NoError(t, store.Select(extra.ID, SelectReplace))
	require.NoError(t, store.Select(ids[0], SelectToggle))
	require.NoError(t, store.Select(ids[2], SelectRangeAdd))
	assert.ElementsMatch(t, append([]string{extra.ID}, ids[:3]...), store.Selection())
}

func TestSelect_RangeWithoutAnchorActsLikeReplace(t *testing.T) {
	store, _ := setupTrip(t)
	ids := fourInARow(t, store)

	require.NoError(t, store.Select(ids[2], SelectRange))
	assert.Equal(t, []string{ids[2]}, store.Selection())
}

func TestSelect_UnknownID(t *testing.T) {
	store, _ := setupTrip(t)
	assert.ErrorIs(t, store.Select("act-missing", SelectReplace), ErrActivityNotFound)
}

func TestSelect_NeverTouchesHistoryOrStorage(t *testing.T) {
	store, repo := setupTrip(t)
	ids := fourInARow(t, store)
	saves := repo.Saves.Load()
	_, cursor := store.history.Entries()

	require.NoError(t, store.Select(ids[0], SelectReplace))
	require.NoError(t, store.Select(ids[3], SelectRange))
	store.ClearSelection()

	assert.Empty(t, store.Selection())
	assert.Equal(t, saves, repo.Saves.Load())
	_, after := store.history.Entries()
	assert.Equal(t, cursor, after)
}

func TestSelect_BatchMoveOfSelection(t *testing.T) {
	store, _ := setupTrip(t)
	ids := fourInARow(t, store)
	require.NoError(t, store.Select(ids[0], SelectReplace))
	require.NoError(t, store.Select(ids[1], SelectRangeAdd))

	var moved []domain.Activity
	for _, id := range store.Selection() {
		a, ok := store.Activity(id)
		require.True(t, ok)
		shifted, err := a.ShiftTo("2024-03-02", domain.TimeToMinutes(a.StartTime))
		require.NoError(t, err)
		moved = append(moved, shifted)
	}
	_, err := store.UpdateMultipleActivities(context.Background(), moved)
	require.NoError(t, err)

	byDay := store.SegmentsByDay()
	assert.Len(t, byDay["2024-03-01"], 2)
	assert.Len(t, byDay["2024-03-02"], 2)
	assert.ElementsMatch(t, ids[:2], store.Selection(), "moved activities stay selected")
}

func TestParseSelectMode(t *testing.T) {
	for in, want := range map[string]SelectMode{"": SelectReplace, "toggle": SelectToggle, "range": SelectRange, "range-add": SelectRangeAdd} {
		got, err := ParseSelectMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSelectMode("all")
	assert.Error(t, err)
}
