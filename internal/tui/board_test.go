package tui

import (
	"context"
	"testing"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/gesture"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/teatest"
	"github.com/alexanderramin/planboard/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardDriver wraps teatest.Driver with board coordinates and model access.
type boardDriver struct {
	*teatest.Driver
	store *service.PlanStore
}

func newBoardDriver(t *testing.T, withPlan bool, activities ...domain.Activity) *boardDriver {
	t.Helper()
	ctx := context.Background()
	repo, _ := testutil.NewTestStateRepo(t)
	store := service.NewPlanStore(repo, 0)
	require.NoError(t, store.Load(ctx))
	if withPlan {
		_, err := store.SetPlanInfo(ctx, "Trip", "2024-03-01", 3)
		require.NoError(t, err)
	}
	for _, a := range activities {
		_, _, err := store.AddOrUpdateActivity(ctx, a)
		require.NoError(t, err)
	}

	cfg := config.Default(t.TempDir())
	d := teatest.New(t, New(ctx, store, cfg), teatest.WithSize(120, 60))
	d.DrainInit()
	return &boardDriver{Driver: d, store: store}
}

// at returns the screen cell for a day column and a grid row. With the
// default 48 rows one row is half an hour.
func at(day, row int) (int, int) {
	return gutterWidth + day*colWidth + 2, headerLines + row
}

func (d *boardDriver) model() Model {
	return d.Model.(Model)
}

func (d *boardDriver) drag(day0, row0, day1, row1 int) {
	d.T.Helper()
	x0, y0 := at(day0, row0)
	x1, y1 := at(day1, row1)
	d.Drag(x0, y0, x1, y1)
}

func (d *boardDriver) only() domain.Activity {
	d.T.Helper()
	acts := d.store.Plan().SortedActivities()
	require.Len(d.T, acts, 1)
	return acts[0]
}

func TestBoard_EmptyPlanShowsHint(t *testing.T) {
	d := newBoardDriver(t, false)
	assert.Contains(t, d.View(), "No plan yet")
}

func TestBoard_RendersDaysAndActivities(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:30", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)

	view := d.View()
	assert.Contains(t, view, "Trip")
	assert.Contains(t, view, "Mar 1, 2024 (Fri)")
	assert.Contains(t, view, "Mar 3, 2024 (Sun)")
	assert.Contains(t, view, "Museum")
	assert.Contains(t, view, "09:00-10:30")
}

func TestBoard_MarksCollisions(t *testing.T) {
	d := newBoardDriver(t, true,
		testutil.NewTestActivity("Lunch", "2024-03-01", "12:00", "13:00"),
		testutil.NewTestActivity("Call", "2024-03-01", "12:30", "13:30"),
	)
	view := d.View()
	assert.Contains(t, view, "!Lunch")
	assert.Contains(t, view, "!Call")
}

func TestBoard_ContinuationSegmentIsMarked(t *testing.T) {
	d := newBoardDriver(t, true,
		testutil.NewTestActivity("Night bus", "2024-03-01", "22:00", "06:00", testutil.WithEnd("2024-03-02", "06:00")),
	)
	assert.Contains(t, d.View(), "↳ Night bus")
}

func TestBoard_CreateAsksForNameThenCommits(t *testing.T) {
	d := newBoardDriver(t, true)

	d.drag(0, 18, 0, 20)
	require.NotNil(t, d.model().draft)
	assert.Contains(t, d.View(), "Name:")
	assert.Empty(t, d.store.Plan().Activities, "nothing is stored before the name is confirmed")

	d.Type("Museumx")
	d.PressBackspace()
	d.PressEnter()

	a := d.only()
	assert.Equal(t, "Museum", a.Name)
	assert.Equal(t, "2024-03-01", a.StartDate)
	assert.Equal(t, "09:00", a.StartTime)
	assert.Equal(t, "10:30", a.EndTime)
	assert.True(t, d.store.IsSelected(a.ID))
	assert.Nil(t, d.model().draft)
	assert.Contains(t, d.View(), "Added Museum")
}

func TestBoard_CreateWithBlankNameUsesDefault(t *testing.T) {
	d := newBoardDriver(t, true)
	d.drag(1, 10, 1, 10)
	d.PressEnter()

	a := d.only()
	assert.Equal(t, domain.DefaultActivityName, a.Name)
	assert.Equal(t, "2024-03-02", a.StartDate)
	assert.Equal(t, "05:00", a.StartTime)
	assert.Equal(t, "05:30", a.EndTime)
}

func TestBoard_EscDiscardsDraft(t *testing.T) {
	d := newBoardDriver(t, true)
	d.drag(0, 18, 0, 20)
	d.Type("Museum")
	d.PressEsc()

	assert.Empty(t, d.store.Plan().Activities)
	assert.Nil(t, d.model().draft)
	assert.Contains(t, d.View(), "discarded")
}

func TestBoard_MoveAcrossDays(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)

	x0, y0 := at(0, 18)
	x1, y1 := at(1, 22)
	d.Mouse(tea.MouseActionPress, x0, y0)
	d.Mouse(tea.MouseActionMotion, x1, y1)
	assert.Equal(t, gesture.Moving, d.model().ctrl.Kind())
	assert.Contains(t, d.View(), "+1d", "preview shows the day offset")
	d.Mouse(tea.MouseActionRelease, x1, y1)

	a := d.only()
	assert.Equal(t, "2024-03-02", a.StartDate)
	assert.Equal(t, "11:00", a.StartTime)
	assert.Equal(t, "12:00", a.EndTime)
	assert.Equal(t, gesture.Idle, d.model().ctrl.Kind())
}

func TestBoard_ClickDoesNotRecordHistory(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)
	before := d.store.Snapshot()

	x, y := at(0, 18)
	d.Click(x, y)

	assert.True(t, d.store.IsSelected("act-museum"))
	assert.True(t, before.Equal(d.store.Snapshot()))

	d.PressKey('u')
	assert.Empty(t, d.store.Plan().Activities, "undo skips straight past the click to the add")
}

func TestBoard_EscCancelsMove(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)

	x0, y0 := at(0, 18)
	x1, y1 := at(2, 30)
	d.Mouse(tea.MouseActionPress, x0, y0)
	d.Mouse(tea.MouseActionMotion, x1, y1)
	d.PressEsc()
	d.Mouse(tea.MouseActionRelease, x1, y1)

	a := d.only()
	assert.Equal(t, "2024-03-01", a.StartDate)
	assert.Equal(t, "09:00", a.StartTime)
	assert.Equal(t, gesture.Idle, d.model().ctrl.Kind())
	assert.Contains(t, d.View(), "Cancelled moving")
}

func TestBoard_DropOutsideBoardCancels(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)

	x0, y0 := at(0, 18)
	d.Drag(x0, y0, x0, headerLines+60)

	assert.Equal(t, "09:00", d.only().StartTime)
	assert.Contains(t, d.View(), "move cancelled")
}

func TestBoard_ResizeBottomEdge(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)

	d.drag(0, 19, 0, 21)

	a := d.only()
	assert.Equal(t, "09:00", a.StartTime)
	assert.Equal(t, "11:00", a.EndTime)
	assert.Contains(t, d.View(), "Resized Museum")
}

func TestBoard_ResizeTopEdgeWithCtrl(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)

	x0, y0 := at(0, 18)
	x1, y1 := at(0, 16)
	d.Drag(x0, y0, x1, y1, teatest.Ctrl)

	a := d.only()
	assert.Equal(t, "08:00", a.StartTime)
	assert.Equal(t, "10:00", a.EndTime)
}

func TestBoard_ResizeContinuationTopIsRejected(t *testing.T) {
	bus := testutil.NewTestActivity("Night bus", "2024-03-01", "22:00", "06:00",
		testutil.WithID("act-bus"), testutil.WithEnd("2024-03-02", "06:00"))
	d := newBoardDriver(t, true, bus)

	x, y := at(1, 2)
	d.Drag(x, y, x, y+2, teatest.Ctrl)

	a := d.only()
	assert.Equal(t, "22:00", a.StartTime)
	assert.Contains(t, d.View(), gesture.ErrContinuationEdge.Error())
}

func TestBoard_MoveDragsWholeSelection(t *testing.T) {
	d := newBoardDriver(t, true,
		testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum")),
		testutil.NewTestActivity("Lunch", "2024-03-01", "12:00", "13:00", testutil.WithID("act-lunch")),
	)

	x, y := at(0, 24)
	d.Click(x, y, teatest.Alt)
	x, y = at(0, 18)
	d.Click(x, y, teatest.Alt)
	require.ElementsMatch(t, []string{"act-museum", "act-lunch"}, d.store.Selection())

	d.drag(0, 18, 0, 20)

	museum, _ := d.store.Activity("act-museum")
	lunch, _ := d.store.Activity("act-lunch")
	assert.Equal(t, "10:00", museum.StartTime)
	assert.Equal(t, "13:00", lunch.StartTime)

	d.PressKey('u')
	museum, _ = d.store.Activity("act-museum")
	lunch, _ = d.store.Activity("act-lunch")
	assert.Equal(t, "09:00", museum.StartTime, "the group move is one history step")
	assert.Equal(t, "12:00", lunch.StartTime)
}

func TestBoard_UndoRedoKeys(t *testing.T) {
	d := newBoardDriver(t, true)
	d.drag(0, 18, 0, 19)
	d.Type("Museum")
	d.PressEnter()
	require.Len(t, d.store.Plan().Activities, 1)

	d.PressKey('u')
	assert.Empty(t, d.store.Plan().Activities)
	assert.Contains(t, d.View(), "Undone.")

	d.PressKey('r')
	assert.Len(t, d.store.Plan().Activities, 1)
	assert.Contains(t, d.View(), "Redone.")

	d.PressKey('r')
	assert.Contains(t, d.View(), "Nothing to redo.")
}

func TestBoard_DeleteAndDuplicateSelection(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)

	d.PressKey('x')
	assert.Contains(t, d.View(), "Nothing selected.")

	x, y := at(0, 18)
	d.Click(x, y)
	d.PressKey('d')
	require.Len(t, d.store.Plan().Activities, 2)
	require.Len(t, d.store.Selection(), 1)
	dup, ok := d.store.Activity(d.store.Selection()[0])
	require.True(t, ok)
	assert.Equal(t, "10:00", dup.StartTime)

	d.PressKey('x')
	assert.Len(t, d.store.Plan().Activities, 1)
	assert.Contains(t, d.View(), "Deleted 1 activity.")
}

func TestBoard_EscClearsSelectionWhenIdle(t *testing.T) {
	museum := testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:00", testutil.WithID("act-museum"))
	d := newBoardDriver(t, true, museum)
	x, y := at(0, 18)
	d.Click(x, y)
	require.NotEmpty(t, d.store.Selection())

	d.PressEsc()
	assert.Empty(t, d.store.Selection())
}

func TestBoard_Quit(t *testing.T) {
	d := newBoardDriver(t, true)
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d = newBoardDriver(t, true)
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}
