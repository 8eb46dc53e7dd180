package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	repo, _ := testutil.NewTestStateRepo(t)
	store := service.NewPlanStore(repo, 0)
	require.NoError(t, store.Load(context.Background()))

	return &App{
		Store:         store,
		Config:        config.Default(t.TempDir()),
		IsInteractive: func() bool { return false },
	}
}

// seedTrip creates a three-day plan with a museum visit and lunch on the
// first day.
func seedTrip(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()
	_, err := app.Store.SetPlanInfo(ctx, "Trip", "2024-03-01", 3)
	require.NoError(t, err)
	for _, a := range []domain.Activity{
		testutil.NewTestActivity("Museum", "2024-03-01", "09:00", "10:30",
			testutil.WithID("act-museum"), testutil.WithCategory("cat-4")),
		testutil.NewTestActivity("Lunch", "2024-03-01", "12:00", "13:00",
			testutil.WithID("act-lunch"), testutil.WithCategory("cat-2")),
	} {
		_, _, err := app.Store.AddOrUpdateActivity(ctx, a)
		require.NoError(t, err)
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, nil, args...)
}

func executeCmdWithInput(t *testing.T, app *App, in io.Reader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustActivity(t *testing.T, app *App, id string) domain.Activity {
	t.Helper()
	a, ok := app.Store.Activity(id)
	require.True(t, ok, "activity %s should exist", id)
	return a
}

// --- plan ---

func TestPlanInit_RequiresFlagsWhenNotInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "init", "--name", "Trip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name, --start and --days are required")
}

func TestPlanInit_AndShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "init", "--name", "Trip", "--start", "2024-03-01", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Trip")
	assert.Contains(t, out, "(3 days)")

	out, err = executeCmd(t, app, "plan", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Mar 1, 2024 (Fri)")
	assert.Contains(t, out, "Mar 3, 2024 (Sun)")
	assert.Contains(t, out, "(empty)")
}

func TestPlanInit_InvalidRangeIsRejected(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "init", "--name", "Trip", "--start", "2024-02-30", "--days", "3")
	assert.Error(t, err)
	assert.Empty(t, app.Store.Plan().Name)
}

func TestPlanInit_InteractiveFormKeepsCurrentValues(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)
	app.IsInteractive = func() bool { return true }
	forms := 0
	app.RunForm = func(*huh.Form) error {
		forms++
		return nil
	}

	_, err := executeCmd(t, app, "plan", "init", "--name", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, 1, forms)
	p := app.Store.Plan()
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, "2024-03-01", p.StartDate)
	assert.Equal(t, 3, p.NumberOfDays)
}

func TestPlanClear_NeedsConfirmation(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "plan", "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Len(t, app.Store.Plan().Activities, 2)

	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error { return nil }
	out, err := executeCmd(t, app, "plan", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, app.Store.Plan().Activities, 2)

	out, err = executeCmd(t, app, "plan", "clear", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan cleared.")
	assert.Empty(t, app.Store.Plan().Activities)
	assert.Equal(t, domain.DefaultCategories(), app.Store.Categories())

	_, err = executeCmd(t, app, "undo")
	require.NoError(t, err)
	assert.Len(t, app.Store.Plan().Activities, 2)
}

// --- activity ---

func TestActivityAdd_RequiresTimesWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "activity", "add", "--name", "Dinner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--date, --start and --end are required")
}

func TestActivityAdd_ResolvesCategoryByName(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "act", "add",
		"--name", "Dinner", "--date", "2024-03-01", "--start", "19:00", "--end", "20:30",
		"--category", "meals", "--notes", "  book ahead ")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Dinner")

	var dinner domain.Activity
	for _, a := range app.Store.Plan().Activities {
		if a.Name == "Dinner" {
			dinner = a
		}
	}
	assert.Equal(t, "cat-2", dinner.Category)
	assert.Equal(t, "book ahead", dinner.Notes)
	assert.Equal(t, "2024-03-01", dinner.EndDate, "end date defaults to the start date")
}

func TestActivityAdd_UnknownCategoryFails(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "activity", "add",
		"--date", "2024-03-01", "--start", "19:00", "--end", "20:00", "--category", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
	assert.Len(t, app.Store.Plan().Activities, 2)
}

func TestActivityAdd_MidnightEndAndCollisionWarning(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "activity", "add",
		"--name", "Walk", "--date", "2024-03-01", "--start", "10:00", "--end", "11:00")
	require.NoError(t, err)
	assert.Contains(t, out, "overlaps Museum")

	_, err = executeCmd(t, app, "activity", "add",
		"--name", "Late", "--date", "2024-03-01", "--start", "23:00", "--end", "24:00")
	require.NoError(t, err)
	var late domain.Activity
	for _, a := range app.Store.Plan().Activities {
		if a.Name == "Late" {
			late = a
		}
	}
	assert.Equal(t, "2024-03-02", late.EndDate)
	assert.Equal(t, "00:00", late.EndTime)
}

func TestActivityAdd_InvalidTimesAreRejected(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "activity", "add",
		"--date", "2024-03-01", "--start", "11:00", "--end", "10:00")
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Len(t, app.Store.Plan().Activities, 2)
}

func TestActivityEdit_OnlyChangesGivenFlags(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "activity", "edit", "museum", "--name", "Art museum", "--category", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Art museum")

	a := mustActivity(t, app, "act-museum")
	assert.Equal(t, "Art museum", a.Name)
	assert.Empty(t, a.Category)
	assert.Equal(t, "09:00", a.StartTime)
	assert.Equal(t, "10:30", a.EndTime)
}

func TestActivityEdit_NoFlagsNotInteractive(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "activity", "edit", "museum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestActivityMove_KeepsDuration(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "activity", "move", "museum", "--date", "2024-03-02", "--start", "23:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved Museum")

	a := mustActivity(t, app, "act-museum")
	assert.Equal(t, "2024-03-02", a.StartDate)
	assert.Equal(t, "23:00", a.StartTime)
	assert.Equal(t, "2024-03-03", a.EndDate)
	assert.Equal(t, "00:30", a.EndTime)
}

func TestActivityResize(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "activity", "resize", "museum")
	require.Error(t, err)

	out, err := executeCmd(t, app, "activity", "resize", "museum", "--end", "12:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Resized Museum")
	assert.Equal(t, "12:00", mustActivity(t, app, "act-museum").EndTime)
}

func TestActivityShowAndList(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "activity", "show", "lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "Meals")

	out, err = executeCmd(t, app, "activity", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Museum"), strings.Index(out, "Lunch"), "listed in start order")

	out, err = executeCmd(t, app, "activity", "ls", "--date", "2024-03-02")
	require.NoError(t, err)
	assert.Contains(t, out, "No activities found.")

	_, err = executeCmd(t, app, "activity", "ls", "--date", "tomorrow")
	assert.Error(t, err)
}

func TestActivityDeleteUndoRedo(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "activity", "rm", "museum", "lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 activities.")
	assert.Empty(t, app.Store.Plan().Activities)

	out, err = executeCmd(t, app, "undo")
	require.NoError(t, err)
	assert.Contains(t, out, "Undone.")
	assert.Len(t, app.Store.Plan().Activities, 2)

	out, err = executeCmd(t, app, "redo")
	require.NoError(t, err)
	assert.Contains(t, out, "Redone.")
	assert.Empty(t, app.Store.Plan().Activities)

	out, err = executeCmd(t, app, "redo")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to redo.")
}

func TestActivityDuplicate(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "activity", "dup", "museum")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Museum (copy)")
	assert.Len(t, app.Store.Plan().Activities, 3)
}

func TestResolveActivityID(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)
	ctx := context.Background()
	for _, id := range []string{"act-aa11", "act-aa22"} {
		_, _, err := app.Store.AddOrUpdateActivity(ctx, testutil.NewTestActivity("x", "2024-03-02", "09:00", "10:00", testutil.WithID(id)))
		require.NoError(t, err)
	}

	id, err := resolveActivityID(app, "act-museum")
	require.NoError(t, err)
	assert.Equal(t, "act-museum", id)

	id, err = resolveActivityID(app, "mus")
	require.NoError(t, err)
	assert.Equal(t, "act-museum", id)

	id, err = resolveActivityID(app, "aa2")
	require.NoError(t, err)
	assert.Equal(t, "act-aa22", id)

	_, err = resolveActivityID(app, "aa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = resolveActivityID(app, "zzz")
	assert.ErrorIs(t, err, service.ErrActivityNotFound)
}

// --- select ---

func TestSelect_ShiftDaysIsOneUndoStep(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "select", "museum", "+lunch", "--shift-days", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2 activities.")
	assert.Equal(t, "2024-03-02", mustActivity(t, app, "act-museum").StartDate)
	assert.Equal(t, "2024-03-02", mustActivity(t, app, "act-lunch").StartDate)

	_, err = executeCmd(t, app, "undo")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", mustActivity(t, app, "act-museum").StartDate)
	assert.Equal(t, "2024-03-01", mustActivity(t, app, "act-lunch").StartDate)
}

func TestSelect_RangeAndCategory(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "select", "museum", "..lunch", "--category", "Tasks")
	require.NoError(t, err)
	assert.Equal(t, "cat-5", mustActivity(t, app, "act-museum").Category)
	assert.Equal(t, "cat-5", mustActivity(t, app, "act-lunch").Category)
}

func TestSelect_ListsWithoutAction(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "select", "lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "Lunch")
	assert.NotContains(t, out, "Museum")
}

func TestSelect_DeleteConflictsWithShift(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "select", "museum", "--delete", "--shift-days", "1")
	assert.Error(t, err)
	assert.Len(t, app.Store.Plan().Activities, 2)

	out, err := executeCmd(t, app, "select", "museum", "--delete")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 activities.")
	assert.Len(t, app.Store.Plan().Activities, 1)
}

func TestParseSelectArg(t *testing.T) {
	tests := []struct {
		arg  string
		mode service.SelectMode
		id   string
	}{
		{"abc", service.SelectReplace, "abc"},
		{"+abc", service.SelectToggle, "abc"},
		{"..abc", service.SelectRange, "abc"},
		{"+..abc", service.SelectRangeAdd, "abc"},
	}
	for _, tt := range tests {
		mode, id := parseSelectArg(tt.arg)
		assert.Equal(t, tt.mode, mode, tt.arg)
		assert.Equal(t, tt.id, id, tt.arg)
	}
}

// --- export / import ---

func TestExport_RefusesEmptyPlan(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "export", "-o", "-")
	assert.ErrorIs(t, err, errEmptyPlan)
}

func TestExport_UnknownFormat(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)
	_, err := executeCmd(t, app, "export", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExport_JSONRoundTripThroughImport(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)
	before := app.Store.Plan()

	out, err := executeCmd(t, app, "export", "-f", "json", "-o", "-")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	_, err = executeCmd(t, app, "plan", "clear", "--yes")
	require.NoError(t, err)

	msg, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, msg, "Imported")
	assert.True(t, before.Equal(app.Store.Plan()))
}

func TestImport_FromStdinAndMalformed(t *testing.T) {
	app := testApp(t)
	doc := `{"name":"Weekend","activities":[{"id":"act-a","name":"Hike","startDate":"2024-05-04","startTime":"08:00","endDate":"2024-05-04","endTime":"12:00"}]}`

	_, err := executeCmdWithInput(t, app, strings.NewReader(doc), "import", "-")
	require.NoError(t, err)
	p := app.Store.Plan()
	assert.Equal(t, "Weekend", p.Name)
	assert.Equal(t, "2024-05-04", p.StartDate)
	assert.Len(t, p.Activities, 1)

	_, err = executeCmdWithInput(t, app, strings.NewReader(`{"name":"x"`), "import", "-")
	assert.ErrorIs(t, err, service.ErrMalformedImport)
	assert.Equal(t, "Weekend", app.Store.Plan().Name)

	_, err = executeCmd(t, app, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExport_CSVFileWithLocale(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)
	path := filepath.Join(t.TempDir(), "trip.csv")

	out, err := executeCmd(t, app, "export", "-f", "csv", "-o", path, "--locale", "ja")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 activities")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\xef\xbb\xbf")))
	assert.Contains(t, string(data), "アクティビティ名")

	_, err = executeCmd(t, app, "export", "-f", "csv", "-o", "-", "--locale", "fr")
	assert.Error(t, err)
}

func TestExport_TextAndPDF(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	out, err := executeCmd(t, app, "export", "-f", "text", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "- [09:00] Museum (Free time) - 10:30")

	path := filepath.Join(t.TempDir(), "trip.pdf")
	_, err = executeCmd(t, app, "export", "-f", "pdf", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestSummaryCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "No planned time yet.")

	seedTrip(t, app)
	out, err = executeCmd(t, app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Free time")
	assert.Contains(t, out, "Meals")
	assert.Contains(t, out, "Total planned time: 2h30m")
}

func TestLayoutCmd(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)
	_, err := executeCmd(t, app, "activity", "add",
		"--name", "Walk", "--date", "2024-03-01", "--start", "10:00", "--end", "11:00")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "layout", "2024-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "2/2")

	_, err = executeCmd(t, app, "layout", "2024-04-01")
	assert.Error(t, err)
}

// --- category ---

func TestCategoryAddListRemove(t *testing.T) {
	app := testApp(t)
	seedTrip(t, app)

	_, err := executeCmd(t, app, "category", "add", "--name", "Sights")
	assert.Error(t, err, "color is required")

	_, err = executeCmd(t, app, "category", "add", "--name", "Sights", "--color", "#123456")
	require.NoError(t, err)
	out, err := executeCmd(t, app, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sights")
	assert.Contains(t, out, "#123456")

	_, err = executeCmd(t, app, "category", "add", "--name", "Bad", "--color", "blue")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "activity", "edit", "museum", "--category", "sights")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "category", "rm", "Sights")
	require.NoError(t, err)
	assert.Empty(t, mustActivity(t, app, "act-museum").Category)
	assert.Len(t, app.Store.Categories(), len(domain.DefaultCategories()))

	_, err = executeCmd(t, app, "category", "rm", "none")
	assert.Error(t, err)
}

func TestCategoryEdit(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "category", "edit", "meals", "--color", "#000000")
	require.NoError(t, err)
	c, ok := domain.FindCategory(app.Store.Categories(), "cat-2")
	require.True(t, ok)
	assert.Equal(t, "Meals", c.Name)
	assert.Equal(t, "#000000", c.Color)
}

// --- board ---

func TestBoardCmd_NeedsTerminal(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "board")
	assert.ErrorIs(t, err, errNotInteractive)

	app.IsInteractive = func() bool { return true }
	var ran *App
	app.RunBoard = func(a *App) error {
		ran = a
		return nil
	}
	_, err = executeCmd(t, app, "board")
	require.NoError(t, err)
	assert.Same(t, app, ran)
}

func TestRoot_OpenStoreAfterFlagParsing(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		cfgLog  bool
		wantLog bool
	}{
		{"no flag", []string{"plan", "show"}, false, false},
		{"flag", []string{"--log", "plan", "show"}, false, true},
		{"flag with value", []string{"plan", "show", "--log=true"}, false, true},
		{"config", []string{"plan", "show"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built := testApp(t)
			app := &App{Config: config.Default(t.TempDir()), IsInteractive: func() bool { return false }}
			app.Config.Log = tt.cfgLog

			calls := 0
			var gotLog bool
			app.OpenStore = func(_ context.Context, logUseCases bool) (service.Editor, error) {
				calls++
				gotLog = logUseCases
				return built.Store, nil
			}

			_, err := executeCmd(t, app, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, 1, calls)
			assert.Equal(t, tt.wantLog, gotLog)
			assert.Same(t, built.Store, app.Store)
		})
	}
}

func TestRoot_OpenStoreSkippedWhenStoreIsSet(t *testing.T) {
	app := testApp(t)
	app.OpenStore = func(context.Context, bool) (service.Editor, error) {
		t.Fatal("store already built")
		return nil, nil
	}
	_, err := executeCmd(t, app, "plan", "show")
	require.NoError(t, err)
}

func TestRoot_OpenStoreFailure(t *testing.T) {
	app := &App{Config: config.Default(t.TempDir())}
	app.OpenStore = func(context.Context, bool) (service.Editor, error) {
		return nil, testutil.ErrStorageDown
	}
	_, err := executeCmd(t, app, "plan", "show")
	assert.ErrorIs(t, err, testutil.ErrStorageDown)
}
