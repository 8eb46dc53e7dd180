// Package tui is the terminal board: one column per plan day, one row per
// time slot, edited by dragging with the mouse.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/gesture"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen geometry. The grid starts below the title and day header lines;
// each day column is colWidth cells including its right border.
const (
	headerLines = 2
	gutterWidth = 6
	colWidth    = 20
)

// Model is the bubbletea model of the board. It renders the store and
// forwards pointer events to a gesture controller; the store is only
// mutated once a gesture completes.
type Model struct {
	ctx   context.Context
	store service.Editor
	ctrl  *gesture.Controller
	rows  int

	keys  keyMap
	help  help.Model
	input textinput.Model
	// draft is the pending create waiting for a name.
	draft *gesture.Draft

	width    int
	height   int
	firstDay int
	pressRow int

	status   string
	failed   bool
	quitting bool
}

// New returns a board over store. The day track is cfg.BoardRows rows
// tall and gestures snap to the configured granularities.
func New(ctx context.Context, store service.Editor, cfg config.Config) Model {
	rows := max(cfg.BoardRows, 24)
	// One cell is the smallest thing the board can draw.
	geo := gesture.DefaultGeometry(float64(rows))
	geo.MinCreateHeight = 1
	geo.MinItemHeight = 1
	if cfg.SnapMinutes > 0 {
		geo.Granularity = cfg.SnapMinutes
	}
	if cfg.FineSnapMinutes > 0 {
		geo.FineGranularity = cfg.FineSnapMinutes
	}

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = domain.DefaultActivityName
	ti.CharLimit = 200

	return Model{
		ctx:   ctx,
		store: store,
		ctrl:  gesture.NewController(geo, store),
		rows:  rows,
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: ti,
	}
}

// Run opens the board full screen and blocks until the user quits.
func Run(ctx context.Context, store service.Editor, cfg config.Config) error {
	p := tea.NewProgram(
		New(ctx, store, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		return m, nil

	case tea.KeyMsg:
		if m.draft != nil {
			return m.updateNaming(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.draft != nil {
			return m, nil
		}
		cmd := m.handleMouse(tea.MouseEvent(msg))
		return m, cmd
	}

	if m.draft != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if r, ok := m.ctrl.Cancel(); ok {
			m.setStatus(fmt.Sprintf("Cancelled %s.", r.Kind))
		} else {
			m.store.ClearSelection()
			m.setStatus("")
		}

	case m.ctrl.Active():
		// Everything else waits for the gesture to end.

	case key.Matches(msg, m.keys.Undo):
		m.stepHistory(m.store.Undo, "Undone.", "Nothing to undo.")
	case key.Matches(msg, m.keys.Redo):
		m.stepHistory(m.store.Redo, "Redone.", "Nothing to redo.")
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelection()
	case key.Matches(msg, m.keys.Duplicate):
		m.duplicateSelection()
	case key.Matches(msg, m.keys.Left):
		m.scrollDays(-1)
	case key.Matches(msg, m.keys.Right):
		m.scrollDays(1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) stepHistory(step func(context.Context) (service.Result, error), done, none string) {
	res, err := step(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	if !res.Changed {
		m.setStatus(none)
		return
	}
	m.report(res, done)
}

func (m *Model) deleteSelection() {
	ids := m.store.Selection()
	if len(ids) == 0 {
		m.setStatus("Nothing selected.")
		return
	}
	res, err := m.store.DeleteActivities(m.ctx, ids)
	if err != nil {
		m.fail(err)
		return
	}
	m.report(res, fmt.Sprintf("Deleted %d %s.", len(ids), plural(len(ids), "activity", "activities")))
}

func (m *Model) duplicateSelection() {
	ids := m.store.Selection()
	if len(ids) != 1 {
		m.setStatus("Select one activity to duplicate.")
		return
	}
	dup, res, err := m.store.DuplicateActivity(m.ctx, ids[0])
	if err != nil {
		m.fail(err)
		return
	}
	m.check(m.store.Select(dup.ID, service.SelectReplace))
	m.report(res, "Added "+dup.Name+" "+formatter.TimeRange(dup)+".")
}

func (m *Model) scrollDays(delta int) {
	m.firstDay = max(min(m.firstDay+delta, len(m.store.Days())-m.visibleCount()), 0)
}

// ── naming a new activity ────────────────────────────────────────────────────

func (m *Model) beginNaming(d gesture.Draft) tea.Cmd {
	m.draft = &d
	m.input.Reset()
	return m.input.Focus()
}

func (m *Model) endNaming() {
	m.draft = nil
	m.input.Blur()
	m.input.Reset()
}

func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.commitDraft()
		return m, nil
	case tea.KeyEsc:
		m.endNaming()
		m.setStatus("New activity discarded.")
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitDraft() {
	a := m.draft.Activity()
	a.Name = m.input.Value()
	m.endNaming()

	saved, res, err := m.store.AddOrUpdateActivity(m.ctx, a)
	if err != nil {
		m.fail(err)
		return
	}
	m.check(m.store.Select(saved.ID, service.SelectReplace))
	m.report(res, "Added "+saved.Name+" "+formatter.TimeRange(saved)+".")
}

// ── mouse ────────────────────────────────────────────────────────────────────

// hit is what lies under a mouse cell.
type hit struct {
	ptr   gesture.Pointer
	row   int
	place *placement
}

func (m Model) hitTest(x, y int, fine bool) hit {
	row := min(max(y-headerLines, 0), m.rows-1)
	h := hit{row: row, ptr: gesture.Pointer{Y: float64(row), Fine: fine}}
	if y < headerLines || y >= headerLines+m.rows || x < gutterWidth {
		return h
	}
	days := m.visibleDays()
	idx := (x - gutterWidth) / colWidth
	if idx >= len(days) {
		return h
	}
	h.ptr.Day = days[idx].ISODate

	cx := (x - gutterWidth) % colWidth
	for _, p := range m.placements(h.ptr.Day) {
		if row >= p.top && row < p.bottom && cx >= p.left && cx < p.right {
			h.place = &p
			h.ptr.Target = p.seg.Activity.ID
			break
		}
	}
	return h
}

// gesturePointer maps a hit to the pointer the controller sees. While
// creating, rows at or below the pressed row count by their bottom edge so
// a single-row drag spans that row.
func (m Model) gesturePointer(h hit) gesture.Pointer {
	p := h.ptr
	if m.ctrl.Kind() == gesture.Creating && h.row >= m.pressRow {
		p.Y = float64(h.row + 1)
	}
	return p
}

func (m *Model) handleMouse(ev tea.MouseEvent) tea.Cmd {
	switch {
	case ev.Button == tea.MouseButtonWheelUp || ev.Button == tea.MouseButtonWheelLeft:
		if !m.ctrl.Active() {
			m.scrollDays(-1)
		}
	case ev.Button == tea.MouseButtonWheelDown || ev.Button == tea.MouseButtonWheelRight:
		if !m.ctrl.Active() {
			m.scrollDays(1)
		}
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		m.press(ev)
	case ev.Action == tea.MouseActionMotion:
		m.motion(ev)
	case ev.Action == tea.MouseActionRelease:
		return m.release(ev)
	}
	return nil
}

// press starts a gesture. Empty space starts a create; an item starts a
// move, or a resize when grabbed by its bottom row (or with ctrl, its top
// edge). Alt toggles the item in the selection without dragging.
func (m *Model) press(ev tea.MouseEvent) {
	h := m.hitTest(ev.X, ev.Y, ev.Shift)
	if h.ptr.Day == "" {
		return
	}
	m.pressRow = h.row
	m.setStatus("")

	if h.place == nil {
		m.store.ClearSelection()
		m.check(m.ctrl.BeginCreate(h.ptr))
		return
	}

	p := h.place
	id := p.seg.Activity.ID
	if ev.Alt {
		m.check(m.store.Select(id, service.SelectToggle))
		return
	}
	if !m.store.IsSelected(id) {
		m.check(m.store.Select(id, service.SelectReplace))
	}
	switch {
	case ev.Ctrl:
		m.check(m.ctrl.BeginResize(p.seg, gesture.Top, h.ptr))
	case p.bottom-p.top >= 2 && h.row == p.bottom-1 && p.seg.IsLastDay:
		m.check(m.ctrl.BeginResize(p.seg, gesture.Bottom, h.ptr))
	default:
		m.check(m.ctrl.BeginMove(p.seg, h.ptr))
	}
}

func (m *Model) motion(ev tea.MouseEvent) {
	ptr := m.gesturePointer(m.hitTest(ev.X, ev.Y, ev.Shift))
	var err error
	switch m.ctrl.Kind() {
	case gesture.Creating:
		_, err = m.ctrl.UpdateCreate(ptr)
	case gesture.Moving:
		_, err = m.ctrl.UpdateMove(ptr)
	case gesture.Resizing:
		_, err = m.ctrl.UpdateResize(ptr)
	}
	m.check(err)
}

func (m *Model) release(ev tea.MouseEvent) tea.Cmd {
	ptr := m.gesturePointer(m.hitTest(ev.X, ev.Y, ev.Shift))
	switch m.ctrl.Kind() {
	case gesture.Creating:
		d, ok, err := m.ctrl.EndCreate(ptr)
		if err != nil {
			m.fail(err)
			return nil
		}
		if !ok {
			m.setStatus("Too short, nothing created.")
			return nil
		}
		return m.beginNaming(d)

	case gesture.Moving:
		moved, err := m.ctrl.Drop(ptr)
		if errors.Is(err, gesture.ErrOutsideTrack) {
			m.setStatus("Dropped outside the board, move cancelled.")
			return nil
		}
		if err != nil {
			m.fail(err)
			return nil
		}
		m.commitMove(moved)

	case gesture.Resizing:
		a, ok, err := m.ctrl.EndResize(ptr)
		if err != nil {
			m.fail(err)
			return nil
		}
		if !ok {
			m.setStatus("Resize would leave no length, unchanged.")
			return nil
		}
		saved, res, err := m.store.AddOrUpdateActivity(m.ctx, a)
		if err != nil {
			m.fail(err)
			return nil
		}
		if res.Changed {
			m.report(res, "Resized "+saved.Name+" to "+formatter.TimeRange(saved)+".")
		}
	}
	return nil
}

// commitMove stores a dropped activity. When it was part of a larger
// selection the other selected activities shift by the same amount in the
// same history step.
func (m *Model) commitMove(moved domain.Activity) {
	orig, ok := m.store.Activity(moved.ID)
	if !ok {
		m.fail(fmt.Errorf("move %s: %w", moved.ID, service.ErrActivityNotFound))
		return
	}
	from, err := orig.StartInstant()
	if err != nil {
		m.fail(err)
		return
	}
	to, err := moved.StartInstant()
	if err != nil {
		m.fail(err)
		return
	}
	delta := to.Sub(from)

	batch := []domain.Activity{moved}
	if m.store.IsSelected(moved.ID) {
		for _, id := range m.store.Selection() {
			if id == moved.ID {
				continue
			}
			a, ok := m.store.Activity(id)
			if !ok {
				continue
			}
			start, errStart := a.StartInstant()
			end, errEnd := a.EndInstant()
			if errors.Join(errStart, errEnd) != nil {
				continue
			}
			batch = append(batch, a.WithInstants(start.Add(delta), end.Add(delta)))
		}
	}

	res, err := m.store.UpdateMultipleActivities(m.ctx, batch)
	if err != nil {
		m.fail(err)
		return
	}
	if !res.Changed {
		return
	}
	msg := fmt.Sprintf("Moved %s to %s %s.", moved.Name, moved.StartDate, moved.StartTime)
	if len(batch) > 1 {
		msg = fmt.Sprintf("Moved %d activities.", len(batch))
	}
	m.report(res, msg)
}

// ── status ───────────────────────────────────────────────────────────────────

func (m *Model) setStatus(s string) {
	m.status, m.failed = s, false
}

func (m *Model) fail(err error) {
	m.status, m.failed = err.Error(), true
}

func (m *Model) check(err error) {
	if err != nil {
		m.fail(err)
	}
}

func (m *Model) report(res service.Result, msg string) {
	if res.SaveErr != nil {
		m.status, m.failed = msg+" Not saved: "+res.SaveErr.Error(), true
		return
	}
	m.setStatus(msg)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
