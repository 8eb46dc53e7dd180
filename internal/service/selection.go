package service

import (
	"fmt"
	"slices"
)

// SelectMode chooses how Select combines the clicked activity with the
// current selection.
type SelectMode int

const (
	// SelectReplace selects only the activity and makes it the anchor.
	SelectReplace SelectMode = iota
	// SelectToggle adds or removes the activity. Adding moves the anchor.
	SelectToggle
	// SelectRange selects every activity between the anchor and the
	// activity in start order, replacing the selection.
	SelectRange
	// SelectRangeAdd is SelectRange added to the current selection.
	SelectRangeAdd
)

// ParseSelectMode maps a flag value to a mode.
func ParseSelectMode(s string) (SelectMode, error) {
	switch s {
	case "", "replace":
		return SelectReplace, nil
	case "toggle":
		return SelectToggle, nil
	case "range":
		return SelectRange, nil
	case "range-add":
		return SelectRangeAdd, nil
	}
	return 0, fmt.Errorf("unknown select mode %q (want replace, toggle, range or range-add)", s)
}

// selection is UI state: never saved and never part of a history entry.
type selection struct {
	set    map[string]bool
	anchor string
}

func newSelection() selection {
	return selection{set: map[string]bool{}}
}

func (s *selection) remove(id string) {
	delete(s.set, id)
	if s.anchor == id {
		s.anchor = ""
	}
}

func (s *selection) ids() []string {
	out := make([]string, 0, len(s.set))
	for id := range s.set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Select updates the selection. It never touches history or storage.
func (s *PlanStore) Select(id string, mode SelectMode) error {
	if _, ok := s.state.Plan.Activities[id]; !ok {
		return fmt.Errorf("select %s: %w", id, ErrActivityNotFound)
	}
	sel := &s.selection

	switch mode {
	case SelectToggle:
		if sel.set[id] {
			delete(sel.set, id)
			return nil
		}
		sel.set[id] = true
		sel.anchor = id

	case SelectRange, SelectRangeAdd:
		order := s.ActivityIDs()
		from := slices.Index(order, sel.anchor)
		if sel.anchor == "" || from < 0 {
			sel.set = map[string]bool{id: true}
			sel.anchor = id
			return nil
		}
		to := slices.Index(order, id)
		if mode == SelectRange {
			sel.set = map[string]bool{}
		}
		for _, rid := range order[min(from, to) : max(from, to)+1] {
			sel.set[rid] = true
		}

	default:
		sel.set = map[string]bool{id: true}
		sel.anchor = id
	}
	return nil
}

// ClearSelection empties the selection.
func (s *PlanStore) ClearSelection() {
	s.selection = newSelection()
}

// Selection returns the selected ids, sorted.
func (s *PlanStore) Selection() []string {
	return s.selection.ids()
}

// IsSelected reports whether id is selected.
func (s *PlanStore) IsSelected(id string) bool {
	return s.selection.set[id]
}
