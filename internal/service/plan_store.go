package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/export"
	"github.com/alexanderramin/planboard/internal/history"
	"github.com/alexanderramin/planboard/internal/importer"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/google/uuid"
)

// Result reports what a mutation did. Changed is false when the resulting
// state equalled the current one and nothing was done. Persisted is false
// when the change was applied in memory but could not be saved; SaveErr
// then carries the storage error.
type Result struct {
	Changed   bool
	Persisted bool
	SaveErr   error
}

// PlanStore owns the editor state: the plan, its categories, the undo
// history and the selection. It is the only mutator; every operation
// validates first, replaces the state as a whole, saves it and records a
// history entry. PlanStore is not safe for concurrent use.
type PlanStore struct {
	repo     repository.PlanStateRepo
	history  *history.Manager
	observer UseCaseObserver

	state     domain.Snapshot
	selection selection
}

// NewPlanStore returns a store holding an empty plan and the default
// categories. Call Load to read the saved state.
func NewPlanStore(repo repository.PlanStateRepo, historyCapacity int, observers ...UseCaseObserver) *PlanStore {
	s := &PlanStore{
		repo:      repo,
		history:   history.New(historyCapacity),
		observer:  useCaseObserverOrNoop(observers),
		state:     domain.Snapshot{Plan: domain.EmptyPlan(), Categories: domain.DefaultCategories()},
		selection: newSelection(),
	}
	s.history.Push(s.state)
	return s
}

// Load replaces the in-memory state with the saved one. Absent or
// unreadable keys fall back to an empty plan and the default categories.
// On a storage error the defaults stay in place and the error is returned.
func (s *PlanStore) Load(ctx context.Context) (err error) {
	fields := map[string]any{}
	defer s.observe(ctx, "load", time.Now().UTC(), fields, &err)

	st, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading plan state: %w", err)
	}

	next := domain.Snapshot{Plan: domain.EmptyPlan(), Categories: domain.DefaultCategories()}
	if st.Plan != nil {
		next.Plan = st.Plan.Clone().WithDays()
	}
	if st.Categories != nil {
		next.Categories = slices.Clone(st.Categories)
	}
	if len(st.Corrupt) > 0 {
		fields["corrupt_keys"] = st.Corrupt
	}

	s.state = next
	s.selection = newSelection()
	s.history.Reset()
	if len(st.History) > 0 {
		s.history.Load(st.History, st.Cursor)
	}
	// A history that does not end on the saved state (lost or written by
	// an interrupted save) gets the saved state appended.
	if cur, ok := s.history.Current(); !ok || !cur.Equal(next) {
		s.history.Push(next)
	}
	fields["activities"] = len(next.Plan.Activities)
	fields["history_entries"] = s.history.Len()
	fields["history_capacity"] = s.history.Capacity()
	return nil
}

// SetPlanInfo changes the plan name, start date and length and
// regenerates the day index. Activities are kept even when they fall
// outside the new range.
func (s *PlanStore) SetPlanInfo(ctx context.Context, name, startDate string, numberOfDays int) (Result, error) {
	return s.mutate(ctx, "set-plan-info", map[string]any{"days": numberOfDays}, func(next *domain.Snapshot) error {
		if err := domain.ValidatePlanInfo(name, startDate, numberOfDays); err != nil {
			return err
		}
		next.Plan.Name = name
		next.Plan.StartDate = startDate
		next.Plan.NumberOfDays = numberOfDays
		next.Plan = next.Plan.WithDays()
		return nil
	})
}

// AddOrUpdateActivity validates and stores a. An empty id creates a new
// activity; an id that is not (or no longer) present is inserted rather
// than rejected. An unknown category resets to uncategorized. The stored
// activity is returned.
func (s *PlanStore) AddOrUpdateActivity(ctx context.Context, a domain.Activity) (domain.Activity, Result, error) {
	var stored domain.Activity
	res, err := s.mutate(ctx, "add-or-update-activity", map[string]any{"activity_id": a.ID}, func(next *domain.Snapshot) error {
		var err error
		stored, err = s.prepare(a, next.Categories)
		if err != nil {
			return err
		}
		next.Plan.Activities[stored.ID] = stored
		return nil
	})
	if err != nil {
		return domain.Activity{}, res, err
	}
	return stored, res, nil
}

// UpdateMultipleActivities stores a batch as one change. If any activity
// fails validation nothing is stored.
func (s *PlanStore) UpdateMultipleActivities(ctx context.Context, activities []domain.Activity) (Result, error) {
	return s.mutate(ctx, "update-multiple-activities", map[string]any{"count": len(activities)}, func(next *domain.Snapshot) error {
		for _, a := range activities {
			stored, err := s.prepare(a, next.Categories)
			if err != nil {
				return fmt.Errorf("activity %q: %w", a.ID, err)
			}
			next.Plan.Activities[stored.ID] = stored
		}
		return nil
	})
}

// DeleteActivities removes every listed activity, with all its segments.
// Unknown ids are ignored. Deleted ids leave the selection.
func (s *PlanStore) DeleteActivities(ctx context.Context, ids []string) (Result, error) {
	res, err := s.mutate(ctx, "delete-activities", map[string]any{"count": len(ids)}, func(next *domain.Snapshot) error {
		for _, id := range ids {
			delete(next.Plan.Activities, id)
		}
		return nil
	})
	if err == nil {
		for _, id := range ids {
			s.selection.remove(id)
		}
	}
	return res, err
}

// DuplicateActivity stores a copy of id placed right after it and returns
// the copy.
func (s *PlanStore) DuplicateActivity(ctx context.Context, id string) (domain.Activity, Result, error) {
	var dup domain.Activity
	res, err := s.mutate(ctx, "duplicate-activity", map[string]any{"activity_id": id}, func(next *domain.Snapshot) error {
		orig, ok := next.Plan.Activities[id]
		if !ok {
			return fmt.Errorf("duplicate %s: %w", id, ErrActivityNotFound)
		}
		copyOf, err := orig.Duplicate()
		if err != nil {
			return err
		}
		dup, err = s.prepare(copyOf, next.Categories)
		if err != nil {
			return err
		}
		next.Plan.Activities[dup.ID] = dup
		return nil
	})
	if err != nil {
		return domain.Activity{}, res, err
	}
	return dup, res, nil
}

// SetCategories replaces the category list. Categories without an id get
// one. Activities that referenced a removed category become
// uncategorized; no activity is deleted.
func (s *PlanStore) SetCategories(ctx context.Context, categories []domain.Category) (Result, error) {
	return s.mutate(ctx, "set-categories", map[string]any{"count": len(categories)}, func(next *domain.Snapshot) error {
		cats := slices.Clone(categories)
		seen := make(map[string]bool, len(cats))
		for i := range cats {
			if cats[i].ID == "" {
				cats[i].ID = "cat-" + uuid.New().String()
			}
			if seen[cats[i].ID] {
				return &domain.ValidationError{Field: "category.id", Message: fmt.Sprintf("duplicate id %q", cats[i].ID)}
			}
			seen[cats[i].ID] = true
			if err := cats[i].Validate(); err != nil {
				return err
			}
		}
		if cats == nil {
			cats = []domain.Category{}
		}
		next.Categories = cats
		for id, a := range next.Plan.Activities {
			if a.Category != "" && !seen[a.Category] {
				a.Category = ""
				next.Plan.Activities[id] = a
			}
		}
		return nil
	})
}

// ClearPlan drops the plan parameters and every activity. Categories are
// kept. The cleared state is undoable.
func (s *PlanStore) ClearPlan(ctx context.Context) (Result, error) {
	res, err := s.mutate(ctx, "clear-plan", nil, func(next *domain.Snapshot) error {
		next.Plan = domain.EmptyPlan()
		return nil
	})
	if err == nil {
		s.selection = newSelection()
	}
	return res, err
}

// ImportPlan replaces the plan with an imported document in one change,
// equivalent to SetPlanInfo followed by UpdateMultipleActivities. A file
// carrying categories replaces them too. Any validation problem rejects
// the whole import with ErrMalformedImport.
func (s *PlanStore) ImportPlan(ctx context.Context, f *importer.PlanFile) (Result, error) {
	res, err := s.mutate(ctx, "import-plan", map[string]any{"name": f.Name}, func(next *domain.Snapshot) error {
		if errs := importer.ValidatePlanFile(f); len(errs) > 0 {
			return fmt.Errorf("%w (%d problems): %w", ErrMalformedImport, len(errs), errors.Join(errs...))
		}
		imported, err := importer.Convert(f)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedImport, err)
		}
		if err := domain.ValidatePlanInfo(imported.Plan.Name, imported.Plan.StartDate, imported.Plan.NumberOfDays); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedImport, err)
		}
		if imported.Categories != nil {
			next.Categories = imported.Categories
		}
		activities := make(map[string]domain.Activity, len(imported.Plan.Activities))
		for _, a := range imported.Plan.Activities {
			prepared, err := s.prepare(a, next.Categories)
			if err != nil {
				return fmt.Errorf("%w: activity %q: %w", ErrMalformedImport, a.Name, err)
			}
			activities[prepared.ID] = prepared
		}
		next.Plan = imported.Plan
		next.Plan.Activities = activities
		return nil
	})
	if err == nil {
		s.selection = newSelection()
	}
	return res, err
}

// ImportPlanJSON parses and imports a plan document.
func (s *PlanStore) ImportPlanJSON(ctx context.Context, data []byte) (Result, error) {
	f, err := importer.ParsePlanFile(data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}
	return s.ImportPlan(ctx, f)
}

// Undo restores the previous history entry. Changed is false when there
// is nothing to undo.
func (s *PlanStore) Undo(ctx context.Context) (Result, error) {
	return s.restore(ctx, "undo", s.history.Undo)
}

// Redo restores the next history entry.
func (s *PlanStore) Redo(ctx context.Context) (Result, error) {
	return s.restore(ctx, "redo", s.history.Redo)
}

func (s *PlanStore) CanUndo() bool { return s.history.CanUndo() }
func (s *PlanStore) CanRedo() bool { return s.history.CanRedo() }

func (s *PlanStore) restore(ctx context.Context, name string, step func() (domain.Snapshot, bool)) (res Result, err error) {
	fields := map[string]any{}
	defer s.observe(ctx, name, time.Now().UTC(), fields, &err)

	err = s.history.Restore(func() error {
		snap, ok := step()
		if !ok {
			return nil
		}
		s.apply(snap)
		res = s.save(ctx)
		return nil
	})
	fields["changed"] = res.Changed
	if res.Changed {
		fields["persisted"] = res.Persisted
	}
	return res, err
}

// apply installs snap and drops selected ids that no longer exist.
func (s *PlanStore) apply(snap domain.Snapshot) {
	s.state = snap
	for _, id := range s.selection.ids() {
		if _, ok := snap.Plan.Activities[id]; !ok {
			s.selection.remove(id)
		}
	}
}

// mutate runs build against a copy of the current state and commits the
// copy when it differs. A build error leaves the state untouched.
func (s *PlanStore) mutate(ctx context.Context, name string, fields map[string]any, build func(next *domain.Snapshot) error) (res Result, err error) {
	if fields == nil {
		fields = map[string]any{}
	}
	defer s.observe(ctx, name, time.Now().UTC(), fields, &err)

	next := s.state.Clone()
	if err := build(&next); err != nil {
		return Result{}, err
	}
	fields["changed"] = false
	if next.Equal(s.state) {
		return Result{}, nil
	}

	s.state = next
	s.history.Push(next)
	res = s.save(ctx)
	fields["changed"] = true
	fields["persisted"] = res.Persisted
	return res, nil
}

// save writes the current state and history. A storage failure does not
// undo the in-memory change.
func (s *PlanStore) save(ctx context.Context) Result {
	entries, cursor := s.history.Entries()
	plan := s.state.Plan
	err := s.repo.Save(ctx, repository.State{
		Plan:       &plan,
		Categories: s.state.Categories,
		History:    entries,
		Cursor:     cursor,
	})
	if err != nil {
		return Result{Changed: true, SaveErr: fmt.Errorf("saving plan state: %w", err)}
	}
	return Result{Changed: true, Persisted: true}
}

func (s *PlanStore) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// prepare normalizes an activity for storage and assigns an id when it
// has none.
func (s *PlanStore) prepare(a domain.Activity, categories []domain.Category) (domain.Activity, error) {
	norm, err := a.Normalized()
	if err != nil {
		return domain.Activity{}, err
	}
	if norm.ID == "" {
		norm.ID = newActivityID()
	}
	if _, ok := domain.FindCategory(categories, norm.Category); !ok {
		norm.Category = ""
	}
	return norm, nil
}

func newActivityID() string {
	return "act-" + uuid.New().String()
}

// Snapshot returns a deep copy of the undoable state.
func (s *PlanStore) Snapshot() domain.Snapshot { return s.state.Clone() }

// Plan returns a deep copy of the plan.
func (s *PlanStore) Plan() domain.Plan { return s.state.Plan.Clone() }

// Categories returns a copy of the categories.
func (s *PlanStore) Categories() []domain.Category { return slices.Clone(s.state.Categories) }

// Activity returns the stored activity with the given id.
func (s *PlanStore) Activity(id string) (domain.Activity, bool) {
	a, ok := s.state.Plan.Activities[id]
	return a, ok
}

// ActivityIDs returns every activity id in start order.
func (s *PlanStore) ActivityIDs() []string {
	sorted := s.state.Plan.SortedActivities()
	ids := make([]string, len(sorted))
	for i, a := range sorted {
		ids[i] = a.ID
	}
	return ids
}

// Days returns the plan's day index.
func (s *PlanStore) Days() []domain.PlanDay { return slices.Clone(s.state.Plan.Days) }

// SegmentsByDay runs a render pass over the current plan.
func (s *PlanStore) SegmentsByDay() map[string][]timeline.Segment {
	return timeline.ByDay(maps.Clone(s.state.Plan.Activities), s.state.Plan.Days)
}

// Summary totals activity time per category.
func (s *PlanStore) Summary() export.Summary {
	return export.Summarize(s.state.Plan, s.state.Categories)
}
