package importer

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/google/uuid"
)

// Imported is a validated document converted to domain values.
type Imported struct {
	Plan domain.Plan
	// Categories is nil when the file carried none; the current categories
	// are then kept.
	Categories []domain.Category
}

// Convert transforms a validated PlanFile into domain values.
// Call ValidatePlanFile first; Convert assumes the file is valid.
//
// Activities from the legacy planData layout are merged by id, so a
// multi-day activity listed under several days is imported once. A missing
// start date or day count is derived from the span of the activities.
func Convert(f *PlanFile) (*Imported, error) {
	plan := domain.Plan{
		Name:       f.Name,
		StartDate:  f.StartDate,
		Activities: make(map[string]domain.Activity, len(f.Activities)),
	}

	add := func(a domain.Activity) error {
		if a.ID == "" {
			a.ID = "act-" + uuid.New().String()
		}
		norm, err := a.Normalized()
		if err != nil {
			return fmt.Errorf("activity %s: %w", a.ID, err)
		}
		plan.Activities[norm.ID] = norm
		return nil
	}

	for key, a := range f.Activities {
		a.ID = key
		if err := add(a); err != nil {
			return nil, err
		}
	}
	for _, day := range f.PlanData {
		for _, a := range day.Activities {
			if _, dup := plan.Activities[a.ID]; dup && a.ID != "" {
				continue
			}
			if err := add(a); err != nil {
				return nil, err
			}
		}
	}

	spanStart, spanDays, hasSpan := plan.Span()
	if plan.StartDate == "" && hasSpan {
		plan.StartDate = spanStart
	}
	switch {
	case f.NumberOfDays.Set:
		plan.NumberOfDays = f.NumberOfDays.Value
	case hasSpan && plan.StartDate == spanStart:
		plan.NumberOfDays = spanDays
	case hasSpan:
		plan.NumberOfDays = daysCovering(plan.StartDate, spanStart, spanDays)
	default:
		plan.NumberOfDays = 1
	}
	plan.NumberOfDays = min(max(plan.NumberOfDays, 1), domain.MaxPlanDays)

	return &Imported{Plan: plan.WithDays(), Categories: slices.Clone(f.Categories)}, nil
}

// daysCovering returns how many days starting at start are needed to reach
// the end of a span of spanDays days beginning at spanStart.
func daysCovering(start, spanStart string, spanDays int) int {
	s, err := domain.ParseDate(start)
	if err != nil {
		return spanDays
	}
	ss, err := domain.ParseDate(spanStart)
	if err != nil {
		return spanDays
	}
	end := ss.AddDate(0, 0, spanDays)
	return max(int(end.Sub(s).Hours()/24), 1)
}
