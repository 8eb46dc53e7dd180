package domain

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// MaxPlanDays caps the derived day index.
const MaxPlanDays = 366

// PlanDay is one entry of the read-only day index derived from a plan's
// start date and length.
type PlanDay struct {
	ISODate     string `json:"isoDate"`
	DisplayDate string `json:"date"`
}

// Plan is the canonical schedule. Activities are keyed by id and are not
// nested inside days; Days is regenerated from StartDate and NumberOfDays
// and is never persisted.
type Plan struct {
	Name         string              `json:"name"`
	StartDate    string              `json:"startDate"`
	NumberOfDays int                 `json:"numberOfDays"`
	Days         []PlanDay           `json:"-"`
	Activities   map[string]Activity `json:"activities"`
}

// EmptyPlan returns a plan with no parameters and no activities.
func EmptyPlan() Plan {
	return Plan{NumberOfDays: 1, Activities: map[string]Activity{}}
}

// ValidatePlanInfo checks the user-editable plan parameters.
func ValidatePlanInfo(name, startDate string, numberOfDays int) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "plan name is required")
	}
	if _, err := ParseDate(startDate); err != nil {
		return invalid("startDate", "%v", err)
	}
	if numberOfDays < 1 || numberOfDays > MaxPlanDays {
		return invalid("numberOfDays", "must be between 1 and %d", MaxPlanDays)
	}
	return nil
}

// BuildDays derives the day index. An empty start date or a non-positive
// length yields no days.
func BuildDays(startDate string, numberOfDays int) []PlanDay {
	if startDate == "" || numberOfDays <= 0 {
		return nil
	}
	start, err := ParseDate(startDate)
	if err != nil {
		return nil
	}
	numberOfDays = min(numberOfDays, MaxPlanDays)
	days := make([]PlanDay, 0, numberOfDays)
	for i := range numberOfDays {
		d := start.AddDate(0, 0, i)
		days = append(days, PlanDay{
			ISODate:     d.Format(DateLayout),
			DisplayDate: d.Format("Jan 2, 2006 (Mon)"),
		})
	}
	return days
}

// WithDays returns the plan with its day index regenerated.
func (p Plan) WithDays() Plan {
	p.Days = BuildDays(p.StartDate, p.NumberOfDays)
	return p
}

// HasDay reports whether date is part of the plan's day index.
func (p Plan) HasDay(date string) bool {
	return slices.ContainsFunc(p.Days, func(d PlanDay) bool { return d.ISODate == date })
}

// SortedActivities returns the activities ordered by start instant, then
// by id for a stable order.
func (p Plan) SortedActivities() []Activity {
	out := slices.Collect(maps.Values(p.Activities))
	slices.SortFunc(out, CompareByStart)
	return out
}

// CompareByStart orders activities by start instant, then id.
func CompareByStart(a, b Activity) int {
	as, aErr := a.StartInstant()
	bs, bErr := b.StartInstant()
	if aErr == nil && bErr == nil && !as.Equal(bs) {
		return as.Compare(bs)
	}
	return strings.Compare(a.ID, b.ID)
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	p.Days = slices.Clone(p.Days)
	if p.Activities == nil {
		p.Activities = map[string]Activity{}
	} else {
		p.Activities = maps.Clone(p.Activities)
	}
	return p
}

// Equal reports structural equality. A nil and an empty activity map are
// equal.
func (p Plan) Equal(o Plan) bool {
	return p.Name == o.Name &&
		p.StartDate == o.StartDate &&
		p.NumberOfDays == o.NumberOfDays &&
		slices.Equal(p.Days, o.Days) &&
		maps.Equal(p.Activities, o.Activities)
}

// Span returns the first start date and the number of calendar days
// touched by the plan's activities. It reports false for a plan with no
// valid activities.
func (p Plan) Span() (string, int, bool) {
	var first, last time.Time
	found := false
	for _, a := range p.Activities {
		start, err := a.StartInstant()
		if err != nil {
			continue
		}
		end, err := a.EndInstant()
		if err != nil {
			continue
		}
		if !found || start.Before(first) {
			first = start
		}
		if !found || end.After(last) {
			last = end
		}
		found = true
	}
	if !found {
		return "", 0, false
	}
	firstDay := first.Truncate(24 * time.Hour)
	// An end exactly at midnight does not touch the following day.
	lastDay := last.Add(-time.Minute).Truncate(24 * time.Hour)
	return firstDay.Format(DateLayout), int(lastDay.Sub(firstDay).Hours()/24) + 1, true
}
