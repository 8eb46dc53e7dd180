package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/google/uuid"
)

var testActivityCounter atomic.Int64

// Activity options
type ActivityOption func(*domain.Activity)

func WithID(id string) ActivityOption {
	return func(a *domain.Activity) {
		a.ID = id
	}
}

func WithCategory(id string) ActivityOption {
	return func(a *domain.Activity) {
		a.Category = id
	}
}

func WithNotes(notes string) ActivityOption {
	return func(a *domain.Activity) {
		a.Notes = notes
	}
}

func WithAllowOverlap() ActivityOption {
	return func(a *domain.Activity) {
		a.AllowOverlap = true
	}
}

// WithEnd sets an end on a different date than the start.
func WithEnd(date, clock string) ActivityOption {
	return func(a *domain.Activity) {
		a.EndDate = date
		a.EndTime = clock
	}
}

// NewTestActivity returns a valid single-day activity on date from start to
// end. Without WithID it gets a fresh act- id.
func NewTestActivity(name, date, start, end string, opts ...ActivityOption) domain.Activity {
	a := domain.Activity{
		ID:        "act-" + uuid.New().String(),
		Name:      name,
		StartDate: date,
		StartTime: start,
		EndDate:   date,
		EndTime:   end,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// NewNumberedActivities returns n back-to-back one-hour activities starting
// at 00:00 on date, named "<prefix> 1".."<prefix> n".
func NewNumberedActivities(prefix, date string, n int) []domain.Activity {
	out := make([]domain.Activity, 0, n)
	for i := range n {
		id := fmt.Sprintf("act-test-%d", testActivityCounter.Add(1))
		out = append(out, NewTestActivity(
			fmt.Sprintf("%s %d", prefix, i+1),
			date,
			domain.MinutesToTime(i*60),
			domain.MinutesToEndTime((i+1)*60),
			WithID(id),
		))
	}
	return out
}

// Plan options
type PlanOption func(*domain.Plan)

func WithActivities(activities ...domain.Activity) PlanOption {
	return func(p *domain.Plan) {
		for _, a := range activities {
			p.Activities[a.ID] = a
		}
	}
}

// NewTestPlan returns a plan with its day index built.
func NewTestPlan(name, startDate string, days int, opts ...PlanOption) domain.Plan {
	p := domain.Plan{
		Name:         name,
		StartDate:    startDate,
		NumberOfDays: days,
		Activities:   map[string]domain.Activity{},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p.WithDays()
}
