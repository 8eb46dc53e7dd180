package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for every persisted date.
const DateLayout = "2006-01-02"

// DefaultActivityName is used when an activity is saved with a blank name.
const DefaultActivityName = "Untitled activity"

// Activity is a schedulable item on the plan timeline. Start and end are
// stored as separate calendar date and clock time fields; the combined
// start instant must be strictly before the combined end instant.
type Activity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	StartTime    string `json:"startTime"`
	EndDate      string `json:"endDate"`
	EndTime      string `json:"endTime"`
	Category     string `json:"category"`
	Notes        string `json:"notes"`
	AllowOverlap bool   `json:"allowOverlap"`
}

// ValidationError reports a rejected field value. The store surfaces it
// next to the offending field and leaves its state unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// CombineDateTime builds the wall-clock instant for a date and clock time.
// Instants are computed in UTC so that day arithmetic is never shifted by
// a daylight-saving transition.
func CombineDateTime(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(m) * time.Minute), nil
}

// StartInstant returns the combined start date and time.
func (a Activity) StartInstant() (time.Time, error) {
	return CombineDateTime(a.StartDate, a.StartTime)
}

// EndInstant returns the combined end date and time.
func (a Activity) EndInstant() (time.Time, error) {
	return CombineDateTime(a.EndDate, a.EndTime)
}

// Duration returns end minus start. Invalid activities report zero.
func (a Activity) Duration() time.Duration {
	start, err := a.StartInstant()
	if err != nil {
		return 0
	}
	end, err := a.EndInstant()
	if err != nil {
		return 0
	}
	return end.Sub(start)
}

// Validate checks that every date and time parses and that the activity
// has positive length.
func (a Activity) Validate() error {
	if _, err := ParseDate(a.StartDate); err != nil {
		return invalid("startDate", "%v", err)
	}
	if _, err := ParseClock(a.StartTime); err != nil {
		return invalid("startTime", "%v", err)
	}
	if _, err := ParseDate(a.EndDate); err != nil {
		return invalid("endDate", "%v", err)
	}
	if _, err := ParseClock(a.EndTime); err != nil {
		return invalid("endTime", "%v", err)
	}
	start, _ := a.StartInstant()
	end, _ := a.EndInstant()
	if !start.Before(end) {
		return invalid("endTime", "end %s %s must be after start %s %s", a.EndDate, a.EndTime, a.StartDate, a.StartTime)
	}
	return nil
}

// Normalized validates the activity and returns its canonical form: the
// name and notes are trimmed, a blank name gets DefaultActivityName, and
// date/time fields are rewritten from their instants (so "24:00" becomes
// "00:00" on the following day).
func (a Activity) Normalized() (Activity, error) {
	if err := a.Validate(); err != nil {
		return Activity{}, err
	}
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		a.Name = DefaultActivityName
	}
	a.Notes = strings.TrimSpace(a.Notes)
	start, _ := a.StartInstant()
	end, _ := a.EndInstant()
	return a.WithInstants(start, end), nil
}

// WithInstants returns a copy whose date and time fields are taken from
// the given instants.
func (a Activity) WithInstants(start, end time.Time) Activity {
	start, end = start.UTC(), end.UTC()
	a.StartDate = start.Format(DateLayout)
	a.StartTime = start.Format("15:04")
	a.EndDate = end.Format(DateLayout)
	a.EndTime = end.Format("15:04")
	return a
}

// ShiftTo moves the activity so that it starts at minutes after midnight
// on day, keeping its duration.
func (a Activity) ShiftTo(day string, minutes int) (Activity, error) {
	if err := a.Validate(); err != nil {
		return Activity{}, err
	}
	d, err := ParseDate(day)
	if err != nil {
		return Activity{}, invalid("startDate", "%v", err)
	}
	start := d.Add(time.Duration(minutes) * time.Minute)
	return a.WithInstants(start, start.Add(a.Duration())), nil
}

// Duplicate returns an unsaved copy placed immediately after a, with the
// same duration.
func (a Activity) Duplicate() (Activity, error) {
	if err := a.Validate(); err != nil {
		return Activity{}, err
	}
	end, _ := a.EndInstant()
	dup := a.WithInstants(end, end.Add(a.Duration()))
	dup.ID = ""
	dup.Name = a.Name + " (copy)"
	return dup, nil
}

// TouchesDate reports whether any part of the activity falls on date.
func (a Activity) TouchesDate(date string) bool {
	day, err := ParseDate(date)
	if err != nil {
		return false
	}
	start, err := a.StartInstant()
	if err != nil {
		return false
	}
	end, err := a.EndInstant()
	if err != nil {
		return false
	}
	return start.Before(day.AddDate(0, 0, 1)) && end.After(day)
}
