// Package timeline derives the per-day visual placement of activities:
// splitting multi-day activities into day segments and packing the
// segments of one day into side-by-side columns.
package timeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// Segment is the part of an activity visible on one calendar day. It is
// derived on every render pass and never persisted.
type Segment struct {
	Activity domain.Activity

	Date      string // ISO date of the day this segment belongs to
	StartMin  int    // minutes after the day's midnight
	EndMin    int    // minutes after the day's midnight, up to 1440
	StartTime string
	EndTime   string // "24:00" when the segment runs to the end of the day

	IsFirstDay bool
	IsLastDay  bool
}

// ID identifies the segment within a render pass. Segments of the same
// activity share Activity.ID and differ by date.
func (s Segment) ID() string {
	return s.Activity.ID + "@" + s.Date
}

// Minutes returns the clipped length of the segment.
func (s Segment) Minutes() int {
	return s.EndMin - s.StartMin
}

// IsContinuation reports whether the segment is one piece of a multi-day
// activity.
func (s Segment) IsContinuation() bool {
	return !s.IsFirstDay || !s.IsLastDay
}

// Split cuts an activity into one segment per calendar day it touches.
// The clipped intervals partition the activity's duration exactly.
func Split(a domain.Activity) ([]Segment, error) {
	start, err := a.StartInstant()
	if err != nil {
		return nil, fmt.Errorf("activity %s start: %w", a.ID, err)
	}
	end, err := a.EndInstant()
	if err != nil {
		return nil, fmt.Errorf("activity %s end: %w", a.ID, err)
	}

	var segments []Segment
	for day := start.Truncate(24 * time.Hour); day.Before(end); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)
		segStart := laterOf(start, day)
		segEnd := earlierOf(end, next)
		if !segStart.Before(segEnd) {
			continue
		}

		startMin := int(segStart.Sub(day) / time.Minute)
		endMin := int(segEnd.Sub(day) / time.Minute)
		segments = append(segments, Segment{
			Activity:   a,
			Date:       day.Format(domain.DateLayout),
			StartMin:   startMin,
			EndMin:     endMin,
			StartTime:  domain.MinutesToTime(startMin),
			EndTime:    domain.MinutesToEndTime(endMin),
			IsFirstDay: segStart.Equal(start),
			IsLastDay:  segEnd.Equal(end),
		})
	}
	return segments, nil
}

// SegmentsFor splits an activity and keeps only the segments that fall on one
// of the given plan days. A nil day index keeps every segment. Invalid
// activities produce no segments.
func SegmentsFor(a domain.Activity, days []domain.PlanDay) []Segment {
	segments, err := Split(a)
	if err != nil {
		return nil
	}
	if days == nil {
		return segments
	}
	return slices.DeleteFunc(segments, func(s Segment) bool {
		return !slices.ContainsFunc(days, func(d domain.PlanDay) bool { return d.ISODate == s.Date })
	})
}

// ByDay runs one render pass: every activity is segmented against the day
// index and the segments are grouped by date, each day ordered by start
// minute then activity id. Every plan day has an entry, possibly empty.
func ByDay(activities map[string]domain.Activity, days []domain.PlanDay) map[string][]Segment {
	out := make(map[string][]Segment, len(days))
	for _, d := range days {
		out[d.ISODate] = nil
	}
	for _, a := range activities {
		for _, s := range SegmentsFor(a, days) {
			out[s.Date] = append(out[s.Date], s)
		}
	}
	for date := range out {
		slices.SortFunc(out[date], func(a, b Segment) int {
			if a.StartMin != b.StartMin {
				return a.StartMin - b.StartMin
			}
			if a.Activity.ID < b.Activity.ID {
				return -1
			}
			if a.Activity.ID > b.Activity.ID {
				return 1
			}
			return 0
		})
	}
	return out
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
