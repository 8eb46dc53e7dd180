package gesture

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
)

type moving struct {
	activity   domain.Activity
	origin     timeline.Segment
	grabOffset float64
	preview    Preview
}

func (*moving) kind() Kind { return Moving }

// BeginMove grabs the item rendered for seg. The offset between the
// pointer and the item's top edge is kept for the whole drag.
func (c *Controller) BeginMove(seg timeline.Segment, p Pointer) error {
	if c.Active() {
		return fmt.Errorf("move %s: %w", seg.Activity.ID, ErrGestureActive)
	}
	a, ok := c.src.Activity(seg.Activity.ID)
	if !ok {
		return fmt.Errorf("move %s: %w", seg.Activity.ID, ErrUnknownActivity)
	}
	s := &moving{
		activity:   a,
		origin:     seg,
		grabOffset: p.Y - c.pixels(seg.StartMin),
	}
	if err := c.begin(s); err != nil {
		return err
	}
	s.preview = c.movePreview(s, seg.Date, p.Y, p.Fine)
	return nil
}

// UpdateMove follows the pointer across day tracks. Outside every track
// the preview stays where it was.
func (c *Controller) UpdateMove(p Pointer) (Preview, error) {
	s, ok := c.state.(*moving)
	if !ok {
		return Preview{}, ErrNoGesture
	}
	if p.Day != "" {
		s.preview = c.movePreview(s, p.Day, p.Y, p.Fine)
	}
	return s.preview, nil
}

// Drop ends the move and returns the activity starting on the drop day at
// the snapped drop time, whichever segment was grabbed. Duration is
// preserved. Dropping outside every track cancels the move.
func (c *Controller) Drop(p Pointer) (domain.Activity, error) {
	s, ok := c.state.(*moving)
	if !ok {
		return domain.Activity{}, ErrNoGesture
	}
	c.state = idle{}
	if p.Day == "" {
		return domain.Activity{}, ErrOutsideTrack
	}

	preview := c.movePreview(s, p.Day, p.Y, p.Fine)
	dropDay, err := domain.ParseDate(preview.Day)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("drop %s: %w", s.activity.ID, err)
	}
	start := dropDay.Add(time.Duration(preview.StartMin) * time.Minute)
	return s.activity.WithInstants(start, start.Add(s.activity.Duration())), nil
}

func (c *Controller) movePreview(s *moving, day string, y float64, fine bool) Preview {
	top := max(y-s.grabOffset, 0)
	g := c.geo.granularity(fine)
	start := min(c.minutes(top, fine, roundNearest), domain.MinutesPerDay-g)
	end := min(start+int(s.activity.Duration()/time.Minute), domain.MinutesPerDay)

	offset := dayOffset(s.origin.Date, day)
	annotation := ""
	if offset != 0 {
		annotation = fmt.Sprintf("%+dd", offset)
	}
	return Preview{
		Kind:       Moving,
		ActivityID: s.activity.ID,
		Day:        day,
		TopPx:      c.pixels(start),
		HeightPx:   c.pixels(end) - c.pixels(start),
		StartMin:   start,
		EndMin:     end,
		Label:      s.activity.Name + " " + domain.MinutesToTime(start),
		Duration:   domain.FormatDuration(int(s.activity.Duration() / time.Minute)),
		DayOffset:  offset,
		Annotation: annotation,
	}
}

func dayOffset(from, to string) int {
	a, err := domain.ParseDate(from)
	if err != nil {
		return 0
	}
	b, err := domain.ParseDate(to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
