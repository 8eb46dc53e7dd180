package gesture

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/domain"
)

type creating struct {
	day     string
	startY  float64
	fine    bool
	preview Preview
}

func (*creating) kind() Kind { return Creating }

// Draft is a proposed new activity produced by a create gesture. It has no
// id; the edit form fills in name, category and notes before commit.
type Draft struct {
	Day      string
	StartMin int
	EndMin   int
}

// StartTime returns the draft start as "HH:MM".
func (d Draft) StartTime() string { return domain.MinutesToTime(d.StartMin) }

// EndTime returns the draft end, "24:00" when it runs to midnight.
func (d Draft) EndTime() string { return domain.MinutesToEndTime(d.EndMin) }

// Activity returns the draft as an unsaved activity on its day.
func (d Draft) Activity() domain.Activity {
	return domain.Activity{
		StartDate: d.Day,
		StartTime: d.StartTime(),
		EndDate:   d.Day,
		EndTime:   d.EndTime(),
	}
}

// BeginCreate starts a drag-to-create on empty track space.
func (c *Controller) BeginCreate(p Pointer) error {
	if p.Day == "" {
		return ErrOutsideTrack
	}
	if p.Target != "" {
		return fmt.Errorf("create on %s: %w", p.Day, ErrOverExistingItem)
	}
	y := c.clampY(p.Y)
	s := &creating{day: p.Day, startY: y, fine: p.Fine}
	if err := c.begin(s); err != nil {
		return err
	}
	s.preview = c.createPreview(s, y, p.Fine)
	return nil
}

// UpdateCreate extends the drag to the pointer. The day stays the one the
// gesture began on.
func (c *Controller) UpdateCreate(p Pointer) (Preview, error) {
	s, ok := c.state.(*creating)
	if !ok {
		return Preview{}, ErrNoGesture
	}
	s.fine = p.Fine
	s.preview = c.createPreview(s, c.clampY(p.Y), p.Fine)
	return s.preview, nil
}

// EndCreate finishes the drag. It reports false, with no draft, when the
// dragged height is below the minimum.
func (c *Controller) EndCreate(p Pointer) (Draft, bool, error) {
	s, ok := c.state.(*creating)
	if !ok {
		return Draft{}, false, ErrNoGesture
	}
	c.state = idle{}

	preview := c.createPreview(s, c.clampY(p.Y), p.Fine)
	if preview.HeightPx < c.geo.MinCreateHeight || preview.EndMin <= preview.StartMin {
		return Draft{}, false, nil
	}
	return Draft{Day: s.day, StartMin: preview.StartMin, EndMin: preview.EndMin}, true, nil
}

func (c *Controller) createPreview(s *creating, currentY float64, fine bool) Preview {
	top, bottom := min(s.startY, currentY), max(s.startY, currentY)
	start := c.minutes(top, fine, roundDown)
	end := c.minutes(bottom, fine, roundUp)
	return Preview{
		Kind:     Creating,
		Day:      s.day,
		TopPx:    top,
		HeightPx: bottom - top,
		StartMin: start,
		EndMin:   end,
		Label:    timeRange(start, end),
		Duration: domain.FormatDuration(end - start),
	}
}
