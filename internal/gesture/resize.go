package gesture

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
)

// Edge selects the resize handle.
type Edge int

const (
	Top Edge = iota
	Bottom
)

func (e Edge) String() string {
	if e == Top {
		return "top"
	}
	return "bottom"
}

type resizing struct {
	activity   domain.Activity
	seg        timeline.Segment
	edge       Edge
	grabOffset float64
	origTop    float64
	origBottom float64
	top        float64
	bottom     float64
	preview    Preview
}

func (*resizing) kind() Kind { return Resizing }

// BeginResize grabs one edge of seg. Only the activity's true start and
// end can be resized; the clipped edges of a multi-day segment cannot.
func (c *Controller) BeginResize(seg timeline.Segment, edge Edge, p Pointer) error {
	if c.Active() {
		return fmt.Errorf("resize %s: %w", seg.Activity.ID, ErrGestureActive)
	}
	if (edge == Top && !seg.IsFirstDay) || (edge == Bottom && !seg.IsLastDay) {
		return fmt.Errorf("resize %s %s edge on %s: %w", seg.Activity.ID, edge, seg.Date, ErrContinuationEdge)
	}
	a, ok := c.src.Activity(seg.Activity.ID)
	if !ok {
		return fmt.Errorf("resize %s: %w", seg.Activity.ID, ErrUnknownActivity)
	}

	top, bottom := c.pixels(seg.StartMin), c.pixels(seg.EndMin)
	edgeY := top
	if edge == Bottom {
		edgeY = bottom
	}
	s := &resizing{
		activity:   a,
		seg:        seg,
		edge:       edge,
		grabOffset: p.Y - edgeY,
		origTop:    top,
		origBottom: bottom,
		top:        top,
		bottom:     bottom,
	}
	if err := c.begin(s); err != nil {
		return err
	}
	s.preview = c.resizePreview(s, p.Fine)
	return nil
}

// UpdateResize moves the grabbed edge. The item never collapses below the
// minimum height while dragging.
func (c *Controller) UpdateResize(p Pointer) (Preview, error) {
	s, ok := c.state.(*resizing)
	if !ok {
		return Preview{}, ErrNoGesture
	}
	c.dragEdge(s, p.Y)
	s.preview = c.resizePreview(s, p.Fine)
	return s.preview, nil
}

// EndResize snaps the grabbed edge and returns the activity with only that
// edge changed. It reports false when the result would not have positive
// length; the caller then keeps the stored activity unchanged.
func (c *Controller) EndResize(p Pointer) (domain.Activity, bool, error) {
	s, ok := c.state.(*resizing)
	if !ok {
		return domain.Activity{}, false, ErrNoGesture
	}
	c.state = idle{}
	c.dragEdge(s, p.Y)

	day, err := domain.ParseDate(s.seg.Date)
	if err != nil {
		return domain.Activity{}, false, fmt.Errorf("resize %s: %w", s.activity.ID, err)
	}
	start, err := s.activity.StartInstant()
	if err != nil {
		return domain.Activity{}, false, fmt.Errorf("resize %s: %w", s.activity.ID, err)
	}
	end, err := s.activity.EndInstant()
	if err != nil {
		return domain.Activity{}, false, fmt.Errorf("resize %s: %w", s.activity.ID, err)
	}

	if s.edge == Top {
		start = day.Add(time.Duration(c.minutes(s.top, p.Fine, roundNearest)) * time.Minute)
	} else {
		end = day.Add(time.Duration(c.minutes(s.bottom, p.Fine, roundNearest)) * time.Minute)
	}
	if !start.Before(end) {
		return domain.Activity{}, false, nil
	}
	return s.activity.WithInstants(start, end), true, nil
}

// dragEdge keeps the item at least MinItemHeight tall. An item that is
// already shorter may grow but the clamp never pushes its edge past where
// the drag started.
func (c *Controller) dragEdge(s *resizing, y float64) {
	edgeY := y - s.grabOffset
	if s.edge == Top {
		s.top = min(max(edgeY, 0), max(s.origTop, s.bottom-c.geo.MinItemHeight))
		return
	}
	s.bottom = max(min(edgeY, c.geo.TrackHeight), min(s.origBottom, s.top+c.geo.MinItemHeight))
}

func (c *Controller) resizePreview(s *resizing, fine bool) Preview {
	start, end := s.seg.StartMin, s.seg.EndMin
	if s.edge == Top {
		start = c.minutes(s.top, fine, roundNearest)
	} else {
		end = c.minutes(s.bottom, fine, roundNearest)
	}
	return Preview{
		Kind:       Resizing,
		ActivityID: s.activity.ID,
		Day:        s.seg.Date,
		TopPx:      s.top,
		HeightPx:   s.bottom - s.top,
		StartMin:   start,
		EndMin:     end,
		Label:      timeRange(start, end),
		Duration:   domain.FormatDuration(end - start),
	}
}
