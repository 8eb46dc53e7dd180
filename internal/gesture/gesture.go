// Package gesture turns pointer events on a day track into proposed
// activity changes. Exactly one gesture can be active at a time; the
// state is an explicit tagged union owned by Controller.
package gesture

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/domain"
)

var (
	ErrGestureActive    = errors.New("another gesture is already active")
	ErrNoGesture        = errors.New("no matching gesture is active")
	ErrOverExistingItem = errors.New("cannot start a create gesture over an existing item")
	ErrContinuationEdge = errors.New("cannot resize a continuation edge")
	ErrUnknownActivity  = errors.New("unknown activity")
	ErrOutsideTrack     = errors.New("pointer is outside every day track")
)

// Kind names the active gesture.
type Kind int

const (
	Idle Kind = iota
	Creating
	Moving
	Resizing
)

func (k Kind) String() string {
	switch k {
	case Creating:
		return "creating"
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Geometry describes the day tracks the pointer moves over.
type Geometry struct {
	// TrackHeight is the height of a full 24h day track.
	TrackHeight float64
	// MinCreateHeight is the drag height below which a create is cancelled.
	MinCreateHeight float64
	// MinItemHeight is the smallest height a resize may collapse an item to.
	MinItemHeight float64
	// Granularity and FineGranularity are the snap steps in minutes.
	Granularity     int
	FineGranularity int
}

// DefaultGeometry returns pixel thresholds for a track of the given height:
// a 5px create threshold, a 20px minimum item height and the default snap
// granularities. Callers with coarser units override the thresholds.
func DefaultGeometry(trackHeight float64) Geometry {
	return Geometry{
		TrackHeight:     trackHeight,
		MinCreateHeight: 5,
		MinItemHeight:   20,
		Granularity:     domain.DefaultGranularity,
		FineGranularity: domain.FineGranularity,
	}
}

func (g Geometry) granularity(fine bool) int {
	if fine {
		if g.FineGranularity > 0 {
			return g.FineGranularity
		}
		return domain.FineGranularity
	}
	if g.Granularity > 0 {
		return g.Granularity
	}
	return domain.DefaultGranularity
}

// Pointer is one pointer event. Day is the ISO date of the track under the
// pointer ("" when outside every track), Y the offset within that track,
// Fine the fine-snap modifier, and Target the id of the item under the
// pointer ("" over empty space).
type Pointer struct {
	Day    string
	Y      float64
	Fine   bool
	Target string
}

// Source resolves activity ids to their current stored value.
type Source interface {
	Activity(id string) (domain.Activity, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(id string) (domain.Activity, bool)

func (f SourceFunc) Activity(id string) (domain.Activity, bool) { return f(id) }

// Preview is the live feedback for the active gesture.
type Preview struct {
	Kind       Kind
	ActivityID string
	Day        string
	TopPx      float64
	HeightPx   float64
	StartMin   int
	EndMin     int
	// Label is "HH:MM - HH:MM" for create and resize, the activity name and
	// start time for move.
	Label    string
	Duration string
	// DayOffset is the signed number of days between the drop day and the
	// origin day of a move; Annotation renders it ("+1d", "-2d" or "").
	DayOffset  int
	Annotation string
}

// Restore is the geometry the renderer must put back after Cancel.
type Restore struct {
	Kind       Kind
	ActivityID string
	Day        string
	TopPx      float64
	HeightPx   float64
}

type rounding int

const (
	roundNearest rounding = iota
	roundDown
	roundUp
)

type state interface{ kind() Kind }

type idle struct{}

func (idle) kind() Kind { return Idle }

// Controller owns the gesture state machine. It never mutates a store;
// completed gestures return the proposed change to the caller.
type Controller struct {
	geo   Geometry
	src   Source
	state state
}

// NewController returns an idle controller.
func NewController(geo Geometry, src Source) *Controller {
	return &Controller{geo: geo, src: src, state: idle{}}
}

// Geometry returns the track geometry.
func (c *Controller) Geometry() Geometry { return c.geo }

// SetTrackHeight updates the track height, e.g. after a terminal resize.
// It is ignored while a gesture is active.
func (c *Controller) SetTrackHeight(h float64) {
	if c.Active() {
		return
	}
	c.geo.TrackHeight = h
}

// Kind returns the active gesture kind.
func (c *Controller) Kind() Kind { return c.state.kind() }

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool { return c.state.kind() != Idle }

// Preview returns the latest preview of the active gesture.
func (c *Controller) Preview() (Preview, bool) {
	switch s := c.state.(type) {
	case *creating:
		return s.preview, true
	case *moving:
		return s.preview, true
	case *resizing:
		return s.preview, true
	default:
		return Preview{}, false
	}
}

// Cancel abandons the active gesture, leaving no partial state, and
// reports the geometry the renderer should restore.
func (c *Controller) Cancel() (Restore, bool) {
	var r Restore
	switch s := c.state.(type) {
	case *creating:
		r = Restore{Kind: Creating, Day: s.day}
	case *moving:
		r = Restore{
			Kind:       Moving,
			ActivityID: s.activity.ID,
			Day:        s.origin.Date,
			TopPx:      c.pixels(s.origin.StartMin),
			HeightPx:   c.pixels(s.origin.Minutes()),
		}
	case *resizing:
		r = Restore{
			Kind:       Resizing,
			ActivityID: s.activity.ID,
			Day:        s.seg.Date,
			TopPx:      s.origTop,
			HeightPx:   s.origBottom - s.origTop,
		}
	default:
		return Restore{}, false
	}
	c.state = idle{}
	return r, true
}

// minutes is the single pixel -> minutes -> snap pipeline shared by every
// gesture. The result is clamped to the day.
func (c *Controller) minutes(y float64, fine bool, mode rounding) int {
	raw := domain.PixelsToMinutes(y, c.geo.TrackHeight)
	g := c.geo.granularity(fine)
	var m int
	switch mode {
	case roundDown:
		m = domain.SnapFloor(raw, g)
	case roundUp:
		m = domain.SnapCeil(raw, g)
	default:
		m = domain.Snap(raw, g)
	}
	return min(max(m, 0), domain.MinutesPerDay)
}

func (c *Controller) pixels(minutes int) float64 {
	return domain.MinutesToPixels(float64(minutes), c.geo.TrackHeight)
}

func (c *Controller) clampY(y float64) float64 {
	return min(max(y, 0), c.geo.TrackHeight)
}

func (c *Controller) begin(next state) error {
	if c.Active() {
		return fmt.Errorf("start %s: %w", next.kind(), ErrGestureActive)
	}
	c.state = next
	return nil
}

func timeRange(start, end int) string {
	return domain.MinutesToTime(start) + " - " + domain.MinutesToEndTime(end)
}
