package cli

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/spf13/cobra"
)

// reportChange prints msg for an applied change, or that nothing changed,
// and warns on stderr when the change could not be saved.
func reportChange(cmd *cobra.Command, res service.Result, msg string) {
	out := cmd.OutOrStdout()
	if !res.Changed {
		fmt.Fprintln(out, formatter.Dim("Nothing changed."))
		return
	}
	fmt.Fprintln(out, msg)
	if !res.Persisted {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warn(fmt.Sprintf("change applied but not saved: %v", res.SaveErr)))
	}
}

// warnCollisions lists the activities that id now overlaps on any plan day.
func warnCollisions(cmd *cobra.Command, app *App, id string) {
	byDay := app.Store.SegmentsByDay()
	seen := map[string]bool{}
	for _, day := range app.Store.Days() {
		segs := byDay[day.ISODate]
		layout := timeline.LayoutSegments(segs)
		var mine *timeline.Segment
		for i := range segs {
			if segs[i].Activity.ID == id {
				mine = &segs[i]
			}
		}
		if mine == nil || !layout.IsColliding(mine.ID()) {
			continue
		}
		span := timeline.Interval{Start: mine.StartMin, End: mine.EndMin}
		for _, other := range segs {
			if other.Activity.ID == id || seen[other.Activity.ID] || other.Activity.AllowOverlap {
				continue
			}
			if span.Overlaps(timeline.Interval{Start: other.StartMin, End: other.EndMin}) {
				seen[other.Activity.ID] = true
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warn(fmt.Sprintf("overlaps %s (%s) on %s", other.Activity.Name, formatter.ShortID(other.Activity.ID), day.ISODate)))
			}
		}
	}
}
