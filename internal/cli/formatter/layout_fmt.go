package formatter

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
)

// FormatDayLayout renders the column placement of one day's segments:
// which column each occupies, its width and offset as a share of the
// track, and whether it collides.
func FormatDayLayout(dv DayView) string {
	rows := make([][]string, 0, len(dv.Segments))
	for _, seg := range dv.Segments {
		col := dv.Layout.Columns[seg.ID()]
		part := ""
		switch {
		case !seg.IsFirstDay && !seg.IsLastDay:
			part = "middle"
		case !seg.IsFirstDay:
			part = "tail"
		case !seg.IsLastDay:
			part = "head"
		}
		rows = append(rows, []string{
			seg.StartTime + "–" + seg.EndTime,
			seg.Activity.Name,
			fmt.Sprintf("%d/%d", col.Index+1, col.Total),
			fmt.Sprintf("%.0f%%", col.Width()),
			fmt.Sprintf("%.0f%%", col.Offset()),
			CollisionMark(dv.Layout.IsColliding(seg.ID())),
			Dim(part),
		})
	}
	title := Header(dv.Day.DisplayDate)
	if len(rows) == 0 {
		return title + "\n" + Dim("(empty)") + "\n"
	}
	return title + "\n" + RenderTable([]string{"TIME", "NAME", "COLUMN", "WIDTH", "OFFSET", "!", "PART"}, rows)
}

// BuildDayViews lays out the segments of every plan day, in day order.
func BuildDayViews(days []domain.PlanDay, byDay map[string][]timeline.Segment) []DayView {
	out := make([]DayView, len(days))
	for i, d := range days {
		segs := byDay[d.ISODate]
		out[i] = DayView{Day: d, Segments: segs, Layout: timeline.LayoutSegments(segs)}
	}
	return out
}
