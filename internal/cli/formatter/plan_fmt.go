package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
)

// FormatPlanHeader renders the plan name and its date range.
func FormatPlanHeader(p domain.Plan) string {
	if p.Name == "" && len(p.Activities) == 0 {
		return Dim("No plan yet. Run: planboard plan init")
	}
	days := p.Days
	span := Dim("no dates")
	if len(days) > 0 {
		span = fmt.Sprintf("%s → %s (%d days)", days[0].DisplayDate, days[len(days)-1].DisplayDate, len(days))
	}
	return fmt.Sprintf("%s  %s  %s", Bold(p.Name), span, Dim(fmt.Sprintf("%d activities", len(p.Activities))))
}

// DayView is what FormatPlan needs to know about one day.
type DayView struct {
	Day      domain.PlanDay
	Segments []timeline.Segment
	Layout   timeline.Result
}

// FormatPlan renders each plan day with its segments as a tree. Selected
// activities are marked with ●, colliding ones with a red !, and
// continuation segments are dimmed.
func FormatPlan(days []DayView, categories []domain.Category, selected func(id string) bool) string {
	var items []TreeItem
	for _, dv := range days {
		items = append(items, TreeItem{Title: Bold(dv.Day.DisplayDate), Detail: dv.Day.ISODate})
		if len(dv.Segments) == 0 {
			items = append(items, TreeItem{Title: "(empty)", Level: 1, IsLast: true, Dimmed: true})
			continue
		}
		for i, seg := range dv.Segments {
			marker := Swatch(CategoryColor(categories, seg.Activity.Category)) + CollisionMark(dv.Layout.IsColliding(seg.ID()))
			title := fmt.Sprintf("%s–%s %s", seg.StartTime, seg.EndTime, seg.Activity.Name)
			if selected != nil && selected(seg.Activity.ID) {
				title = StyleYellowBold.Render("● " + title)
			}
			items = append(items, TreeItem{
				Title:  title,
				Level:  1,
				IsLast: i == len(dv.Segments)-1,
				Marker: marker,
				Detail: ShortID(seg.Activity.ID),
				Dimmed: !seg.IsFirstDay,
			})
		}
	}
	return RenderTree(items)
}

// FormatActivityList renders activities as a table in the given order.
func FormatActivityList(activities []domain.Activity, categories []domain.Category) string {
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		flags := ""
		if a.AllowOverlap {
			flags = Dim("overlap ok")
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			a.StartDate,
			TimeRange(a),
			Duration(a),
			a.Name,
			CategoryLabel(categories, a.Category),
			flags,
		})
	}
	return RenderTable([]string{"ID", "DATE", "TIME", "LENGTH", "NAME", "CATEGORY", ""}, rows)
}

// FormatActivity renders one activity with all its fields.
func FormatActivity(a domain.Activity, categories []domain.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(a.Name), TruncID(a.ID))
	fmt.Fprintf(&b, "%s %s %s → %s %s (%s)\n", Dim("when"), a.StartDate, a.StartTime, a.EndDate, a.EndTime, Duration(a))
	fmt.Fprintf(&b, "%s %s\n", Dim("category"), CategoryLabel(categories, a.Category))
	if a.AllowOverlap {
		fmt.Fprintf(&b, "%s %s\n", Dim("overlap"), "allowed")
	}
	if a.Notes != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("notes"), strings.ReplaceAll(a.Notes, "\n", "\n      "))
	}
	return RenderBox("activity", strings.TrimRight(b.String(), "\n"))
}
