package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/planboard/internal/domain"
)

// WriteText writes a plain-text itinerary: the plan name underlined,
// then one section per start date with a line per activity.
//
//	Trip
//	====
//
//	■ Mar 1, 2024 (Fri)
//	- [09:00] Museum (Free time) - 10:30
//	  (Notes: buy tickets)
func WriteText(w io.Writer, p domain.Plan, categories []domain.Category, l Locale) error {
	labels := LabelsFor(l)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", p.Name, strings.Repeat("=", utf8.RuneCountInString(p.Name)))

	currentDate := ""
	for _, a := range p.SortedActivities() {
		if a.StartDate != currentDate {
			currentDate = a.StartDate
			fmt.Fprintf(&b, "\n■ %s\n", FormatDate(currentDate, l))
		}

		fmt.Fprintf(&b, "- [%s] %s", a.StartTime, a.Name)
		if name, ok := categoryName(categories, a.Category, labels); ok {
			fmt.Fprintf(&b, " (%s)", name)
		}
		switch {
		case a.StartDate != a.EndDate:
			fmt.Fprintf(&b, " (%s %s %s)", labels.Until, a.EndDate, a.EndTime)
		case a.StartTime != a.EndTime:
			fmt.Fprintf(&b, " - %s", a.EndTime)
		}
		b.WriteString("\n")

		if a.Notes != "" {
			fmt.Fprintf(&b, "  (%s: %s)\n", labels.NotesPrefix, strings.ReplaceAll(a.Notes, "\n", "\n  "))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	return nil
}
