package export

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/alexanderramin/planboard/internal/domain"
)

// UncategorizedColor is used for activities without a known category.
const UncategorizedColor = "#cccccc"

// CategoryTotal is the planned time of one category. ID and Name are empty
// for uncategorized activities.
type CategoryTotal struct {
	ID      string
	Name    string
	Color   string
	Minutes int
}

// Summary is the planned time per category, largest first.
type Summary struct {
	TotalMinutes int
	Categories   []CategoryTotal
}

// Percent returns the share of c in the total.
func (s Summary) Percent(c CategoryTotal) float64 {
	if s.TotalMinutes == 0 {
		return 0
	}
	return float64(c.Minutes) * 100 / float64(s.TotalMinutes)
}

// Summarize totals the full duration of every activity by category.
// Activities that reference a missing category count as uncategorized.
func Summarize(p domain.Plan, categories []domain.Category) Summary {
	totals := map[string]int{}
	var s Summary
	for _, a := range p.Activities {
		minutes := int(a.Duration().Minutes())
		if minutes <= 0 {
			continue
		}
		key := ""
		if _, ok := domain.FindCategory(categories, a.Category); ok {
			key = a.Category
		}
		totals[key] += minutes
		s.TotalMinutes += minutes
	}

	for id, minutes := range totals {
		ct := CategoryTotal{ID: id, Color: UncategorizedColor, Minutes: minutes}
		if c, ok := domain.FindCategory(categories, id); ok {
			ct.Name, ct.Color = c.Name, c.Color
		}
		s.Categories = append(s.Categories, ct)
	}
	slices.SortFunc(s.Categories, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Minutes, a.Minutes); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return s
}

// WriteSummary writes the summary as aligned text lines.
func WriteSummary(w io.Writer, s Summary, l Locale) error {
	labels := LabelsFor(l)
	for _, c := range s.Categories {
		name := c.Name
		if c.ID == "" {
			name = labels.Uncategorized
		}
		if _, err := fmt.Fprintf(w, "%-20s %8s %5.1f%%\n", name, domain.FormatDuration(c.Minutes), s.Percent(c)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", labels.Total, domain.FormatDuration(s.TotalMinutes))
	return err
}
